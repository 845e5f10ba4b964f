package client

// API 端点常量（USDT-M 合约）
const (
	// Server Time
	EndpointServerTime = "/fapi/v1/time"

	// Market data（无签名 GET）
	EndpointExchangeInfo = "/fapi/v1/exchangeInfo"
	EndpointTickerPrice  = "/fapi/v1/ticker/price"

	// Order endpoints（签名）
	EndpointOrder      = "/fapi/v1/order"
	EndpointOpenOrders = "/fapi/v1/openOrders"
)

// DefaultBaseURL 默认指向合约测试网
const DefaultBaseURL = "https://testnet.binancefuture.com"
