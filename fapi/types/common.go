package types

// Side 订单方向
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite 返回相反方向（OCO 平仓腿使用）
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Valid 判断方向是否合法
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// OrderType 订单类型（USDT-M 合约）
type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
	// OrderTypeStop 止损限价单：stopPrice 触发后以 price 挂限价
	OrderTypeStop OrderType = "STOP"
)

// TimeInForce 订单有效期策略
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC" // Good Till Cancel - 一直有效直到取消
	TimeInForceIOC TimeInForce = "IOC" // Immediate or Cancel - 立即成交，剩余取消
	TimeInForceFOK TimeInForce = "FOK" // Fill or Kill - 全部成交或全部取消
	TimeInForceGTX TimeInForce = "GTX" // Good Till Crossing - 只做 maker
)

// Credentials API 密钥凭证。
// APISecret 只在签名时使用，不允许出现在日志或序列化输出里。
type Credentials struct {
	APIKey    string
	APISecret []byte
}

// NewCredentials 由字符串形式的密钥构建凭证
func NewCredentials(apiKey, apiSecret string) Credentials {
	return Credentials{
		APIKey:    apiKey,
		APISecret: []byte(apiSecret),
	}
}
