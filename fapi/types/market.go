package types

import "github.com/shopspring/decimal"

// FilterType 交易规则过滤器类型
type FilterType string

const (
	FilterTypeLotSize       FilterType = "LOT_SIZE"
	FilterTypeMarketLotSize FilterType = "MARKET_LOT_SIZE"
	FilterTypePrice         FilterType = "PRICE_FILTER"
)

// SymbolFilter exchangeInfo 返回的单个过滤器。
// 数值字段都是十进制字符串，解析推迟到 SymbolRules 构建时。
type SymbolFilter struct {
	FilterType FilterType `json:"filterType"`
	MinQty     string     `json:"minQty"`
	MaxQty     string     `json:"maxQty"`
	StepSize   string     `json:"stepSize"`
	MinPrice   string     `json:"minPrice"`
	MaxPrice   string     `json:"maxPrice"`
	TickSize   string     `json:"tickSize"`
}

// SymbolInfo exchangeInfo 中的单个交易对
type SymbolInfo struct {
	Symbol  string         `json:"symbol"`
	Status  string         `json:"status"`
	Filters []SymbolFilter `json:"filters"`
}

// ExchangeInfo 交易规则元数据（只取我们关心的部分）
type ExchangeInfo struct {
	Symbols []SymbolInfo `json:"symbols"`
}

// SymbolRules 单个交易对的数量约束。
// 每次下单前重新拉取，不做跨调用缓存。
type SymbolRules struct {
	Symbol            string
	MinQty            decimal.Decimal
	StepSize          decimal.Decimal
	UsesMarketLotSize bool // true 表示取自 MARKET_LOT_SIZE 过滤器
}

// PriceTicker 最新成交价快照。
// 只是取价瞬间的快照，与下单之间的竞态是接受的设计。
type PriceTicker struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Time   int64  `json:"time"`
}
