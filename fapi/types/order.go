package types

import "github.com/shopspring/decimal"

// MarketOrder 市价单请求
type MarketOrder struct {
	Symbol   string
	Side     Side
	Quantity decimal.Decimal

	// ReduceOnly 只减仓标记，上行时序列化为 "true"/"false"
	ReduceOnly bool

	// ClientOrderID 自定义订单号，为空时由客户端生成
	ClientOrderID string
}

// Validate 本地校验，失败时不会发起任何网络调用
func (o *MarketOrder) Validate() error {
	if o.Symbol == "" {
		return NewValidationError("symbol", "不能为空")
	}
	if !o.Side.Valid() {
		return NewValidationError("side", "必须为 BUY 或 SELL")
	}
	if o.Quantity.Sign() <= 0 {
		return NewValidationError("quantity", "必须大于 0")
	}
	return nil
}

// LimitOrder 限价单请求
type LimitOrder struct {
	Symbol   string
	Side     Side
	Quantity decimal.Decimal
	Price    decimal.Decimal

	// TimeInForce 为空时默认 GTC
	TimeInForce   TimeInForce
	ReduceOnly    bool
	ClientOrderID string
}

func (o *LimitOrder) Validate() error {
	if o.Symbol == "" {
		return NewValidationError("symbol", "不能为空")
	}
	if !o.Side.Valid() {
		return NewValidationError("side", "必须为 BUY 或 SELL")
	}
	if o.Quantity.Sign() <= 0 {
		return NewValidationError("quantity", "必须大于 0")
	}
	if o.Price.Sign() <= 0 {
		return NewValidationError("price", "限价单必须提供价格")
	}
	return nil
}

// StopLimitOrder 止损限价单请求：StopPrice 触发，LimitPrice 挂单
type StopLimitOrder struct {
	Symbol     string
	Side       Side
	Quantity   decimal.Decimal
	StopPrice  decimal.Decimal
	LimitPrice decimal.Decimal

	TimeInForce   TimeInForce
	ReduceOnly    bool
	ClientOrderID string
}

func (o *StopLimitOrder) Validate() error {
	if o.Symbol == "" {
		return NewValidationError("symbol", "不能为空")
	}
	if !o.Side.Valid() {
		return NewValidationError("side", "必须为 BUY 或 SELL")
	}
	if o.Quantity.Sign() <= 0 {
		return NewValidationError("quantity", "必须大于 0")
	}
	if o.StopPrice.Sign() <= 0 {
		return NewValidationError("stop_price", "止损限价单必须提供触发价")
	}
	if o.LimitPrice.Sign() <= 0 {
		return NewValidationError("limit_price", "止损限价单必须提供执行价")
	}
	return nil
}

// OCOOrder 合成 OCO 请求。
// Side 是已有仓位的方向；两条腿都会以相反方向、reduceOnly 下出。
// 交易所没有原生 OCO，两条腿之间没有任何联动。
type OCOOrder struct {
	Symbol     string
	Side       Side
	Quantity   decimal.Decimal
	TakeProfit decimal.Decimal // 止盈限价腿的价格
	StopPrice  decimal.Decimal // 止损腿触发价
	LimitPrice decimal.Decimal // 止损腿执行价

	// StopTimeInForce 止损腿的有效期策略，为空时 GTC
	StopTimeInForce TimeInForce
}

func (o *OCOOrder) Validate() error {
	if o.Symbol == "" {
		return NewValidationError("symbol", "不能为空")
	}
	if !o.Side.Valid() {
		return NewValidationError("side", "必须为 BUY 或 SELL")
	}
	if o.Quantity.Sign() <= 0 {
		return NewValidationError("quantity", "必须大于 0")
	}
	if o.TakeProfit.Sign() <= 0 {
		return NewValidationError("take_profit", "OCO 必须提供止盈价")
	}
	if o.StopPrice.Sign() <= 0 {
		return NewValidationError("stop_price", "OCO 必须提供止损触发价")
	}
	if o.LimitPrice.Sign() <= 0 {
		return NewValidationError("limit_price", "OCO 必须提供止损执行价")
	}
	return nil
}

// OrderAck 下单成功后交易所返回的确认载荷
type OrderAck struct {
	OrderID       int64  `json:"orderId"`
	Symbol        string `json:"symbol"`
	Status        string `json:"status"`
	ClientOrderID string `json:"clientOrderId"`
	Price         string `json:"price"`
	AvgPrice      string `json:"avgPrice"`
	OrigQty       string `json:"origQty"`
	ExecutedQty   string `json:"executedQty"`
	CumQuote      string `json:"cumQuote"`
	TimeInForce   string `json:"timeInForce"`
	Type          string `json:"type"`
	ReduceOnly    bool   `json:"reduceOnly"`
	Side          string `json:"side"`
	StopPrice     string `json:"stopPrice"`
	UpdateTime    int64  `json:"updateTime"`
}

// OCOOutcome 合成 OCO 的整体结局
type OCOOutcome string

const (
	// OCOBothPlaced 两条腿都已挂出
	OCOBothPlaced OCOOutcome = "BOTH_PLACED"
	// OCOTakeProfitFailed 止盈腿失败，止损腿未尝试
	OCOTakeProfitFailed OCOOutcome = "TAKE_PROFIT_FAILED"
	// OCOStopLossFailed 止盈腿已挂出，止损腿失败；
	// 此时场上留着一张活的 reduce-only 限价单，不做自动补偿
	OCOStopLossFailed OCOOutcome = "STOP_LOSS_FAILED"
)

// OCOResult 合成 OCO 的逐腿结果。
// 部分完成是预期内的结局，必须完整呈现给调用方，不允许吞掉。
type OCOResult struct {
	Outcome    OCOOutcome
	TakeProfit *OrderAck // 止盈腿确认，失败时为 nil
	StopLoss   *OrderAck // 止损腿确认，失败或未尝试时为 nil
	LegErr     error     // 失败腿的错误，成功时为 nil
}
