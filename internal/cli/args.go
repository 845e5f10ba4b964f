package cli

import (
	"fmt"

	"github.com/betbot/futbot/fapi/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Args 命令行参数。数量和价格以字符串接收，
// 用 decimal 解析，避免 float64 精度损失进入下单链路。
type Args struct {
	APIKey    string
	APISecret string

	Type   string `validate:"required,oneof=market limit stop_limit oco cancel open_orders"`
	Symbol string `validate:"required"`
	Side   string `validate:"omitempty,oneof=BUY SELL"`

	Qty        string
	Price      string
	StopPrice  string
	LimitPrice string
	TakeProfit string
	OrderID    int64

	BaseURL    string
	ConfigFile string
	EnvFile    string
	LogFile    string
	LogLevel   string
}

var validate = validator.New()

// ParsedArgs 解析完成的参数：decimal 已就位
type ParsedArgs struct {
	Args

	QtyDec        decimal.Decimal
	PriceDec      decimal.Decimal
	StopPriceDec  decimal.Decimal
	LimitPriceDec decimal.Decimal
	TakeProfitDec decimal.Decimal
}

// Parse 校验参数并解析数值字段。
// 所有失败都在本地发生，不会触发任何网络调用。
func Parse(args Args) (*ParsedArgs, error) {
	if err := validate.Struct(args); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return nil, types.NewValidationError(e.Field(), fmt.Sprintf("不满足约束 %s", e.Tag()))
		}
		return nil, err
	}

	p := &ParsedArgs{Args: args}

	var err error
	if p.QtyDec, err = parseDecimal(args.Qty, "qty"); err != nil {
		return nil, err
	}
	if p.PriceDec, err = parseDecimal(args.Price, "price"); err != nil {
		return nil, err
	}
	if p.StopPriceDec, err = parseDecimal(args.StopPrice, "stop_price"); err != nil {
		return nil, err
	}
	if p.LimitPriceDec, err = parseDecimal(args.LimitPrice, "limit_price"); err != nil {
		return nil, err
	}
	if p.TakeProfitDec, err = parseDecimal(args.TakeProfit, "take_profit"); err != nil {
		return nil, err
	}

	if err := p.validateForType(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseDecimal 空串解析为 0（按类型的必填检查在 validateForType 做）
func parseDecimal(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, types.NewValidationError(field, fmt.Sprintf("无法解析数值 %q", s))
	}
	return d, nil
}

// validateForType 按订单类型检查类型相关的必填字段
func (p *ParsedArgs) validateForType() error {
	needsSide := p.Type != "cancel" && p.Type != "open_orders"
	if needsSide && p.Side == "" {
		return types.NewValidationError("side", "下单必须指定 BUY 或 SELL")
	}
	if needsSide && p.QtyDec.Sign() <= 0 {
		return types.NewValidationError("qty", "下单数量必须大于 0")
	}

	switch p.Type {
	case "limit":
		if p.PriceDec.Sign() <= 0 {
			return types.NewValidationError("price", "限价单必须提供价格")
		}
	case "stop_limit":
		if p.StopPriceDec.Sign() <= 0 {
			return types.NewValidationError("stop_price", "止损限价单必须提供触发价")
		}
		if p.LimitPriceDec.Sign() <= 0 {
			return types.NewValidationError("limit_price", "止损限价单必须提供执行价")
		}
	case "oco":
		if p.TakeProfitDec.Sign() <= 0 {
			return types.NewValidationError("take_profit", "OCO 必须提供止盈价")
		}
		if p.StopPriceDec.Sign() <= 0 {
			return types.NewValidationError("stop_price", "OCO 必须提供止损触发价")
		}
		if p.LimitPriceDec.Sign() <= 0 {
			return types.NewValidationError("limit_price", "OCO 必须提供止损执行价")
		}
	case "cancel":
		if p.OrderID <= 0 {
			return types.NewValidationError("order_id", "撤单必须提供订单号")
		}
	}
	return nil
}
