package client

import (
	"context"
	"fmt"

	"github.com/betbot/futbot/fapi/types"
	"github.com/shopspring/decimal"
)

// MinNotional 名义价值下限（计价货币）。
// 合约 exchangeInfo 不稳定返回逐对的 minNotional，这里统一兜底 5。
var MinNotional = decimal.NewFromInt(5)

// quantityScale 最终数量的小数位上限
const quantityScale = 8

// StepAlign 把数量向下对齐到 stepSize 的整数倍。
// 是地板除，不是四舍五入：这一步只会减小数量。
func StepAlign(qty, step decimal.Decimal) decimal.Decimal {
	return qty.Div(step).Floor().Mul(step)
}

// ClampToMin 数量不足 minQty 时抬升到 minQty。
// 抬升可能重新击穿名义价值下限；刻意不回头复查（见 AdjustQuantity）。
func ClampToMin(qty, minQty decimal.Decimal) decimal.Decimal {
	if qty.LessThan(minQty) {
		return minQty
	}
	return qty
}

// MinNotionalQty 名义价值不足时重算数量：
// round(minNotional / price / step) * step，
// 即名义价值过线的最小步进对齐数量。
func MinNotionalQty(price, step decimal.Decimal) decimal.Decimal {
	return MinNotional.Div(price).Div(step).Round(0).Mul(step)
}

// AdjustQuantity 把请求数量修正为满足交易所约束的数量：
// 结果是 stepSize 的整数倍（或被抬到 minQty），名义价值不低于 MinNotional。
// 不拒单，总是自动修正——这是面向测试网工具的可用性取舍，不是风控。
func (c *Client) AdjustQuantity(ctx context.Context, symbol string, requested decimal.Decimal) (decimal.Decimal, error) {
	rules, err := c.GetSymbolRules(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	price, err := c.GetPrice(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	if price.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("交易对 %s 报价非正: %s", symbol, price)
	}

	qty := requested
	if notional := qty.Mul(price); notional.LessThan(MinNotional) {
		adjusted := MinNotionalQty(price, rules.StepSize)
		c.log.WithFields(logFields(rules, price)).Warnf(
			"数量过小: %s（名义价值 %s）, 按下限 %s 调整为 %s",
			qty, notional, MinNotional, adjusted)
		qty = adjusted
	}

	qty = StepAlign(qty, rules.StepSize)
	if qty.LessThan(rules.MinQty) {
		c.log.Warnf("数量低于 minQty，抬升到 %s", rules.MinQty)
	}
	qty = ClampToMin(qty, rules.MinQty)

	return qty.Round(quantityScale), nil
}

func logFields(rules *types.SymbolRules, price decimal.Decimal) map[string]interface{} {
	return map[string]interface{}{
		"symbol":   rules.Symbol,
		"minQty":   rules.MinQty.String(),
		"stepSize": rules.StepSize.String(),
		"price":    price.String(),
	}
}
