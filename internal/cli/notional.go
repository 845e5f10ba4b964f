package cli

import "github.com/shopspring/decimal"

// cliMinNotional CLI 层的名义价值下限（100 USD）。
// 客户端内部还有一道 5 USD 的下限（fapi/client.MinNotional），两道下限
// 没有统一：先跑这里的 100，再跑客户端的 5，两次都可能调整数量。
// 合并会改变已观察到的行为，这里保持原样。
var cliMinNotional = decimal.NewFromInt(100)

// qtyScale CLI 调整后数量保留 3 位小数
const qtyScale = 3

// ApplyNotionalFloor 按参考价检查名义价值，不足 100 USD 时把数量
// 抬到 round(100/refPrice, 3)。返回调整后的数量和是否发生了调整。
// 市价单没有参考价，不经过这道检查。
func ApplyNotionalFloor(qty, refPrice decimal.Decimal) (decimal.Decimal, bool) {
	if refPrice.Sign() <= 0 {
		return qty, false
	}
	if qty.Mul(refPrice).GreaterThanOrEqual(cliMinNotional) {
		return qty, false
	}
	return cliMinNotional.Div(refPrice).Round(qtyScale), true
}

// referencePrice 各订单类型做名义价值检查所用的参考价
func (p *ParsedArgs) referencePrice() decimal.Decimal {
	switch p.Type {
	case "limit":
		return p.PriceDec
	case "stop_limit":
		return p.LimitPriceDec
	case "oco":
		return p.TakeProfitDec
	default:
		return decimal.Zero
	}
}
