package client

import (
	"context"
	"fmt"

	"github.com/betbot/futbot/fapi/types"
)

// PlaceOCO 下合成 OCO：一张 reduce-only 止盈限价单 + 一张 reduce-only
// 止损限价单，都挂在持仓的相反方向。两张单独立提交，交易所不提供
// 任何联动：一腿成交不会撤另一腿，这由调用方自行处理。
//
// 顺序执行，止盈腿失败时止损腿不再尝试。部分完成是预期结局，
// 逐腿状态完整放进 OCOResult 返回——即使整体返回 error。
func (c *Client) PlaceOCO(ctx context.Context, order types.OCOOrder) (*types.OCOResult, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	// 两条腿都是平仓方向
	closeSide := order.Side.Opposite()

	c.log.WithField("symbol", order.Symbol).
		WithField("positionSide", order.Side).
		WithField("closeSide", closeSide).
		Info("开始挂合成 OCO")

	tp, err := c.PlaceLimitOrder(ctx, types.LimitOrder{
		Symbol:      order.Symbol,
		Side:        closeSide,
		Quantity:    order.Quantity,
		Price:       order.TakeProfit,
		TimeInForce: types.TimeInForceGTC,
		ReduceOnly:  true,
	})
	if err != nil {
		c.log.Errorf("OCO 止盈腿失败，止损腿不再尝试: %v", err)
		result := &types.OCOResult{
			Outcome: types.OCOTakeProfitFailed,
			LegErr:  err,
		}
		return result, fmt.Errorf("OCO 止盈腿失败（止损腿未尝试）: %w", err)
	}

	sl, err := c.PlaceStopLimitOrder(ctx, types.StopLimitOrder{
		Symbol:      order.Symbol,
		Side:        closeSide,
		Quantity:    order.Quantity,
		StopPrice:   order.StopPrice,
		LimitPrice:  order.LimitPrice,
		TimeInForce: timeInForceOrGTC(order.StopTimeInForce),
		ReduceOnly:  true,
	})
	if err != nil {
		// 止盈腿已经活在场上，没有自动补偿动作；必须连同成功腿一起上报
		c.log.Errorf("OCO 止损腿失败，止盈腿 orderId=%d 仍然在场: %v", tp.OrderID, err)
		result := &types.OCOResult{
			Outcome:    types.OCOStopLossFailed,
			TakeProfit: tp,
			LegErr:     err,
		}
		return result, fmt.Errorf("OCO 止损腿失败（止盈腿 orderId=%d 已挂出）: %w", tp.OrderID, err)
	}

	return &types.OCOResult{
		Outcome:    types.OCOBothPlaced,
		TakeProfit: tp,
		StopLoss:   sl,
	}, nil
}
