package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/betbot/futbot/fapi/types"
	"github.com/google/uuid"
)

// boolStr reduceOnly 上行时是字符串 "true"/"false"
func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// clientOrderID 为空时生成自定义订单号
func clientOrderID(given string) string {
	if given != "" {
		return given
	}
	return "futbot-" + uuid.NewString()
}

// timeInForceOrGTC 为空时默认 GTC
func timeInForceOrGTC(tif types.TimeInForce) types.TimeInForce {
	if tif == "" {
		return types.TimeInForceGTC
	}
	return tif
}

// submitOrder 签名并提交订单参数，解析交易所确认。
// 校验必须在进入这里之前全部完成。
func (c *Client) submitOrder(ctx context.Context, params map[string]string) (*types.OrderAck, error) {
	query := c.signer.SignedQuery(params)

	c.log.WithField("symbol", params["symbol"]).
		WithField("type", params["type"]).
		WithField("side", params["side"]).
		Info("提交订单")

	body, err := c.http.do(ctx, http.MethodPost, EndpointOrder, query, true)
	if err != nil {
		c.log.WithField("symbol", params["symbol"]).Errorf("下单失败: %v", err)
		return nil, wrapTransport(err, "order", params["symbol"])
	}

	var ack types.OrderAck
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, fmt.Errorf("解析订单确认失败: %w", err)
	}

	c.log.WithField("orderId", ack.OrderID).WithField("status", ack.Status).Info("订单已受理")
	return &ack, nil
}

// PlaceMarketOrder 下市价单
func (c *Client) PlaceMarketOrder(ctx context.Context, order types.MarketOrder) (*types.OrderAck, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	symbol := strings.ToUpper(order.Symbol)
	qty, err := c.AdjustQuantity(ctx, symbol, order.Quantity)
	if err != nil {
		return nil, fmt.Errorf("市价单 %s %s 数量校验失败: %w", symbol, order.Side, err)
	}

	params := map[string]string{
		"symbol":           symbol,
		"side":             string(order.Side),
		"type":             string(types.OrderTypeMarket),
		"quantity":         qty.String(),
		"reduceOnly":       boolStr(order.ReduceOnly),
		"newClientOrderId": clientOrderID(order.ClientOrderID),
	}
	return c.submitOrder(ctx, params)
}

// PlaceLimitOrder 下限价单
func (c *Client) PlaceLimitOrder(ctx context.Context, order types.LimitOrder) (*types.OrderAck, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	symbol := strings.ToUpper(order.Symbol)
	qty, err := c.AdjustQuantity(ctx, symbol, order.Quantity)
	if err != nil {
		return nil, fmt.Errorf("限价单 %s %s 数量校验失败: %w", symbol, order.Side, err)
	}

	params := map[string]string{
		"symbol":           symbol,
		"side":             string(order.Side),
		"type":             string(types.OrderTypeLimit),
		"quantity":         qty.String(),
		"price":            order.Price.String(),
		"timeInForce":      string(timeInForceOrGTC(order.TimeInForce)),
		"reduceOnly":       boolStr(order.ReduceOnly),
		"newClientOrderId": clientOrderID(order.ClientOrderID),
	}
	return c.submitOrder(ctx, params)
}

// PlaceStopLimitOrder 下止损限价单。
// StopPrice 上行为 stopPrice，LimitPrice 上行为 price。
func (c *Client) PlaceStopLimitOrder(ctx context.Context, order types.StopLimitOrder) (*types.OrderAck, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	symbol := strings.ToUpper(order.Symbol)
	qty, err := c.AdjustQuantity(ctx, symbol, order.Quantity)
	if err != nil {
		return nil, fmt.Errorf("止损限价单 %s %s 数量校验失败: %w", symbol, order.Side, err)
	}

	params := map[string]string{
		"symbol":           symbol,
		"side":             string(order.Side),
		"type":             string(types.OrderTypeStop),
		"quantity":         qty.String(),
		"price":            order.LimitPrice.String(),
		"stopPrice":        order.StopPrice.String(),
		"timeInForce":      string(timeInForceOrGTC(order.TimeInForce)),
		"reduceOnly":       boolStr(order.ReduceOnly),
		"newClientOrderId": clientOrderID(order.ClientOrderID),
	}
	return c.submitOrder(ctx, params)
}

// CancelOrder 撤单
func (c *Client) CancelOrder(ctx context.Context, symbol string, orderID int64) (*types.OrderAck, error) {
	if symbol == "" {
		return nil, types.NewValidationError("symbol", "不能为空")
	}
	if orderID <= 0 {
		return nil, types.NewValidationError("orderId", "必须大于 0")
	}

	params := map[string]string{
		"symbol":  strings.ToUpper(symbol),
		"orderId": strconv.FormatInt(orderID, 10),
	}
	query := c.signer.SignedQuery(params)

	body, err := c.http.do(ctx, http.MethodDelete, EndpointOrder, query, true)
	if err != nil {
		return nil, wrapTransport(err, "cancelOrder", params["symbol"])
	}

	var ack types.OrderAck
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, fmt.Errorf("解析撤单响应失败: %w", err)
	}
	return &ack, nil
}

// ListOpenOrders 查询当前挂单
func (c *Client) ListOpenOrders(ctx context.Context, symbol string) ([]types.OrderAck, error) {
	params := map[string]string{}
	if symbol != "" {
		params["symbol"] = strings.ToUpper(symbol)
	}
	query := c.signer.SignedQuery(params)

	body, err := c.http.do(ctx, http.MethodGet, EndpointOpenOrders, query, true)
	if err != nil {
		return nil, wrapTransport(err, "openOrders", symbol)
	}

	var orders []types.OrderAck
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("解析挂单列表失败: %w", err)
	}
	return orders, nil
}
