package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/betbot/futbot/fapi/signing"
	"github.com/betbot/futbot/fapi/types"
	"github.com/shopspring/decimal"
)

// GetSymbolRules 拉取交易对的数量约束。
// 每次调用都重新请求 exchangeInfo，不做缓存；大小写不敏感匹配。
// 优先取 MARKET_LOT_SIZE 过滤器，缺失时退回 LOT_SIZE。
func (c *Client) GetSymbolRules(ctx context.Context, symbol string) (*types.SymbolRules, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	body, err := c.http.get(ctx, EndpointExchangeInfo, "")
	if err != nil {
		return nil, wrapTransport(err, "exchangeInfo", symbol)
	}

	var info types.ExchangeInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("解析 exchangeInfo 失败: %w", err)
	}

	for _, s := range info.Symbols {
		if !strings.EqualFold(s.Symbol, symbol) {
			continue
		}
		return rulesFromFilters(s)
	}
	return nil, &types.SymbolNotFoundError{Symbol: symbol}
}

// rulesFromFilters 从过滤器列表抽取 minQty/stepSize
func rulesFromFilters(s types.SymbolInfo) (*types.SymbolRules, error) {
	var lot, marketLot *types.SymbolFilter
	for i := range s.Filters {
		switch s.Filters[i].FilterType {
		case types.FilterTypeLotSize:
			lot = &s.Filters[i]
		case types.FilterTypeMarketLotSize:
			marketLot = &s.Filters[i]
		}
	}

	chosen := lot
	usesMarket := false
	if marketLot != nil {
		chosen = marketLot
		usesMarket = true
	}
	if chosen == nil {
		return nil, fmt.Errorf("交易对 %s 缺少 LOT_SIZE 过滤器", s.Symbol)
	}

	minQty, err := decimal.NewFromString(chosen.MinQty)
	if err != nil {
		return nil, fmt.Errorf("解析 minQty %q 失败: %w", chosen.MinQty, err)
	}
	stepSize, err := decimal.NewFromString(chosen.StepSize)
	if err != nil {
		return nil, fmt.Errorf("解析 stepSize %q 失败: %w", chosen.StepSize, err)
	}
	if stepSize.Sign() <= 0 {
		return nil, fmt.Errorf("交易对 %s 的 stepSize 非正: %s", s.Symbol, stepSize)
	}

	return &types.SymbolRules{
		Symbol:            s.Symbol,
		MinQty:            minQty,
		StepSize:          stepSize,
		UsesMarketLotSize: usesMarket,
	}, nil
}

// GetPrice 获取最新成交价
func (c *Client) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	query := signing.CanonicalQuery(map[string]string{"symbol": symbol})
	body, err := c.http.get(ctx, EndpointTickerPrice, query)
	if err != nil {
		return decimal.Zero, wrapTransport(err, "tickerPrice", symbol)
	}

	var ticker types.PriceTicker
	if err := json.Unmarshal(body, &ticker); err != nil {
		return decimal.Zero, fmt.Errorf("解析价格响应失败: %w", err)
	}

	price, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("解析价格 %q 失败: %w", ticker.Price, err)
	}
	return price, nil
}

// ServerTime 获取服务器时间（连通性检查）
func (c *Client) ServerTime(ctx context.Context) (int64, error) {
	body, err := c.http.get(ctx, EndpointServerTime, "")
	if err != nil {
		return 0, wrapTransport(err, "serverTime", "")
	}

	var payload struct {
		ServerTime int64 `json:"serverTime"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("解析服务器时间失败: %w", err)
	}
	return payload.ServerTime, nil
}

// wrapTransport 把传输层错误收敛为 NetworkError；
// 交易所返回的结构化错误原样透传。
func wrapTransport(err error, op, symbol string) error {
	var exErr *types.ExchangeError
	if errors.As(err, &exErr) {
		return err
	}
	return &types.NetworkError{Op: op, Symbol: symbol, Err: err}
}
