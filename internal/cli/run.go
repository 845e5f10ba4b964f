package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/betbot/futbot/fapi/client"
	"github.com/betbot/futbot/fapi/types"
	"github.com/betbot/futbot/pkg/config"
	"github.com/betbot/futbot/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Run 解析参数、装配客户端并执行一次下单流程。
// out 是给用户看的输出（通常是 stdout），日志另走 logger。
func Run(ctx context.Context, args Args, out io.Writer) error {
	p, err := Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(args.ConfigFile, args.EnvFile)
	if err != nil {
		return err
	}
	mergeFlags(cfg, args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}

	c := client.NewClient(cfg.BaseURL,
		types.NewCredentials(cfg.APIKey, cfg.APISecret),
		client.WithLogger(log))

	return dispatch(ctx, p, c, log, out)
}

// mergeFlags 命令行参数覆盖配置
func mergeFlags(cfg *config.Config, args Args) {
	if args.APIKey != "" {
		cfg.APIKey = args.APIKey
	}
	if args.APISecret != "" {
		cfg.APISecret = args.APISecret
	}
	if args.BaseURL != "" {
		cfg.BaseURL = args.BaseURL
	}
	if args.LogFile != "" {
		cfg.Log.OutputFile = args.LogFile
	}
	if args.LogLevel != "" {
		cfg.Log.Level = args.LogLevel
	}
}

// dispatch 按订单类型执行。下单前先过 CLI 层的 100 USD 名义价值检查
// （客户端内部的 5 USD 检查随后在 AdjustQuantity 里再跑一次）。
func dispatch(ctx context.Context, p *ParsedArgs, c *client.Client, log logrus.FieldLogger, out io.Writer) error {
	qty := p.QtyDec
	if ref := p.referencePrice(); ref.Sign() > 0 {
		if adjusted, changed := ApplyNotionalFloor(qty, ref); changed {
			fmt.Fprintf(out, "[!] 名义价值 %s < %s，数量 %s -> %s\n",
				qty.Mul(ref), cliMinNotional, qty, adjusted)
			log.Warnf("CLI 名义价值下限调整: %s -> %s (参考价 %s)", qty, adjusted, ref)
			qty = adjusted
		}
	}

	switch p.Type {
	case "market":
		ack, err := c.PlaceMarketOrder(ctx, types.MarketOrder{
			Symbol:   p.Symbol,
			Side:     types.Side(p.Side),
			Quantity: qty,
		})
		if err != nil {
			return err
		}
		return printAck(out, ack)

	case "limit":
		ack, err := c.PlaceLimitOrder(ctx, types.LimitOrder{
			Symbol:   p.Symbol,
			Side:     types.Side(p.Side),
			Quantity: qty,
			Price:    p.PriceDec,
		})
		if err != nil {
			return err
		}
		return printAck(out, ack)

	case "stop_limit":
		ack, err := c.PlaceStopLimitOrder(ctx, types.StopLimitOrder{
			Symbol:     p.Symbol,
			Side:       types.Side(p.Side),
			Quantity:   qty,
			StopPrice:  p.StopPriceDec,
			LimitPrice: p.LimitPriceDec,
		})
		if err != nil {
			return err
		}
		return printAck(out, ack)

	case "oco":
		result, err := c.PlaceOCO(ctx, types.OCOOrder{
			Symbol:     p.Symbol,
			Side:       types.Side(p.Side),
			Quantity:   qty,
			TakeProfit: p.TakeProfitDec,
			StopPrice:  p.StopPriceDec,
			LimitPrice: p.LimitPriceDec,
		})
		// OCO 的部分完成必须逐腿呈现，result 可能和 err 同时非空
		if result != nil {
			printOCO(out, result)
		}
		return err

	case "cancel":
		ack, err := c.CancelOrder(ctx, p.Symbol, p.OrderID)
		if err != nil {
			return err
		}
		return printAck(out, ack)

	case "open_orders":
		orders, err := c.ListOpenOrders(ctx, p.Symbol)
		if err != nil {
			return err
		}
		return printJSON(out, orders)
	}

	return types.NewValidationError("type", fmt.Sprintf("未知订单类型 %q", p.Type))
}

func printAck(out io.Writer, ack *types.OrderAck) error {
	fmt.Fprintln(out, "[OK] 订单已受理:")
	return printJSON(out, ack)
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// printOCO 逐腿打印 OCO 结果
func printOCO(out io.Writer, r *types.OCOResult) {
	switch r.Outcome {
	case types.OCOBothPlaced:
		fmt.Fprintln(out, "[OK] OCO 两条腿均已挂出")
	case types.OCOTakeProfitFailed:
		fmt.Fprintln(out, "[X] OCO 止盈腿失败，止损腿未尝试")
	case types.OCOStopLossFailed:
		fmt.Fprintln(out, "[!] OCO 止盈腿已挂出，但止损腿失败——场上留有一张未配对的 reduce-only 限价单")
	}
	if r.TakeProfit != nil {
		fmt.Fprintln(out, "止盈腿:")
		_ = printJSON(out, r.TakeProfit)
	}
	if r.StopLoss != nil {
		fmt.Fprintln(out, "止损腿:")
		_ = printJSON(out, r.StopLoss)
	}
	if r.LegErr != nil {
		fmt.Fprintf(out, "失败原因: %s\n", FormatError(r.LegErr))
	}
}

// FormatError 把分类错误渲染成适合直接展示的字符串
func FormatError(err error) string {
	var vErr *types.ValidationError
	if errors.As(err, &vErr) {
		return fmt.Sprintf("参数错误: %s（%s）", vErr.Field, vErr.Reason)
	}
	var nfErr *types.SymbolNotFoundError
	if errors.As(err, &nfErr) {
		return fmt.Sprintf("交易对不存在: %s", nfErr.Symbol)
	}
	var exErr *types.ExchangeError
	if errors.As(err, &exErr) {
		return fmt.Sprintf("交易所拒绝: %s", exErr.Error())
	}
	var netErr *types.NetworkError
	if errors.As(err, &netErr) {
		return fmt.Sprintf("网络故障: %s", netErr.Error())
	}
	return err.Error()
}
