package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/betbot/futbot/internal/cli"
)

func main() {
	var args cli.Args

	flag.StringVar(&args.APIKey, "api-key", "", "API key（也可用 FUTBOT_API_KEY 环境变量）")
	flag.StringVar(&args.APISecret, "api-secret", "", "API secret（也可用 FUTBOT_API_SECRET 环境变量）")
	flag.StringVar(&args.Type, "type", "", "订单类型: market|limit|stop_limit|oco|cancel|open_orders")
	flag.StringVar(&args.Symbol, "symbol", "", "交易对，例如 BTCUSDT")
	flag.StringVar(&args.Side, "side", "", "方向: BUY|SELL")
	flag.StringVar(&args.Qty, "qty", "", "数量")
	flag.StringVar(&args.Price, "price", "", "限价单价格")
	flag.StringVar(&args.StopPrice, "stop_price", "", "止损触发价（stop_limit/oco）")
	flag.StringVar(&args.LimitPrice, "limit_price", "", "止损限价单执行价（stop_limit/oco 止损腿）")
	flag.StringVar(&args.TakeProfit, "take_profit", "", "止盈价（oco）")
	flag.Int64Var(&args.OrderID, "order_id", 0, "订单号（cancel）")
	flag.StringVar(&args.BaseURL, "base-url", "", "REST 服务地址，默认合约测试网")
	flag.StringVar(&args.ConfigFile, "config", "", "YAML 配置文件路径")
	flag.StringVar(&args.EnvFile, "env", "", ".env 文件路径")
	flag.StringVar(&args.LogFile, "log-file", "", "日志文件路径，默认 futbot.log")
	flag.StringVar(&args.LogLevel, "log-level", "", "日志级别: debug|info|warn|error")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Run(ctx, args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "[X] %s\n", cli.FormatError(err))
		os.Exit(1)
	}
}
