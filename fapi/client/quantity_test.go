package client

import (
	"context"
	"math"
	"testing"
	"testing/quick"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStepAlign(t *testing.T) {
	tests := []struct {
		name string
		qty  string
		step string
		want string
	}{
		{"已对齐", "0.005", "0.001", "0.005"},
		{"向下取整", "0.0015", "0.001", "0.001"},
		{"小于一步", "0.0004", "0.001", "0"},
		{"整数步进", "7", "5", "5"},
		{"零", "0", "0.001", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StepAlign(dec(tt.qty), dec(tt.step))
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("StepAlign(%s, %s) = %s, want %s", tt.qty, tt.step, got, tt.want)
			}
		})
	}
}

func TestClampToMin(t *testing.T) {
	if got := ClampToMin(dec("0.0005"), dec("0.001")); !got.Equal(dec("0.001")) {
		t.Fatalf("低于 minQty 应抬升: got %s", got)
	}
	if got := ClampToMin(dec("0.002"), dec("0.001")); !got.Equal(dec("0.002")) {
		t.Fatalf("高于 minQty 不应变化: got %s", got)
	}
}

func TestMinNotionalQty(t *testing.T) {
	// 5 / 10 / 0.1 = 5 -> 5 * 0.1 = 0.5
	if got := MinNotionalQty(dec("10"), dec("0.1")); !got.Equal(dec("0.5")) {
		t.Fatalf("MinNotionalQty(10, 0.1) = %s, want 0.5", got)
	}
	// 5 / 50000 / 0.001 = 0.1 -> round(0.1) = 0 -> 0
	if got := MinNotionalQty(dec("50000"), dec("0.001")); !got.IsZero() {
		t.Fatalf("MinNotionalQty(50000, 0.001) = %s, want 0", got)
	}
}

// 规格给出的算例：P=50000, step=0.001, minQty=0.001, 请求 0.00001。
// 名义价值 0.5 < 5 触发重算，重算结果被步进地板归零，最后被 minQty 抬到 0.001。
func TestAdjustQuantityTinyOrder(t *testing.T) {
	f := newFakeExchange()
	f.price = "50000"
	f.minQty = "0.001"
	f.stepSize = "0.001"
	c := newTestClient(t, f)

	got, err := c.AdjustQuantity(context.Background(), "BTCUSDT", dec("0.00001"))
	if err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}
	if !got.Equal(dec("0.001")) {
		t.Fatalf("期望被抬到 minQty 0.001，得到 %s", got)
	}
}

func TestAdjustQuantityNotionalRecompute(t *testing.T) {
	f := newFakeExchange()
	f.symbol = "XRPUSDT"
	f.price = "10"
	f.minQty = "0.1"
	f.stepSize = "0.1"
	c := newTestClient(t, f)

	// 0.2 * 10 = 2 < 5 -> 重算为 0.5
	got, err := c.AdjustQuantity(context.Background(), "XRPUSDT", dec("0.2"))
	if err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}
	if !got.Equal(dec("0.5")) {
		t.Fatalf("期望重算为 0.5，得到 %s", got)
	}
}

func TestAdjustQuantityStepFloorOnly(t *testing.T) {
	f := newFakeExchange()
	c := newTestClient(t, f)

	// 名义价值足够，只做步进对齐：0.0015 -> 0.001
	got, err := c.AdjustQuantity(context.Background(), "BTCUSDT", dec("0.0015"))
	if err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}
	if !got.Equal(dec("0.001")) {
		t.Fatalf("期望步进地板 0.001，得到 %s", got)
	}
}

func TestAdjustQuantityPrefersMarketLotSize(t *testing.T) {
	f := newFakeExchange()
	f.marketLotMin = "0.01"
	f.marketLotStep = "0.01"
	c := newTestClient(t, f)

	rules, err := c.GetSymbolRules(context.Background(), "btcusdt")
	if err != nil {
		t.Fatalf("GetSymbolRules: %v", err)
	}
	if !rules.UsesMarketLotSize {
		t.Fatal("存在 MARKET_LOT_SIZE 时必须优先使用")
	}
	if !rules.StepSize.Equal(dec("0.01")) || !rules.MinQty.Equal(dec("0.01")) {
		t.Fatalf("取错过滤器: step=%s min=%s", rules.StepSize, rules.MinQty)
	}
}

// 属性：输出要么是 stepSize 的整数倍，要么恰好等于 minQty（抬升例外）
func TestAdjustQuantityProperty(t *testing.T) {
	f := newFakeExchange()
	c := newTestClient(t, f)
	step := dec(f.stepSize)
	minQty := dec(f.minQty)

	property := func(raw float64) bool {
		// 输入域约束：正的、有限的请求数量
		if math.IsNaN(raw) || math.IsInf(raw, 0) {
			return true
		}
		qty := decimal.NewFromFloat(math.Abs(raw))
		if qty.Sign() <= 0 || qty.GreaterThan(decimal.NewFromInt(1000000)) {
			return true
		}

		got, err := c.AdjustQuantity(context.Background(), "BTCUSDT", qty)
		if err != nil {
			return false
		}
		if got.Sign() < 0 {
			return false
		}
		if got.Mod(step).IsZero() {
			return true
		}
		return got.Equal(minQty)
	}

	if err := quick.Check(property, &quick.Config{MaxCount: 50}); err != nil {
		t.Fatal(err)
	}
}
