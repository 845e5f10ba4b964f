package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/betbot/futbot/fapi/types"
	"github.com/sirupsen/logrus"
)

// fakeExchange 进程内的假交易所：记录每次调用，支持错误注入。
type fakeExchange struct {
	mu sync.Mutex

	// 调用计数
	infoCalls  int
	priceCalls int
	orderCalls int

	// 每次下单收到的参数与请求头
	orders       []url.Values
	orderHeaders []http.Header
	rawQueries   []string

	// 行情与规则
	symbol        string
	price         string
	minQty        string
	stepSize      string
	marketLotStep string // 非空时附带 MARKET_LOT_SIZE 过滤器
	marketLotMin  string

	// 先放行 skipOrders 次下单，再让随后 failNextOrders 次返回 400
	skipOrders     int
	failNextOrders int
	nextOrderID    int64
}

// failAfterN 放行前 skip 次下单，其后 n 次返回 400。
func (f *fakeExchange) failAfterN(skip, n int) {
	f.mu.Lock()
	f.skipOrders = skip
	f.failNextOrders = n
	f.mu.Unlock()
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{
		symbol:      "BTCUSDT",
		price:       "50000",
		minQty:      "0.001",
		stepSize:    "0.001",
		nextOrderID: 1000,
	}
}

func (f *fakeExchange) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.infoCalls + f.priceCalls + f.orderCalls
}

func (f *fakeExchange) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(EndpointExchangeInfo, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.infoCalls++
		filters := fmt.Sprintf(`{"filterType":"LOT_SIZE","minQty":%q,"stepSize":%q,"maxQty":"1000"}`, f.minQty, f.stepSize)
		if f.marketLotStep != "" {
			filters += fmt.Sprintf(`,{"filterType":"MARKET_LOT_SIZE","minQty":%q,"stepSize":%q,"maxQty":"500"}`, f.marketLotMin, f.marketLotStep)
		}
		body := fmt.Sprintf(`{"symbols":[{"symbol":%q,"status":"TRADING","filters":[%s]}]}`, f.symbol, filters)
		f.mu.Unlock()
		io.WriteString(w, body)
	})

	mux.HandleFunc(EndpointTickerPrice, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.priceCalls++
		body := fmt.Sprintf(`{"symbol":%q,"price":%q}`, f.symbol, f.price)
		f.mu.Unlock()
		io.WriteString(w, body)
	})

	mux.HandleFunc(EndpointOrder, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.orderCalls++
		params := r.URL.Query()
		f.orders = append(f.orders, params)
		f.orderHeaders = append(f.orderHeaders, r.Header.Clone())
		f.rawQueries = append(f.rawQueries, r.URL.RawQuery)

		if f.skipOrders > 0 {
			f.skipOrders--
		} else if f.failNextOrders > 0 {
			f.failNextOrders--
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"code":-2019,"msg":"Margin is insufficient."}`)
			return
		}

		f.nextOrderID++
		ack := types.OrderAck{
			OrderID:       f.nextOrderID,
			Symbol:        params.Get("symbol"),
			Status:        "NEW",
			ClientOrderID: params.Get("newClientOrderId"),
			Price:         params.Get("price"),
			OrigQty:       params.Get("quantity"),
			TimeInForce:   params.Get("timeInForce"),
			Type:          params.Get("type"),
			Side:          params.Get("side"),
			StopPrice:     params.Get("stopPrice"),
			ReduceOnly:    params.Get("reduceOnly") == "true",
		}
		json.NewEncoder(w).Encode(&ack)
	})

	mux.HandleFunc(EndpointOpenOrders, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	return mux
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestClient 把客户端接到假交易所上
func newTestClient(t *testing.T, f *fakeExchange) *Client {
	t.Helper()
	server := httptest.NewServer(f.handler())
	t.Cleanup(server.Close)

	return NewClient(server.URL,
		types.NewCredentials("test-key", "test-secret"),
		WithLogger(quietLogger()),
		WithClock(func() time.Time { return time.UnixMilli(1700000000000) }))
}
