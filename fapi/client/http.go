package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/betbot/futbot/fapi/types"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// defaultTimeout 单次请求的超时上限。超时即失败，这一层不做重试。
const defaultTimeout = 10 * time.Second

// httpClient Binance REST 传输层封装
type httpClient struct {
	client *resty.Client
	apiKey string
}

// newHTTPClient 创建传输层客户端。
// 刻意不开 resty 的重试：失败立即向上传播，由调用方决定怎么办。
func newHTTPClient(baseURL, apiKey string, timeout time.Duration) *httpClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "futbot")

	return &httpClient{client: client, apiKey: apiKey}
}

// binanceErrBody Binance 错误响应体
type binanceErrBody struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}

// do 执行一次请求。rawQuery 原样拼到 URL 上，不经过二次编码——
// 签名覆盖的就是这串字节，重新编码会破坏签名。
func (h *httpClient) do(ctx context.Context, method, endpoint, rawQuery string, apiKey bool) ([]byte, error) {
	url := endpoint
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	req := h.client.R().SetContext(ctx)
	if apiKey {
		req.SetHeader("X-MBX-APIKEY", h.apiKey)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s 请求失败", method, endpoint)
	}

	body := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		exErr := &types.ExchangeError{
			Op:     method + " " + endpoint,
			Status: resp.StatusCode(),
			Body:   string(body),
		}
		var parsed binanceErrBody
		if json.Unmarshal(body, &parsed) == nil && parsed.Code != 0 {
			exErr.Code = parsed.Code
			exErr.Message = parsed.Msg
		}
		return nil, exErr
	}

	return body, nil
}

// get 无签名 GET
func (h *httpClient) get(ctx context.Context, endpoint, rawQuery string) ([]byte, error) {
	return h.do(ctx, http.MethodGet, endpoint, rawQuery, false)
}
