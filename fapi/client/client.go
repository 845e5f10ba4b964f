package client

import (
	"time"

	"github.com/betbot/futbot/fapi/signing"
	"github.com/betbot/futbot/fapi/types"
	"github.com/sirupsen/logrus"
)

// Client Binance USDT-M 合约下单客户端。
// 每次 CLI 调用独占一个实例，没有跨调用的共享可变状态。
type Client struct {
	baseURL string
	creds   types.Credentials
	http    *httpClient
	signer  *signing.Signer
	log     logrus.FieldLogger
}

// Option 客户端可选配置
type Option func(*Client)

// WithLogger 注入日志器（替代进程级全局日志配置）
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithTimeout 覆盖单次请求超时
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = newHTTPClient(c.baseURL, c.creds.APIKey, d)
	}
}

// WithClock 注入时间源（签名时间戳；测试用）
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.signer = signing.NewSignerWithClock(c.creds.APISecret, now)
	}
}

// NewClient 创建客户端。baseURL 为空时指向测试网。
func NewClient(baseURL string, creds types.Credentials, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		http:    newHTTPClient(baseURL, creds.APIKey, defaultTimeout),
		signer:  signing.NewSigner(creds.APISecret),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL 返回服务地址
func (c *Client) BaseURL() string {
	return c.baseURL
}
