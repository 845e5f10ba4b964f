package types

import "fmt"

// NetworkError 传输层失败（超时、DNS、连接拒绝）。
// 不做任何重试，原始错误保留在 Err 中向上传递。
type NetworkError struct {
	Op     string // 哪个调用，例如 "exchangeInfo"、"order"
	Symbol string // 相关交易对，可为空
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("网络错误 op=%s symbol=%s: %v", e.Op, e.Symbol, e.Err)
	}
	return fmt.Sprintf("网络错误 op=%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ExchangeError 交易所返回的非 2xx 响应。
// Binance 的错误体形如 {"code":-1121,"msg":"Invalid symbol."}；
// 解析失败时 Code 为 0，Body 始终保留原文。
type ExchangeError struct {
	Op      string
	Status  int    // HTTP 状态码
	Code    int64  // 交易所错误码（可能为 0）
	Message string // 交易所错误描述（可能为空）
	Body    string // 原始响应体
}

func (e *ExchangeError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("交易所错误 op=%s HTTP %d code=%d: %s", e.Op, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("交易所错误 op=%s HTTP %d: %s", e.Op, e.Status, e.Body)
}

// SymbolNotFoundError exchangeInfo 中未找到交易对
type SymbolNotFoundError struct {
	Symbol string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("交易对 %s 不存在于 exchangeInfo", e.Symbol)
}

// ValidationError 本地参数校验失败。
// 在任何网络调用之前返回，价格等必填字段绝不静默补默认值。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("参数校验失败 %s: %s", e.Field, e.Reason)
}

// NewValidationError 构建校验错误
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
