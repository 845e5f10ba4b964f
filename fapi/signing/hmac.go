package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"
)

// Sign 计算 HMAC-SHA256 十六进制签名
func Sign(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// CanonicalQuery 将参数映射序列化为确定性的 query string。
// url.Values.Encode 按 key 排序，保证同一组参数总是得到同一串字节；
// 签名覆盖的正是这串字节，发送时必须原样上线，不能重新编码。
func CanonicalQuery(params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	return values.Encode()
}

// Signer 对请求参数做 Binance 风格的 HMAC-SHA256 签名。
// now 可注入固定时钟，便于测试复现同一签名。
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner 创建签名器
func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret, now: time.Now}
}

// NewSignerWithClock 创建使用指定时钟的签名器（测试用）
func NewSignerWithClock(secret []byte, now func() time.Time) *Signer {
	return &Signer{secret: secret, now: now}
}

// SignParams 按规约对参数映射签名：
// 缺少 timestamp 时补当前毫秒时间戳，然后附加 signature 字段。
// 返回的映射可以直接作为请求参数发送。
func (s *Signer) SignParams(params map[string]string) map[string]string {
	signed := make(map[string]string, len(params)+2)
	for k, v := range params {
		signed[k] = v
	}
	if _, ok := signed["timestamp"]; !ok {
		signed["timestamp"] = strconv.FormatInt(s.now().UnixMilli(), 10)
	}
	signed["signature"] = Sign(s.secret, []byte(CanonicalQuery(stripSignature(signed))))
	return signed
}

// SignedQuery 返回最终上线的 query string：
// 规范化编码的参数串 + "&signature=..."（signature 固定在末尾）。
func (s *Signer) SignedQuery(params map[string]string) string {
	signed := s.SignParams(params)
	query := CanonicalQuery(stripSignature(signed))
	return query + "&signature=" + signed["signature"]
}

// stripSignature 签名只覆盖 signature 以外的参数
func stripSignature(params map[string]string) map[string]string {
	if _, ok := params["signature"]; !ok {
		return params
	}
	out := make(map[string]string, len(params)-1)
	for k, v := range params {
		if k == "signature" {
			continue
		}
		out[k] = v
	}
	return out
}
