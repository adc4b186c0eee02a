package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/easayliu/movie-browser/pkg/logger"
)

// Options HTTP请求选项
type Options struct {
	// 超时时间，默认30秒
	Timeout time.Duration
	// 请求头
	Headers map[string]string
	// 上下文，用于取消请求
	Context context.Context
	// HTTP客户端，如果为nil则使用默认客户端
	Client *http.Client
	// 瞬时错误的最大重试次数，0表示不重试
	MaxRetries int
	// 首次重试前的等待时间，之后每次翻倍
	RetryBackoff time.Duration
}

// StatusError 非2xx响应
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP request failed with status %d: %s", e.StatusCode, e.Body)
}

// Temporary 429和5xx视为可重试
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// DecodeError 响应体无法解析为期望的JSON结构
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to unmarshal response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DefaultOptions 返回默认选项
func DefaultOptions() *Options {
	return &Options{
		Timeout:      30 * time.Second,
		Headers:      make(map[string]string),
		Context:      context.Background(),
		RetryBackoff: 300 * time.Millisecond,
	}
}

// WithTimeout 设置超时时间
func (o *Options) WithTimeout(timeout time.Duration) *Options {
	o.Timeout = timeout
	return o
}

// WithHeader 添加请求头
func (o *Options) WithHeader(key, value string) *Options {
	if o.Headers == nil {
		o.Headers = make(map[string]string)
	}
	o.Headers[key] = value
	return o
}

// WithContext 设置上下文
func (o *Options) WithContext(ctx context.Context) *Options {
	o.Context = ctx
	return o
}

// WithClient 设置HTTP客户端
func (o *Options) WithClient(client *http.Client) *Options {
	o.Client = client
	return o
}

// WithRetry 设置重试策略
func (o *Options) WithRetry(maxRetries int, backoff time.Duration) *Options {
	o.MaxRetries = maxRetries
	o.RetryBackoff = backoff
	return o
}

// DoJSONRequest 执行JSON请求，统一处理JSON编码/解码和HTTP请求
// 传输错误、429和5xx会按 MaxRetries 指数退避重试，其余错误直接返回
func DoJSONRequest(method, rawURL string, reqBody, respBody interface{}, opts ...*Options) error {
	var options *Options
	if len(opts) > 0 && opts[0] != nil {
		options = opts[0]
	} else {
		options = DefaultOptions()
	}
	ctx := options.Context
	if ctx == nil {
		ctx = context.Background()
	}

	client := options.Client
	if client == nil {
		client = &http.Client{
			Timeout: options.Timeout,
		}
	}

	var payload []byte
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	backoff := options.RetryBackoff
	var lastErr error
	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			backoff *= 2
		}

		body, err := doOnce(ctx, client, method, rawURL, payload, options.Headers)
		if err == nil {
			if respBody != nil {
				if err := json.Unmarshal(body, respBody); err != nil {
					return &DecodeError{Err: err}
				}
			}
			return nil
		}

		lastErr = err
		if !retryable(ctx, err) {
			return err
		}
	}
	return lastErr
}

func doOnce(ctx context.Context, client *http.Client, method, rawURL string, payload []byte, headers map[string]string) ([]byte, error) {
	var reqReader io.Reader
	if payload != nil {
		reqReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		// *url.Error 会带上完整URL,其中可能含有凭据
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = logger.SanitizeURL(urlErr.URL)
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

// GetJSON 发送GET JSON请求的便捷方法
func GetJSON(rawURL string, respBody interface{}, opts ...*Options) error {
	return DoJSONRequest(http.MethodGet, rawURL, nil, respBody, opts...)
}
