package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/easayliu/movie-browser/internal/infrastructure/config"
	"github.com/easayliu/movie-browser/internal/infrastructure/ratelimit"
	apperrors "github.com/easayliu/movie-browser/internal/shared/errors"
	httputil "github.com/easayliu/movie-browser/pkg/httpclient"
	"github.com/easayliu/movie-browser/pkg/logger"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultTimeout      = 10 * time.Second
	DefaultQPS          = 40
	DefaultRetryBackoff = 300 * time.Millisecond
)

type Client struct {
	BaseURL      string
	APIKey       string
	Language     string
	MaxRetries   int
	RetryBackoff time.Duration
	httpClient   *http.Client
	rateLimiter  *ratelimit.RateLimiter
}

func NewClient(apiKey string) *Client {
	if apiKey == "" {
		apiKey = os.Getenv("TMDB_API_KEY")
	}

	return &Client{
		BaseURL:      DefaultBaseURL,
		APIKey:       apiKey,
		Language:     "en-US",
		RetryBackoff: DefaultRetryBackoff,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		rateLimiter: ratelimit.NewRateLimiter(DefaultQPS),
	}
}

// NewClientFromConfig 按配置创建客户端,未设置的字段使用默认值
func NewClientFromConfig(cfg *config.TMDBConfig) *Client {
	c := NewClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Language != "" {
		c.Language = cfg.Language
	}
	if cfg.Timeout > 0 {
		c.httpClient.Timeout = cfg.Timeout
	}
	if cfg.RetryBackoff > 0 {
		c.RetryBackoff = cfg.RetryBackoff
	}
	c.MaxRetries = cfg.MaxRetries
	c.rateLimiter = ratelimit.NewRateLimiter(cfg.QPS)
	return c
}

// Do 发送请求描述并将JSON响应解析到 result
// 返回的错误均为 *errors.ServiceError,按错误分类区分
func (c *Client) Do(ctx context.Context, req Request, result interface{}) error {
	if c.APIKey == "" {
		return apperrors.NewServiceError(apperrors.ErrorCodeUnauthorized, "TMDB API key is not set")
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeRateLimit, "rate limit wait aborted", err)
		}
	}

	params := url.Values{}
	for k, v := range req.Query {
		params[k] = append([]string(nil), v...)
	}
	params.Set("api_key", c.APIKey)

	lang := c.Language

	if lang != "" {
		params.Set("language", lang)
	}

	urlStr := fmt.Sprintf("%s%s?%s", c.BaseURL, req.Path, params.Encode())

	logger.Debug("TMDB API Request",
		"endpoint", req.Path,
		"language", lang,
		"url", logger.SanitizeURL(urlStr))

	opts := httputil.DefaultOptions().
		WithContext(ctx).
		WithClient(c.httpClient).
		WithRetry(c.MaxRetries, c.RetryBackoff)

	err := httputil.GetJSON(urlStr, result, opts)
	if err != nil {
		logger.Warn("TMDB API Request failed", "endpoint", req.Path, "error", err)
		return classify(req.Path, err)
	}
	return nil
}

// FetchMovieList 执行 trending/discover/search 类请求
func (c *Client) FetchMovieList(ctx context.Context, req Request) (*MovieListResponse, error) {
	var resp MovieListResponse
	if err := c.Do(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", req.Path, err)
	}
	return &resp, nil
}

func (c *Client) SearchMovie(ctx context.Context, query string) (*MovieListResponse, error) {
	req, ok := SearchRequest(query)
	if !ok {
		return nil, apperrors.NewServiceError(apperrors.ErrorCodeInvalidRequest, "search query is empty")
	}
	return c.FetchMovieList(ctx, req)
}

func (c *Client) GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.Do(ctx, DetailRequest(movieID), &details); err != nil {
		return nil, fmt.Errorf("failed to get movie details: %w", err)
	}
	return &details, nil
}

func (c *Client) GetMovieCredits(ctx context.Context, movieID int) (*CreditsResponse, error) {
	var credits CreditsResponse
	if err := c.Do(ctx, CreditsRequest(movieID), &credits); err != nil {
		return nil, fmt.Errorf("failed to get movie credits: %w", err)
	}
	return &credits, nil
}

func (c *Client) GetGenres(ctx context.Context) ([]Genre, error) {
	var resp GenreListResponse
	if err := c.Do(ctx, GenresRequest(), &resp); err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}
	return resp.Genres, nil
}

// classify 将传输层错误映射为业务错误码
func classify(endpoint string, err error) error {
	details := map[string]interface{}{"endpoint": endpoint}

	var statusErr *httputil.StatusError
	var decodeErr *httputil.DecodeError
	var code apperrors.ErrorCode
	var msg string

	switch {
	case errors.As(err, &statusErr):
		details["status"] = statusErr.StatusCode
		switch {
		case statusErr.StatusCode == http.StatusNotFound:
			code, msg = apperrors.ErrorCodeNotFound, "resource not found"
		case statusErr.StatusCode == http.StatusUnauthorized:
			code, msg = apperrors.ErrorCodeUnauthorized, "invalid TMDB credential"
		case statusErr.StatusCode == http.StatusTooManyRequests:
			code, msg = apperrors.ErrorCodeRateLimit, "TMDB rate limit exceeded"
		case statusErr.StatusCode >= 500:
			code, msg = apperrors.ErrorCodeServiceUnavailable, "TMDB unavailable"
		default:
			code, msg = apperrors.ErrorCodeInvalidRequest, "request rejected by TMDB"
		}
	case errors.As(err, &decodeErr):
		code, msg = apperrors.ErrorCodeMalformedResponse, "unexpected response shape"
	case errors.Is(err, context.DeadlineExceeded):
		code, msg = apperrors.ErrorCodeTimeout, "request timed out"
	default:
		code, msg = apperrors.ErrorCodeNetwork, "request failed"
	}

	return &apperrors.ServiceError{Code: code, Message: msg, Details: details, Cause: err}
}
