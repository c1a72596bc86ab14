package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/shouni/go-date-exact/pkg/retry"
)

const (
	// HTTPクライアント関連の定数
	DefaultHTTPTimeout = 30 * time.Second
	MaxBodySize        = int64(10 * 1024 * 1024) // 10MB: レスポンスボディの最大読み込みサイズ

	// エラーメッセージに含めるボディの最大長
	maxErrorBodyLength = 1024
)

// Doer は、標準の *http.Client.Do() と互換性のあるHTTPクライアントのインターフェースです。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchError はURLの取得に失敗したことを示すエラーです。
// ネットワークエラー、不正なURL、4xx/5xx ステータスはすべてこの型で返されます。
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("URL(%s)の取得に失敗しました: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError は 400 以上のHTTPステータスコードを示すエラーです。
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("HTTPステータスコードエラー: %d, ボディなし", e.StatusCode)
	}
	body := strings.TrimSpace(string(e.Body))
	if len(body) > maxErrorBodyLength {
		body = body[:maxErrorBodyLength] + "..."
	}
	return fmt.Sprintf("HTTPステータスコードエラー: %d, ボディ: %s", e.StatusCode, body)
}

// Client はHTTP GETリクエストと、任意の指数バックオフによるリトライを管理します。
type Client struct {
	httpClient  Doer
	retryConfig retry.Config
}

// ClientOption はClientの設定を行うための関数型です。
type ClientOption func(*Client)

// WithHTTPClient はカスタムのDoerを設定します。
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithMaxRetries は最大リトライ回数を設定します。0 はリトライなしです。
func WithMaxRetries(max uint64) ClientOption {
	return func(c *Client) {
		c.retryConfig.MaxRetries = max
	}
}

// New は、新しいClientを生成します。
func New(timeout time.Duration, options ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retryConfig: retry.DefaultConfig(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// FetchText はURLからコンテンツを取得し、UTF-8 のテキストとして返します。
// 文字コードは Content-Type ヘッダーと HTML の meta 宣言から判定されます。
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	var text string
	err := c.do(ctx, url, func(resp *http.Response) error {
		reader, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodySize), resp.Header.Get("Content-Type"))
		if err != nil {
			return fmt.Errorf("文字コードの判定に失敗しました: %w", err)
		}
		b, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("レスポンスボディの読み込みに失敗しました: %w", err)
		}
		text = string(b)
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// FetchBytes はURLからコンテンツを取得し、生のバイト配列として返します。
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := c.do(ctx, url, func(resp *http.Response) error {
		b, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
		if err != nil {
			return fmt.Errorf("レスポンスボディの読み込みに失敗しました: %w", err)
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// do はリトライ設定に従ってGETを実行し、成功したレスポンスを read に渡します。
// 失敗はすべて *FetchError でラップされます。
func (c *Client) do(ctx context.Context, url string, read func(*http.Response) error) error {
	op := func() error {
		return c.doFetch(ctx, url, read)
	}

	err := retry.Do(
		ctx,
		c.retryConfig,
		fmt.Sprintf("URL(%s)のフェッチ", url),
		op,
		isRetryableError,
	)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	return nil
}

// doFetch は実際の一度のHTTP GETリクエストを実行します。
func (c *Client) doFetch(ctx context.Context, url string, read func(*http.Response) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &invalidRequestError{err: fmt.Errorf("GETリクエスト作成に失敗しました: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTPリクエストに失敗しました (ネットワーク/接続エラー): %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	return read(resp)
}

// checkResponse はHTTPレスポンスのステータスコードを評価します。
// 注意: この関数はエラー時にレスポンスボディを読み込みますが、閉じる責務は持ちません。
func checkResponse(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength+1))
	if readErr != nil {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: bodyBytes}
}

// invalidRequestError はリクエスト自体が組み立てられなかったことを示します（不正なURLなど）。
type invalidRequestError struct {
	err error
}

func (e *invalidRequestError) Error() string { return e.err.Error() }
func (e *invalidRequestError) Unwrap() error { return e.err }

// IsNonRetryableError は与えられたエラーがリトライしても結果が変わらないエラーかを判断します。
// 4xx ステータスと不正なリクエストが該当します。
func IsNonRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var invalid *invalidRequestError
	if errors.As(err, &invalid) {
		return true
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode < http.StatusInternalServerError
	}
	return false
}

// isRetryableError は retry.ShouldRetryFunc 型のシグネチャを満たします。
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// 5xx やネットワークエラーはリトライ対象
	return !IsNonRetryableError(err)
}
