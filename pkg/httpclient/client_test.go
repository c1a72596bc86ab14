package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-date-exact/pkg/retry"
)

type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	// モックの設定側で *http.Response 型の nil を返す必要がある
	return args.Get(0).(*http.Response), args.Error(1)
}

func newResponse(status int, body string, contentType string) *http.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNew(t *testing.T) {
	t.Run("default timeout", func(t *testing.T) {
		client := New(0)
		assert.Equal(t, DefaultHTTPTimeout, client.httpClient.(*http.Client).Timeout)
	})
	t.Run("custom timeout", func(t *testing.T) {
		client := New(5 * time.Second)
		assert.Equal(t, 5*time.Second, client.httpClient.(*http.Client).Timeout)
	})
	t.Run("with HTTP client option", func(t *testing.T) {
		mockClient := new(MockHTTPClient)
		client := New(10*time.Second, WithHTTPClient(mockClient))
		assert.Equal(t, mockClient, client.httpClient)
	})
	t.Run("retries are disabled by default", func(t *testing.T) {
		client := New(0)
		assert.Equal(t, uint64(0), client.retryConfig.MaxRetries)
	})
	t.Run("with max retries option", func(t *testing.T) {
		client := New(0, WithMaxRetries(5))
		assert.Equal(t, uint64(5), client.retryConfig.MaxRetries)
	})
}

func TestStatusError_Error(t *testing.T) {
	tests := []struct {
		name     string
		body     []byte
		expected string
	}{
		{"non-empty body", []byte("error body"), "HTTPステータスコードエラー: 404, ボディ: error body"},
		{"empty body", nil, "HTTPステータスコードエラー: 404, ボディなし"},
		{"truncated body", []byte(strings.Repeat("a", 1025)), "HTTPステータスコードエラー: 404, ボディ: " + strings.Repeat("a", 1024) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &StatusError{StatusCode: 404, Body: tt.body}
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestFetchText(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		mockClient := new(MockHTTPClient)
		mockClient.On("Do", mock.Anything).Return(newResponse(http.StatusOK, `<html>"datePublished":"2021-05-01"</html>`, "text/html; charset=utf-8"), nil)

		client := New(0, WithHTTPClient(mockClient))
		text, err := client.FetchText(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, `<html>"datePublished":"2021-05-01"</html>`, text)
		mockClient.AssertExpectations(t)
	})

	t.Run("no custom headers are sent", func(t *testing.T) {
		mockClient := new(MockHTTPClient)
		mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
			return req.Method == http.MethodGet && len(req.Header) == 0
		})).Return(newResponse(http.StatusOK, "ok", ""), nil)

		client := New(0, WithHTTPClient(mockClient))
		_, err := client.FetchText(context.Background(), "https://example.com")
		require.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("decodes latin1 body", func(t *testing.T) {
		mockClient := new(MockHTTPClient)
		mockClient.On("Do", mock.Anything).Return(newResponse(http.StatusOK, "Publicaci\xf3n", "text/html; charset=iso-8859-1"), nil)

		client := New(0, WithHTTPClient(mockClient))
		text, err := client.FetchText(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "Publicación", text)
	})

	t.Run("http client error", func(t *testing.T) {
		mockClient := new(MockHTTPClient)
		var resp *http.Response
		mockClient.On("Do", mock.Anything).Return(resp, errors.New("network error"))

		client := New(0, WithHTTPClient(mockClient))
		text, err := client.FetchText(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Empty(t, text)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "https://example.com", fetchErr.URL)
		mockClient.AssertNumberOfCalls(t, "Do", 1)
	})

	t.Run("404 is a fetch error", func(t *testing.T) {
		mockClient := new(MockHTTPClient)
		mockClient.On("Do", mock.Anything).Return(newResponse(http.StatusNotFound, "not here", ""), nil)

		client := New(0, WithHTTPClient(mockClient))
		_, err := client.FetchText(context.Background(), "https://example.com/missing")
		require.Error(t, err)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.True(t, IsNonRetryableError(err))
	})

	t.Run("500 is a fetch error", func(t *testing.T) {
		mockClient := new(MockHTTPClient)
		mockClient.On("Do", mock.Anything).Return(newResponse(http.StatusInternalServerError, "", ""), nil)

		client := New(0, WithHTTPClient(mockClient))
		_, err := client.FetchText(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.False(t, IsNonRetryableError(err))
		mockClient.AssertNumberOfCalls(t, "Do", 1)
	})

	t.Run("malformed url is a fetch error", func(t *testing.T) {
		client := New(0, WithHTTPClient(new(MockHTTPClient)))
		_, err := client.FetchText(context.Background(), "://not a url")
		require.Error(t, err)

		var fetchErr *FetchError
		assert.ErrorAs(t, err, &fetchErr)
		assert.True(t, IsNonRetryableError(err))
	})
}

func TestFetchText_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer server.Close()

	client := New(time.Second, WithMaxRetries(3))
	client.retryConfig = retry.Config{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}

	text, err := client.FetchText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchText_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(time.Second)
	client.retryConfig = retry.Config{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}

	_, err := client.FetchText(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<rss></rss>"))
	}))
	defer server.Close()

	body, err := New(time.Second).FetchBytes(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("<rss></rss>"), body)
}

func TestIsNonRetryableError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.False(t, IsNonRetryableError(nil))
	})
	t.Run("client status error", func(t *testing.T) {
		assert.True(t, IsNonRetryableError(&StatusError{StatusCode: 403}))
	})
	t.Run("server status error", func(t *testing.T) {
		assert.False(t, IsNonRetryableError(&StatusError{StatusCode: 502}))
	})
	t.Run("other error type", func(t *testing.T) {
		assert.False(t, IsNonRetryableError(errors.New("some error")))
	})
}
