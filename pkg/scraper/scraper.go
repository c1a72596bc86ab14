package scraper

import (
	"context"
	"fmt"

	"github.com/shouni/go-date-exact/pkg/types"
)

// Scraper はURLリストから日付を抽出する機能を提供するインターフェースです。
type Scraper interface {
	Scrape(ctx context.Context, urls []string) []types.URLResult
}

// DateExtractor は1件のURLから日付を抽出します。*extract.Extractor がこれを満たします。
type DateExtractor interface {
	FetchAndExtractDates(ctx context.Context, url string) (types.Dates, error)
}

// DiagnosticFunc は取得に失敗したURLごとに呼び出されます。戻り値は待ちません。
type DiagnosticFunc func(url string, err error)

// SequentialScraper は Scraper インターフェースを実装する逐次処理構造体です。
// URLは入力順に1件ずつ処理され、重複も除去されません。
type SequentialScraper struct {
	extractor   DateExtractor
	diagnostics DiagnosticFunc
}

// Option は SequentialScraper の設定を行うための関数型です。
type Option func(*SequentialScraper)

// WithDiagnostics は取得失敗時の通知先を設定します。nil の場合は何もしません。
func WithDiagnostics(fn DiagnosticFunc) Option {
	return func(s *SequentialScraper) {
		if fn != nil {
			s.diagnostics = fn
		}
	}
}

// NewSequentialScraper は SequentialScraper を初期化します。
func NewSequentialScraper(extractor DateExtractor, opts ...Option) (*SequentialScraper, error) {
	if extractor == nil {
		return nil, fmt.Errorf("scraper.NewSequentialScraper: extractor cannot be nil")
	}
	s := &SequentialScraper{
		extractor:   extractor,
		diagnostics: func(string, error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Scrape は入力URLごとに必ず1件の結果を、入力と同じ順序で返します。
// 1件の失敗がバッチ全体を中断することはありません。
func (s *SequentialScraper) Scrape(ctx context.Context, urls []string) []types.URLResult {
	results := make([]types.URLResult, 0, len(urls))

	for _, u := range urls {
		dates, err := s.extractor.FetchAndExtractDates(ctx, u)
		if err != nil {
			s.diagnostics(u, err)
			results = append(results, types.URLResult{URL: u, Error: err})
			continue
		}
		results = append(results, types.URLResult{URL: u, Dates: dates})
	}

	return results
}
