package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/shouni/go-date-exact/pkg/report"
	"github.com/shouni/go-date-exact/pkg/scraper"
	"github.com/shouni/go-date-exact/pkg/types"
)

// ErrNoURLs は処理対象のURLが1件もない場合に返されます。
var ErrNoURLs = errors.New("処理対象のURLが一つも指定されていません")

// Diagnostic は取得に失敗したURLの診断情報です。
type Diagnostic struct {
	URL string
	Err error
}

// Message は画面に表示する1行の診断メッセージを返します。
func (d Diagnostic) Message() string {
	return fmt.Sprintf("Error procesando la URL %s: %v", d.URL, d.Err)
}

// Request は1回の実行に必要な入力です。実行ごとに新しく生成します。
type Request struct {
	URLs []string
	// OnDiagnostic は失敗したURLごとに即座に呼び出されます（任意）。
	OnDiagnostic func(Diagnostic)
}

// Result は1回の実行結果です。実行間で共有されることはありません。
type Result struct {
	Records     []types.Record
	Summary     report.Summary
	Diagnostics []Diagnostic
}

// Pipeline は取得・抽出・集計を1回分まとめて実行します。状態は保持しません。
type Pipeline struct {
	extractor scraper.DateExtractor
}

// New は Pipeline を初期化します。
func New(extractor scraper.DateExtractor) (*Pipeline, error) {
	if extractor == nil {
		return nil, fmt.Errorf("pipeline.New: extractor cannot be nil")
	}
	return &Pipeline{extractor: extractor}, nil
}

// Run はURLリスト全体を逐次処理し、結果と集計を返します。
// 個々のURLの失敗はエラーとして返さず、センチネル値と診断情報として結果に含めます。
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.URLs) == 0 {
		return nil, ErrNoURLs
	}

	res := &Result{}

	// 1. Scraperの初期化 (リクエストごとに生成)
	s, err := scraper.NewSequentialScraper(p.extractor, scraper.WithDiagnostics(func(url string, err error) {
		d := Diagnostic{URL: url, Err: err}
		res.Diagnostics = append(res.Diagnostics, d)
		if req.OnDiagnostic != nil {
			req.OnDiagnostic(d)
		}
	}))
	if err != nil {
		return nil, fmt.Errorf("Scraperの初期化エラー: %w", err)
	}

	// 2. 逐次処理の実行
	res.Records = types.ToRecords(s.Scrape(ctx, req.URLs))

	// 3. 集計
	res.Summary = report.Summarize(res.Records)

	return res, nil
}
