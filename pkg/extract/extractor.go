package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/go-date-exact/pkg/types"
)

// ----------------------------------------------------------------------
// 定数定義 (解析関連のみ)
// ----------------------------------------------------------------------

// JSON-LD をパースせず、生のHTMLテキストに対して最初に一致したものだけを採用します。
// 同じページに複数の JSON-LD ブロックがあっても、文書順で最初の値が報告されます。
var (
	publishedPattern = regexp.MustCompile(`"datePublished":"([^"]+)"`)
	modifiedPattern  = regexp.MustCompile(`"dateModified":"([^"]+)"`)
)

// Extractor は、Fetcher を使って日付抽出プロセスを管理します。
type Extractor struct {
	fetcher Fetcher
}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
func NewExtractor(fetcher Fetcher) (*Extractor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("extract.NewExtractor: Fetcher cannot be nil")
	}
	return &Extractor{
		fetcher: fetcher,
	}, nil
}

// FetchAndExtractDates は指定されたURLからHTMLを取得し、公開日と更新日を抽出します。
// 取得エラーはそのまま返します。取得に成功した場合はエラーを返しません。
func (e *Extractor) FetchAndExtractDates(ctx context.Context, url string) (types.Dates, error) {
	html, err := e.fetcher.FetchText(ctx, url)
	if err != nil {
		return types.Dates{}, err
	}
	return ExtractDates(html), nil
}

// ExtractDates はHTMLテキストから datePublished と dateModified を個別に抽出します。
// 見つからないフィールドは空文字列になります。
func ExtractDates(html string) types.Dates {
	return types.Dates{
		Published: firstMatch(publishedPattern, html),
		Modified:  firstMatch(modifiedPattern, html),
	}
}

// firstMatch は最初の一致を返します。値の中の CRLF は LF に揃えます (CSV の読み戻しで CRLF は保持されないため)。
func firstMatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], "\r\n", "\n")
}
