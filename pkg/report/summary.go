package report

import (
	"sort"
	"time"

	"github.com/araddon/dateparse"

	"github.com/shouni/go-date-exact/pkg/types"
)

// Row は集計対象（公開日がセンチネル値でない）の1行です。
// 解析できなかった日付は nil になり、その項目の派生値だけが欠損します。
type Row struct {
	Record    types.Record
	Published *time.Time
	Modified  *time.Time
}

// PublishedYear は公開年を返します。公開日が解析できない場合は ok=false です。
func (r Row) PublishedYear() (year int, ok bool) {
	if r.Published == nil {
		return 0, false
	}
	return r.Published.Year(), true
}

// ModifiedYear は更新年を返します。更新日が解析できない場合は ok=false です。
func (r Row) ModifiedYear() (year int, ok bool) {
	if r.Modified == nil {
		return 0, false
	}
	return r.Modified.Year(), true
}

// YearCount は年ごとの記事数です。
type YearCount struct {
	Year  int
	Count int
}

// CumulativePoint は公開日順に並べた記事の累積数です。
type CumulativePoint struct {
	Date  time.Time
	Count int
}

// Summary はチャートとサマリー表の元になる派生データです。
type Summary struct {
	Rows            []Row
	PublishedByYear []YearCount
	ModifiedByYear  []YearCount
	Cumulative      []CumulativePoint
}

// Summarize は結果行から集計値を導出します。入力の records は変更しません。
func Summarize(records []types.Record) Summary {
	var s Summary

	for _, rec := range records {
		if types.IsSentinel(rec.Published) {
			continue
		}
		s.Rows = append(s.Rows, Row{
			Record:    rec,
			Published: parseDate(rec.Published),
			Modified:  parseDate(rec.Modified),
		})
	}

	s.PublishedByYear = countByYear(s.Rows, Row.PublishedYear)
	s.ModifiedByYear = countByYear(s.Rows, Row.ModifiedYear)
	s.Cumulative = cumulative(s.Rows)
	return s
}

// WorkingSize は公開日が解析できた行数を返します。年別公開数の合計と一致します。
func (s Summary) WorkingSize() int {
	n := 0
	for _, r := range s.Rows {
		if r.Published != nil {
			n++
		}
	}
	return n
}

// parseDate は寛容な日付パーサーで文字列を解析します。失敗時は nil を返します。
// タイムゾーンを含まない値は UTC として扱います。
func parseDate(value string) *time.Time {
	if value == "" || types.IsSentinel(value) {
		return nil
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

func countByYear(rows []Row, yearOf func(Row) (int, bool)) []YearCount {
	counts := make(map[int]int)
	for _, r := range rows {
		if year, ok := yearOf(r); ok {
			counts[year]++
		}
	}

	result := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		result = append(result, YearCount{Year: year, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result
}

// cumulative は公開日の昇順に 1, 2, 3, ... と順位を振ります。同じ日付でも別々に数えます。
func cumulative(rows []Row) []CumulativePoint {
	dated := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		if r.Published != nil {
			dated = append(dated, *r.Published)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].Before(dated[j]) })

	points := make([]CumulativePoint, len(dated))
	for i, d := range dated {
		points[i] = CumulativePoint{Date: d, Count: i + 1}
	}
	return points
}
