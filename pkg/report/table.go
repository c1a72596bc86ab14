package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/shouni/go-date-exact/pkg/types"
)

// newTable は左寄せ・折り返しなしのテーブルを生成します。
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.Off,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
	)
}

// RenderTable は全レコードをセンチネル値を含めてそのまま表形式で出力します。
func RenderTable(w io.Writer, records []types.Record) error {
	table := newTable(w)
	table.Header(CSVHeader)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.URL, r.Published, r.Modified})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// RenderYearCounts は年別件数を2列の表として出力します。
func RenderYearCounts(w io.Writer, yearHeader, countHeader string, counts []YearCount) error {
	table := newTable(w)
	table.Header([]string{yearHeader, countHeader})

	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{strconv.Itoa(c.Year), strconv.Itoa(c.Count)})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
