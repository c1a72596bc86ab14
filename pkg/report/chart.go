package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	// ReportFileName はチャートHTMLのデフォルトファイル名です。
	ReportFileName = "fechas_publicacion_modificacion.html"

	chartWidth           = "420px"
	chartHeight          = "360px"
	cumulativeDateLayout = "2006-01-02"
)

// チャートのタイトルと系列名
const (
	publishedChartTitle  = "Número de artículos publicados por año"
	modifiedChartTitle   = "Número de artículos modificados por año"
	cumulativeChartTitle = "Evolución acumulada de artículos publicados"
	pageTitle            = "Extractor de 'DatePublished' y 'DateModified' JSON-LD"
)

// RenderCharts は3つのチャート（年別公開数、年別更新数、累積公開数）を1ページのHTMLとして書き出します。
func RenderCharts(w io.Writer, s Summary) error {
	page := components.NewPage()
	page.PageTitle = pageTitle
	page.SetLayout(components.PageFlexLayout)

	page.AddCharts(
		yearBarChart(publishedChartTitle, "Número de Artículos", s.PublishedByYear, ""),
		yearBarChart(modifiedChartTitle, "Número de Artículos Modificados", s.ModifiedByYear, "orange"),
		cumulativeLineChart(s.Cumulative),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("チャートの描画に失敗しました: %w", err)
	}
	return nil
}

// yearBarChart は年ごとの件数を棒グラフにします。
func yearBarChart(title, seriesName string, counts []YearCount, color string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	)

	years := make([]string, 0, len(counts))
	items := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		years = append(years, strconv.Itoa(c.Year))
		items = append(items, opts.BarData{Value: c.Count})
	}

	var seriesOpts []charts.SeriesOpts
	if color != "" {
		seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
	}
	bar.SetXAxis(years).AddSeries(seriesName, items, seriesOpts...)
	return bar
}

// cumulativeLineChart は公開日を横軸に累積記事数を折れ線グラフにします。
func cumulativeLineChart(points []CumulativePoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: cumulativeChartTitle}),
	)

	dates := make([]string, 0, len(points))
	items := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		dates = append(dates, p.Date.Format(cumulativeDateLayout))
		items = append(items, opts.LineData{Value: p.Count})
	}

	line.SetXAxis(dates).AddSeries("Artículos Acumulados", items,
		charts.WithLineStyleOpts(opts.LineStyle{Color: "green"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "green"}),
	)
	return line
}
