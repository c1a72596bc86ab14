package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-date-exact/internal/pipeline"
	"github.com/shouni/go-date-exact/pkg/extract"
	"github.com/shouni/go-date-exact/pkg/feed"
	"github.com/shouni/go-date-exact/pkg/httpclient"
	"github.com/shouni/go-date-exact/pkg/report"
)

// processOptions は process コマンドのフラグを保持します。
type processOptions struct {
	urls       string // --urls カンマ区切りのURLリスト
	file       string // --file 1行1URLのファイル
	feedURL    string // --feed URLリストとして使うフィード
	csvPath    string // --csv CSVの出力先
	reportPath string // --report チャートHTMLの出力先
}

var processOpts processOptions

// collectURLs は処理対象URLのリストを決定します (フラグ優先、最後に標準入力)。
func collectURLs(ctx context.Context, opts processOptions, fetcher *httpclient.Client, stdin io.Reader) ([]string, error) {
	switch {
	case opts.urls != "":
		return pipeline.SplitURLs(opts.urls), nil

	case opts.file != "":
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, fmt.Errorf("URLファイルのオープンに失敗しました: %w", err)
		}
		defer f.Close()
		return pipeline.ReadURLs(f)

	case opts.feedURL != "":
		urls, err := feed.NewParser(fetcher).FetchURLs(ctx, opts.feedURL)
		if err != nil {
			return nil, fmt.Errorf("フィードからのURL取得に失敗しました: %w", err)
		}
		return urls, nil
	}

	log.Println("URLが指定されていないため、標準入力からURLを読み込みます (Ctrl+DまたはEOFで終了)...")
	return pipeline.ReadURLs(stdin)
}

// runProcessPipeline は、URLリストの処理から出力までを実行するメインロジックです。
func runProcessPipeline(ctx context.Context, urls []string, extractor *extract.Extractor, opts processOptions, stdout, stderr io.Writer) error {
	p, err := pipeline.New(extractor)
	if err != nil {
		return err
	}

	log.Printf("処理開始 (対象URL数: %d)\n", len(urls))

	// 1. 逐次処理 (失敗したURLはその場で診断メッセージを出力)
	res, err := p.Run(ctx, pipeline.Request{
		URLs: urls,
		OnDiagnostic: func(d pipeline.Diagnostic) {
			printDiagnostic(stderr, d)
		},
	})
	if err != nil {
		return err
	}

	// 2. 結果の表示
	fmt.Fprintln(stdout, "Resultados:")
	if err := report.RenderTable(stdout, res.Records); err != nil {
		return fmt.Errorf("結果テーブルの出力に失敗しました: %w", err)
	}

	fmt.Fprintln(stdout, "\nNúmero de artículos publicados por año")
	if err := report.RenderYearCounts(stdout, "Año de Publicación", "Número de Artículos", res.Summary.PublishedByYear); err != nil {
		return fmt.Errorf("年別公開数の出力に失敗しました: %w", err)
	}
	fmt.Fprintln(stdout, "\nNúmero de artículos modificados por año")
	if err := report.RenderYearCounts(stdout, "Año de Modificación", "Número de Artículos Modificados", res.Summary.ModifiedByYear); err != nil {
		return fmt.Errorf("年別更新数の出力に失敗しました: %w", err)
	}

	// 3. CSV とチャートの書き出し
	written, err := writeOutput(stdout, opts.csvPath, func(w io.Writer) error {
		return report.WriteCSV(w, res.Records)
	})
	if err != nil {
		return err
	}
	if written && opts.csvPath != "-" {
		log.Printf("CSVを書き出しました: %s", opts.csvPath)
	}

	written, err = writeOutput(stdout, opts.reportPath, func(w io.Writer) error {
		return report.RenderCharts(w, res.Summary)
	})
	if err != nil {
		return err
	}
	if written && opts.reportPath != "-" {
		log.Printf("チャートを書き出しました: %s", opts.reportPath)
	}

	if clibase.Flags.Verbose {
		log.Printf("完了: 全 %d 件, 失敗 %d 件, 集計対象 %d 件", len(res.Records), len(res.Diagnostics), res.Summary.WorkingSize())
	}
	return nil
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "URLリストから JSON-LD の公開日・更新日を抽出し、表・CSV・チャートを出力します",
	Long: `--urls、--file、--feed、または標準入力 (1行1URL) からURLリストを受け取り、
各ページの "datePublished" と "dateModified" を抽出します。
URLは入力順に1件ずつ処理され、失敗したURLは "error" として結果に残ります。`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		// 1. 依存性の初期化 (Fetcher -> Extractor)
		fetcher := GetGlobalFetcher()
		if fetcher == nil {
			return fmt.Errorf("HTTPクライアントの取得に失敗しました")
		}
		extractor, err := extract.NewExtractor(fetcher)
		if err != nil {
			return fmt.Errorf("Extractorの初期化エラー: %w", err)
		}

		// 2. 処理対象URLのリストを決定
		urls, err := collectURLs(ctx, processOpts, fetcher, cmd.InOrStdin())
		if err != nil {
			return err
		}

		// 3. メインロジックの実行
		return runProcessPipeline(ctx, urls, extractor, processOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	processCmd.Flags().StringVarP(&processOpts.urls, "urls", "u", "",
		"抽出対象のカンマ区切りURLリスト (例: url1,url2,url3)")
	processCmd.Flags().StringVarP(&processOpts.file, "file", "f", "",
		"1行に1件のURLを記述したファイル")
	processCmd.Flags().StringVar(&processOpts.feedURL, "feed", "",
		"記事リンクをURLリストとして使う RSS/Atom フィードのURL")
	processCmd.Flags().StringVar(&processOpts.csvPath, "csv", report.CSVFileName,
		"CSVの出力先 (\"-\" は標準出力、空文字列で出力しない)")
	processCmd.Flags().StringVar(&processOpts.reportPath, "report", report.ReportFileName,
		"チャートHTMLの出力先 (空文字列で出力しない)")
}
