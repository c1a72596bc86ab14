package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shouni/go-date-exact/internal/pipeline"
	"github.com/shouni/go-date-exact/internal/web"
	"github.com/shouni/go-date-exact/pkg/extract"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "ブラウザからURLリストを入力して処理するWeb画面を起動します",
	Long:  `テキストボックスにURLを1行に1件入力し、「Procesar URLs」で表・チャート・CSVダウンロードを表示します。操作のたびに全URLを最初から取得し直します。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := GetGlobalFetcher()
		if fetcher == nil {
			return fmt.Errorf("HTTPクライアントの取得に失敗しました")
		}
		extractor, err := extract.NewExtractor(fetcher)
		if err != nil {
			return fmt.Errorf("Extractorの初期化エラー: %w", err)
		}
		p, err := pipeline.New(extractor)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Printf("Web画面を起動します: http://localhost%s", serveAddr)
		return web.NewServer(p).Start(ctx, serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", web.DefaultAddr, "待ち受けアドレス")
}
