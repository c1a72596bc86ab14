package web

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	textUtils "github.com/shouni/go-utils/text"

	"github.com/shouni/go-date-exact/internal/pipeline"
	"github.com/shouni/go-date-exact/pkg/report"
	"github.com/shouni/go-date-exact/pkg/types"
)

const (
	// DefaultAddr は serve コマンドのデフォルトの待ち受けアドレスです。
	DefaultAddr = ":8501"

	shutdownTimeout = 5 * time.Second
	emptyInputMsg   = "Por favor, ingresa al menos una URL."
	emptyCSVMsg     = "No hay resultados para descargar."
)

// Runner は1回分の処理を実行します。*pipeline.Pipeline がこれを満たします。
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// Server はブラウザから URL リストを受け取り、結果を表示する HTTP サーバーです。
// 操作のたびにパイプライン全体を最初から実行し、結果は保持しません。
type Server struct {
	echo   *echo.Echo
	runner Runner
}

// NewServer は Server を初期化し、ルーティングを登録します。
func NewServer(runner Runner) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("リクエスト失敗: %s %s status=%d latency=%s error=%v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Printf("リクエスト完了: %s %s status=%d latency=%s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	s := &Server{echo: e, runner: runner}
	e.GET("/", s.handleIndex)
	e.POST("/process", s.handleProcess)
	e.POST("/download", s.handleDownload)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return s
}

// Handler はテストなどから利用するための http.Handler を返します。
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start は ctx がキャンセルされるまでサーバーを実行し、その後グレースフルに停止します。
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("サーバーの起動に失敗しました: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("サーバーの停止に失敗しました: %w", err)
	}
	return nil
}

// pageData はテンプレートに渡す値です。
type pageData struct {
	Input           string
	Message         string
	Diagnostics     []string
	Header          []string
	Records         []types.Record
	PublishedByYear []report.YearCount
	ModifiedByYear  []report.YearCount
	Charts          string
	CSV             string // 表示中のレコードの CSV (base64)。/download はこれをそのまま返す
}

func (s *Server) handleIndex(c echo.Context) error {
	return s.render(c, pageData{})
}

func (s *Server) handleProcess(c echo.Context) error {
	input := c.FormValue("urls")
	urls, err := pipeline.ParseURLs(input)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(urls) == 0 {
		return s.render(c, pageData{Input: input, Message: emptyInputMsg})
	}

	res, err := s.runner.Run(c.Request().Context(), pipeline.Request{URLs: urls})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var charts bytes.Buffer
	if err := report.RenderCharts(&charts, res.Summary); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	var csvBuf bytes.Buffer
	if err := report.WriteCSV(&csvBuf, res.Records); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	data := pageData{
		Input:           input,
		Header:          report.CSVHeader,
		Records:         res.Records,
		PublishedByYear: res.Summary.PublishedByYear,
		ModifiedByYear:  res.Summary.ModifiedByYear,
		Charts:          charts.String(),
		CSV:             base64.StdEncoding.EncodeToString(csvBuf.Bytes()),
	}
	for _, d := range res.Diagnostics {
		data.Diagnostics = append(data.Diagnostics, textUtils.NormalizeText(d.Message()))
	}
	return s.render(c, data)
}

// handleDownload は /process で表示した結果の CSV をそのまま返します。URLの再取得は行いません。
func (s *Server) handleDownload(c echo.Context) error {
	encoded := c.FormValue("csv")
	if encoded == "" {
		return echo.NewHTTPError(http.StatusBadRequest, emptyCSVMsg)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("CSVデータのデコードに失敗しました: %v", err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.CSVFileName))
	return c.Blob(http.StatusOK, report.CSVContentType, data)
}

func (s *Server) render(c echo.Context, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("テンプレートの描画に失敗しました: %w", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
