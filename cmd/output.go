package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	textUtils "github.com/shouni/go-utils/text"

	"github.com/shouni/go-date-exact/internal/pipeline"
)

var diagnosticColor = color.New(color.FgRed)

// printDiagnostic は取得に失敗したURLを1行で出力します。
func printDiagnostic(w io.Writer, d pipeline.Diagnostic) {
	diagnosticColor.Fprintln(w, textUtils.NormalizeText(d.Message()))
}

// writeOutput は path に出力します。"-" は標準出力、空文字列は出力なしです。
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) (written bool, err error) {
	switch path {
	case "":
		return false, nil
	case "-":
		return true, write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("出力ファイルの作成に失敗しました (%s): %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return false, fmt.Errorf("出力ファイルの書き込みに失敗しました (%s): %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("出力ファイルのクローズに失敗しました (%s): %w", path, err)
	}
	return true, nil
}
