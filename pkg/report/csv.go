package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/shouni/go-date-exact/pkg/types"
)

const (
	// CSVFileName はダウンロード時のファイル名です。
	CSVFileName = "fechas_publicacion_modificacion.csv"
	// CSVContentType はダウンロード時の MIME タイプです。
	CSVContentType = "text/csv; charset=utf-8"
)

// CSVHeader は出力CSVのヘッダー行です。types.Record の csv タグと一致します。
var CSVHeader = []string{"URL", "Fecha de Publicación", "Fecha de Modificación"}

// WriteCSV はフィルタ前の全レコードをヘッダー付きのCSVとして書き出します。
// センチネル値もそのまま出力されます。
func WriteCSV(w io.Writer, records []types.Record) error {
	// gocsv は空スライスに対してヘッダーを出力しないため、明示的に書き出す
	if len(records) == 0 {
		csvWriter := gocsv.DefaultCSVWriter(w)
		if err := csvWriter.Write(CSVHeader); err != nil {
			return fmt.Errorf("CSVヘッダーの書き込みに失敗しました: %w", err)
		}
		csvWriter.Flush()
		return csvWriter.Error()
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("CSVの書き込みに失敗しました: %w", err)
	}
	return nil
}

// ReadCSV は WriteCSV で書き出したCSVを読み込みます。
func ReadCSV(r io.Reader) ([]types.Record, error) {
	var records []types.Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("CSVの読み込みに失敗しました: %w", err)
	}
	return records, nil
}
