package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-date-exact/internal/pipeline"
)

func TestWriteOutput(t *testing.T) {
	write := func(w io.Writer) error {
		_, err := io.WriteString(w, "hola")
		return err
	}

	t.Run("空文字列は出力しない", func(t *testing.T) {
		var stdout bytes.Buffer
		written, err := writeOutput(&stdout, "", write)
		require.NoError(t, err)
		assert.False(t, written)
		assert.Empty(t, stdout.String())
	})

	t.Run("ハイフンは標準出力", func(t *testing.T) {
		var stdout bytes.Buffer
		written, err := writeOutput(&stdout, "-", write)
		require.NoError(t, err)
		assert.True(t, written)
		assert.Equal(t, "hola", stdout.String())
	})

	t.Run("ファイルへ出力", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		var stdout bytes.Buffer
		written, err := writeOutput(&stdout, path, write)
		require.NoError(t, err)
		assert.True(t, written)
		assert.Empty(t, stdout.String())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hola", string(b))
	})

	t.Run("書き込みエラーを返す", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		boom := errors.New("boom")
		written, err := writeOutput(io.Discard, path, func(io.Writer) error { return boom })
		assert.False(t, written)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("存在しないディレクトリ", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "no", "such", "out.txt")
		_, err := writeOutput(io.Discard, path, write)
		assert.Error(t, err)
	})
}

func TestPrintDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	printDiagnostic(&buf, pipeline.Diagnostic{URL: "https://example.com/x", Err: errors.New("timeout")})
	assert.Contains(t, buf.String(), "Error procesando la URL https://example.com/x: timeout")
}
