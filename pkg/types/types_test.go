package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLResult_Record(t *testing.T) {
	tests := []struct {
		name     string
		result   URLResult
		expected Record
	}{
		{
			name:     "両方の日付あり",
			result:   URLResult{URL: "https://example.com/a", Dates: Dates{Published: "2021-05-01", Modified: "2022-01-10"}},
			expected: Record{URL: "https://example.com/a", Published: "2021-05-01", Modified: "2022-01-10"},
		},
		{
			name:     "公開日のみ",
			result:   URLResult{URL: "https://example.com/b", Dates: Dates{Published: "2021-05-01"}},
			expected: Record{URL: "https://example.com/b", Published: "2021-05-01", Modified: NotFound},
		},
		{
			name:     "どちらもなし",
			result:   URLResult{URL: "https://example.com/c"},
			expected: Record{URL: "https://example.com/c", Published: NotFound, Modified: NotFound},
		},
		{
			name:     "取得エラーは日付より優先される",
			result:   URLResult{URL: "https://example.com/d", Dates: Dates{Published: "2021-05-01"}, Error: errors.New("404")},
			expected: Record{URL: "https://example.com/d", Published: ErrorValue, Modified: ErrorValue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.Record())
		})
	}
}

func TestToRecords_PreservesOrder(t *testing.T) {
	results := []URLResult{
		{URL: "u1", Dates: Dates{Published: "2020"}},
		{URL: "u2", Error: errors.New("boom")},
		{URL: "u1", Dates: Dates{Modified: "2021"}},
	}

	records := ToRecords(results)

	assert.Len(t, records, 3)
	assert.Equal(t, "u1", records[0].URL)
	assert.Equal(t, "u2", records[1].URL)
	assert.Equal(t, ErrorValue, records[1].Published)
	assert.Equal(t, "u1", records[2].URL)
	assert.Equal(t, NotFound, records[2].Published)
}

func TestIsSentinel(t *testing.T) {
	assert.True(t, IsSentinel(NotFound))
	assert.True(t, IsSentinel(ErrorValue))
	assert.False(t, IsSentinel("2021-05-01"))
	assert.False(t, IsSentinel(""))
}
