package types

// センチネル値。結果テーブルと CSV に日付の代わりにそのまま出力されます。
const (
	NotFound   = "not found" // パターンが HTML 内に存在しない
	ErrorValue = "error"     // 取得に失敗した
)

// Dates は HTML から抽出された生の日付文字列です。
// 空文字列は「見つからなかった」ことを表します（マッチは必ず1文字以上）。
type Dates struct {
	Published string
	Modified  string
}

// URLResult は、特定のURLの処理結果、またはその処理中に発生したエラーを保持します。
// これは、Scraperの出力、Reporterの入力として利用されます。
type URLResult struct {
	URL   string // 処理対象のURL
	Dates Dates  // 抽出された日付（Error が nil の場合のみ有効）
	Error error  // 取得中に発生したエラー
}

// Record は1件のURLに対する最終的な結果行です。生成後は変更されません。
type Record struct {
	URL       string `csv:"URL"`
	Published string `csv:"Fecha de Publicación"`
	Modified  string `csv:"Fecha de Modificación"`
}

// Record は URLResult をセンチネル値を含む Record に変換します。
func (r URLResult) Record() Record {
	if r.Error != nil {
		return Record{URL: r.URL, Published: ErrorValue, Modified: ErrorValue}
	}
	return Record{
		URL:       r.URL,
		Published: orNotFound(r.Dates.Published),
		Modified:  orNotFound(r.Dates.Modified),
	}
}

// ToRecords は入力順を保ったまま結果を Record の一覧に変換します。
func ToRecords(results []URLResult) []Record {
	records := make([]Record, 0, len(results))
	for _, res := range results {
		records = append(records, res.Record())
	}
	return records
}

// IsSentinel は値がセンチネル値かどうかを判定します。
func IsSentinel(value string) bool {
	return value == NotFound || value == ErrorValue
}

func orNotFound(value string) string {
	if value == "" {
		return NotFound
	}
	return value
}
