package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize は1行あたりの最大長です（長いクエリ文字列を持つURL向け）。
const maxLineSize = 1024 * 1024

// ReadURLs は1行に1件のURLを読み込みます。各行は前後の空白を除去し、空行は無視します。
// URLの妥当性は検証しません。不正なURLは取得時に失敗します。
func ReadURLs(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var urls []string
	for scanner.Scan() {
		if u := strings.TrimSpace(scanner.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("URLリストの読み取りエラー: %w", err)
	}
	return urls, nil
}

// ParseURLs はテキストボックスの内容を ReadURLs と同じ規則でURLリストに変換します。
// 1行が maxLineSize を超える場合はエラーを返します。
func ParseURLs(text string) ([]string, error) {
	return ReadURLs(strings.NewReader(text))
}

// SplitURLs はカンマ区切りのURLリストを分割します。
func SplitURLs(list string) []string {
	var urls []string
	for _, u := range strings.Split(list, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
