package main

import "github.com/shouni/go-date-exact/cmd"

// main はCLIのエントリポイントです。コマンドの組み立てとエラー処理は cmd パッケージが担当します。
func main() {
	cmd.Execute()
}
