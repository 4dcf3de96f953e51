package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phyten/tagmark/internal/model"
)

const goSource = "package main\n\n// TODO: fix\nfunc main() {} // ? why\n"

type testEnv map[string]string

func (e testEnv) getenv(key string) string { return e[key] }

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	return testEnv{"HOME": t.TempDir()}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("ディレクトリの作成に失敗しました: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("ファイルの作成に失敗しました: %v", err)
		}
	}
	return dir
}

func runCLI(t *testing.T, env testEnv, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, env.getenv)
	return code, stdout.String(), stderr.String()
}

func TestScanはJSONで注釈を出力する(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.go": goSource})

	code, out, errOut := runCLI(t, newTestEnv(t), "scan", "-o", "json", dir)
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d stderr=%q", code, errOut)
	}
	var res struct {
		Items []model.Annotation `json:"items"`
		Files int                `json:"files"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("JSONの解析に失敗しました: %v\n%s", err, out)
	}
	if res.Files != 1 {
		t.Fatalf("走査ファイル数が想定外です: %d", res.Files)
	}
	if len(res.Items) != 2 {
		t.Fatalf("注釈の件数が想定外です: %+v", res.Items)
	}
	first := res.Items[0]
	if first.Tag != "todo" || first.Line != 3 || first.Column != 4 || first.Text != "TODO: fix" {
		t.Fatalf("1件目の注釈が想定外です: %+v", first)
	}
	if res.Items[1].Tag != "?" || res.Items[1].Line != 4 {
		t.Fatalf("2件目の注釈が想定外です: %+v", res.Items[1])
	}
}

func TestScanはfieldsで列を選択できる(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.go": goSource})

	code, out, errOut := runCLI(t, newTestEnv(t), "scan", "-o", "csv", "--fields", "tag,line,col", dir)
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d stderr=%q", code, errOut)
	}
	want := "TAG,LINE,COLUMN\r\ntodo,3,4\r\n?,4,19\r\n"
	if out != want {
		t.Fatalf("CSV出力が一致しません:\n got=%q\nwant=%q", out, want)
	}
}

func TestScanはHCL設定のタグを使う(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"src/main.go": "package main\n\n// TODO: fix\n// HACK: here\n",
		"tagmark.hcl": "scan {\n  output = \"csv\"\n  fields = \"tag,line\"\n}\n\ntag \"HACK\" {\n  color = \"#FF0000\"\n}\n",
	})

	code, out, errOut := runCLI(t, newTestEnv(t), "--config", filepath.Join(dir, "tagmark.hcl"), "scan", filepath.Join(dir, "src"))
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d stderr=%q", code, errOut)
	}
	if want := "TAG,LINE\r\nHACK,4\r\n"; out != want {
		t.Fatalf("設定ファイルのタグが反映されていません:\n got=%q\nwant=%q", out, want)
	}
}

func TestScanは環境変数よりフラグを優先する(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.go": goSource})
	env := newTestEnv(t)
	env["TAGMARK_OUTPUT"] = "csv"
	env["TAGMARK_FIELDS"] = "tag"

	code, out, errOut := runCLI(t, env, "scan", dir)
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d stderr=%q", code, errOut)
	}
	if want := "TAG\r\ntodo\r\n?\r\n"; out != want {
		t.Fatalf("環境変数の出力形式が反映されていません: %q", out)
	}

	code, out, errOut = runCLI(t, env, "scan", "-o", "ndjson", dir)
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d stderr=%q", code, errOut)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "{") {
		t.Fatalf("フラグの出力形式が優先されていません: %q", out)
	}
}

func TestScanは不正な出力形式でエラーになる(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.go": goSource})

	code, out, errOut := runCLI(t, newTestEnv(t), "scan", "-o", "xml", dir)
	if code != 1 {
		t.Fatalf("終了コードが1ではありません: %d", code)
	}
	if out != "" {
		t.Fatalf("標準出力は空であるべきです: %q", out)
	}
	if !strings.HasPrefix(errOut, "tagmark: ") || !strings.Contains(errOut, "xml") {
		t.Fatalf("エラーメッセージが想定外です: %q", errOut)
	}
}

func TestScanは存在しないパスを標準エラーに報告する(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")

	code, _, errOut := runCLI(t, newTestEnv(t), "scan", "-o", "json", missing)
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d", code)
	}
	if !strings.Contains(errOut, "1 file(s) could not be scanned") || !strings.Contains(errOut, missing) {
		t.Fatalf("エラーの概要が出力されていません: %q", errOut)
	}
}

func TestHighlightは全行を行番号付きで出力する(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.go": goSource})

	code, out, errOut := runCLI(t, newTestEnv(t), "highlight", "--color", "never", "--line-numbers", filepath.Join(dir, "main.go"))
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d stderr=%q", code, errOut)
	}
	if !strings.Contains(out, "1 | package main\n") || !strings.Contains(out, "3 | // TODO: fix\n") {
		t.Fatalf("行番号付きの出力になっていません: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("--color never なのにエスケープシーケンスが含まれています: %q", out)
	}
}

func TestHighlightはHTMLをファイルに書き出す(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.go": goSource})
	outPath := filepath.Join(dir, "out.html")

	code, out, errOut := runCLI(t, newTestEnv(t), "highlight", "--html", "--out", outPath, filepath.Join(dir, "main.go"))
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d stderr=%q", code, errOut)
	}
	if out != "" {
		t.Fatalf("--out 指定時は標準出力は空であるべきです: %q", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("HTMLの読み込みに失敗しました: %v", err)
	}
	page := string(data)
	if !strings.Contains(page, "<title>main.go</title>") || !strings.Contains(page, "<span") || !strings.Contains(page, "TODO: fix</span>") {
		t.Fatalf("HTMLの内容が想定外です:\n%s", page)
	}
}

func TestHighlightのopenはブラウザを起動する(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.go": goSource})
	var opened string
	orig := openBrowser
	openBrowser = func(path string) error {
		opened = path
		return nil
	}
	t.Cleanup(func() {
		openBrowser = orig
		if opened != "" {
			_ = os.Remove(opened)
		}
	})

	code, _, errOut := runCLI(t, newTestEnv(t), "highlight", "--open", filepath.Join(dir, "main.go"))
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d stderr=%q", code, errOut)
	}
	if !strings.HasSuffix(opened, ".html") {
		t.Fatalf("HTMLファイルが開かれていません: %q", opened)
	}
	if _, err := os.Stat(opened); err != nil {
		t.Fatalf("一時ファイルが存在しません: %v", err)
	}
}

func TestHighlightは言語を判定できないとエラーになる(t *testing.T) {
	dir := writeTree(t, map[string]string{"notes.unknown": "TODO: nothing\n"})

	code, _, errOut := runCLI(t, newTestEnv(t), "highlight", filepath.Join(dir, "notes.unknown"))
	if code != 1 {
		t.Fatalf("終了コードが1ではありません: %d", code)
	}
	if !strings.Contains(errOut, "--lang") {
		t.Fatalf("--lang の案内がありません: %q", errOut)
	}
}

func TestLanguagesは対応言語を一覧する(t *testing.T) {
	code, out, errOut := runCLI(t, newTestEnv(t), "languages")
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d stderr=%q", code, errOut)
	}
	if !strings.HasPrefix(out, "LANGUAGE") {
		t.Fatalf("ヘッダーがありません: %q", out)
	}

	code, out, _ = runCLI(t, newTestEnv(t), "languages", "--json")
	if code != 0 {
		t.Fatalf("終了コードが0ではありません: %d", code)
	}
	var rows []languageRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("JSONの解析に失敗しました: %v", err)
	}
	found := false
	for _, r := range rows {
		if r.ID == "python" {
			found = true
			if len(r.Line) == 0 || r.Line[0] != "#" || !r.Enabled {
				t.Fatalf("python の文法が想定外です: %+v", r)
			}
		}
	}
	if !found {
		t.Fatal("python が一覧にありません")
	}
}

func TestRunは未知のコマンドで1を返す(t *testing.T) {
	code, _, errOut := runCLI(t, newTestEnv(t), "frobnicate")
	if code != 1 {
		t.Fatalf("終了コードが1ではありません: %d", code)
	}
	if !strings.Contains(errOut, "unknown command") {
		t.Fatalf("エラーメッセージが想定外です: %q", errOut)
	}
}
