package parsers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SkipBOM はUTF-8 BOMをスキップします。
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	peeked, err := br.Peek(len(utf8BOM))
	if err == nil && bytes.Equal(peeked, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

// DecodeReader は charset 名 (例: "utf-8", "windows-1252", "shift_jis") に従って
// r をUTF-8に変換します。空文字はUTF-8扱いです。
func DecodeReader(r io.Reader, charset string) (io.Reader, error) {
	name := strings.TrimSpace(charset)
	if name == "" {
		return SkipBOM(r), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return SkipBOM(r), nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// getColIndex はヘッダー名から列インデックスを取得するヘルパーです。
// ヘッダー名の大文字小文字は区別しません。
func getColIndex(header []string, required []string) (map[string]int, error) {
	fold := cases.Fold()
	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[fold.String(strings.TrimSpace(colName))] = i
	}
	for _, req := range required {
		if _, ok := colIndex[fold.String(req)]; !ok {
			return nil, fmt.Errorf("required header not found: %s", req)
		}
	}
	return colIndex, nil
}
