package csa

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// DecodeCSA returns data as UTF-8 text. CSA files are UTF-8, with or
// without a BOM, or Shift-JIS.
func DecodeCSA(data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		data = data[3:]
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode shift-jis: %w", err)
	}
	return string(decoded), nil
}

// Read decodes everything from r and parses it.
func Read(r io.Reader) (*GameRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := DecodeCSA(data)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// ReadFile loads and parses the record at path. With strict set, trailing
// input that is not part of the record is an error.
func ReadFile(path string, strict bool) (*GameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := DecodeCSA(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	parse := Parse
	if strict {
		parse = ParseStrict
	}
	rec, err := parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// CollectCSA lists the .csa files under root in lexical order.
func CollectCSA(root string) ([]string, error) {
	var files []string
	if err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".csa") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
