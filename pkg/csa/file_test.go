package csa_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"csa/pkg/csa"
)

func TestDecodeShiftJIS(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "shiftjis.csa"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	text, err := csa.DecodeCSA(data)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	rec, err := csa.Parse(text)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if rec.BlackPlayer == nil || *rec.BlackPlayer != "羽生善治" {
		t.Fatalf("unexpected black player: %v", rec.BlackPlayer)
	}
	if rec.WhitePlayer == nil || *rec.WhitePlayer != "森内俊之" {
		t.Fatalf("unexpected white player: %v", rec.WhitePlayer)
	}
	if kind, ok := rec.Ending(); !ok || kind != csa.ActionToryo {
		t.Fatalf("unexpected ending: %v %v", kind, ok)
	}
}

func TestDecodeUTF8WithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("N+先手\n+\n")...)
	text, err := csa.DecodeCSA(data)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if text != "N+先手\n+\n" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestRead(t *testing.T) {
	rec, err := csa.Read(strings.NewReader("N+a\n+\n+7776FU\n%TORYO\n"))
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if len(rec.Moves) != 2 {
		t.Fatalf("unexpected move count: %d", len(rec.Moves))
	}
}

func TestReadFile(t *testing.T) {
	rec, err := csa.ReadFile(filepath.Join("testdata", "handicap.csa"), true)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if rec.BlackPlayer == nil || *rec.BlackPlayer != "sente" {
		t.Fatalf("unexpected black player: %v", rec.BlackPlayer)
	}
	if len(rec.Moves) != 4 {
		t.Fatalf("unexpected move count: %d", len(rec.Moves))
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "trailing.csa")
	if err := os.WriteFile(path, []byte("+\n+7776FU\ngarbage\n"), 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if _, err := csa.ReadFile(path, false); err != nil {
		t.Fatalf("lenient read failed: %v", err)
	}
	_, err = csa.ReadFile(path, true)
	if !errors.Is(err, csa.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error does not name the file: %v", err)
	}

	if _, err := csa.ReadFile(filepath.Join(dir, "missing.csa"), false); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCollectCSA(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "b.csa"),
		filepath.Join(dir, "a.CSA"),
		filepath.Join(dir, "sub", "c.csa"),
		filepath.Join(dir, "notes.txt"),
	}
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f), 0o755); err != nil {
			t.Fatalf("failed to mkdir: %v", err)
		}
		if err := os.WriteFile(f, []byte("+\n"), 0o644); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
	}
	got, err := csa.CollectCSA(dir)
	if err != nil {
		t.Fatalf("failed to collect: %v", err)
	}
	want := []string{files[1], files[0], files[2]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected files: got %v want %v", got, want)
	}
}
