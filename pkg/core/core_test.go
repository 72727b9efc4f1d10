package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSumCalibrationValues(t *testing.T) {
	total, err := SumCalibrationValues(strings.NewReader("1abc2\npqr3stu8vwx\na1b2c3d4e5f\ntreb7uchet\n"))
	if err != nil {
		t.Fatalf("SumCalibrationValues: %v", err)
	}
	if total != 142 {
		t.Fatalf("expected 142, got %d", total)
	}
	if total, _ := SumString("eightwothree"); total != 83 {
		t.Fatalf("expected 83, got %d", total)
	}
}

func TestSumWith_CustomDictionary(t *testing.T) {
	dict, err := NewDictionary(Entry{Word: "uno", Value: 1}, Entry{Word: "nueve", Value: 9})
	if err != nil {
		t.Fatalf("NewDictionary: %v", err)
	}
	total, err := SumWith(strings.NewReader("unonine\nnueve\n"), dict)
	if err != nil {
		t.Fatalf("SumWith: %v", err)
	}
	if total != 11+99 {
		t.Fatalf("expected 110, got %d", total)
	}
}

func TestScan_Smoke(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cal.txt"), []byte("two1nine\n"), 0644); err != nil {
		t.Fatal(err)
	}
	results, err := Scan(context.Background(), Config{Root: dir, NoCache: true})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(results) != 1 || results[0].Sum != 29 {
		t.Fatalf("unexpected results %+v", results)
	}
	if len(Words()) != 10 {
		t.Fatal("expected ten English words")
	}
}

func TestMarshalResults_RoundTrip(t *testing.T) {
	in := []FileResult{{Path: "a.txt", Sum: 29, Lines: 1, Values: []LineValue{{Line: 1, First: 2, Last: 9, Value: 29}}}}
	var buf bytes.Buffer
	if err := MarshalResults(&buf, in); err != nil {
		t.Fatal(err)
	}
	out, err := UnmarshalResults(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Values[0].Value != 29 {
		t.Fatalf("unexpected decode %+v", out)
	}
}
