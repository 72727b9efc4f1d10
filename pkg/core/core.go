package core

import (
	"context"
	"io"
	"strings"

	"github.com/trebuchet/trebuchet/internal/calibrate"
	"github.com/trebuchet/trebuchet/internal/digits"
	"github.com/trebuchet/trebuchet/internal/engine"
	"github.com/trebuchet/trebuchet/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Config = engine.Config
type Result = engine.Result
type FileResult = types.FileResult
type LineValue = types.LineValue
type Dictionary = digits.Dictionary
type Entry = digits.Entry

// SumCalibrationValues reads r to the end and returns the sum of the
// calibration values of its lines, recognizing digits and English digit words.
func SumCalibrationValues(r io.Reader) (int64, error) {
	return calibrate.Sum(r, nil)
}

// SumString is SumCalibrationValues over an in-memory document.
func SumString(s string) (int64, error) {
	return calibrate.Sum(strings.NewReader(s), nil)
}

// SumWith sums r using a custom dictionary; nil means the English words.
func SumWith(r io.Reader, dict *Dictionary) (int64, error) {
	return calibrate.Sum(r, dict)
}

// NewDictionary validates entries and builds a dictionary for SumWith or Config.
func NewDictionary(entries ...Entry) (*Dictionary, error) {
	return digits.New(entries...)
}

// Scan sums every eligible file under cfg.Root.
func Scan(ctx context.Context, cfg Config) ([]FileResult, error) {
	return engine.Scan(ctx, cfg)
}

// ScanWithStats is Scan plus the total, counts and duration.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanWithStats(ctx, cfg)
}

// Words returns the built-in English digit words.
func Words() []Entry { return digits.Default().Words() }
