package core_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/trebuchet/trebuchet/pkg/core"
)

func ExampleSumCalibrationValues() {
	doc := strings.Join([]string{
		"two1nine",
		"eightwothree",
		"abcone2threexyz",
		"xtwone3four",
		"4nineeightseven2",
		"zoneight234",
		"7pqrstsixteen",
	}, "\n")
	total, err := core.SumCalibrationValues(strings.NewReader(doc))
	if err != nil {
		panic(err)
	}
	fmt.Println(total)
	// Output: 281
}

// ExampleScanWithStats shows how to sum a directory and retrieve statistics.
func ExampleScanWithStats() {
	cfg := core.Config{
		Root:         ".",
		Threads:      4,
		IncludeGlobs: "**/*.txt",
		MaxBytes:     1 << 20,
	}
	res, err := core.ScanWithStats(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return
	}
	fmt.Printf("Summed %d files in %s: total %d\n", res.FilesScanned, res.Duration, res.Total)
	_ = core.MarshalResults(os.Stdout, res.Files)
}
