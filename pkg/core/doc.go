// Package core provides a small, stable facade over trebuchet's internal
// packages for external integrations. It re-exports a narrow API surface so
// other tools can depend on a stable import path.
//
// Example:
//
//	total, err := core.SumCalibrationValues(os.Stdin)
//	if err != nil { /* handle */ }
//	fmt.Println(total)
package core
