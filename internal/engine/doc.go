// Package engine contains the repository-level logic for trebuchet. It
// traverses target files, sums their calibration values concurrently, and
// keeps an incremental cache keyed by content hash. This package is internal;
// external consumers should use the stable facade in pkg/core.
package engine
