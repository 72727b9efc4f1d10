// Package calibrate reduces each line of a stream to its calibration value
// (first digit * 10 + last digit) and sums them. It drives a scanner.Scanner
// through an explicit awaitFirst / awaitLast / done state machine.
package calibrate
