package behave

import (
	"strconv"
)

// Status is the result of a single tick.
// The zero value is not a valid status.
type Status int

const (
	// Success indicates the node completed successfully.
	Success Status = iota + 1
	// Failure indicates the node completed unsuccessfully. It is an expected
	// outcome, used by Selector to try alternatives and by Sequence to abort.
	Failure
	// Running indicates the node has not concluded and should be ticked again.
	Running
)

// String returns the lower case name of the status.
func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Running:
		return "running"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Terminal returns true for Success and Failure.
func (s Status) Terminal() bool {
	return s == Success || s == Failure
}
