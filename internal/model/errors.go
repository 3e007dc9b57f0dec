package model

import "errors"

// Error taxonomy for the job pipeline. Callers discriminate with errors.Is;
// transport causes are wrapped onto these sentinels.
var (
	// ErrSubmission marks a transport failure while submitting a job. The
	// controller reverts to idle and retains no job handle.
	ErrSubmission = errors.New("job submission failed")

	// ErrPoll marks a transient failure during a poll tick. It is logged and
	// swallowed; the next tick retries naturally on schedule.
	ErrPoll = errors.New("status poll failed")

	// ErrMalformedRecord marks a record with no usable identifier. The record
	// is dropped from its batch without aborting the tick.
	ErrMalformedRecord = errors.New("record has no usable identifier")

	// ErrNotReady marks a report request issued before the job completed.
	ErrNotReady = errors.New("job has not completed")

	// ErrAnalysis marks a transport failure during report synthesis. It is
	// surfaced to the caller and not retried.
	ErrAnalysis = errors.New("report synthesis failed")
)
