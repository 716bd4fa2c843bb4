package errors

import "errors"

var (
	// ErrSlotTaken the (date, period) slot already has a committed submission.
	ErrSlotTaken = errors.New("attendance slot already submitted")
	// ErrStaleRecord the record changed between read and conditional update.
	ErrStaleRecord = errors.New("attendance record was modified concurrently")
	// ErrUsernameTaken another account already uses the username.
	ErrUsernameTaken = errors.New("username already taken")
)
