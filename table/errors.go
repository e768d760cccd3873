package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptySheet             = errors.New("empty sheet")
	ErrFileNotFound           = errors.New("file not found")
	ErrDestinationUnavailable = errors.New("destination unavailable")
)

// PartialMergeFailure is returned when a merge fails after it has started writing to the
// destination. Written lists the columns that were successfully written before the failure.
type PartialMergeFailure struct {
	Written []string
	Column  string
	Err     error
}

func (e *PartialMergeFailure) Error() string {
	written := "none"
	if len(e.Written) > 0 {
		written = strings.Join(e.Written, ", ")
	}

	if e.Column != "" {
		return fmt.Sprintf("partial merge failure writing column '%s' (%v) - columns written: %s", e.Column, e.Err, written)
	}

	return fmt.Sprintf("partial merge failure (%v) - columns written: %s", e.Err, written)
}

func (e *PartialMergeFailure) Unwrap() error {
	return e.Err
}
