package organizer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
)

// ErrorReason categorizes why a move failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorFileInUse
	ErrorFileNotFound
	ErrorCrossDevice
	ErrorDestinationExists
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorFileInUse:
		return "File is in use"
	case ErrorFileNotFound:
		return "File not found"
	case ErrorCrossDevice:
		return "Cross-device move"
	case ErrorDestinationExists:
		return "Destination exists"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// MoveError records a single file that could not be relocated
type MoveError struct {
	Name     string
	Category string
	Reason   ErrorReason
	Original error
}

// Error implements the error interface
func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Name, e.Reason, e.Original)
}

// Unwrap exposes the underlying filesystem error
func (e *MoveError) Unwrap() error {
	return e.Original
}

// UserMessage returns the line shown in the run report
func (e *MoveError) UserMessage() string {
	switch e.Reason {
	case ErrorPermissionDenied:
		return fmt.Sprintf("Error moving %s: permission denied", e.Name)
	case ErrorFileInUse:
		return fmt.Sprintf("Error moving %s: file is in use (close the application and try again)", e.Name)
	case ErrorFileNotFound:
		return fmt.Sprintf("Error moving %s: file vanished before it could be moved", e.Name)
	case ErrorCrossDevice:
		return fmt.Sprintf("Error moving %s: %s is on a different device", e.Name, e.Category)
	default:
		return fmt.Sprintf("Error moving %s: %v", e.Name, e.Original)
	}
}

// CategorizeError analyzes a move failure and returns a categorized MoveError
func CategorizeError(name string, err error) *MoveError {
	if err == nil {
		return nil
	}

	moveErr := &MoveError{
		Name:     name,
		Original: err,
		Reason:   ErrorUnknown,
	}

	if os.IsNotExist(err) {
		moveErr.Reason = ErrorFileNotFound
		return moveErr
	}

	if os.IsPermission(err) {
		moveErr.Reason = ErrorPermissionDenied
		return moveErr
	}

	if os.IsExist(err) {
		moveErr.Reason = ErrorDestinationExists
		return moveErr
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EBUSY, syscall.ETXTBSY:
			moveErr.Reason = ErrorFileInUse
		case syscall.EXDEV:
			moveErr.Reason = ErrorCrossDevice
		}
	}

	return moveErr
}

// GroupErrors groups move errors by reason
func GroupErrors(errs []*MoveError) map[ErrorReason][]*MoveError {
	grouped := make(map[ErrorReason][]*MoveError)
	for _, err := range errs {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a per-reason breakdown of errors
func FormatErrorSummary(errs []*MoveError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupErrors(errs)
	var b strings.Builder
	b.WriteString("Issues encountered:\n")

	reasons := []ErrorReason{
		ErrorPermissionDenied,
		ErrorFileInUse,
		ErrorFileNotFound,
		ErrorCrossDevice,
		ErrorDestinationExists,
		ErrorUnknown,
	}
	for _, reason := range reasons {
		if group, ok := grouped[reason]; ok {
			fmt.Fprintf(&b, "   ├─ %s: %d files\n", reason, len(group))
			switch reason {
			case ErrorPermissionDenied:
				b.WriteString("   │  └─ Tip: check ownership of the directory\n")
			case ErrorFileInUse:
				b.WriteString("   │  └─ Tip: close applications and rerun\n")
			}
		}
	}

	return b.String()
}
