package prefs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a missing preferences row.
	ErrNotFound = errors.New("preferences not found")

	// ErrRemote marks any failure reported by a backend.
	ErrRemote = errors.New("remote store error")
)

// RemoteError is a failure from the preferences or analytics backend.
type RemoteError struct {
	Op      string // select, upsert, insert
	Status  int    // HTTP status when the backend is HTTP based
	Code    string // backend error code, e.g. PGRST116 or a SQLSTATE
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString("remote ")
	b.WriteString(e.Op)
	b.WriteString(" failed")
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is matches ErrRemote.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// NotFound reports a missing row as a RemoteError that also matches ErrNotFound.
func NotFound(op, code, message string, status int) *RemoteError {
	return &RemoteError{Op: op, Status: status, Code: code, Message: message, Err: ErrNotFound}
}

func asRemote(op string, err error) error {
	var remote *RemoteError
	if errors.As(err, &remote) {
		if remote.Op != "" {
			return remote
		}
		labeled := *remote
		labeled.Op = op
		return &labeled
	}
	return &RemoteError{Op: op, Err: err}
}
