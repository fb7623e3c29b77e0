package core

// # Error Codes Reference
//
// Every failure shown to a user (CLI stderr, HTTP error body, HTML alert)
// carries a short code so it can be matched to log entries.
//
//	LOAD001 - Dataset file not found
//	          Action: Check DATASETS and DATA_DIR
//	LOAD002 - Dataset file is not readable
//	          Action: Check the file permissions
//	LOAD003 - Dataset file could not be read
//	          Action: Check that the path names a regular CSV file
//	CONV001 - A player row has a non-integer age or overall
//	          Action: Check ROSTER_COL_* offsets against the file's columns
//	DS001   - Unknown dataset name
//	          Action: List the datasets with GET /api/datasets
//	SRV001  - Too many report builds in progress
//	          Action: Please wait a moment and try again
//	REQ001  - Request was cancelled
//	REQ002  - Request timed out
//	ERR000  - Unexpected error; check the logs for the technical error
//
// Errors are matched by type and sentinel identity, never by message text.
// Context errors are checked before load failures because a cancelled load
// surfaces as a *tableload.LoadFailure wrapping context.Canceled.

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/JonMunkholm/fifastats/internal/roster"
	"github.com/JonMunkholm/fifastats/internal/tableload"
)

// ErrUnknownDataset is returned when a dataset name matches no configured input.
var ErrUnknownDataset = errors.New("unknown dataset")

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgLoadNotFound = UserMessage{
		Message: "Dataset file not found",
		Action:  "Check DATASETS and DATA_DIR",
		Code:    "LOAD001",
	}
	msgLoadPermission = UserMessage{
		Message: "Dataset file is not readable",
		Action:  "Check the file permissions",
		Code:    "LOAD002",
	}
	msgLoadOther = UserMessage{
		Message: "Dataset file could not be read",
		Action:  "Check that the path names a regular CSV file",
		Code:    "LOAD003",
	}
	msgConversion = UserMessage{
		Message: "A player row has a non-integer age or overall",
		Action:  "Check ROSTER_COL_* offsets against the file's columns",
		Code:    "CONV001",
	}
	msgUnknownDataset = UserMessage{
		Message: "Unknown dataset",
		Action:  "List the available datasets with GET /api/datasets",
		Code:    "DS001",
	}
	msgBusy = UserMessage{
		Message: "Too many report builds in progress",
		Action:  "Please wait a moment and try again",
		Code:    "SRV001",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "REQ001",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try again, or raise SERVER_REQUEST_TIMEOUT for large datasets",
		Code:    "REQ002",
	}
)

// defaultMessage is returned when no known error matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var (
		conv *roster.FieldConversionFailure
		load *tableload.LoadFailure
	)

	switch {
	case errors.Is(err, ErrTooManyBuilds):
		return msgBusy
	case errors.Is(err, ErrUnknownDataset):
		return msgUnknownDataset
	case errors.As(err, &conv):
		return msgConversion
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	case errors.Is(err, context.Canceled):
		return msgCancelled
	case errors.As(err, &load):
		switch {
		case load.NotFound():
			return msgLoadNotFound
		case load.PermissionDenied():
			return msgLoadPermission
		default:
			return msgLoadOther
		}
	}

	return defaultMessage
}

// FormatUserError creates a display string: "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error (kept for logging) with its
// user-facing message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a *UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
