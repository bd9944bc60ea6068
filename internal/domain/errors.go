package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgInvalidPlotState  = "invalid plot state"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgNotReady          = "not ready"
	ErrMsgMissingFeed       = "missing feed"
	ErrMsgAlreadyOwned      = "upgrade already owned"
	ErrMsgCapacityMaxed     = "capacity already at maximum"
	ErrMsgNotFound          = "not found"
	ErrMsgInvalidQuantity   = "invalid quantity"
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgSessionNotFound   = "farm session not found"
)

// Farm domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidPlotState  = errors.New(ErrMsgInvalidPlotState)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrNotReady          = errors.New(ErrMsgNotReady)
	ErrMissingFeed       = errors.New(ErrMsgMissingFeed)
	ErrAlreadyOwned      = errors.New(ErrMsgAlreadyOwned)
	ErrCapacityMaxed     = errors.New(ErrMsgCapacityMaxed)
	ErrNotFound          = errors.New(ErrMsgNotFound)
	ErrInvalidQuantity   = errors.New(ErrMsgInvalidQuantity)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)

	// ErrSessionNotFound also matches ErrNotFound
	ErrSessionNotFound = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgSessionNotFound)
)

// ErrorKind names the category of a farm error for API consumers
type ErrorKind string

// Error kinds reported to callers
const (
	KindNone              ErrorKind = ""
	KindInvalidPlotState  ErrorKind = "InvalidPlotState"
	KindInsufficientFunds ErrorKind = "InsufficientFunds"
	KindNotReady          ErrorKind = "NotReady"
	KindMissingFeed       ErrorKind = "MissingFeed"
	KindAlreadyOwned      ErrorKind = "AlreadyOwned"
	KindCapacityMaxed     ErrorKind = "CapacityMaxed"
	KindNotFound          ErrorKind = "NotFound"
	KindInvalidInput      ErrorKind = "InvalidInput"
	KindInternal          ErrorKind = "Internal"
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidPlotState, KindInvalidPlotState},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrNotReady, KindNotReady},
	{ErrMissingFeed, KindMissingFeed},
	{ErrAlreadyOwned, KindAlreadyOwned},
	{ErrCapacityMaxed, KindCapacityMaxed},
	{ErrNotFound, KindNotFound},
	{ErrInvalidQuantity, KindInvalidInput},
	{ErrInvalidInput, KindInvalidInput},
}

// KindOf classifies an error. Anything unrecognized is Internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
