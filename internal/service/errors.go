package service

import (
	"errors"

	"tetconnect/internal/game"
)

// Kind classifies a service failure. The HTTP layer maps kinds to status codes.
type Kind int

const (
	KindUnexpected Kind = iota
	KindBadRequest
	KindForbidden
	KindNotFound
	KindConflict
	KindInsufficientFunds
)

// Error is the failure type returned by every service operation.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrMissingFamily     = &Error{Kind: KindBadRequest, Msg: "familyId is required"}
	ErrInvalidAmount     = &Error{Kind: KindBadRequest, Msg: "amount must be positive and within the table limit"}
	ErrUnknownSymbol     = &Error{Kind: KindBadRequest, Msg: "unknown symbol", Err: game.ErrUnknownSymbol}
	ErrNotMember         = &Error{Kind: KindForbidden, Msg: "not a member"}
	ErrNotOwner          = &Error{Kind: KindForbidden, Msg: "only the family owner can do that"}
	ErrRoundNotFound     = &Error{Kind: KindNotFound, Msg: "round not found"}
	ErrFamilyNotFound    = &Error{Kind: KindNotFound, Msg: "family not found"}
	ErrUserNotFound      = &Error{Kind: KindNotFound, Msg: "user not found"}
	ErrWalletNotFound    = &Error{Kind: KindNotFound, Msg: "wallet not found"}
	ErrRoundRolling      = &Error{Kind: KindConflict, Msg: "round is rolling, retry shortly"}
	ErrRoundClosed       = &Error{Kind: KindConflict, Msg: "round is not accepting bets"}
	ErrRoundSettled      = &Error{Kind: KindConflict, Msg: "round already settled"}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds, Msg: "insufficient funds"}
)

// KindOf reports the kind of err; anything that is not an *Error is unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// unexpected wraps a storage or infrastructure failure.
func unexpected(op string, err error) error {
	return &Error{Kind: KindUnexpected, Msg: op, Err: err}
}

// classify passes service errors through and wraps everything else.
func classify(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return unexpected(op, err)
}
