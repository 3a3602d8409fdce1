package core

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrInput zero amount where a positive amount is required
	ErrInput ErrorCode = 100100
	// ErrUnsupportedAsset collateral asset not registered
	ErrUnsupportedAsset ErrorCode = 100101
	// ErrTransferFailure custody or synthetic token call failed
	ErrTransferFailure ErrorCode = 100102
	// ErrSolvency health factor below the minimum
	ErrSolvency ErrorCode = 100103
	// ErrLiquidationPrecondition account not liquidatable or not improved
	ErrLiquidationPrecondition ErrorCode = 100104
	// ErrArithmeticFault underflow, overflow or invalid price
	ErrArithmeticFault ErrorCode = 100105
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Error engine error with a reason under one ErrorCode
type Error struct {
	Code   ErrorCode
	Reason string
	// HealthFactor is set on breaks-health-factor failures
	HealthFactor *uint256.Int
	cause        error
}

func (e *Error) Error() string {
	msg := e.Reason
	if e.HealthFactor != nil {
		msg = fmt.Sprintf("%s(%s)", msg, e.HealthFactor.Dec())
	}

	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches both the ErrorCode and any Error with the same reason
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case ErrorCode:
		return e.Code == t
	case *Error:
		return e.Code == t.Code && e.Reason == t.Reason
	}

	return false
}

// With returns a copy of e wrapping cause
func (e *Error) With(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// WithHealthFactor returns a copy of e carrying the offending health factor
func (e *Error) WithHealthFactor(hf *uint256.Int) *Error {
	cp := *e
	cp.HealthFactor = new(uint256.Int).Set(hf)
	return &cp
}

// NewError new engine error
func NewError(code ErrorCode, reason string) *Error {
	return &Error{Code: code, Reason: reason}
}

var (
	ErrNeedsMoreThanZero       = NewError(ErrInput, "needs-more-than-zero")
	ErrNotAllowedToken         = NewError(ErrUnsupportedAsset, "not-allowed-token")
	ErrTokenTransferFailed     = NewError(ErrTransferFailure, "token-transfer-failed")
	ErrMintFailed              = NewError(ErrTransferFailure, "mint-failed")
	ErrBreaksHealthFactor      = NewError(ErrSolvency, "breaks-health-factor")
	ErrHealthFactorOk          = NewError(ErrLiquidationPrecondition, "health-factor-ok")
	ErrHealthFactorNotImproved = NewError(ErrLiquidationPrecondition, "health-factor-not-improved")
	ErrUnderflow               = NewError(ErrArithmeticFault, "underflow")
	ErrOverflow                = NewError(ErrArithmeticFault, "overflow")
	ErrInvalidPrice            = NewError(ErrArithmeticFault, "invalid-price")
	ErrReentrantCall           = NewError(ErrOperationForbidden, "reentrant-call")
	ErrUnauthorized            = NewError(ErrOperationForbidden, "unauthorized")
)

// CodeOf extract the ErrorCode carried by err, ErrUnknown otherwise
func CodeOf(err error) ErrorCode {
	if err == nil {
		return 0
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}
