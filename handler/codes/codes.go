package codes

import (
	"errors"
	"strconv"

	"dsc/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// Of convert err into a twirp error, engine errors keep their code as the custom code
func Of(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	code := core.CodeOf(err)
	switch code {
	case core.ErrInput, core.ErrUnsupportedAsset, core.ErrArithmeticFault:
		twerr = twirp.NewError(twirp.InvalidArgument, err.Error())
	case core.ErrSolvency, core.ErrLiquidationPrecondition:
		twerr = twirp.NewError(twirp.Aborted, err.Error())
	case core.ErrTransferFailure:
		twerr = twirp.NewError(twirp.FailedPrecondition, err.Error())
	case core.ErrOperationForbidden:
		twerr = twirp.NewError(twirp.PermissionDenied, err.Error())
	default:
		return twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, code.String())
}
