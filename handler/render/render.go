package render

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dsc/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render v as the data of a json response
func JSON(w http.ResponseWriter, v interface{}) {
	write(w, http.StatusOK, dataResponse{Data: v})
}

// Text render with text
func Text(w http.ResponseWriter, t string) {
	w.Header().Set("Content-Type", "application/text")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(t)); err != nil {
		logrus.WithError(err).Debugln("write text")
	}
}

// Error write err with the status of its twirp code
func Error(w http.ResponseWriter, err error) {
	twerr := codes.Of(err)
	status := twirp.ServerHTTPStatusFromErrorCode(twerr.Code())

	code, _ := strconv.Atoi(twerr.Meta(codes.CustomCodeKey))
	if code == 0 {
		code = codes.Get(twerr.Code())
	}

	resp := errorResponse{
		Code: code,
		Msg:  twerr.Msg(),
	}

	if twerr.Code() == twirp.Internal {
		resp.Msg = "internal error"
		if ResponseErrorMessageAsHint {
			resp.Hint = twerr.Msg()
		}
	}

	write(w, status, resp)
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NewError(twirp.InvalidArgument, err.Error()))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}

func write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Debugln("encode response")
	}
}
