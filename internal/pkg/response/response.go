package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"

	"github.com/contentsuite/brandsuite/internal/pkg/errcode"
)

// Envelopes are always sent with HTTP 200; clients branch on the code field.

type codeErr struct {
	code uint32
	msg  string
}

func (e codeErr) Error() string {
	return e.msg
}

func (e codeErr) Code() uint32 {
	return e.code
}

func AsCodeErr(code uint32, msg string) error {
	return codeErr{code: code, msg: msg}
}

var defaultMessages = map[int]string{
	errcode.ErrNotFound:    "not found",
	errcode.ErrInvalid:     "invalid request",
	errcode.ErrConflict:    "conflict",
	errcode.ErrInternal:    "internal error",
	errcode.ErrInvalidFile: "invalid file",
}

func Success(c *gin.Context, data interface{}) {
	proxyutil.SuccessJson(c, data)
}

// Error writes a failure envelope. An empty message falls back to the default text of the code.
func Error(c *gin.Context, code int, message string) {
	if message == "" {
		message = defaultMessages[code]
	}
	proxyutil.FailJson(c, http.StatusOK, AsCodeErr(uint32(code), message))
}

// Fail writes err as is when it already carries a code, as an internal error otherwise.
func Fail(c *gin.Context, err error) {
	var coded interface{ Code() uint32 }
	if errors.As(err, &coded) {
		proxyutil.FailJson(c, http.StatusOK, err)
		return
	}
	Error(c, errcode.ErrInternal, "")
}
