package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentsuite/brandsuite/internal/pkg/errcode"
)

type envelope struct {
	Code    uint32 `json:"code"`
	Msg     string `json:"msg"`
}

func record(t *testing.T, fn func(c *gin.Context)) envelope {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	assert.Equal(t, 200, w.Code)
	var out envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestErrorDefaultMessage(t *testing.T) {
	out := record(t, func(c *gin.Context) { Error(c, errcode.ErrNotFound, "") })
	assert.Equal(t, uint32(errcode.ErrNotFound), out.Code)
	assert.Equal(t, "not found", out.Msg)

	out = record(t, func(c *gin.Context) { Error(c, errcode.ErrInvalid, "name is required") })
	assert.Equal(t, "name is required", out.Msg)
}

func TestFail(t *testing.T) {
	out := record(t, func(c *gin.Context) { Fail(c, AsCodeErr(errcode.ErrConflict, "taken")) })
	assert.Equal(t, uint32(errcode.ErrConflict), out.Code)
	assert.Equal(t, "taken", out.Msg)

	out = record(t, func(c *gin.Context) { Fail(c, errors.New("boom")) })
	assert.Equal(t, uint32(errcode.ErrInternal), out.Code)
	assert.Equal(t, "internal error", out.Msg)
}
