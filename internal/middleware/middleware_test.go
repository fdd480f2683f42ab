package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gpacalc/internal/app/models/dto"
	"github.com/yigit/gpacalc/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator map[string]error

func (s stubValidator) ValidateToken(token string) (string, error) {
	if err, ok := s[token]; ok {
		return "", err
	}
	return "sid-" + token, nil
}

// decodeError checks the body is an ErrorResponse and returns its detail
func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var body struct {
		Success *bool            `json:"success"`
		Data    json.RawMessage  `json:"data"`
		Error   *dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Success, "error responses carry success=false")
	assert.False(t, *body.Success)
	assert.Nil(t, body.Data)
	require.NotNil(t, body.Error)
	return body.Error
}

func newAuthRouter() *gin.Engine {
	m := NewAuthMiddleware(stubValidator{
		"a.b.expired": apperrors.ErrTokenExpired,
		"a.b.bad":     apperrors.ErrTokenInvalid,
	})
	r := gin.New()
	r.GET("/me", m.SessionAuth(), func(c *gin.Context) {
		id, _ := SessionIDFromContext(c)
		c.String(http.StatusOK, id)
	})
	return r
}

func TestSessionAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		query  string
		status int
		body   string
		code   dto.ErrorCode
	}{
		{name: "bearer", header: "Bearer a.b.c", status: http.StatusOK, body: "sid-a.b.c"},
		{name: "query token", query: "?token=a.b.c", status: http.StatusOK, body: "sid-a.b.c"},
		{name: "missing", status: http.StatusUnauthorized, code: dto.ErrorCodeUnauthorized},
		{name: "bad format", header: "Basic xyz", status: http.StatusUnauthorized, code: dto.ErrorCodeUnauthorized},
		{name: "expired", header: "Bearer a.b.expired", status: http.StatusUnauthorized, code: dto.ErrorCodeExpiredToken},
		{name: "invalid", header: "Bearer a.b.bad", status: http.StatusUnauthorized, code: dto.ErrorCodeInvalidToken},
	}

	r := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
				return
			}
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{fmt.Errorf("get: %w", apperrors.ErrSessionNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrInvalidTerm, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.NewBadRequestError("nope"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestBindJSON(t *testing.T) {
	r := gin.New()
	r.POST("/calc", func(c *gin.Context) {
		var req dto.CalculateRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	send := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/calc", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send(`{"courses":[{"id":1,"credits":3,"score":90}]}`).Code)

	w := send(`{"courses":[{"id":1,"credits":3,"score":101}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, w).Code)

	assert.Equal(t, http.StatusBadRequest, send(`{"courses":`).Code)
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
