package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"invalid id", fmt.Errorf("%w: abc", apperrors.ErrInvalidID), http.StatusBadRequest, dto.ErrorCodeInvalidID},
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"nothing to checkout", apperrors.ErrNothingToCheckout, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"not admin", apperrors.ErrNotAdmin, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"not found", fmt.Errorf("class: %w", apperrors.ErrResourceNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate email", fmt.Errorf("create: %w", apperrors.ErrEmailAlreadyExists), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"sold out", fmt.Errorf("%w: class x", apperrors.ErrSeatsUnavailable), http.StatusConflict, dto.ErrorCodeSeatsUnavailable},
		{"incomplete rollback", (&apperrors.CustomError{Err: apperrors.ErrCheckoutFailed, Message: "x"}).WithDetails(map[string]interface{}{"failedSteps": []string{"restore cart"}}), http.StatusInternalServerError, dto.ErrorCodeCheckoutFailed},
		{"failed rollback outranks sold out", fmt.Errorf("%w: %w", apperrors.ErrCheckoutFailed, apperrors.ErrSeatsUnavailable), http.StatusInternalServerError, dto.ErrorCodeCheckoutFailed},
		{"gateway", apperrors.ErrGatewayFailure, http.StatusBadGateway, dto.ErrorCodeExternalServiceError},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.True(t, c.IsAborted())

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.Equal(t, resp.Error.Message, resp.Message)
		})
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}
