package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/job-board/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "validation", err: domain.NewValidationError("title is required"), wantCode: http.StatusBadRequest, wantBody: `{"error":"title is required"}`},
		{name: "user exists", err: domain.ErrUserExists, wantCode: http.StatusBadRequest, wantBody: `{"error":"user already exists"}`},
		{name: "invalid credentials", err: domain.ErrInvalidCredentials, wantCode: http.StatusBadRequest, wantBody: `{"error":"invalid credentials"}`},
		{name: "unauthorized", err: domain.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantBody: `{"error":"unauthorized"}`},
		{name: "forbidden", err: domain.ErrForbidden, wantCode: http.StatusForbidden, wantBody: `{"error":"forbidden"}`},
		{name: "job not found", err: fmt.Errorf("get: %w", domain.ErrJobNotFound), wantCode: http.StatusNotFound, wantBody: `{"error":"job not found"}`},
		{name: "user not found", err: domain.ErrUserNotFound, wantCode: http.StatusNotFound, wantBody: `{"error":"user not found"}`},
		{name: "echo error", err: echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), wantCode: http.StatusMethodNotAllowed, wantBody: `{"error":"method not allowed"}`},
		{name: "unexpected", err: errors.New("mongo: connection reset by peer"), wantCode: http.StatusInternalServerError, wantBody: `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if got := rec.Body.String(); got != tt.wantBody+"\n" {
				t.Fatalf("expected body %s, got %s", tt.wantBody, got)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("committed response must not be rewritten, got %d", rec.Code)
	}
}
