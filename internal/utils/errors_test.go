package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAppErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   string
	}{
		{NewInvalidArgument("bad"), http.StatusBadRequest, ErrCodeInvalidArgument},
		{NewUnauthorized("who"), http.StatusUnauthorized, ErrCodeUnauthorized},
		{NewInsufficientFunds("broke"), http.StatusPaymentRequired, ErrCodeInsufficientFunds},
		{NewForbidden("no"), http.StatusForbidden, ErrCodeForbidden},
		{NewNotFound("gone"), http.StatusNotFound, ErrCodeNotFound},
		{NewConflict("taken"), http.StatusConflict, ErrCodeConflict},
	}
	for _, c := range cases {
		if c.err.StatusCode != c.status {
			t.Errorf("%s: expected status %d, got %d", c.code, c.status, c.err.StatusCode)
		}
		if c.err.Code != c.code {
			t.Errorf("expected code %s, got %s", c.code, c.err.Code)
		}
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	appErr := NewInsufficientFunds("balance 10 cannot cover the cost of 20")
	if !errors.Is(appErr, ErrInsufficientFunds) {
		t.Fatal("expected AppError to unwrap to its sentinel")
	}
	if appErr.Error() != "balance 10 cannot cover the cost of 20" {
		t.Fatalf("unexpected message: %s", appErr.Error())
	}
}

func TestHandleAppErrorWritesTypedResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, NewConflict("account already owns a property"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Code != ErrCodeConflict {
		t.Fatalf("expected code %s, got %s", ErrCodeConflict, body.Code)
	}
	if body.Message != "account already owns a property" {
		t.Fatalf("unexpected message: %s", body.Message)
	}
}

func TestHandleAppErrorFallsBackToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, errors.New("disk on fire"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Code != ErrCodeInternal {
		t.Fatalf("expected code %s, got %s", ErrCodeInternal, body.Code)
	}
}
