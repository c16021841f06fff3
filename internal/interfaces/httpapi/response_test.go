package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/wissel-coach/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteOptional_NullWhenAbsent(t *testing.T) {
	rec := httptest.NewRecorder()
	writeOptional(context.Background(), rec, map[string]string{"ignored": "yes"}, false)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	data, ok := body["data"]
	if !ok {
		t.Fatalf("expected explicit data key, got %s", rec.Body.String())
	}
	if data != nil {
		t.Fatalf("expected null data, got %v", data)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad", usecase.ErrInvalidInput), status: http.StatusBadRequest, code: "INVALID_ARGUMENT"},
		{name: "conflict", err: fmt.Errorf("%w: wrong step", usecase.ErrConflict), status: http.StatusBadRequest, code: "FAILED_PRECONDITION"},
		{name: "not found", err: fmt.Errorf("%w: player=x", usecase.ErrNotFound), status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "no active match", err: usecase.ErrNoActiveMatch, status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "illegal operation", err: fmt.Errorf("%w: cross group", usecase.ErrIllegalOperation), status: http.StatusConflict, code: "ABORTED"},
		{name: "dependency", err: fmt.Errorf("%w: save match", usecase.ErrDependencyUnavailable), status: http.StatusServiceUnavailable, code: "UNAVAILABLE"},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.status || got.Status != tt.code {
				t.Fatalf("mapError(%v) = %d %s, want %d %s", tt.err, got.HTTPStatus, got.Status, tt.status, tt.code)
			}
		})
	}
}

func TestHasField(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{body: `{"number":null}`, want: true},
		{body: `{"number":7,"name":"Sem"}`, want: true},
		{body: `{"name":"Sem"}`, want: false},
		{body: `{}`, want: false},
	}
	for _, tt := range tests {
		if got := hasField([]byte(tt.body), "number"); got != tt.want {
			t.Fatalf("hasField(%s) = %v, want %v", tt.body, got, tt.want)
		}
	}
}
