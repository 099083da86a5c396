package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/faceit-stats/internal/usecase"
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

func TestWriteError_UpstreamExhaustedHidesDetailFromMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("load match detail: %w: 4 attempts: faceit status=503", usecase.ErrUpstreamExhausted))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}

	var body struct {
		Error googleErrorBody `json:"error"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error.Message != "upstream request failed" {
		t.Fatalf("unexpected message: %q", body.Error.Message)
	}
	if body.Error.Status != "UNAVAILABLE" {
		t.Fatalf("unexpected status: %q", body.Error.Status)
	}
	if len(body.Error.Errors) != 1 || body.Error.Errors[0].Reason != "upstreamError" {
		t.Fatalf("unexpected error items: %+v", body.Error.Errors)
	}
	if !strings.Contains(body.Error.Errors[0].Message, "faceit status=503") {
		t.Fatalf("expected detail in errors[0].message, got %q", body.Error.Errors[0].Message)
	}
}

func TestMapError_StatusCodes(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: match", usecase.ErrNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("%w: breaker open", usecase.ErrDependencyUnavailable), want: http.StatusServiceUnavailable},
		{err: fmt.Errorf("wait: %w", context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		{err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := mapError(context.Background(), tt.err).HTTPStatus; got != tt.want {
			t.Fatalf("mapError(%v)=%d want=%d", tt.err, got, tt.want)
		}
	}
}

func TestAbbreviate(t *testing.T) {
	if got := abbreviate("short", 10); got != "short" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := abbreviate("0123456789abc", 10); got != "0123456789..." {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestWriteError_NotFoundKeepsUpstreamBodyInDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("get match: %w: faceit status=404 body={\"errors\":[\"match gone\"]}", usecase.ErrNotFound))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var body struct {
		Error googleErrorBody `json:"error"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error.Message != "resource not found" {
		t.Fatalf("unexpected message: %q", body.Error.Message)
	}
	if len(body.Error.Errors) != 1 || !strings.Contains(body.Error.Errors[0].Message, "match gone") {
		t.Fatalf("expected upstream body in errors[0].message, got %+v", body.Error.Errors)
	}
}

func TestAbbreviate_KeepsRuneBoundary(t *testing.T) {
	got := abbreviate("abé", 3)
	if !utf8.ValidString(got) {
		t.Fatalf("abbreviate produced invalid utf-8: %q", got)
	}
	if got != "ab..." {
		t.Fatalf("unexpected: %q", got)
	}
}
