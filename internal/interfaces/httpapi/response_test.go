package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
	"github.com/nplfantasy/fantasy-cricket/internal/usecase"
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

func TestMapError_RosterRuleReasons(t *testing.T) {
	cases := []struct {
		err    error
		reason string
	}{
		{roster.ErrWrongRosterSize, "wrongRosterSize"},
		{roster.ErrMissingCaptainRoles, "missingCaptainRoles"},
		{roster.ErrDuplicateCaptainRoles, "duplicateCaptainRoles"},
		{roster.ErrCaptainNotSelected, "captainNotSelected"},
		{roster.ErrUnknownOrIneligiblePlayer, "unknownOrIneligiblePlayer"},
		{roster.ErrTeamQuotaExceeded, "teamQuotaExceeded"},
		{roster.ErrRoleQuotaExceeded, "roleQuotaExceeded"},
		{roster.ErrBudgetExceeded, "budgetExceeded"},
	}

	for _, tc := range cases {
		mapped := mapError(fmt.Errorf("submit roster: %w", tc.err))
		if mapped.HTTPStatus != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", tc.reason, mapped.HTTPStatus)
		}
		if mapped.Reason != tc.reason {
			t.Fatalf("expected reason %q, got %q", tc.reason, mapped.Reason)
		}
		if mapped.Status != "INVALID_ARGUMENT" {
			t.Fatalf("%s: expected INVALID_ARGUMENT, got %q", tc.reason, mapped.Status)
		}
	}
}

func TestMapError_UsecaseSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		reason string
	}{
		{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput"},
		{usecase.ErrNotFound, http.StatusNotFound, "notFound"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{usecase.ErrConflict, http.StatusConflict, "updateFailed"},
		{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range cases {
		mapped := mapError(tc.err)
		if mapped.HTTPStatus != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, mapped.HTTPStatus)
		}
		if mapped.Reason != tc.reason {
			t.Fatalf("%v: expected reason %q, got %q", tc.err, tc.reason, mapped.Reason)
		}
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: roster has 8 picks", roster.ErrWrongRosterSize))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
	items, ok := errorObj["errors"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one error item, got %v", errorObj["errors"])
	}
	item := items[0].(map[string]any)
	if got, _ := item["reason"].(string); got != "wrongRosterSize" {
		t.Fatalf("expected reason wrongRosterSize, got %v", item["reason"])
	}
}
