package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

type stubMaintenanceService struct {
	activated int64
	err       error
}

func (s *stubMaintenanceService) ActivateLegacyAccounts(_ context.Context) (int64, error) {
	return s.activated, s.err
}

func TestMaintenanceHandler_ActivateLegacy(t *testing.T) {
	h := NewMaintenanceHandler(&stubMaintenanceService{activated: 7})

	c, rec := newAuthTestContext(http.MethodPost, "/maintenance/activate-legacy", "")
	if err := h.ActivateLegacy(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success   bool  `json:"success"`
		Activated int64 `json:"activated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || resp.Activated != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMaintenanceHandler_ActivateLegacy_Error(t *testing.T) {
	wantErr := errors.New("store down")
	h := NewMaintenanceHandler(&stubMaintenanceService{err: wantErr})

	c, _ := newAuthTestContext(http.MethodPost, "/maintenance/activate-legacy", "")
	if err := h.ActivateLegacy(c); !errors.Is(err, wantErr) {
		t.Fatalf("expected error propagated to the central handler, got %v", err)
	}
}
