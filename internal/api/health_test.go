package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckHealth(t *testing.T) {
	prev := serviceIsHealthy
	defer BindServiceHealth(prev)

	h := NewHealthHandler()

	for _, tc := range []struct {
		healthy bool
		want    string
	}{
		{true, "healthy"},
		{false, "unhealthy"},
	} {
		BindServiceHealth(func() bool { return tc.healthy })

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		h.CheckHealth(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, health endpoint always answers 200", rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["status"] != tc.want {
			t.Fatalf("status = %q, want %q", body["status"], tc.want)
		}
		if body["timestamp"] == "" {
			t.Fatalf("missing timestamp")
		}
	}
}
