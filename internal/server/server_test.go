package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/puffin/internal/dashboard"
	"github.com/rcliao/puffin/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	srv := New(s, dashboard.New(s, time.UTC), time.UTC, zap.NewNop())
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, s
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	code, body := do(t, ts, "GET", "/healthz", "")
	if code != http.StatusOK || !strings.Contains(string(body), "ok") {
		t.Errorf("got %d %s", code, body)
	}
}

func TestDiaperCRUD(t *testing.T) {
	ts, _ := newTestServer(t)

	code, body := do(t, ts, "POST", "/api/diapers", `{"type": "pee", "notes": "first"}`)
	if code != http.StatusCreated {
		t.Fatalf("create: %d %s", code, body)
	}
	created := decode[map[string]any](t, body)
	id, _ := created["id"].(string)
	if id == "" || created["type"] != "pee" || created["timestamp"] == nil || created["created_at"] == nil {
		t.Fatalf("unexpected create response %s", body)
	}

	code, body = do(t, ts, "GET", "/api/diapers/"+id, "")
	if code != http.StatusOK || decode[map[string]any](t, body)["notes"] != "first" {
		t.Errorf("get: %d %s", code, body)
	}

	code, body = do(t, ts, "PUT", "/api/diapers/"+id, `{"type": "both"}`)
	if code != http.StatusOK {
		t.Fatalf("update: %d %s", code, body)
	}
	updated := decode[map[string]any](t, body)
	if updated["type"] != "both" || updated["notes"] != "first" {
		t.Errorf("partial update lost fields: %s", body)
	}

	code, body = do(t, ts, "PATCH", "/api/diapers/"+id, `{"notes": null}`)
	if code != http.StatusOK {
		t.Fatalf("clear: %d %s", code, body)
	}
	if v, ok := decode[map[string]any](t, body)["notes"]; !ok || v != nil {
		t.Errorf("expected notes null, got %s", body)
	}

	code, _ = do(t, ts, "DELETE", "/api/diapers/"+id, "")
	if code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", code)
	}
	for i := 0; i < 2; i++ {
		code, body = do(t, ts, "DELETE", "/api/diapers/"+id, "")
		if code != http.StatusNotFound {
			t.Errorf("repeat delete: expected 404, got %d", code)
		}
	}
	if msg := decode[map[string]string](t, body)["error"]; msg != "Diaper change not found" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestNotFoundMessages(t *testing.T) {
	ts, _ := newTestServer(t)
	tests := map[string]string{
		"/api/diapers/x":      "Diaper change not found",
		"/api/feedings/x":     "Feeding not found",
		"/api/medications/x":  "Medication record not found",
		"/api/temperatures/x": "Temperature reading not found",
	}
	for path, want := range tests {
		code, body := do(t, ts, "GET", path, "")
		if code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, code)
			continue
		}
		if got := decode[map[string]string](t, body)["error"]; got != want {
			t.Errorf("%s: got %q, want %q", path, got, want)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	ts, _ := newTestServer(t)
	tests := []struct {
		method, path, body string
	}{
		{"POST", "/api/diapers", `{"type": "invalid"}`},
		{"POST", "/api/diapers", `not json`},
		{"POST", "/api/feedings", `{"feeding_type": "bottle", "amount_oz": -1}`},
		{"POST", "/api/medications", `{"medication_name": "Tylenol"}`},
		{"POST", "/api/temperatures", `{"temperature_celsius": 37, "location": "ear"}`},
		{"GET", "/api/diapers?limit=0", ""},
		{"GET", "/api/diapers?limit=201", ""},
		{"GET", "/api/diapers?offset=-1", ""},
		{"GET", "/api/diapers?start_date=yesterday", ""},
		{"GET", "/api/activities", ""},
		{"GET", "/api/activities?start=2026-01-02T00:00:00Z&end=2026-01-01T00:00:00Z", ""},
		{"GET", "/api/export?format=xml", ""},
	}
	for _, tt := range tests {
		code, body := do(t, ts, tt.method, tt.path, tt.body)
		if code != http.StatusBadRequest {
			t.Errorf("%s %s %s: expected 400, got %d %s", tt.method, tt.path, tt.body, code, body)
		}
	}
}

func TestUpdateRejectsNullRequired(t *testing.T) {
	ts, _ := newTestServer(t)
	_, body := do(t, ts, "POST", "/api/feedings", `{"feeding_type": "bottle", "amount_oz": 4}`)
	id := decode[map[string]any](t, body)["id"].(string)

	code, _ := do(t, ts, "PUT", "/api/feedings/"+id, `{"feeding_type": null}`)
	if code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
	code, _ = do(t, ts, "PUT", "/api/feedings/missing", `{"amount_oz": 2}`)
	if code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestListAndRange(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, at := range []string{"2026-01-01T08:00:00Z", "2026-01-02T08:00:00Z", "2026-01-03T08:00:00Z"} {
		code, body := do(t, ts, "POST", "/api/temperatures", `{"temperature_celsius": 37.2, "timestamp": "`+at+`"}`)
		if code != http.StatusCreated {
			t.Fatalf("create: %d %s", code, body)
		}
	}

	_, body := do(t, ts, "GET", "/api/temperatures", "")
	all := decode[[]map[string]any](t, body)
	if len(all) != 3 || all[0]["timestamp"] != "2026-01-03T08:00:00Z" {
		t.Errorf("unexpected list %s", body)
	}

	_, body = do(t, ts, "GET", "/api/temperatures?start_date=2026-01-02T00:00:00Z&end_date=2026-01-02T23:59:59Z", "")
	if got := decode[[]map[string]any](t, body); len(got) != 1 {
		t.Errorf("expected 1 in range, got %s", body)
	}

	_, body = do(t, ts, "GET", "/api/temperatures?limit=1&offset=2", "")
	page := decode[[]map[string]any](t, body)
	if len(page) != 1 || page[0]["timestamp"] != "2026-01-01T08:00:00Z" {
		t.Errorf("unexpected page %s", body)
	}

	_, body = do(t, ts, "GET", "/api/medications", "")
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

func TestKindStats(t *testing.T) {
	ts, _ := newTestServer(t)
	do(t, ts, "POST", "/api/feedings", `{"feeding_type": "breast_left", "duration_minutes": 15}`)

	code, body := do(t, ts, "GET", "/api/feedings/stats", "")
	if code != http.StatusOK {
		t.Fatalf("stats: %d %s", code, body)
	}
	st := decode[map[string]int](t, body)
	if st["today"] != 1 || st["week"] != 1 || st["month"] != 1 {
		t.Errorf("unexpected stats %s", body)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	_, body := do(t, ts, "GET", "/api/dashboard", "")
	empty := decode[map[string]json.RawMessage](t, body)
	for _, key := range []string{"diaper_stats", "feeding_stats", "medication_count_today", "last_diaper", "last_feeding", "last_temperature", "recent_activities"} {
		if _, ok := empty[key]; !ok {
			t.Errorf("missing key %q in %s", key, body)
		}
	}
	if string(empty["last_diaper"]) != "null" || string(empty["recent_activities"]) != "[]" {
		t.Errorf("unexpected empty dashboard %s", body)
	}

	do(t, ts, "POST", "/api/diapers", `{"type": "pee"}`)
	do(t, ts, "POST", "/api/temperatures", `{"temperature_celsius": 37.5}`)

	_, body = do(t, ts, "GET", "/api/dashboard", "")
	var sum struct {
		DiaperStats struct {
			Today int `json:"today"`
		} `json:"diaper_stats"`
		LastTemperature *struct {
			TemperatureCelsius float64 `json:"temperature_celsius"`
		} `json:"last_temperature"`
		RecentActivities []struct {
			Type   string `json:"type"`
			Detail string `json:"detail"`
		} `json:"recent_activities"`
	}
	if err := json.Unmarshal(body, &sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.DiaperStats.Today != 1 {
		t.Errorf("expected 1 diaper today, got %d", sum.DiaperStats.Today)
	}
	if sum.LastTemperature == nil || sum.LastTemperature.TemperatureCelsius != 37.5 {
		t.Errorf("unexpected last temperature %s", body)
	}
	if len(sum.RecentActivities) != 2 {
		t.Fatalf("expected 2 activities, got %s", body)
	}
	for _, a := range sum.RecentActivities {
		if a.Type == "temperature" && a.Detail != "99.5°F" {
			t.Errorf("unexpected temperature detail %q", a.Detail)
		}
	}
}

func TestActivitiesEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	do(t, ts, "POST", "/api/medications", `{"medication_name": "Vitamin D", "dosage": "1 drop", "timestamp": "2026-01-05T09:00:00Z"}`)
	do(t, ts, "POST", "/api/medications", `{"medication_name": "Vitamin D", "dosage": "1 drop", "timestamp": "2026-01-06T09:00:00Z"}`)

	code, body := do(t, ts, "GET", "/api/activities?start=2026-01-05T00:00:00&end=2026-01-05T23:59:59", "")
	if code != http.StatusOK {
		t.Fatalf("activities: %d %s", code, body)
	}
	acts := decode[[]map[string]any](t, body)
	if len(acts) != 1 || acts[0]["summary"] != "Med: Vitamin D" {
		t.Errorf("unexpected activities %s", body)
	}
}

func TestExportEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	do(t, ts, "POST", "/api/diapers", `{"type": "poop"}`)

	resp, err := http.Get(ts.URL + "/api/export")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: %d %s", resp.StatusCode, data)
	}
	if got := resp.Header.Get("Content-Disposition"); got != "attachment; filename=puffin_export.csv" {
		t.Errorf("unexpected disposition %q", got)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv") {
		t.Errorf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(data), "--- Diaper Changes ---") || !strings.Contains(string(data), "poop") {
		t.Errorf("unexpected csv:\n%s", data)
	}

	code, body := do(t, ts, "GET", "/api/export?format=json", "")
	if code != http.StatusOK {
		t.Fatalf("json export: %d", code)
	}
	dump := decode[map[string][]json.RawMessage](t, body)
	if len(dump["diapers"]) != 1 || dump["feedings"] == nil {
		t.Errorf("unexpected json export %s", body)
	}
}
