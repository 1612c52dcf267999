package api

import (
	"encoding/json"
	"io"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/alexiusacademia/gosteel/internal/config"
)

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	s, err := New(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func within(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol*math.Abs(want)
}

func TestSectionByName(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/sections/W18X50", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got SectionResponse
	decodeBody(t, rec, &got)
	if got.Name != "W18X50" || got.Type != "W" {
		t.Errorf("got %+v", got)
	}
	if _, ok := got.Properties["Zx"]; !ok {
		t.Error("missing Zx")
	}

	rec = do(t, h, http.MethodGet, "/api/sections/W99X1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown shape status = %d, want 404", rec.Code)
	}
}

func TestMaterials(t *testing.T) {
	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/api/materials", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got MaterialsResponse
	decodeBody(t, rec, &got)

	found := false
	for _, s := range got.Steel {
		if s.Name == "ASTM A992" {
			found = true
			if s.Fy != 345 {
				t.Errorf("A992 Fy = %v", s.Fy)
			}
		}
	}
	if !found {
		t.Error("ASTM A992 not listed")
	}
	if len(got.Bolts) == 0 {
		t.Error("no bolt grades")
	}
}

func TestBeam(t *testing.T) {
	h := newTestServer(t, nil)
	body := `{"section":"W18X50","steel":"A992","length":"10ft","moment":"300 kip-ft"}`
	rec := do(t, h, http.MethodPost, "/api/beam", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got CapacityResponse
	decodeBody(t, rec, &got)

	if got.Regime != "zone 2: inelastic LTB" {
		t.Errorf("Regime = %q", got.Regime)
	}
	if got.Design.Unit != "kN·m" {
		t.Errorf("Design unit = %q", got.Design.Unit)
	}
	// 324 kip·ft
	if !within(got.Design.Value, 324*1.3558179, 0.02) {
		t.Errorf("Design = %v kN·m", got.Design.Value)
	}
	if got.Check == nil || got.Check.Status != "PASS" {
		t.Fatalf("Check = %+v", got.Check)
	}
	if len(got.Trace) == 0 || got.Fingerprint == "" {
		t.Error("missing trace")
	}
}

func TestColumn(t *testing.T) {
	h := newTestServer(t, nil)
	body := `{"section":"W14X90","steel":"A992","length":"4m","top":"pinned","bottom":"fixed","load":"100kN"}`
	rec := do(t, h, http.MethodPost, "/api/column", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got CapacityResponse
	decodeBody(t, rec, &got)
	if got.Regime != "inelastic buckling" {
		t.Errorf("Regime = %q", got.Regime)
	}
	if got.Check == nil || got.Check.Mode != "compression" || got.Check.Utilization <= 0 {
		t.Errorf("Check = %+v", got.Check)
	}
}

func TestColumnCheckTrace(t *testing.T) {
	h := newTestServer(t, nil)
	post := func(load string) CapacityResponse {
		t.Helper()
		body := `{"section":"W14X90","steel":"A992","length":"4m","load":"` + load + `"}`
		rec := do(t, h, http.MethodPost, "/api/column", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("load %q: status = %d, body = %s", load, rec.Code, rec.Body)
		}
		var got CapacityResponse
		decodeBody(t, rec, &got)
		return got
	}

	bare := post("")
	if bare.Check != nil {
		t.Errorf("no load gave Check = %+v", bare.Check)
	}
	checked := post("500kN")
	if checked.Check == nil {
		t.Fatal("missing check")
	}
	if len(checked.Trace) <= len(bare.Trace) {
		t.Errorf("check trace has %d steps, capacity trace %d", len(checked.Trace), len(bare.Trace))
	}
	if checked.Fingerprint == bare.Fingerprint {
		t.Error("fingerprint must follow the returned trace")
	}
	if again := post("500kN"); again.Fingerprint != checked.Fingerprint {
		t.Error("same request gave a different fingerprint")
	}

	tension := post("-500kN")
	if tension.Check == nil {
		t.Fatal("negative load skipped the check")
	}
	if !within(tension.Check.Utilization, checked.Check.Utilization, 1e-12) {
		t.Errorf("U = %v for -500 kN, %v for 500 kN", tension.Check.Utilization, checked.Check.Utilization)
	}
}

func TestConnection(t *testing.T) {
	h := newTestServer(t, nil)
	body := `{"checks":["bolt shear"],"demand":"150kN","bolts":{"count":4,"diameter":"20mm","grade":"8.8"}}`
	rec := do(t, h, http.MethodPost, "/api/connection", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got GoverningResponse
	decodeBody(t, rec, &got)
	if len(got.Checks) != 1 || got.Governing.Mode != "bolt shear" {
		t.Fatalf("got %+v", got)
	}
	if !within(got.Utilization, 0.3108, 0.001) {
		t.Errorf("Utilization = %v, want 0.3108", got.Utilization)
	}
	if got.Status != "PASS" {
		t.Errorf("Status = %q", got.Status)
	}
}

func TestBaseplate(t *testing.T) {
	h := newTestServer(t, nil)
	body := `{"column":"W8X31","load":"1000kN","steel":"A36","concrete":"25MPa"}`
	rec := do(t, h, http.MethodPost, "/api/baseplate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got BaseplateResponse
	decodeBody(t, rec, &got)
	if got.Status != "PASS" || !got.Stocked {
		t.Errorf("got %+v", got)
	}
	if !within(got.Required.Value, 21.874, 0.001) || !within(got.Standard.Value, 22, 1e-9) {
		t.Errorf("thickness: required %v, standard %v", got.Required.Value, got.Standard.Value)
	}
}

func TestRequestErrors(t *testing.T) {
	h := newTestServer(t, nil)
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"malformed", "/api/beam", `{"section":`, http.StatusBadRequest},
		{"unknown field", "/api/beam", `{"section":"W18X50","span":"3m"}`, http.StatusBadRequest},
		{"unknown shape", "/api/beam", `{"section":"W1X1","length":"3m"}`, http.StatusNotFound},
		{"unknown steel", "/api/column", `{"section":"W14X90","steel":"Unobtainium","length":"3m"}`, http.StatusNotFound},
		{"bad unit", "/api/beam", `{"section":"W18X50","length":"3kN"}`, http.StatusUnprocessableEntity},
		{"unsupported shape", "/api/beam", `{"section":"HSS6X6X3/8","length":"3m"}`, http.StatusUnprocessableEntity},
		{"bad end condition", "/api/column", `{"section":"W14X90","length":"3m","top":"hinged"}`, http.StatusUnprocessableEntity},
		{"unknown mode", "/api/connection", `{"checks":["tear out"],"demand":"10kN","bolts":{"count":1,"diameter":"20"}}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
			var e errorResponse
			decodeBody(t, rec, &e)
			if e.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/api/beam", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodOptions, "/api/beam", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Rate = 0.001
	cfg.Server.Burst = 2
	h := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		if rec := do(t, h, http.MethodGet, "/api/materials", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	if rec := do(t, h, http.MethodGet, "/api/materials", ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}

	// a different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/api/materials", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client status = %d", rec.Code)
	}

	// health checks are not limited
	if rec := do(t, h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}
}

func TestLimiterEvictsIdleClients(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := start
	l.now = func() time.Time { return clock }

	l.getLimiter("192.0.2.1")
	clock = start.Add(2 * time.Minute)
	l.getLimiter("192.0.2.2")
	if n := l.Len(); n != 2 {
		t.Fatalf("clients = %d, want 2", n)
	}

	clock = start.Add(4 * time.Minute)
	l.getLimiter("192.0.2.2")
	if n := l.Len(); n != 1 {
		t.Errorf("after sweep clients = %d, want 1", n)
	}
	if _, ok := l.ips["192.0.2.1"]; ok {
		t.Error("idle client was kept")
	}
}
