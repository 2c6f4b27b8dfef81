package webui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"

	"github.com/mzyy94/pclraster/internal/config"
)

type fakePrinter struct {
	addr string
	data []byte
	err  error
}

func (p *fakePrinter) send(ctx context.Context, addr string, r io.Reader) (int64, error) {
	p.addr = addr
	if p.err != nil {
		return 0, p.err
	}
	var err error
	p.data, err = io.ReadAll(r)
	return int64(len(p.data)), err
}

func newTestServer(t *testing.T, p *fakePrinter) *httptest.Server {
	t.Helper()
	store := config.NewMemoryStore()
	srv := httptest.NewServer(newHandler(store, p.send))
	t.Cleanup(srv.Close)
	return srv
}

// setPrinter stores addr as the configured printer.
func setPrinter(t *testing.T, srv *httptest.Server, addr string) {
	t.Helper()
	s := config.DefaultSettings()
	s.PrinterAddr = addr
	body, _ := json.Marshal(s)
	if resp := do(t, "PUT", srv.URL+"/api/settings", bytes.NewReader(body)); resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT settings status = %d, want 200", resp.StatusCode)
	}
}

func pngBody(t *testing.T) *bytes.Reader {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.SetGray(8, 8, color.Gray{})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func do(t *testing.T, method, u string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, u, body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, u, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestModels(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})
	resp := do(t, "GET", srv.URL+"/api/models", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var models []modelSummary
	decode(t, resp, &models)
	found := false
	for _, m := range models {
		if m.Model == 550 {
			found = true
			if !m.Color {
				t.Error("model 550 reported as monochrome")
			}
		}
	}
	if !found {
		t.Error("model 550 missing from /api/models")
	}
}

func TestModel(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})
	resp := do(t, "GET", srv.URL+"/api/models/550", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var m modelDetail
	decode(t, resp, &m)
	if m.Model != 550 {
		t.Errorf("Model = %d, want 550", m.Model)
	}
	if diff := cmp.Diff([4]int{18, 18, 33, 3}, m.Margins); diff != "" {
		t.Errorf("Margins mismatch (-want +got):\n%s", diff)
	}
	res := m.Parameters["Resolution"]
	if res.Default != "300x300 DPI" {
		t.Errorf("Resolution default = %q, want 300x300 DPI", res.Default)
	}
	var letter *mediaInfo
	for i := range m.Media {
		if m.Media[i].Name == "Letter" {
			letter = &m.Media[i]
		}
	}
	if letter == nil {
		t.Fatal("Letter missing from media list")
	}
	if letter.Width != 612 || letter.Height != 792 || letter.WidthDim != 21590 {
		t.Errorf("Letter = %+v, want 612x792pt, 21590 wide", *letter)
	}
}

func TestModel_Errors(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})
	tests := []struct {
		path string
		want int
	}{
		{"/api/models/deskjet", http.StatusBadRequest},
		{"/api/models/9999", http.StatusNotFound},
	}
	for _, tt := range tests {
		if resp := do(t, "GET", srv.URL+tt.path, nil); resp.StatusCode != tt.want {
			t.Errorf("GET %s status = %d, want %d", tt.path, resp.StatusCode, tt.want)
		}
	}
}

func TestSettings(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})

	var got config.Settings
	decode(t, do(t, "GET", srv.URL+"/api/settings", nil), &got)
	if diff := cmp.Diff(config.DefaultSettings(), got); diff != "" {
		t.Errorf("initial settings mismatch (-want +got):\n%s", diff)
	}

	want := config.DefaultSettings()
	want.Model = 500
	want.Output = "gray"
	want.PrinterAddr = "192.0.2.7"
	body, _ := json.Marshal(want)
	if resp := do(t, "PUT", srv.URL+"/api/settings", bytes.NewReader(body)); resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
	}
	decode(t, do(t, "GET", srv.URL+"/api/settings", nil), &got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stored settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSettings_Invalid(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})
	bad := config.DefaultSettings()
	bad.Output = "sepia"
	body, _ := json.Marshal(bad)
	if resp := do(t, "PUT", srv.URL+"/api/settings", bytes.NewReader(body)); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("PUT invalid output status = %d, want 400", resp.StatusCode)
	}
	if resp := do(t, "PUT", srv.URL+"/api/settings", strings.NewReader("{")); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("PUT malformed status = %d, want 400", resp.StatusCode)
	}
}

func TestSettings_Persisted(t *testing.T) {
	dir := t.TempDir()
	store, err := config.NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewHandler(store))
	defer srv.Close()

	s := config.DefaultSettings()
	s.MediaSize = "A4"
	body, _ := json.Marshal(s)
	if resp := do(t, "PUT", srv.URL+"/api/settings", bytes.NewReader(body)); resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
	}
	reopened, err := config.NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := reopened.Get().MediaSize; got != "A4" {
		t.Errorf("persisted MediaSize = %q, want A4", got)
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})
	resp := do(t, "POST", srv.URL+"/api/render?scaling=10", pngBody(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/vnd.hp-PCL" {
		t.Errorf("Content-Type = %q, want application/vnd.hp-PCL", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\033E\033&l2A")) {
		t.Errorf("job starts with %q, want reset and Letter", data[:min(len(data), 8)])
	}
	if !bytes.HasSuffix(data, []byte("\033&l0H\033E")) {
		t.Errorf("job does not end with eject and reset")
	}
}

func TestRender_Gzip(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})
	req, _ := http.NewRequest("POST", srv.URL+"/api/render?scaling=10&compress=gzip", pngBody(t))
	// Keep the transport from decoding the body itself.
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", resp.Header.Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\033E")) {
		t.Error("decompressed job does not start with reset")
	}
}

func TestRender_BadRequests(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})
	tests := []struct {
		name  string
		query string
		body  io.Reader
	}{
		{"not an image", "", strings.NewReader("hello")},
		{"unknown compression", "?compress=lzma", pngBody(t)},
		{"bad model", "?model=x", pngBody(t)},
		{"bad scaling", "?scaling=big", pngBody(t)},
		{"bad color mode", "?colorMode=sepia", pngBody(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, "POST", srv.URL+"/api/render"+tt.query, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestRender_Warnings(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})
	resp := do(t, "POST", srv.URL+"/api/render?scaling=10&mediaType=Cardboard", pngBody(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	warn := resp.Header.Get("X-Pcl-Warning")
	if !strings.Contains(warn, "Cardboard") {
		t.Errorf("X-Pcl-Warning = %q, want media type warning", warn)
	}
}

func TestPrint(t *testing.T) {
	p := &fakePrinter{}
	srv := newTestServer(t, p)
	setPrinter(t, srv, "192.0.2.9")
	resp := do(t, "POST", srv.URL+"/api/print?scaling=10", pngBody(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var pr printResponse
	decode(t, resp, &pr)
	if p.addr != "192.0.2.9" || pr.Printer != "192.0.2.9" {
		t.Errorf("sent to %q (reported %q), want 192.0.2.9", p.addr, pr.Printer)
	}
	if pr.Bytes != int64(len(p.data)) || pr.Bytes == 0 {
		t.Errorf("Bytes = %d, printer got %d", pr.Bytes, len(p.data))
	}

	var st statusResponse
	decode(t, do(t, "GET", srv.URL+"/api/status", nil), &st)
	if st.Job.Printing || st.Job.LastError != "" || st.Job.Bytes != pr.Bytes || st.Job.Model != 550 {
		t.Errorf("status = printing %t, error %q, %d bytes, model %d; want finished model 550 job of %d bytes",
			st.Job.Printing, st.Job.LastError, st.Job.Bytes, st.Job.Model, pr.Bytes)
	}
	if st.Job.LastJob == "" {
		t.Error("LastJob not recorded")
	}
}

func TestPrint_NoPrinter(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})
	if resp := do(t, "POST", srv.URL+"/api/print?scaling=10", pngBody(t)); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPrint_PrinterQuery(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		query      string
		wantStatus int
		wantAddr   string
	}{
		{"configured printer", "192.0.2.9", "192.0.2.9", http.StatusOK, "192.0.2.9"},
		{"other host", "192.0.2.9", "198.51.100.1:9100", http.StatusForbidden, ""},
		{"other port", "192.0.2.9:9100", "192.0.2.9:22", http.StatusForbidden, ""},
		{"nothing configured", "", "198.51.100.1", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePrinter{}
			srv := newTestServer(t, p)
			setPrinter(t, srv, tt.configured)
			resp := do(t, "POST", srv.URL+"/api/print?scaling=10&printer="+url.QueryEscape(tt.query), pngBody(t))
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if p.addr != tt.wantAddr {
				t.Errorf("sent to %q, want %q", p.addr, tt.wantAddr)
			}
		})
	}
}

func TestPrint_SendFails(t *testing.T) {
	p := &fakePrinter{err: errors.New("connection refused")}
	srv := newTestServer(t, p)
	setPrinter(t, srv, "192.0.2.9")
	resp := do(t, "POST", srv.URL+"/api/print?scaling=10", pngBody(t))
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	var st statusResponse
	decode(t, do(t, "GET", srv.URL+"/api/status", nil), &st)
	if !strings.Contains(st.Job.LastError, "connection refused") {
		t.Errorf("LastError = %q, want send failure", st.Job.LastError)
	}
}

func TestProof(t *testing.T) {
	srv := newTestServer(t, &fakePrinter{})
	resp := do(t, "POST", srv.URL+"/api/proof", pngBody(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("proof is not a PDF")
	}
}

func TestApplyQuery(t *testing.T) {
	s := config.DefaultSettings()
	q := url.Values{
		"model":      {"500"},
		"colorMode":  {"binary"},
		"resolution": {"150x150"},
		"density":    {"0.8"},
	}
	if err := applyQuery(&s, q); err != nil {
		t.Fatalf("applyQuery failed: %v", err)
	}
	if s.Model != 500 || s.Output != "monochrome" || s.Resolution != "150x150" || s.Density != 0.8 {
		t.Errorf("settings = %+v, want model 500 monochrome 150x150 density 0.8", s)
	}
}

func TestJobStatus_Busy(t *testing.T) {
	var s JobStatus
	if !s.Begin(550, "a") {
		t.Fatal("first Begin = false")
	}
	if s.Begin(550, "b") {
		t.Error("second Begin while printing = true")
	}
	s.SetResult(nil, 10)
	if !s.Begin(550, "b") {
		t.Error("Begin after SetResult = false")
	}
}
