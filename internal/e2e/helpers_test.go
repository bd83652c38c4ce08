package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"modelexport/internal/config"
	"modelexport/internal/exporter"
	"modelexport/internal/httpapi"
	"modelexport/internal/service"
)

// createLibrary creates a temporary library root with the given files per
// category subdirectory and returns its path.
func createLibrary(t *testing.T, files map[string][]string) string {
	t.Helper()
	root := t.TempDir()
	for subdir, names := range files {
		dir := filepath.Join(root, subdir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		for _, n := range names {
			p := filepath.Join(dir, n)
			if err := os.WriteFile(p, []byte("content of "+n), 0o644); err != nil {
				t.Fatalf("write temp model %s: %v", p, err)
			}
		}
	}
	return root
}

func newServerForLibrary(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	exp := exporter.New(exporter.WithObserver(httpapi.ExportMetrics{}))
	svc := service.NewStatic(cfg, exp, zerolog.Nop())
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv
}

// getJSON decodes the response into v when v is non-nil and returns the status code.
func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body any, v any) int {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if v != nil {
		if err := json.Unmarshal(raw, v); err != nil {
			t.Fatalf("decode %s: %v body=%s", url, err, raw)
		}
	}
	return resp.StatusCode
}
