package export

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPreviewServerURL(t *testing.T) {
	server := NewPreviewServer(t.TempDir(), 9002)
	if got := server.URL(); got != "http://localhost:9002" {
		t.Errorf("URL() = %q, want http://localhost:9002", got)
	}
	if server.Port() != 9002 {
		t.Errorf("Port() = %d, want 9002", server.Port())
	}
}

func TestFindAvailablePort(t *testing.T) {
	port, err := FindAvailablePort(19000, 19100)
	if err != nil {
		t.Fatalf("FindAvailablePort failed: %v", err)
	}
	if port < 19000 || port > 19100 {
		t.Errorf("port %d outside range 19000-19100", port)
	}
}

func TestFrameFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame_010.png", "frame_002.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	server := NewPreviewServer(dir, 0)
	frames, err := server.frameFiles()
	if err != nil {
		t.Fatalf("frameFiles failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2 (non-image files excluded)", len(frames))
	}
	if frames[0] != "frame_002.png" || frames[1] != "frame_010.png" {
		t.Errorf("frames out of order: %v", frames)
	}
}

func TestGalleryHandler(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "frame_001.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	server := NewPreviewServer(dir, 0)
	rec := httptest.NewRecorder()
	server.handler().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "frame_001.svg") {
		t.Errorf("gallery should list the frame:\n%s", body)
	}
	if got := rec.Header().Get("Cache-Control"); !strings.Contains(got, "no-store") {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestStatusHandler(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "frame_001.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	server := NewPreviewServer(dir, 9000)
	rec := httptest.NewRecorder()
	server.handler().ServeHTTP(rec, httptest.NewRequest("GET", "/__preview__/status", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"frame_count":1`) {
		t.Errorf("status should report the frame count: %s", rec.Body.String())
	}
}
