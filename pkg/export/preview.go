// Local preview server for exported cycle frames. It generates a gallery
// page over the frame files, serves everything with no-cache headers, and
// auto-opens the browser.

package export

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"
)

const (
	PreviewPortRangeStart = 9000
	PreviewPortRangeEnd   = 9100
)

var galleryTemplate = template.Must(template.New("gallery").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>breathe cycle preview</title>
<style>
body { background: #282a36; color: #f8f8f2; font-family: sans-serif; margin: 2rem; }
h1 { font-size: 1.2rem; }
.frames { display: flex; flex-wrap: wrap; gap: 12px; }
figure { margin: 0; }
img { width: 200px; border: 1px solid #44475a; background: #fff; }
figcaption { font-size: 0.75rem; color: #bfbfbf; text-align: center; }
</style>
</head>
<body>
<h1>Breathing cycle · {{len .Frames}} frames</h1>
<div class="frames">
{{range .Frames}}<figure><img src="{{.}}" alt="{{.}}"><figcaption>{{.}}</figcaption></figure>
{{end}}</div>
</body>
</html>
`))

// PreviewServer serves an export directory as a browsable frame gallery.
type PreviewServer struct {
	dir    string
	port   int
	server *http.Server
}

// NewPreviewServer creates a preview server over an export directory.
func NewPreviewServer(dir string, port int) *PreviewServer {
	return &PreviewServer{dir: dir, port: port}
}

// Port returns the port the server listens on.
func (p *PreviewServer) Port() int { return p.port }

// URL returns the server's base URL.
func (p *PreviewServer) URL() string {
	return fmt.Sprintf("http://localhost:%d", p.port)
}

// frameFiles lists the exported frame images in playback order. The
// zero-padded frame numbers in the filenames make lexical order correct.
func (p *PreviewServer) frameFiles() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("read export dir: %w", err)
	}
	var frames []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".svg":
			frames = append(frames, e.Name())
		}
	}
	sort.Strings(frames)
	return frames, nil
}

func (p *PreviewServer) galleryHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.FileServer(http.Dir(p.dir)).ServeHTTP(w, r)
		return
	}
	frames, err := p.frameFiles()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	galleryTemplate.Execute(w, struct{ Frames []string }{frames})
}

func (p *PreviewServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	frames, err := p.frameFiles()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Fprintf(w, `{"status":"running","port":%d,"dir":%q,"frame_count":%d}`,
		p.port, p.dir, len(frames))
}

func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func (p *PreviewServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", p.galleryHandler)
	mux.HandleFunc("/__preview__/status", p.statusHandler)
	return noCacheMiddleware(mux)
}

// Start serves the gallery and blocks until the listener fails or the
// server is stopped.
func (p *PreviewServer) Start() error {
	if _, err := os.Stat(p.dir); os.IsNotExist(err) {
		return fmt.Errorf("export directory does not exist: %s", p.dir)
	}
	p.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", p.port),
		Handler: p.handler(),
	}
	return p.server.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (p *PreviewServer) Stop() error {
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

// FindAvailablePort finds an open TCP port in the given range.
func FindAvailablePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}

// OpenInBrowser opens url with the platform's default browser.
func OpenInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// StartPreview serves dir on the first free port in the preview range,
// opens the browser, and blocks until interrupted.
func StartPreview(dir string) error {
	port, err := FindAvailablePort(PreviewPortRangeStart, PreviewPortRangeEnd)
	if err != nil {
		return fmt.Errorf("could not find available port: %w", err)
	}
	server := NewPreviewServer(dir, port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := OpenInBrowser(server.URL()); err != nil {
			fmt.Printf("Could not open browser; open %s yourself\n", server.URL())
		}
	}()

	fmt.Printf("Preview running at %s (Ctrl+C to stop)\n", server.URL())

	select {
	case <-stop:
		return server.Stop()
	case err := <-errChan:
		return err
	}
}
