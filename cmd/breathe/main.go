package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mvello/breathe/pkg/breath"
	"github.com/mvello/breathe/pkg/config"
	"github.com/mvello/breathe/pkg/export"
	"github.com/mvello/breathe/pkg/history"
	"github.com/mvello/breathe/pkg/ui"
	"github.com/mvello/breathe/pkg/watcher"
)

const version = "0.1.0"

func main() {
	presetName := flag.String("preset", "", "Start with the named preset")
	presetsPath := flag.String("presets", "", "Path to the presets file (default ~/.config/breathe/presets.yaml)")
	exportDir := flag.String("export", "", "Export one cycle of frames to this directory and exit")
	exportFormat := flag.String("export-format", "png", "Export format: png or svg")
	exportWidth := flag.Int("export-width", export.DefaultWidth, "Export image width in pixels")
	exportHeight := flag.Int("export-height", export.DefaultHeight, "Export image height in pixels")
	preview := flag.Bool("preview", false, "After -export, serve the frames in a browser gallery")
	historyPath := flag.String("history", "", "Path to the session log (default ~/.config/breathe/history.db)")
	noHistory := flag.Bool("no-history", false, "Do not record sessions")
	stats := flag.Bool("stats", false, "Print session history totals and recent sessions, then exit")
	showHelp := flag.Bool("help", false, "Show help")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showHelp {
		fmt.Println("Usage: breathe [options]")
		fmt.Println("\nA terminal breathing pacer.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Println("breathe version " + version)
		os.Exit(0)
	}

	path := *presetsPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			fmt.Printf("Error resolving preset path: %v\n", err)
			os.Exit(1)
		}
	}

	presets, warnings, err := config.Load(path)
	if err != nil {
		fmt.Printf("Error loading presets: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, w)
	}

	cfg := breath.DefaultConfig()
	if *presetName != "" {
		p, ok := config.Find(presets, *presetName)
		if !ok {
			fmt.Printf("Unknown preset %q. Available:\n", *presetName)
			for _, p := range presets {
				fmt.Printf("  %s\n", p.Name)
			}
			os.Exit(1)
		}
		cfg = p.Config
	}

	if *exportDir != "" {
		format := export.Format(*exportFormat)
		if !format.IsValid() {
			fmt.Printf("Unknown export format %q (want png or svg)\n", *exportFormat)
			os.Exit(1)
		}
		if err := export.Cycle(*exportDir, cfg, format, *exportWidth, *exportHeight); err != nil {
			fmt.Printf("Error exporting cycle: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported one %s cycle to %s\n", cfg.Style, *exportDir)
		if *preview {
			if err := export.StartPreview(*exportDir); err != nil {
				fmt.Printf("Error previewing export: %v\n", err)
				os.Exit(1)
			}
		}
		os.Exit(0)
	}

	if *stats {
		if err := printStats(*historyPath); err != nil {
			fmt.Printf("Error reading history: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println("breathe needs a terminal; use -export for headless snapshots.")
		os.Exit(1)
	}

	var hist *history.DB
	if !*noHistory {
		hp := *historyPath
		if hp == "" {
			hp, err = history.DefaultPath()
			if err != nil {
				fmt.Printf("Error resolving history path: %v\n", err)
				os.Exit(1)
			}
		}
		hist, err = history.Open(hp)
		if err != nil {
			// The pacer still works without its log.
			fmt.Fprintf(os.Stderr, "session log unavailable: %v\n", err)
		} else {
			defer hist.Close()
		}
	}

	m := ui.NewModel(cfg, presets, path, hist)
	p := tea.NewProgram(m, tea.WithAltScreen())

	w, err := watcher.Watch(path, watcher.DefaultDebounce, func() {
		p.Send(ui.PresetsChangedMsg{})
	})
	if err == nil {
		defer w.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running breathe: %v\n", err)
		os.Exit(1)
	}
}

func printStats(path string) error {
	if path == "" {
		var err error
		path, err = history.DefaultPath()
		if err != nil {
			return err
		}
	}
	db, err := history.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	totals, err := db.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("Sessions: %d\nCycles:   %d\nTime:     %.0f minutes\n",
		totals.Sessions, totals.Cycles, totals.TotalSeconds/60)

	recent, err := db.Recent(10)
	if err != nil {
		return err
	}
	if len(recent) > 0 {
		fmt.Println("\nRecent:")
	}
	for _, r := range recent {
		fmt.Printf("  %s  %2d bpm %2d/%2d/%2d %-6s  %3d cycles  %s\n",
			r.StartedAt.Format("2006-01-02 15:04"),
			r.Config.BreathsPerMinute, r.Config.InhalePercent,
			r.Config.HoldPercent, r.Config.ExhalePercent,
			r.Config.Style, r.Cycles, r.StopCause)
	}
	return nil
}
