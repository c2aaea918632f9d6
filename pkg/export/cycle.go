package export

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mvello/breathe/pkg/breath"
	"github.com/mvello/breathe/pkg/pacer"
	"github.com/mvello/breathe/pkg/shape"
)

// Format selects the snapshot file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// IsValid returns true if the format is a recognized value
func (f Format) IsValid() bool {
	return f == FormatPNG || f == FormatSVG
}

// maxEncoders bounds concurrent image encoding during a cycle export.
const maxEncoders = 4

// Cycle renders every frame of one breath cycle for the given config into
// dir, one file per frame, named frame_NNN_<phase>.<format>. Frames encode
// concurrently; the first failure aborts the export.
func Cycle(dir string, cfg breath.Config, format Format, width, height int) error {
	if !format.IsValid() {
		return fmt.Errorf("unknown export format: %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid breathing config: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	frames := cycleFrames(cfg)

	var g errgroup.Group
	g.SetLimit(maxEncoders)
	for i, frame := range frames {
		i, frame := i, frame
		g.Go(func() error {
			geo, err := shape.Render(frame.Progress, cfg.Style, frame.Phase)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("frame_%03d_%s.%s", i, frame.Phase, format)
			return writeFile(filepath.Join(dir, name), geo, format, width, height)
		})
	}
	return g.Wait()
}

// cycleFrames lists the frames of one cycle in emission order, without the
// timing: every inhale step, the hold marker if the config has a hold, and
// every exhale step.
func cycleFrames(cfg breath.Config) []breath.Frame {
	frames := make([]breath.Frame, 0, 2*(pacer.Steps+1)+1)
	for i := 0; i <= pacer.Steps; i++ {
		frames = append(frames, breath.Frame{
			Progress: float64(i) / pacer.Steps,
			Phase:    breath.PhaseInhale,
		})
	}
	if cfg.HoldPercent > 0 {
		frames = append(frames, breath.Frame{Progress: 1, Phase: breath.PhaseHold})
	}
	for i := 0; i <= pacer.Steps; i++ {
		frames = append(frames, breath.Frame{
			Progress: 1 - float64(i)/pacer.Steps,
			Phase:    breath.PhaseExhale,
		})
	}
	return frames
}

func writeFile(path string, geo shape.Geometry, format Format, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatSVG:
		err = WriteSVG(f, geo, width, height)
	default:
		err = WritePNG(f, geo, width, height)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
