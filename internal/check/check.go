// Package check provides system diagnostics (--check mode) and the
// pre-batch writability preflight (CheckWritable) for the photo folder.
package check

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"

	"github.com/backmassage/photoreducer/internal/config"
	"github.com/backmassage/photoreducer/internal/exif"
	"github.com/backmassage/photoreducer/internal/reducer"
)

// Sentinel errors returned by the preflight and the self-test.
var (
	ErrRootNotWritable = errors.New("photo folder is not writable")
	ErrRoundTripFailed = errors.New("JPEG/EXIF round trip failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// selfTestSide is the fixture size used by RoundTrip. It is four times the
// scaled-down minimum so the reducer must run exactly one pass.
const selfTestSide = 64

// RunCheck runs the --check flow: prints the runtime and pool settings, then
// reduces a generated photo end to end. Returns false if the round trip
// fails.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")
	log.Info("Go runtime: %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	log.Info("CPUs: %d, workers: %d", runtime.NumCPU(), cfg.Workers)
	log.Info("Quality: %d, reduction factor: %d, minimum: %dx%d",
		cfg.Quality, cfg.ReductionFactor, cfg.MinWidth, cfg.MinHeight)

	if cfg.RootDir != "" {
		if err := CheckWritable(cfg.RootDir); err != nil {
			log.Warn("%v", err)
		} else {
			log.Success("Folder is writable: %s", cfg.RootDir)
		}
	}

	log.Info("Testing JPEG/EXIF round trip...")
	if err := RoundTrip(cfg.Quality); err != nil {
		log.Error("%v", err)
		return false
	}
	log.Success("Round trip works (halved, EXIF kept)")
	return true
}

// CheckWritable verifies that files can be created in root, which every
// in-place rewrite depends on.
func CheckWritable(root string) error {
	f, err := os.CreateTemp(root, ".photoreducer-check-*")
	if err != nil {
		return errors.Wrapf(ErrRootNotWritable, "%s: %v", root, err)
	}
	name := f.Name()
	f.Close()
	if err := os.Remove(name); err != nil {
		return errors.Wrapf(ErrRootNotWritable, "%s: %v", root, err)
	}
	return nil
}

// RoundTrip writes a generated JPEG with a minimal EXIF segment to a temp
// folder, reduces it, and confirms the size halved and the segment survived.
func RoundTrip(quality int) error {
	dir, err := os.MkdirTemp("", "photoreducer-check-")
	if err != nil {
		return errors.Wrap(ErrRoundTripFailed, err.Error())
	}
	defer os.RemoveAll(dir)

	blob := exif.MinimalPayload()
	path := filepath.Join(dir, "check.jpg")
	if err := writeFixture(path, blob); err != nil {
		return errors.Wrap(ErrRoundTripFailed, err.Error())
	}

	opts := reducer.Options{Quality: quality}
	opts.Plan.ReductionFactor = 2
	opts.Plan.MinWidth = selfTestSide / 4
	opts.Plan.MinHeight = selfTestSide / 4

	res := reducer.New(opts).Reduce(context.Background(), path)
	if res.Err != nil {
		return errors.Wrap(ErrRoundTripFailed, res.Err.Error())
	}
	if res.Status != reducer.StatusReduced || res.Plan.TargetWidth != selfTestSide/2 {
		return errors.Wrapf(ErrRoundTripFailed, "unexpected result %s", res.Status)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(ErrRoundTripFailed, err.Error())
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		return errors.Wrap(ErrRoundTripFailed, err.Error())
	}
	if cfg.Width != selfTestSide/2 || cfg.Height != selfTestSide/2 {
		return errors.Wrapf(ErrRoundTripFailed, "got %dx%d", cfg.Width, cfg.Height)
	}
	got, err := exif.Extract(out)
	if err != nil || !bytes.Equal(got, blob) {
		return errors.Wrap(ErrRoundTripFailed, "EXIF segment lost")
	}
	return nil
}

func writeFixture(path string, blob []byte) error {
	img := image.NewGray(image.Rect(0, 0, selfTestSide, selfTestSide))
	for y := 0; y < selfTestSide; y++ {
		for x := 0; x < selfTestSide; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * y)})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return err
	}
	data, err := exif.Embed(buf.Bytes(), blob)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
