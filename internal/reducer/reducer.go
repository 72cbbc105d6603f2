package reducer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/backmassage/photoreducer/internal/exif"
	"github.com/backmassage/photoreducer/internal/planner"
)

// Reducer executes reduction plans. It holds no mutable state and is safe to
// share between workers.
type Reducer struct {
	opts Options
}

// New returns a Reducer bound to opts.
func New(opts Options) *Reducer {
	return &Reducer{opts: opts}
}

// Reduce processes one file: read, extract EXIF, plan, downscale, encode
// and replace. The file's bytes are read exactly once.
func (r *Reducer) Reduce(ctx context.Context, path string) (res Result) {
	start := time.Now()
	res = Result{Path: path, DryRun: r.opts.DryRun}
	defer func() {
		if p := recover(); p != nil {
			res.Status = StatusFailed
			res.Err = &DecodeError{Path: path, Err: fmt.Errorf("panic: %v", p)}
			res.AfterBytes = 0
		}
		res.Elapsed = time.Since(start)
	}()

	if err := ctx.Err(); err != nil {
		return failed(res, errors.Wrap(err, "interrupted before start"))
	}

	// --- Read once ---
	fi, err := os.Stat(path)
	if err != nil {
		return failed(res, &DecodeError{Path: path, Err: errors.Wrap(err, "stat")})
	}
	res.BeforeBytes = fi.Size()

	data, err := os.ReadFile(path)
	if err != nil {
		return failed(res, &DecodeError{Path: path, Err: errors.Wrap(err, "read")})
	}
	if mt := mimetype.Detect(data); !mt.Is("image/jpeg") {
		return failed(res, &DecodeError{Path: path, Err: errors.Errorf("content is %s, not JPEG", mt.String())})
	}
	hdr, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return failed(res, &DecodeError{Path: path, Err: errors.Wrap(err, "header")})
	}

	// --- EXIF is required ---
	blob, err := exif.Extract(data)
	if errors.Is(err, exif.ErrNoExif) {
		return failed(res, &MissingMetadataError{Path: path})
	}
	if err != nil {
		return failed(res, &DecodeError{Path: path, Err: errors.Wrap(err, "scan segments")})
	}

	// --- Plan ---
	plan := planner.BuildPlan(r.opts.Plan, hdr.Width, hdr.Height)
	res.Plan = plan
	if plan.Action == planner.ActionSkip {
		res.Status = StatusSkipped
		return res
	}
	if r.opts.DryRun {
		res.Status = StatusReduced
		return res
	}

	// --- Downscale ---
	// Orientation stays in the EXIF blob, so pixels are not auto-rotated.
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return failed(res, &DecodeError{Path: path, Err: err})
	}
	img = downscale(img, plan)

	// --- Encode and replace ---
	var buf bytes.Buffer
	buf.Grow(len(data) / 2)
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(r.opts.Quality)); err != nil {
		return failed(res, &EncodeError{Path: path, Err: err})
	}
	out, err := exif.Embed(buf.Bytes(), blob)
	if err != nil {
		return failed(res, &EncodeError{Path: path, Err: errors.Wrap(err, "attach EXIF")})
	}
	if err := replaceFile(path, out, fi.Mode().Perm()); err != nil {
		return failed(res, &EncodeError{Path: path, Err: err})
	}

	after, err := os.Stat(path)
	if err != nil {
		return failed(res, &EncodeError{Path: path, Err: errors.Wrap(err, "stat result")})
	}
	res.AfterBytes = after.Size()
	res.Status = StatusReduced
	return res
}

func failed(res Result, err error) Result {
	res.Status = StatusFailed
	res.Err = err
	return res
}

// downscale runs plan.Passes box-filter steps, each dividing both sides by
// the reduction factor. Target sides come from the plan so the pixels always
// match what the preview promised.
func downscale(img image.Image, plan *planner.Plan) image.Image {
	w, h := plan.SourceWidth, plan.SourceHeight
	for i := 0; i < plan.Passes; i++ {
		w, h = max(1, w/plan.Factor), max(1, h/plan.Factor)
		img = imaging.Resize(img, w, h, imaging.Box)
	}
	return img
}

// replaceFile writes data next to path and renames it over the original, so
// an interrupted write never leaves a truncated photo behind.
func replaceFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return errors.Wrap(err, "chmod temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrap(err, "replace original")
	}
	return nil
}
