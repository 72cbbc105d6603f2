package probe

import (
	"bytes"
	"image/jpeg"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/backmassage/photoreducer/internal/exif"
)

const jpegMIME = "image/jpeg"

// headerLimit bounds how much of a file Probe reads. It covers a full APP1
// segment plus the frame header in ordinary camera files.
const headerLimit = 256 << 10

// Probe reads the head of path and returns its ImageInfo.
func Probe(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat")
	}

	head, err := io.ReadAll(io.LimitReader(f, headerLimit))
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", path)
	}

	info, err := Inspect(head)
	if err != nil {
		return nil, errors.Wrapf(err, "probe %q", path)
	}
	info.Path = path
	info.Size = fi.Size()
	return info, nil
}

// Inspect classifies raw bytes (a whole file or its head). Exported for
// testing without touching the filesystem.
func Inspect(data []byte) (*ImageInfo, error) {
	info := &ImageInfo{
		Size: int64(len(data)),
		MIME: mimetype.Detect(data).String(),
	}
	if !info.IsJPEG() {
		return info, nil
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "read JPEG header")
	}
	info.Width, info.Height = cfg.Width, cfg.Height

	if _, err := exif.Extract(data); err == nil {
		info.HasExif = true
	}
	return info, nil
}
