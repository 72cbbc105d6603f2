package probe

import "github.com/backmassage/photoreducer/internal/display"

// ImageInfo is the result of probing one file.
type ImageInfo struct {
	Path    string
	Size    int64  // bytes on disk
	MIME    string // sniffed content type, e.g. "image/jpeg"
	Width   int
	Height  int
	HasExif bool
}

// IsJPEG reports whether the sniffed content is a JPEG stream.
func (i *ImageInfo) IsJPEG() bool {
	return i.MIME == jpegMIME
}

// Resolution returns "WxH", or "unknown" when the header was unreadable.
func (i *ImageInfo) Resolution() string {
	return display.FormatDims(i.Width, i.Height)
}
