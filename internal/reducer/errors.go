package reducer

import "fmt"

// MissingMetadataError reports a JPEG without an EXIF APP1 segment. The file
// is left untouched so its metadata-less state is never baked into a smaller
// copy.
type MissingMetadataError struct {
	Path string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("%s: no EXIF metadata", e.Path)
}

// DecodeError wraps a failure to read, sniff or decode the source file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError wraps a failure to encode, re-attach EXIF or write the result.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: encode: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
