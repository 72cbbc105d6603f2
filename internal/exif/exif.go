// Package exif moves the raw EXIF blob between JPEG byte streams.
//
// The blob is the payload of the APP1 segment that starts with "Exif\0\0".
// It is treated as opaque: nothing inside the TIFF structure is parsed or
// rewritten, so camera, GPS and orientation tags survive a re-encode
// byte for byte.
package exif

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// JPEG markers used while walking segments.
const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8
	markerEOI    = 0xD9
	markerSOS    = 0xDA
	markerAPP0   = 0xE0
	markerAPP1   = 0xE1
	markerTEM    = 0x01
	markerRST0   = 0xD0
	markerRST7   = 0xD7
)

// maxPayload is the largest APP1 payload a 16-bit segment length can carry.
const maxPayload = 0xFFFF - 2

// Header prefixes every EXIF APP1 payload.
var Header = []byte("Exif\x00\x00")

// Sentinel errors returned by Extract and Embed.
var (
	ErrNotJPEG   = errors.New("not a JPEG stream (missing SOI marker)")
	ErrNoExif    = errors.New("no EXIF metadata")
	ErrMalformed = errors.New("malformed JPEG segment")
	ErrTooLarge  = errors.New("EXIF payload exceeds one APP1 segment")
)

// segment is one marker segment located in a JPEG stream. start and end are
// byte offsets of the whole segment including the marker and length.
type segment struct {
	marker     byte
	start, end int
	payload    []byte
}

// walk visits every length-prefixed segment between SOI and the first SOS
// (or EOI). visit returns false to stop early.
func walk(data []byte, visit func(segment) bool) error {
	if len(data) < 2 || data[0] != markerPrefix || data[1] != markerSOI {
		return ErrNotJPEG
	}
	i := 2
	for i+1 < len(data) {
		if data[i] != markerPrefix {
			return errors.Wrapf(ErrMalformed, "expected marker at offset %d", i)
		}
		marker := data[i+1]
		switch {
		case marker == markerPrefix:
			// Fill byte before the real marker.
			i++
			continue
		case marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7):
			i += 2
			continue
		case marker == markerSOS || marker == markerEOI:
			return nil
		}
		if i+4 > len(data) {
			return errors.Wrapf(ErrMalformed, "truncated length at offset %d", i)
		}
		length := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		end := i + 2 + length
		if length < 2 || end > len(data) {
			return errors.Wrapf(ErrMalformed, "segment 0x%02X at offset %d overruns stream", marker, i)
		}
		if !visit(segment{marker: marker, start: i, end: end, payload: data[i+4 : end]}) {
			return nil
		}
		i = end
	}
	return nil
}

func isExif(s segment) bool {
	return s.marker == markerAPP1 && bytes.HasPrefix(s.payload, Header)
}

// Extract returns a copy of the first EXIF APP1 payload in data, including
// the "Exif\0\0" header. It returns ErrNoExif when the stream has none.
func Extract(data []byte) ([]byte, error) {
	var found []byte
	err := walk(data, func(s segment) bool {
		if isExif(s) {
			found = append([]byte(nil), s.payload...)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNoExif
	}
	return found, nil
}

// Embed returns a copy of data with payload stored as its EXIF APP1 segment.
// Existing EXIF segments are dropped. The new segment goes right after SOI,
// or after a leading JFIF APP0 when there is one.
func Embed(data, payload []byte) ([]byte, error) {
	if !bytes.HasPrefix(payload, Header) {
		return nil, errors.New("EXIF payload must start with the Exif header")
	}
	if len(payload) > maxPayload {
		return nil, errors.Wrapf(ErrTooLarge, "%d bytes", len(payload))
	}

	insertAt := 2
	var drop []segment
	first := true
	err := walk(data, func(s segment) bool {
		if first && s.marker == markerAPP0 {
			insertAt = s.end
		}
		first = false
		if isExif(s) {
			drop = append(drop, s)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(data)+len(payload)+4)
	out = append(out, data[:insertAt]...)
	out = append(out, markerPrefix, markerAPP1)
	out = binary.BigEndian.AppendUint16(out, uint16(len(payload)+2))
	out = append(out, payload...)

	pos := insertAt
	for _, s := range drop {
		if s.start < pos {
			continue
		}
		out = append(out, data[pos:s.start]...)
		pos = s.end
	}
	out = append(out, data[pos:]...)
	return out, nil
}

// MinimalPayload returns a valid EXIF blob holding an empty big-endian TIFF
// IFD. It is used by the --check self-test.
func MinimalPayload() []byte {
	p := append([]byte(nil), Header...)
	p = append(p, 'M', 'M', 0x00, 0x2A) // byte order, TIFF magic
	p = append(p, 0x00, 0x00, 0x00, 0x08) // offset of IFD0
	p = append(p, 0x00, 0x00)             // zero entries
	p = append(p, 0x00, 0x00, 0x00, 0x00) // no next IFD
	return p
}
