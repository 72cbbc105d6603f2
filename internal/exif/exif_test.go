package exif

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func payloadWith(tag string) []byte {
	return append(MinimalPayload(), []byte(tag)...)
}

func TestExtract_NoExif(t *testing.T) {
	_, err := Extract(encodeJPEG(t, 8, 8))
	assert.True(t, errors.Is(err, ErrNoExif), "got %v", err)
}

func TestExtract_NotJPEG(t *testing.T) {
	_, err := Extract([]byte("\x89PNG\r\n\x1a\n"))
	assert.True(t, errors.Is(err, ErrNotJPEG), "got %v", err)

	_, err = Extract(nil)
	assert.True(t, errors.Is(err, ErrNotJPEG), "got %v", err)
}

func TestEmbedThenExtract(t *testing.T) {
	src := encodeJPEG(t, 16, 16)
	payload := payloadWith("Canon EOS")

	out, err := Embed(src, payload)
	require.NoError(t, err)

	got, err := Extract(out)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Embedded stream still decodes and has the APP1 right after SOI.
	_, err = jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xE1}, out[:4])
}

func TestEmbed_ReplacesExistingExif(t *testing.T) {
	first, err := Embed(encodeJPEG(t, 8, 8), payloadWith("old"))
	require.NoError(t, err)

	second, err := Embed(first, payloadWith("new"))
	require.NoError(t, err)

	got, err := Extract(second)
	require.NoError(t, err)
	assert.Equal(t, payloadWith("new"), got)
	assert.Equal(t, 1, bytes.Count(second, Header), "old EXIF segment should be dropped")
}

func TestEmbed_AfterJFIF(t *testing.T) {
	src := encodeJPEG(t, 8, 8)
	app0 := []byte{0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00}
	withJFIF := append(append([]byte{0xFF, 0xD8}, app0...), src[2:]...)

	out, err := Embed(withJFIF, MinimalPayload())
	require.NoError(t, err)
	assert.Equal(t, app0, out[2:2+len(app0)], "APP0 must stay first")
	assert.Equal(t, []byte{0xFF, 0xE1}, out[2+len(app0):4+len(app0)])
}

func TestEmbed_Rejects(t *testing.T) {
	src := encodeJPEG(t, 8, 8)

	_, err := Embed(src, []byte("not exif"))
	assert.Error(t, err)

	huge := append(MinimalPayload(), make([]byte, maxPayload)...)
	_, err = Embed(src, huge)
	assert.True(t, errors.Is(err, ErrTooLarge), "got %v", err)

	_, err = Embed([]byte("GIF89a"), MinimalPayload())
	assert.True(t, errors.Is(err, ErrNotJPEG), "got %v", err)
}

func TestExtract_TruncatedSegment(t *testing.T) {
	out, err := Embed(encodeJPEG(t, 8, 8), payloadWith("truncate me"))
	require.NoError(t, err)

	_, err = Extract(out[:10])
	assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
}
