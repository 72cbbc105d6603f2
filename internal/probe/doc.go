// Package probe inspects JPEG files without decoding pixel data: content
// sniffing, header dimensions and EXIF presence. The preview listing uses it
// to show what each candidate would go through before anything is written.
package probe
