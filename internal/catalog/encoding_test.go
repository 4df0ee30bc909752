package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectEncoding_ASCII(t *testing.T) {
	r := DetectEncoding([]byte("plain ascii text"))
	assert.Equal(t, "utf-8", r.Encoding)
	assert.False(t, r.HasBOM)
}

func TestDetectEncoding_UTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("# Heading")...)
	r := DetectEncoding(data)
	assert.Equal(t, "utf-8", r.Encoding)
	assert.True(t, r.HasBOM)
	assert.Equal(t, "# Heading", NormalizeUTF8(data, r))
}

func TestDetectEncoding_UTF16LE(t *testing.T) {
	// "hi" with a UTF-16LE BOM.
	data := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	r := DetectEncoding(data)
	assert.Equal(t, "utf-16le", r.Encoding)
	assert.True(t, r.HasBOM)
	assert.Equal(t, "hi", NormalizeUTF8(data, r))
}

func TestDetectEncoding_Windows1252(t *testing.T) {
	// 0x93/0x94 are curly quotes in Windows-1252, control codes in Latin-1.
	data := []byte{0x93, 'h', 'i', 0x94}
	r := DetectEncoding(data)
	assert.Equal(t, "windows-1252", r.Encoding)
	assert.Equal(t, "“hi”", NormalizeUTF8(data, r))
}

func TestDetectEncoding_Latin1(t *testing.T) {
	// "café" in ISO-8859-1.
	data := []byte{'c', 'a', 'f', 0xE9}
	r := DetectEncoding(data)
	assert.Equal(t, "iso-8859-1", r.Encoding)
	assert.Equal(t, "café", NormalizeUTF8(data, r))
}

func TestNormalizeUTF8_InvalidSequences(t *testing.T) {
	data := []byte("ok \xf0\x28 tail")
	out := NormalizeUTF8(data, EncodingResult{Encoding: "utf-8"})
	assert.Contains(t, out, "ok ")
	assert.Contains(t, out, " tail")
}
