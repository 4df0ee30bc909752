package catalog

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncodingResult describes how a document's bytes were interpreted.
type EncodingResult struct {
	Encoding   string
	Confidence float64
	HasBOM     bool
}

const encodingSample = 8192

// DetectEncoding guesses the character encoding of document bytes.
// Articles are prose, so the candidate set is the handful of encodings
// text editors actually produce: UTF-8/16 and the Latin single-byte maps.
func DetectEncoding(data []byte) EncodingResult {
	if len(data) == 0 {
		return EncodingResult{Encoding: "utf-8", Confidence: 1.0}
	}

	if r, ok := detectBOM(data); ok {
		return r
	}

	sample := data
	if len(sample) > encodingSample {
		sample = data[:encodingSample]
	}

	if isASCII(sample) {
		return EncodingResult{Encoding: "utf-8", Confidence: 1.0}
	}
	if utf8.Valid(sample) {
		return EncodingResult{Encoding: "utf-8", Confidence: 0.95}
	}
	if score := scoreUTF16(sample, 1); score > 0 {
		return EncodingResult{Encoding: "utf-16le", Confidence: score}
	}
	if score := scoreUTF16(sample, 0); score > 0 {
		return EncodingResult{Encoding: "utf-16be", Confidence: score}
	}

	// Windows-1252 is a superset of ISO-8859-1 except for 0x80..0x9F,
	// where Latin-1 has control codes no prose document uses.
	for _, b := range sample {
		if b >= 0x80 && b <= 0x9F {
			return EncodingResult{Encoding: "windows-1252", Confidence: 0.8}
		}
	}
	return EncodingResult{Encoding: "iso-8859-1", Confidence: 0.6}
}

func detectBOM(data []byte) (EncodingResult, bool) {
	switch {
	case len(data) >= 3 && bytes.Equal(data[:3], []byte{0xEF, 0xBB, 0xBF}):
		return EncodingResult{Encoding: "utf-8", Confidence: 1.0, HasBOM: true}, true
	case len(data) >= 2 && bytes.Equal(data[:2], []byte{0xFF, 0xFE}):
		return EncodingResult{Encoding: "utf-16le", Confidence: 1.0, HasBOM: true}, true
	case len(data) >= 2 && bytes.Equal(data[:2], []byte{0xFE, 0xFF}):
		return EncodingResult{Encoding: "utf-16be", Confidence: 1.0, HasBOM: true}, true
	}
	return EncodingResult{}, false
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b > 127 {
			return false
		}
	}
	return true
}

// scoreUTF16 checks for the null-byte pattern of UTF-16 text holding
// mostly Latin characters. nullAt selects the high byte: 1 for LE, 0
// for BE.
func scoreUTF16(data []byte, nullAt int) float64 {
	if len(data) < 4 || len(data)%2 != 0 {
		return 0
	}

	nulls := 0
	for i := nullAt; i < len(data); i += 2 {
		if data[i] == 0 {
			nulls++
		}
	}

	if float64(nulls)/float64(len(data)/2) > 0.75 {
		return 0.8
	}
	return 0
}

// NormalizeUTF8 converts document bytes to a UTF-8 string, replacing
// undecodable sequences rather than failing.
func NormalizeUTF8(data []byte, detected EncodingResult) string {
	data = stripBOM(data, detected)

	var dec *encoding.Decoder
	switch detected.Encoding {
	case "utf-16le":
		dec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case "utf-16be":
		dec = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case "windows-1252":
		dec = charmap.Windows1252.NewDecoder()
	case "iso-8859-1":
		dec = charmap.ISO8859_1.NewDecoder()
	default:
		return string(bytes.ToValidUTF8(data, []byte("�")))
	}

	reader := transform.NewReader(bytes.NewReader(data), dec)
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(bytes.ToValidUTF8(data, []byte("�")))
	}
	return string(bytes.ToValidUTF8(decoded, []byte("�")))
}

func stripBOM(data []byte, detected EncodingResult) []byte {
	if !detected.HasBOM {
		return data
	}
	switch detected.Encoding {
	case "utf-8":
		return data[3:]
	case "utf-16le", "utf-16be":
		return data[2:]
	}
	return data
}
