package v3

import (
	"reflect"
	"regexp"
	"strings"
)

// toV3String collapses UTF-8 into the v3 single-byte encoding: every rune
// in U+0000..U+00FF keeps its codepoint as a single byte (ASCII is
// unaffected, U+0080..U+00FF Latin-1 sequences collapse to one byte);
// every other rune becomes '?' (§4.3).
func toV3String(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= 0xFF {
			b.WriteByte(byte(r))
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// fromV3String expands a v3 single-byte string back to UTF-8: bytes below
// 0x80 pass through, bytes >= 0x80 become their two-byte UTF-8 Latin-1
// expansion (the inverse of toV3String, used when echoing strings back
// into an upload command record).
func fromV3String(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		b.WriteRune(rune(s[i]))
	}
	return b.String()
}

// transliterateSnapshot walks every string field reachable from the
// snapshot and rewrites it in place to v3 single-byte form, so every
// downstream consumer (C2, C4, C6) already sees v3-ready bytes (§9 design
// note: "the UTF-8→single-byte transliteration must be applied during
// deserialization"). Raw pass-through JSON (map[string]json.RawMessage) is
// left untouched — it is echoed back as JSON, not rendered into a fixed
// v3 record.
func transliterateSnapshot(s *Snapshot) {
	walkStrings(reflect.ValueOf(s).Elem())
}

func walkStrings(v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(toV3String(v.String()))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if f.CanSet() {
				walkStrings(f)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			walkStrings(v.Index(i))
		}
	case reflect.Ptr:
		if !v.IsNil() {
			walkStrings(v.Elem())
		}
	}
}

var (
	brTagRE    = regexp.MustCompile(`(?i)<br\s*/?>`)
	subTagRE   = regexp.MustCompile(`(?i)<sub>.*?</sub>`)
	anyTagRE   = regexp.MustCompile(`<[^>]*>`)
	whitespace = regexp.MustCompile(`[ \t]+`)
)

// stripHTML implements §4.3's message post-processing: collapse
// whitespace, <br> → line break, remove <sub>…</sub> entirely, drop any
// remaining tag.
func stripHTML(s string) string {
	s = subTagRE.ReplaceAllString(s, "")
	s = brTagRE.ReplaceAllString(s, "\n")
	s = anyTagRE.ReplaceAllString(s, "")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(whitespace.ReplaceAllString(l, " "))
	}
	return strings.Join(lines, "\n")
}

// wordWrap wraps text at approximately width columns, breaking on spaces
// and preserving existing line breaks (§4.3).
func wordWrap(s string, width int) string {
	var out []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// cipherEncode applies the legacy message "encryption" (§3, §4.3):
// newline → 0x1A, every other byte → (c + 13) mod 256.
func cipherEncode(s string) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' {
			out[i] = 0x1A
			continue
		}
		out[i] = byte(uint16(c) + 13)
	}
	return out
}

// cipherDecode is the inverse of cipherEncode.
func cipherDecode(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c == 0x1A {
			out[i] = '\n'
			continue
		}
		out[i] = byte(uint16(c) - 13)
	}
	return string(out)
}

// renderMessageBody runs the full §4.3 pipeline: HTML strip, word-wrap,
// cipher.
func renderMessageBody(raw string) []byte {
	return cipherEncode(wordWrap(stripHTML(raw), 40))
}
