package v3

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestToV3StringCollapsesLatin1(t *testing.T) {
	got := toV3String("café")
	// 'é' is U+00E9, within U+0080..U+00FF, collapses to a single byte.
	want := "caf" + string([]byte{0xE9})
	if got != want {
		t.Errorf("toV3String(%q) = %q, want %q", "café", got, want)
	}
}

func TestToV3StringReplacesOutOfRangeWithQuestionMark(t *testing.T) {
	got := toV3String("aあb") // U+3042 is a 3-byte UTF-8 rune, out of range
	if got != "a?b" {
		t.Errorf("got %q, want %q", got, "a?b")
	}
}

func TestFromV3StringRoundTrip(t *testing.T) {
	original := "café"
	v3 := toV3String(original)
	back := fromV3String(v3)
	require.Equal(t, original, back)
}

func TestMessageCipherEncodeAB(t *testing.T) {
	got := cipherEncode("AB\n")
	want := []byte{'N', 'O', 0x1A}
	if !cmp.Equal(got, want) {
		t.Errorf("cipherEncode(AB\\n) = %v, want %v", got, want)
	}
}

func TestMessageCipherRoundTrip(t *testing.T) {
	for _, s := range []string{"hello\nworld", "AB\n", "", "a whole line of plain text"} {
		enc := cipherEncode(s)
		got := cipherDecode(enc)
		if got != s {
			t.Errorf("round-trip(%q) = %q", s, got)
		}
	}
}

func TestStripHTMLBrAndSub(t *testing.T) {
	in := "line1<br>line2 <sub>hidden</sub>trailing   spaces"
	got := stripHTML(in)
	want := "line1\nline2 trailing spaces"
	if got != want {
		t.Errorf("stripHTML = %q, want %q", got, want)
	}
}

func TestWordWrapBreaksNearWidth(t *testing.T) {
	in := "the quick brown fox jumps over the lazy dog again and again"
	got := wordWrap(in, 20)
	for _, line := range splitLines(got) {
		if len(line) > 20 {
			t.Errorf("line %q exceeds width 20", line)
		}
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
