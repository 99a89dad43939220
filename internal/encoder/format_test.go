package encoder

import (
	"errors"
	"strings"
	"testing"
)

// TestFormat tests the layout of a report file.
func TestFormat(t *testing.T) {
	t.Parallel()

	e := Encode([]byte("a"))
	got := Format(e)

	expected := "===| RAW BASE64 |===\n" +
		"YQ==\n" +
		"\n" +
		"===| DATA URI |===\n" +
		"data:image/svg+xml;base64,YQ==\n" +
		"\n" +
		"===| PERCENT-ENCODED BASE64 |===\n" +
		"YQ%3D%3D\n" +
		"\n" +
		"===| DATA URI (PERCENT-ENCODED) |===\n" +
		"data:image/svg+xml;base64,YQ%3D%3D\n"

	if got != expected {
		t.Errorf("unexpected report:\n%s\nexpected:\n%s", got, expected)
	}
	if strings.HasSuffix(got, "\n\n") {
		t.Error("report must end with exactly one newline")
	}
}

// TestParse tests reading a report file back.
func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		e := Encode([]byte(sampleSVG))
		parsed, err := Parse(Format(e))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed != e {
			t.Errorf("parsed %+v, expected %+v", parsed, e)
		}
	})

	t.Run("round trip of empty file", func(t *testing.T) {
		t.Parallel()
		e := Encode(nil)
		parsed, err := Parse(Format(e))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed != e {
			t.Errorf("parsed %+v, expected %+v", parsed, e)
		}
	})

	t.Run("missing section", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("===| RAW BASE64 |===\nYQ==\n")
		if !errors.Is(err, ErrMalformedReport) {
			t.Errorf("expected ErrMalformedReport, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("not a report")
		if !errors.Is(err, ErrMalformedReport) {
			t.Errorf("expected ErrMalformedReport, got %v", err)
		}
	})
}
