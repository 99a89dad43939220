package encoder

import (
	"errors"
	"fmt"
	"strings"
)

// Section labels, in the order they appear in a report file.
const (
	LabelRawBase64      = "RAW BASE64"
	LabelDataURI        = "DATA URI"
	LabelPercentBase64  = "PERCENT-ENCODED BASE64"
	LabelDataURIPercent = "DATA URI (PERCENT-ENCODED)"
)

// ErrMalformedReport is returned by Parse when the text is not a report file.
var ErrMalformedReport = errors.New("malformed encodings report")

// section is a labeled line of content.
type section struct {
	label   string
	content string
}

func (e Encodings) sections() []section {
	return []section{
		{LabelRawBase64, e.Base64},
		{LabelDataURI, e.DataURI},
		{LabelPercentBase64, e.PercentBase64},
		{LabelDataURIPercent, e.DataURIPercent},
	}
}

// header returns the header line for a section label.
func header(label string) string {
	return "===| " + label + " |==="
}

// Format renders e as a report file: each section is a header line, the
// content line and a blank line. Trailing whitespace at the end is trimmed to
// exactly one newline.
func Format(e Encodings) string {
	var sb strings.Builder
	for _, s := range e.sections() {
		sb.WriteString(header(s.label))
		sb.WriteByte('\n')
		sb.WriteString(s.content)
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), " \t\r\n") + "\n"
}

// Parse reads a report file produced by Format back into its encodings.
func Parse(text string) (Encodings, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	values := make(map[string]string, 4)
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "===| ") || !strings.HasSuffix(line, " |===") {
			return Encodings{}, fmt.Errorf("%w: unexpected line %d: %q", ErrMalformedReport, i+1, line)
		}
		label := strings.TrimSuffix(strings.TrimPrefix(line, "===| "), " |===")
		if i+1 >= len(lines) {
			return Encodings{}, fmt.Errorf("%w: section %q has no content", ErrMalformedReport, label)
		}
		values[label] = lines[i+1]
		i++
	}

	var e Encodings
	for _, s := range []struct {
		label string
		dst   *string
	}{
		{LabelRawBase64, &e.Base64},
		{LabelDataURI, &e.DataURI},
		{LabelPercentBase64, &e.PercentBase64},
		{LabelDataURIPercent, &e.DataURIPercent},
	} {
		v, ok := values[s.label]
		if !ok {
			return Encodings{}, fmt.Errorf("%w: missing section %q", ErrMalformedReport, s.label)
		}
		*s.dst = v
	}
	return e, nil
}
