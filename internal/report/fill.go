package report

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// tabSize is the tab stop distance used when expanding tabs in wrapped text.
const tabSize = 8

// fill wraps text into lines of at most width columns, the first line
// prefixed with firstIndent and the others with restIndent. Indents count
// one column per byte, so a tab counts as one.
//
// Lines are filled greedily. Text breaks at spaces and after hyphens inside
// hyphenated words. A word wider than a whole line is split into the space
// left on the current line, after its last hyphen in that space if it has
// one. Spaces at line boundaries are dropped.
func fill(text string, width int, firstIndent, restIndent string) string {
	chunks := splitChunks(normalizeSpace(text))

	var lines []string
	for len(chunks) > 0 {
		indent := firstIndent
		if len(lines) > 0 {
			indent = restIndent
		}
		avail := width - len(indent)

		if len(lines) > 0 && isBlank(chunks[0]) {
			chunks = chunks[1:]
		}

		var cur []string
		curLen := 0
		for len(chunks) > 0 {
			l := runewidth.StringWidth(chunks[0])
			if curLen+l > avail {
				break
			}
			cur = append(cur, chunks[0])
			curLen += l
			chunks = chunks[1:]
		}

		if len(chunks) > 0 && runewidth.StringWidth(chunks[0]) > avail {
			head, tail := breakLongWord(chunks[0], avail-curLen)
			cur = append(cur, head)
			chunks[0] = tail
		}

		if len(cur) > 0 && isBlank(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			lines = append(lines, indent+strings.Join(cur, ""))
		}
	}
	return strings.Join(lines, "\n")
}

// breakLongWord splits chunk so the head fits into spaceLeft columns.
// The head may be empty when no space is left.
func breakLongWord(chunk string, spaceLeft int) (head, tail string) {
	runes := []rune(chunk)

	end, w := 0, 0
	for end < len(runes) {
		rw := runewidth.RuneWidth(runes[end])
		if w+rw > spaceLeft {
			break
		}
		w += rw
		end++
	}

	for h := end - 1; h > 0; h-- {
		if runes[h] != '-' {
			continue
		}
		if strings.Trim(string(runes[:h]), "-") != "" {
			end = h + 1
		}
		break
	}
	return string(runes[:end]), string(runes[end:])
}

// normalizeSpace expands tabs and turns every other whitespace character
// into a plain space.
func normalizeSpace(text string) string {
	var sb strings.Builder
	col := 0
	for _, r := range text {
		switch r {
		case '\t':
			n := tabSize - col%tabSize
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			sb.WriteByte(' ')
			col = 0
		case '\v', '\f':
			sb.WriteByte(' ')
			col++
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}

// splitChunks cuts text into runs of spaces and words. Words are further
// cut after a hyphen joining two letter runs ("arrow-left" gives "arrow-"
// and "left") and before a dash of two or more hyphens followed by a word
// character, which becomes a chunk of its own.
func splitChunks(text string) []string {
	s := []rune(text)
	at := func(i int) rune {
		if i < 0 || i >= len(s) {
			return -1
		}
		return s[i]
	}

	var chunks []string
	for pos := 0; pos < len(s); {
		if s[pos] == ' ' {
			end := pos
			for end < len(s) && s[end] == ' ' {
				end++
			}
			chunks = append(chunks, string(s[pos:end]))
			pos = end
			continue
		}

		if s[pos] == '-' && isWordPunct(at(pos-1)) {
			if end, ok := dashRun(s, pos); ok {
				chunks = append(chunks, string(s[pos:end]))
				pos = end
				continue
			}
		}

		end := pos + 1
		for {
			c := at(end)
			if c == -1 || c == ' ' {
				break
			}
			if c == '-' && hyphenBreak(at, end) {
				end++
				break
			}
			if c == '-' && isWordPunct(at(end-1)) {
				if _, ok := dashRun(s, end); ok {
					break
				}
			}
			end++
		}
		chunks = append(chunks, string(s[pos:end]))
		pos = end
	}
	return chunks
}

// hyphenBreak reports whether a line may break after the hyphen at i.
// The hyphen must follow two letters, or a letter-hyphen-letter run, and
// must be followed by two letters, optionally separated by a hyphen.
func hyphenBreak(at func(int) rune, i int) bool {
	before := (isLetter(at(i-2)) && isLetter(at(i-1))) ||
		(isLetter(at(i-3)) && at(i-2) == '-' && isLetter(at(i-1)))
	after := isLetter(at(i+1)) &&
		(isLetter(at(i+2)) || (at(i+2) == '-' && isLetter(at(i+3))))
	return before && after
}

// dashRun reports whether s[i:] starts with two or more hyphens followed by
// a word character, and returns the end of the hyphen run.
func dashRun(s []rune, i int) (int, bool) {
	j := i
	for j < len(s) && s[j] == '-' {
		j++
	}
	return j, j-i >= 2 && j < len(s) && isWord(s[j])
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isWord(r rune) bool {
	return isLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r)
}

func isWordPunct(r rune) bool {
	return isWord(r) || strings.ContainsRune(`!"'&.,?`, r)
}
