package transcript

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"chatbots/internal/history"
)

var turnHeading = regexp.MustCompile(`^## (User|Assistant|System) \((.*)\)$`)

const separator = "---"

// Export writes turns as a markdown document to path, overwriting it.
func Export(path, model string, turns []history.Turn, at time.Time) error {
	return writeFile(path, func(w *bufio.Writer) error {
		fmt.Fprintf(w, "# Conversation History - %s\n\n", at.Format(displayStamp))
		fmt.Fprintf(w, "Model: %s\n\n", model)
		for _, t := range turns {
			stamp := "Unknown time"
			if !t.Timestamp.IsZero() {
				stamp = t.Timestamp.Format(displayStamp)
			}
			fmt.Fprintf(w, "## %s (%s)\n\n", titleCase(t.Role), stamp)
			fmt.Fprintf(w, "%s\n\n", t.Content)
			fmt.Fprintf(w, "%s\n\n", separator)
		}
		fmt.Fprintf(w, "\n\n%s\n", Footer)
		return nil
	})
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// ParseExportFile reads an export written by Export.
func ParseExportFile(path string) ([]history.Turn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return ParseExport(bytes.NewReader(data))
}

// ParseExport recovers the ordered turns of an export. A turn runs from its
// heading to the separator line that precedes the next heading, the footer or the
// end of the document, so content may itself contain separators and headings
// other than the role headings Export writes. Lines are split on \n only, so
// carriage returns in content survive. Timestamps are parsed at second
// precision in the local zone.
func ParseExport(r io.Reader) ([]history.Turn, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	lines := strings.Split(string(data), "\n")

	var turns []history.Turn
	i := 0
	for i < len(lines) {
		m := turnHeading.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}
		turn := history.Turn{Role: strings.ToLower(m[1])}
		if ts, err := time.ParseInLocation(displayStamp, m[2], time.Local); err == nil {
			turn.Timestamp = ts
		}
		// heading, blank line, content..., blank line, separator
		start := i + 2
		end := start
		for end < len(lines) && !closesTurn(lines, end) {
			end++
		}
		if end >= len(lines) {
			return nil, fmt.Errorf("turn at line %d has no closing separator", i+1)
		}
		body := lines[start:end]
		if n := len(body); n > 0 && body[n-1] == "" {
			body = body[:n-1]
		}
		turn.Content = strings.Join(body, "\n")
		turns = append(turns, turn)
		i = end + 1
	}
	return turns, nil
}

// closesTurn reports whether lines[i] is a separator followed by the next turn,
// the footer or nothing.
func closesTurn(lines []string, i int) bool {
	if lines[i] != separator {
		return false
	}
	for _, next := range lines[i+1:] {
		if next == "" {
			continue
		}
		return next == Footer || turnHeading.MatchString(next)
	}
	return true
}
