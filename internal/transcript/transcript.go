// Package transcript writes the session assistant's markdown artifacts and reads
// conversation exports back.
package transcript

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStamp formats times for artifact file names.
const FileStamp = "20060102_150405"

const displayStamp = "2006-01-02 15:04:05"

// Footer closes every conversation export.
const Footer = "*Generated by Ollama Interaction Suite*"

// ResponseMeta describes the backend output recorded next to a response.
type ResponseMeta struct {
	Model        string
	ResponseTime time.Duration
	Tokens       int
	Streamed     bool
}

// writeFile creates path, hands a buffered writer to fill and closes the file on
// every path.
func writeFile(path string, fill func(w *bufio.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		return err
	}
	return w.Flush()
}

// WriteResponse stores one prompt/response pair as response_<stamp>.md (or
// stream_response_<stamp>.md) in dir and returns the file path.
func WriteResponse(dir string, at time.Time, prompt, content string, meta ResponseMeta) (string, error) {
	stamp := at.Format(FileStamp)
	name, title := "response_", "LLM Response"
	if meta.Streamed {
		name, title = "stream_response_", "LLM Streamed Response"
	}
	path := filepath.Join(dir, name+stamp+".md")
	err := writeFile(path, func(w *bufio.Writer) error {
		fmt.Fprintf(w, "# %s - %s\n\n", title, stamp)
		fmt.Fprintf(w, "## Prompt\n\n%s\n\n", prompt)
		fmt.Fprintf(w, "## Response\n\n%s\n\n", content)
		fmt.Fprint(w, "## Metadata\n\n")
		model := meta.Model
		if model == "" {
			model = "unknown"
		}
		fmt.Fprintf(w, "- Model: %s\n", model)
		if meta.Streamed {
			fmt.Fprintf(w, "- Response time: %.2f ms\n", float64(meta.ResponseTime)/float64(time.Millisecond))
		} else {
			fmt.Fprintf(w, "- Response time: %.2f seconds\n", meta.ResponseTime.Seconds())
		}
		if meta.Tokens > 0 {
			fmt.Fprintf(w, "- Tokens generated: %d\n", meta.Tokens)
		} else if !meta.Streamed {
			fmt.Fprint(w, "- Tokens generated: unknown\n")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
