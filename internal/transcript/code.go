package transcript

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var extensions = map[string]string{
	"python":     "py",
	"javascript": "js",
	"typescript": "ts",
	"java":       "java",
	"c":          "c",
	"cpp":        "cpp",
	"csharp":     "cs",
	"go":         "go",
	"rust":       "rs",
	"ruby":       "rb",
	"php":        "php",
	"swift":      "swift",
	"kotlin":     "kt",
	"html":       "html",
	"css":        "css",
	"sql":        "sql",
	"bash":       "sh",
	"powershell": "ps1",
	"r":          "r",
	"matlab":     "m",
}

// Extension maps a language name to a file extension, "txt" when unknown.
func Extension(language string) string {
	if ext, ok := extensions[strings.ToLower(strings.TrimSpace(language))]; ok {
		return ext
	}
	return "txt"
}

// FirstCodeBlock returns the inner text of the first fenced code block in src,
// without the newline that precedes the closing fence.
func FirstCodeBlock(src string) (string, bool) {
	source := []byte(src)
	root := goldmark.New().Parser().Parse(text.NewReader(source))
	var (
		code  string
		found bool
	)
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		code = strings.TrimSuffix(buf.String(), "\n")
		found = true
		return ast.WalkStop, nil
	})
	return code, found
}
