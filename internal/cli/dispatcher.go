// Package cli runs the session assistant's line-based command loop.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"chatbots/internal/assistant"
	"chatbots/internal/console"
	"chatbots/internal/llm"
)

const summarizeSentinel = "END"

const helpText = `# Available Commands

## Basic Commands
- ` + "`models`" + ` or ` + "`list`" + `: List available models
- ` + "`stats`" + `: Show session statistics
- ` + "`stream`" + `: Toggle streaming mode (currently: %s)
- ` + "`model <name>`" + `: Change the default model
- ` + "`exit`" + ` or ` + "`quit`" + `: End the session

## Conversation Management
- ` + "`clear`" + `: Clear conversation history
- ` + "`save`" + `: Save conversation to markdown file

## Helpers
- ` + "`code <language>`" + `: Generate code (default: Python)
- ` + "`summarize`" + `: Summarize a document (will prompt for text)

Any other input will be treated as a prompt for the model.
`

// Dispatcher reads commands and prompts one line at a time. The session's chunk
// handler should write to the same console so streamed output appears inline.
type Dispatcher struct {
	suite *assistant.Suite
	con   *console.Console
	in    *bufio.Scanner
}

func New(suite *assistant.Suite, con *console.Console, in io.Reader) *Dispatcher {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Dispatcher{suite: suite, con: con, in: sc}
}

func (d *Dispatcher) Banner() {
	d.con.Panel("Ollama Interaction Suite", "Professional LLM Interface", d.con.Theme().Info)
}

// Run loops until an exit command or the end of input, then prints final stats and
// exports the conversation.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		d.con.Newline()
		d.con.Prompt("Enter command or prompt (type 'help' for options):")
		line, ok := d.readLine()
		if !ok {
			d.con.Newline()
			d.finish()
			return d.in.Err()
		}
		if d.Handle(ctx, line) {
			return nil
		}
	}
}

func (d *Dispatcher) readLine() (string, bool) {
	if !d.in.Scan() {
		return "", false
	}
	return d.in.Text(), true
}

// Handle executes one input line and reports whether the session is over.
func (d *Dispatcher) Handle(ctx context.Context, line string) bool {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch {
	case cmd == "exit" || cmd == "quit" || cmd == "q":
		d.finish()
		return true
	case cmd == "help" || cmd == "h" || cmd == "?":
		mode := "OFF"
		if d.suite.Streaming() {
			mode = "ON"
		}
		d.con.Markdown(fmt.Sprintf(helpText, mode))
	case cmd == "models" || cmd == "list":
		d.listModels(ctx)
	case cmd == "stats":
		d.showStats()
	case cmd == "stream":
		if d.suite.ToggleStream() {
			d.con.Success("Streaming mode enabled")
		} else {
			d.con.Success("Streaming mode disabled")
		}
	case strings.HasPrefix(cmd, "model "):
		name := strings.TrimSpace(strings.TrimSpace(line)[len("model "):])
		d.suite.SetModel(name)
		d.con.Success("Model changed to: %s", name)
	case cmd == "clear":
		if err := d.suite.ClearHistory(); err != nil {
			d.con.Warning("Could not save conversation history: %v", err)
		}
		d.con.Success("Conversation history cleared")
	case cmd == "save":
		d.save()
	case firstWord(cmd) == "code":
		return d.code(ctx, strings.TrimSpace(line))
	case cmd == "summarize":
		return d.summarize(ctx)
	case cmd == "":
		d.con.Warning("Please enter a command or prompt.")
	default:
		res, err := d.suite.Send(ctx, line, assistant.SendOptions{})
		d.show(res, err)
	}
	return false
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}

func (d *Dispatcher) finish() {
	d.showStats()
	d.save()
	d.suite.Close()
	d.con.Success("Session ended successfully.")
}

func (d *Dispatcher) save() {
	path, err := d.suite.ExportMarkdown("")
	if err != nil {
		d.con.Error("Error saving conversation: %v", err)
		return
	}
	d.con.Success("Conversation saved to %s", path)
}

func (d *Dispatcher) listModels(ctx context.Context) {
	models, err := d.suite.ListModels(ctx)
	if err != nil {
		d.con.Error("Error listing models: %v", err)
		return
	}
	d.con.Table("Available Models", []string{"Model", "Size", "Modified", "Owner"}, modelRows(models))
}

func modelRows(models []llm.ModelInfo) [][]string {
	rows := make([][]string, 0, len(models))
	for _, m := range models {
		size, modified, owner := "N/A", "N/A", "N/A"
		if m.Size > 0 {
			size = fmt.Sprintf("%.1f MB", float64(m.Size)/1024/1024)
		}
		if !m.ModifiedAt.IsZero() {
			modified = m.ModifiedAt.Format("2006-01-02 15:04")
		}
		if m.Owner != "" {
			owner = m.Owner
		}
		rows = append(rows, []string{m.Name, size, modified, owner})
	}
	return rows
}

func (d *Dispatcher) showStats() {
	st := d.suite.Stats()
	rows := [][]string{
		{"Session Duration", fmt.Sprintf("%.2f minutes", st.Duration.Minutes())},
		{"Interactions", fmt.Sprint(st.Interactions)},
		{"Last Response Time", fmt.Sprintf("%.2f seconds", st.LastResponse.Seconds())},
		{"Total Tokens Generated", fmt.Sprint(st.TotalTokens)},
		{"Conversation History Size", fmt.Sprintf("%d turns", st.HistoryTurns)},
	}
	if st.HasAverages {
		rows = append(rows,
			[]string{"Avg. Tokens per Minute", fmt.Sprintf("%.1f", st.TokensPerMinute)},
			[]string{"Avg. Tokens per Interaction", fmt.Sprintf("%.1f", st.TokensPerInteraction)},
		)
	}
	d.con.Table("Session Statistics", []string{"Metric", "Value"}, rows)
}

// code reads the requirements on the next line. A short argument that does not
// start with "generate" names the language.
func (d *Dispatcher) code(ctx context.Context, line string) bool {
	language := assistant.DefaultLanguage
	prompt := "Enter Python code generation requirements:"
	if f := strings.Fields(line); len(f) > 1 {
		arg := strings.Join(f[1:], " ")
		if !strings.HasPrefix(arg, "generate") && len(arg) < 20 {
			language = arg
			prompt = "Enter code generation requirements:"
			d.con.Info("Code generation language set to: %s", language)
		}
	}
	d.con.Prompt(prompt)
	req, ok := d.readLine()
	if !ok {
		d.con.Newline()
		d.finish()
		return true
	}
	d.con.Project("Generating %s code based on your requirements...", language)
	res, err := d.suite.CodeGeneration(ctx, req, language)
	d.show(res.Result, err)
	if err == nil && res.CodePath != "" {
		d.con.Success("Generated code saved to %s", res.CodePath)
	}
	return false
}

func (d *Dispatcher) summarize(ctx context.Context) bool {
	d.con.Info("Enter or paste the text to summarize (type '%s' on a new line when finished):", summarizeSentinel)
	var lines []string
	for {
		line, ok := d.readLine()
		if !ok {
			d.finish()
			return true
		}
		if strings.TrimSpace(line) == summarizeSentinel {
			break
		}
		lines = append(lines, line)
	}
	text := strings.Join(lines, "\n")
	if len(text) < assistant.MinSummaryInput {
		d.con.Warning("Text too short to summarize meaningfully")
		return false
	}
	d.con.Project("Generating document summary...")
	res, err := d.suite.Summarize(ctx, text)
	d.show(res, err)
	return false
}

// show prints a response. Streamed content was already written chunk by chunk.
func (d *Dispatcher) show(res assistant.Result, err error) {
	if err != nil {
		d.con.Panel("Error", err.Error(), d.con.Theme().Error)
		return
	}
	if res.Streamed {
		d.con.Newline()
	} else {
		d.con.Markdown(res.Content)
	}
	var metrics []string
	if res.Model != "" {
		metrics = append(metrics, "Model: "+res.Model)
	}
	metrics = append(metrics, fmt.Sprintf("Time: %.2fms", float64(res.Duration.Microseconds())/1000))
	if res.Tokens > 0 {
		metrics = append(metrics, fmt.Sprintf("Tokens: %d", res.Tokens))
	}
	d.con.Metrics("%s", strings.Join(metrics, " | "))
	for _, w := range res.Warnings {
		d.con.Warning("%v", w)
	}
	if res.ArtifactPath != "" {
		if res.Streamed {
			d.con.Info("Streamed response saved to %s", res.ArtifactPath)
		} else {
			d.con.Info("Response saved to %s", res.ArtifactPath)
		}
	}
}
