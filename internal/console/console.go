// Package console renders the session assistant's terminal output.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

// Theme holds one style per kind of line.
type Theme struct {
	Info     lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Prompt   lipgloss.Style
	Response lipgloss.Style
	Metrics  lipgloss.Style
	Project  lipgloss.Style
	Border   lipgloss.Style
}

func newTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Info:     r.NewStyle().Foreground(lipgloss.Color("#67E8F9")).Faint(true),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		Error:    r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		Success:  r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		Prompt:   r.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true),
		Response: r.NewStyle().Foreground(lipgloss.Color("#F3F4F6")),
		Metrics:  r.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Faint(true),
		Project:  r.NewStyle().Foreground(lipgloss.Color("#D946EF")),
		Border:   r.NewStyle().Foreground(lipgloss.Color("#4B5563")),
	}
}

// Console writes styled lines to out. Markdown goes through glamour only when out
// is a terminal; otherwise it is written as is.
type Console struct {
	out   io.Writer
	r     *lipgloss.Renderer
	theme Theme
	md    *glamour.TermRenderer
}

func New(out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	c := &Console{out: out, r: r, theme: newTheme(r)}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width := 100
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 20 {
			width = w - 4
		}
		md, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
		if err == nil {
			c.md = md
		}
	}
	return c
}

func (c *Console) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(c.out, style.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Info(format string, args ...any)    { c.line(c.theme.Info, format, args...) }
func (c *Console) Warning(format string, args ...any) { c.line(c.theme.Warning, format, args...) }
func (c *Console) Error(format string, args ...any)   { c.line(c.theme.Error, format, args...) }
func (c *Console) Success(format string, args ...any) { c.line(c.theme.Success, format, args...) }
func (c *Console) Project(format string, args ...any) { c.line(c.theme.Project, format, args...) }
func (c *Console) Metrics(format string, args ...any) { c.line(c.theme.Metrics, format, args...) }

// Prompt writes text without a trailing newline.
func (c *Console) Prompt(text string) {
	fmt.Fprint(c.out, c.theme.Prompt.Render(text)+" ")
}

// Chunk writes a streamed fragment unstyled.
func (c *Console) Chunk(text string) {
	fmt.Fprint(c.out, text)
}

func (c *Console) Newline() { fmt.Fprintln(c.out) }

func (c *Console) Markdown(content string) {
	if c.md != nil {
		if rendered, err := c.md.Render(content); err == nil {
			fmt.Fprint(c.out, rendered)
			return
		}
	}
	fmt.Fprintln(c.out, strings.TrimRight(content, "\n"))
}

// Panel draws body in a rounded box with an optional title line.
func (c *Console) Panel(title, body string, style lipgloss.Style) {
	if title != "" {
		body = style.Bold(true).Render(title) + "\n" + body
	}
	box := c.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.GetForeground()).
		Padding(0, 1)
	fmt.Fprintln(c.out, box.Render(body))
}

func (c *Console) Theme() Theme { return c.theme }

// Table renders rows under headers with a title above. The first column uses the
// info style and the rest the response style.
func (c *Console) Table(title string, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.theme.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return c.theme.Prompt.Padding(0, 1)
			case col == 0:
				return c.theme.Info.Faint(false).Padding(0, 1)
			default:
				return c.theme.Response.Padding(0, 1)
			}
		})
	if title != "" {
		fmt.Fprintln(c.out, c.theme.Project.Bold(true).Render(title))
	}
	fmt.Fprintln(c.out, t.String())
}
