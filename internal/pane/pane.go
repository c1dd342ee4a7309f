// Package pane holds the content of one leaf region and renders it into an
// exact cell rectangle.
package pane

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/splitpane/internal/highlight"
)

// Pane is a scrollable block of pre-rendered lines.
type Pane struct {
	Title  string
	lines  []string
	scroll int
}

// New creates a pane showing static text.
func New(title, text string) *Pane {
	return &Pane{Title: title, lines: strings.Split(text, "\n")}
}

// FromFile loads and highlights a file.
func FromFile(path, theme string) (*Pane, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pane file: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\t", "    ")
	return &Pane{
		Title: filepath.Base(path),
		lines: highlight.Lines(text, path, theme),
	}, nil
}

// Len is the number of content lines.
func (p *Pane) Len() int { return len(p.lines) }

// Scroll is the index of the first visible line.
func (p *Pane) Scroll() int { return p.scroll }

// ScrollBy moves the view by n lines, clamped to the content.
func (p *Pane) ScrollBy(n int) {
	p.scroll = min(max(p.scroll+n, 0), max(len(p.lines)-1, 0))
}

// Render returns exactly h rows of exactly w cells. Wide lines are cut,
// short ones are filled with fill.
func (p *Pane) Render(w, h int, title, fill lipgloss.Style) []string {
	if h <= 0 {
		return nil
	}
	rows := make([]string, 0, h)
	if w <= 0 {
		for range h {
			rows = append(rows, "")
		}
		return rows
	}
	if p.Title != "" {
		rows = append(rows, fit(title.Render(ansi.Truncate(" "+p.Title, w, "…")), w, fill))
	}
	for i := p.scroll; len(rows) < h; i++ {
		line := ""
		if i < len(p.lines) {
			line = p.lines[i]
		}
		rows = append(rows, fit(line, w, fill))
	}
	return rows
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int, fill lipgloss.Style) string {
	sw := ansi.StringWidth(s)
	if sw > w {
		s, sw = ansi.Truncate(s, w, ""), w
	}
	if strings.Contains(s, "\x1b[") {
		s += "\x1b[0m" // keep the style from bleeding into the next region
	}
	if sw < w {
		return s + fill.Render(strings.Repeat(" ", w-sw))
	}
	return s
}
