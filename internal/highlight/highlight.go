// Package highlight renders pane text with Chroma and derives the UI chrome
// colors (divider, status bar, drag accent) from the same theme.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "github-dark"

// Lines highlights text for the file name and returns one ANSI string per
// line. Unknown file types and formatter failures fall back to plain lines.
func Lines(text, filename, theme string) []string {
	plain := strings.Split(strings.TrimRight(text, "\n"), "\n")

	lex := lexers.Match(filename)
	if lex == nil {
		return plain
	}
	lex = chroma.Coalesce(lex)
	it, err := lex.Tokenise(nil, text)
	if err != nil {
		return plain
	}
	fmtr := formatters.Get("terminal16m")
	if fmtr == nil {
		fmtr = formatters.Fallback
	}
	var buf strings.Builder
	if err := fmtr.Format(&buf, styles.Get(theme), it); err != nil {
		return plain
	}

	// Every reset drops the background; re-apply it so the pane stays filled.
	bg := bgSeq(ThemePalette(theme).Bg)
	raw := bg + strings.ReplaceAll(strings.TrimRight(buf.String(), "\n"), "\x1b[0m", "\x1b[0m"+bg)
	return carrySGR(strings.Split(raw, "\n"))
}

// carrySGR prefixes each line with the SGR sequences still active at the
// end of the previous one, so lines render correctly on their own.
func carrySGR(lines []string) []string {
	var active []string
	for i, line := range lines {
		if i > 0 && len(active) > 0 {
			lines[i] = strings.Join(active, "") + line
		}
		for j := 0; j+1 < len(line); j++ {
			if line[j] != '\x1b' || line[j+1] != '[' {
				continue
			}
			k := j + 2
			for k < len(line) && line[k] != 'm' && line[k] != '\x1b' {
				k++
			}
			if k >= len(line) || line[k] != 'm' {
				continue
			}
			if p := line[j+2 : k]; p == "" || p == "0" {
				active = active[:0]
			} else {
				active = append(active, line[j:k+1])
			}
			j = k
		}
	}
	return lines
}

func bgSeq(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

// Palette is the UI chrome derived from a theme.
type Palette struct {
	Bg     string
	Fg     string
	Border string // divider at rest
	Dim    string // status text
	Accent string // divider while dragging
}

// ThemePalette derives a palette from a Chroma theme name. Unknown themes
// get Chroma's fallback style.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	bg, fg := "#000000", "#c8c8c8"
	entry := sty.Get(chroma.Background)
	if entry.Background.IsSet() {
		bg = entry.Background.String()
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}
	return Palette{
		Bg:     bg,
		Fg:     fg,
		Border: lerp(bg, fg, 0.25),
		Dim:    lerp(bg, fg, 0.55),
		Accent: accent(sty, fg),
	}
}

// accent is the most saturated token color in the style.
func accent(sty *chroma.Style, fallback string) string {
	best, bestSat := fallback, 0.0
	for _, tt := range []chroma.TokenType{
		chroma.Keyword, chroma.NameFunction, chroma.LiteralString,
		chroma.LiteralNumber, chroma.NameBuiltin, chroma.Comment,
	} {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		hex := e.Colour.String()
		r, g, b, _ := parseHex(hex)
		hi, lo := max(r, g, b), min(r, g, b)
		if hi == 0 {
			continue
		}
		if sat := float64(hi-lo) / float64(hi); sat > bestSat {
			best, bestSat = hex, sat
		}
	}
	return best
}

func lerp(a, b string, t float64) string {
	ar, ag, ab, _ := parseHex(a)
	br, bg, bb, _ := parseHex(b)
	mix := func(x, y int) int {
		return min(255, max(0, int(float64(x)+float64(y-x)*t+0.5)))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}

func parseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}
