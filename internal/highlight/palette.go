package highlight

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/kiro/internal/config"
	"github.com/kobzarvs/kiro/internal/render"
)

// Palette maps capture names to foreground SGR sequences.
type Palette map[string]string

func NewPalette(theme config.Theme) Palette {
	p := make(Palette)
	for kind, name := range theme.Captures() {
		if c := parseColor(name); c != tcell.ColorDefault {
			r, g, b := c.RGB()
			if r >= 0 {
				p[kind] = render.Fg(r, g, b)
			}
		}
	}
	return p
}

// Color returns the sequence for kind, or "" for the default color.
func (p Palette) Color(kind string) string {
	return p[kind]
}

func parseColor(name string) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return tcell.ColorDefault
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return tcell.ColorDefault
	}
	return tcell.GetColor(strings.ToLower(name))
}
