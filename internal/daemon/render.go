package daemon

import (
	"fmt"
	"strconv"

	"github.com/livp123/loglens/internal/classify"
)

// ansiColor converts a #rrggbb color to a truecolor ANSI escape prefix.
// An unparsable value yields no coloring.
func ansiColor(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

const ansiReset = "\x1b[0m"

// Renderer formats classified lines for terminal output, tagging each line
// with its primary level in that level's configured color.
type Renderer struct {
	rules *classify.RuleSet
	color bool
}

// NewRenderer creates a Renderer. With color disabled the level tag is still
// printed, uncolored.
func NewRenderer(rules *classify.RuleSet, color bool) *Renderer {
	return &Renderer{rules: rules, color: color}
}

// Line formats one classified line.
func (r *Renderer) Line(line string, res classify.Result) string {
	if res.Primary == classify.LevelNone {
		return line
	}
	tag := fmt.Sprintf("%-5s", string(res.Primary))
	if r.color {
		if prefix := ansiColor(r.rules.Color(res.Primary)); prefix != "" {
			tag = prefix + tag + ansiReset
		}
	}
	return tag + " | " + line
}
