package shell

import (
	"strings"

	"cmdterm/internal/terminal"
)

// painter highlights the command word of the line being edited when it names a
// registered command.
type painter struct {
	term *terminal.Terminal
}

func newPainter(term *terminal.Terminal) *painter {
	return &painter{term: term}
}

// Paint implements readline.Painter.
func (p *painter) Paint(line []rune, _ int) []rune {
	text := string(line)
	trimmed := strings.TrimLeft(text, " ")
	lead := len(text) - len(trimmed)

	word := trimmed
	if i := strings.IndexByte(trimmed, ' '); i >= 0 {
		word = trimmed[:i]
	}
	if word == "" {
		return line
	}
	if _, ok := p.term.Shell().Registry().Command(word); !ok {
		return line
	}

	styled := p.term.Theme().Command.Render(word)
	return []rune(text[:lead] + styled + trimmed[len(word):])
}
