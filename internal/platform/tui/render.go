package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/core"
)

// glyphStyles maps simulation glyphs to lipgloss styles. The screen buffer
// is plain runes, so styling is decided here per glyph rather than per cell.
var glyphStyles = map[rune]lipgloss.Style{
	arena.PlayerChar:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	arena.BorderChar:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	arena.HitChar:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	arena.BlockedChar:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	arena.DeathChar:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	arena.ShockChar:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	arena.AimChar:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	arena.TrailChar:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	arena.ObstacleChar: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	'n':                lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	'f':                lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	's':                lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	'H':                lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	'D':                lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	'S':                lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	'B':                lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

var defaultStyle = lipgloss.NewStyle()

// hudStyle colors the HUD rows uniformly so that letters shared with enemy
// glyphs do not pick up entity colors.
var hudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

// letterGlyphs are entity glyphs that are plain letters. They only get
// entity colors when standing alone; inside overlay text they render plain.
var letterGlyphs = map[rune]bool{
	'n': true, 'f': true, 's': true, 'H': true,
	'D': true, 'S': true, 'B': true, arena.DeathChar: true, arena.ShockChar: true,
}

// styleClass returns a grouping key for the cell at (x, y): the glyph rune
// when it has a dedicated style, 0 for the unstyled default.
func styleClass(scr *core.Screen, x, y int) rune {
	r := scr.Get(x, y)
	if _, ok := glyphStyles[r]; !ok {
		return 0
	}
	if letterGlyphs[r] {
		left := ' '
		if x > 0 {
			left = scr.Get(x-1, y)
		}
		right := ' '
		if x < scr.Width()-1 {
			right = scr.Get(x+1, y)
		}
		if left != ' ' || right != ' ' {
			return 0
		}
	}
	return r
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		if y < arena.HUDRows {
			sb.WriteString(hudStyle.Render(s.Row(y)))
			continue
		}

		x := 0
		for x < s.Width() {
			class := styleClass(s, x, y)

			var run strings.Builder
			for x < s.Width() {
				if styleClass(s, x, y) != class {
					break
				}
				run.WriteRune(s.Get(x, y))
				x++
			}

			style := defaultStyle
			if class != 0 {
				style = glyphStyles[class]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
