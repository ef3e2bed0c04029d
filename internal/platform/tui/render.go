package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// colorStyle returns the lipgloss foreground style for a core color.
func colorStyle(c core.Color) lipgloss.Style {
	code, ok := c.ANSI()
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(code))))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run, and trailing
// blank cells of each line are dropped.
func RenderScreen(s *core.Screen) string {
	styles := make(map[core.Color]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		end := lineEnd(s, y)
		x := 0
		for x < end {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < end {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[color]
			if !ok {
				style = colorStyle(color)
				styles[color] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// lineEnd returns one past the last non-blank cell of row y.
func lineEnd(s *core.Screen, y int) int {
	end := s.Width()
	for end > 0 && s.GetCell(end-1, y).Rune == ' ' {
		end--
	}
	return end
}
