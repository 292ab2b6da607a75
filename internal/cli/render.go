package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/gocube_solver"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	stageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	currentMoveStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// faceletColors maps cube colours to terminal colours.
var faceletColors = map[gocube.Color]lipgloss.Color{
	gocube.White:  lipgloss.Color("15"),
	gocube.Yellow: lipgloss.Color("11"),
	gocube.Green:  lipgloss.Color("10"),
	gocube.Blue:   lipgloss.Color("12"),
	gocube.Red:    lipgloss.Color("9"),
	gocube.Orange: lipgloss.Color("208"),
}

func renderFacelet(c gocube.Color) string {
	bg, ok := faceletColors[c]
	if !ok {
		return statusStyle.Render(" " + c.String() + " ")
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.Color("0")).
		Render(" " + c.String() + " ")
}

func renderRow(f gocube.Face, row int) string {
	var b strings.Builder
	for col := 0; col < gocube.FaceSize; col++ {
		b.WriteString(renderFacelet(f[row][col]))
	}
	return b.String()
}

// renderNet draws the cube as a coloured unfolded net:
//
//	   U
//	L F R B
//	   D
func renderNet(c gocube.Cube) string {
	pad := strings.Repeat(" ", 3*gocube.FaceSize)

	var b strings.Builder
	for row := 0; row < gocube.FaceSize; row++ {
		b.WriteString(pad)
		b.WriteString(renderRow(c.Face(gocube.Top), row))
		b.WriteByte('\n')
	}
	for row := 0; row < gocube.FaceSize; row++ {
		for _, ref := range []gocube.FaceRef{gocube.Left, gocube.Front, gocube.Right, gocube.Back} {
			b.WriteString(renderRow(c.Face(ref), row))
		}
		b.WriteByte('\n')
	}
	for row := 0; row < gocube.FaceSize; row++ {
		b.WriteString(pad)
		b.WriteString(renderRow(c.Face(gocube.Bottom), row))
		b.WriteByte('\n')
	}
	return b.String()
}
