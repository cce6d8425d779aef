package terminal

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"legend-of-kiro/internal/render"
	"legend-of-kiro/internal/world"
)

// hudRows is the number of rows reserved above the playfield.
const hudRows = 1

// Paint draws scene onto screen, scaling the viewport to the cells below
// the HUD row. It does not call Show.
func Paint(screen tcell.Screen, scene render.Scene) {
	screen.Clear()
	width, height := screen.Size()
	rows := height - hudRows
	if width <= 0 || rows <= 0 {
		return
	}
	cellW := world.ViewportWidth / float64(width)
	cellH := world.ViewportHeight / float64(rows)

	for _, s := range scene.Shapes {
		st := tcell.StyleDefault.Foreground(rgb(s.Fill))
		switch s.Kind {
		case render.ShapeCircle:
			x := int(math.Floor(s.X / cellW))
			y := int(math.Floor(s.Y/cellH)) + hudRows
			setCell(screen, x, y, s.Glyph, st, width, height)
		default:
			x0 := int(math.Floor(s.X / cellW))
			y0 := int(math.Floor(s.Y / cellH))
			x1 := int(math.Ceil((s.X + s.W) / cellW))
			y1 := int(math.Ceil((s.Y + s.H) / cellH))
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					setCell(screen, x, y+hudRows, s.Glyph, st, width, height)
				}
			}
		}
	}

	paintHUD(screen, scene, width)
	if scene.Overlay != nil {
		paintOverlay(screen, scene.Overlay, width, height)
	}
}

func paintHUD(screen tcell.Screen, scene render.Scene, width int) {
	heartStyle := tcell.StyleDefault.Foreground(rgb(render.ColorHeart))
	x := 0
	for _, fill := range scene.Hearts {
		setCell(screen, x, 0, heartGlyph(fill), heartStyle, width, hudRows)
		x++
	}
	info := fmt.Sprintf(" %s", scene.Weapon)
	if scene.Status != "" {
		info += fmt.Sprintf(" [%s]", scene.Status)
	}
	printAt(screen, x, 0, info, tcell.StyleDefault, width)
	score := fmt.Sprintf("SCORE %d", scene.Score)
	printAt(screen, width-len(score), 0, score, tcell.StyleDefault.Bold(true), width)
}

func paintOverlay(screen tcell.Screen, o *render.Overlay, width, height int) {
	st := tcell.StyleDefault.Foreground(rgb(render.ColorText)).Bold(true)
	mid := height / 2
	for _, line := range []struct {
		text string
		y    int
	}{{o.Title, mid - 1}, {o.Subtitle, mid + 1}} {
		padded := " " + line.text + " "
		printAt(screen, (width-len([]rune(padded)))/2, line.y, padded, st.Reverse(true), width)
	}
}

func printAt(screen tcell.Screen, x, y int, text string, st tcell.Style, width int) {
	for _, r := range text {
		if x >= 0 && x < width {
			screen.SetContent(x, y, r, nil, st)
		}
		x++
	}
}

func setCell(screen tcell.Screen, x, y int, r rune, st tcell.Style, width, height int) {
	if x < 0 || y < 0 || x >= width || y >= height {
		return
	}
	if r == 0 {
		r = '#'
	}
	screen.SetContent(x, y, r, nil, st)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func heartGlyph(fill float64) rune {
	switch {
	case fill >= 1:
		return '♥'
	case fill > 0:
		return '❥'
	default:
		return '♡'
	}
}
