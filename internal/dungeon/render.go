package dungeon

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/dungeon-crawl/internal/core"
)

const (
	hudHeight  = 2 // status line + separator
	mapOffsetY = hudHeight
)

// Glyph returns the character and color used to draw a cell kind.
func Glyph(k CellKind) (rune, core.Color) {
	switch k {
	case CellWall:
		return '#', core.ColorGray
	case CellCoin:
		return '$', core.ColorYellow
	case CellMonster:
		return 'M', core.ColorMagenta
	case CellExitLocked:
		return 'E', core.ColorRed
	case CellExitOpen:
		return 'E', core.ColorGreen
	case CellPlayer:
		return '@', core.ColorCyan
	default:
		return '.', core.ColorDefault
	}
}

// RenderView draws a snapshot into dst: HUD, map, narration and, once the
// game is over, a result box.
func RenderView(v View, title string, dst *core.Screen) {
	dst.Clear()

	renderHUD(v, title, dst)
	offsetX := max(0, (dst.Width()-v.Width)/2)
	renderMap(v, offsetX, dst)

	y := mapOffsetY + v.Height + 1
	for _, line := range wrapText(v.Message, dst.Width()-2) {
		if y >= dst.Height() {
			break
		}
		dst.DrawText(1, y, line)
		y++
	}

	if v.IsOver {
		renderOverlay(v, dst)
	}
}

func renderHUD(v View, title string, dst *core.Screen) {
	left := fmt.Sprintf(" %s  HP: %d  Gold: %d  Turn: %d", title, v.HP, v.Gold, v.Turns)
	dst.DrawText(0, 0, left)

	gate, color := "Gate open ", core.ColorGreen
	if v.CoinsLeft > 0 {
		gate, color = fmt.Sprintf("Gate sealed (%d left) ", v.CoinsLeft), core.ColorRed
	}
	if x := dst.Width() - len(gate); x > len(left) {
		dst.DrawTextColored(x, 0, gate, color)
	}

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func renderMap(v View, offsetX int, dst *core.Screen) {
	for y, row := range v.Cells {
		for x, kind := range row {
			r, c := Glyph(kind)
			dst.SetColored(offsetX+x, mapOffsetY+y, r, c)
		}
	}
}

func renderOverlay(v View, dst *core.Screen) {
	var line1 string
	switch v.Outcome {
	case OutcomeWon:
		line1 = "You escaped!"
	case OutcomeLost:
		line1 = "You died"
	default:
		line1 = "Game Over"
	}
	line2 := fmt.Sprintf("Gold: %d  Turns: %d", v.Gold, v.Turns)

	boxW := max(len(line1), len(line2)) + 4
	box := core.CenteredRect(dst.Width(), mapOffsetY+v.Height, boxW, 5)
	box.Y = max(box.Y, mapOffsetY)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	color := core.ColorRed
	if v.DidWin {
		color = core.ColorGreen
	}
	dst.DrawTextColored(box.X+(boxW-len(line1))/2, box.Y+1, line1, color)
	dst.DrawText(box.X+(boxW-len(line2))/2, box.Y+3, line2)
}

// wrapText splits s on newlines and then word-wraps each line to width.
// Lines that fit are kept verbatim; leading indentation of a long line is
// repeated on its wrapped continuations.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		if len(para) <= width {
			out = append(out, para)
			continue
		}
		body := strings.TrimLeft(para, " ")
		indent := strings.Repeat(" ", len(para)-len(body))
		limit := max(1, width-len(indent))

		line := ""
		for _, word := range strings.Fields(body) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= limit:
				line += " " + word
			default:
				out = append(out, indent+line)
				line = word
			}
		}
		out = append(out, indent+line)
	}
	return out
}
