package display

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal previews the scene as styled text. Elements are laid out in rows
// by their vertical position; the border takes the color of the edge flow.
type Terminal struct {
	out   io.Writer
	clear bool
}

// NewTerminal writes previews to out. When clear is set every frame redraws
// the screen in place.
func NewTerminal(out io.Writer, clear bool) *Terminal {
	return &Terminal{out: out, clear: clear}
}

type piece struct {
	x, y int
	text string
}

func (t *Terminal) Present(s *Scene) error {
	_, err := io.WriteString(t.out, t.Render(s))
	return err
}

// Render returns the preview text for the current scene.
func (t *Terminal) Render(s *Scene) string {
	var pieces []piece
	border := NoColor
	lit := 0
	for _, e := range s.Elements() {
		if e.Hidden {
			continue
		}
		switch e.Kind {
		case KindText:
			if e.Text == "" {
				continue
			}
			st := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color.Hex()))
			if e.Scale > 1 {
				st = st.Bold(true)
			}
			pieces = append(pieces, piece{e.X, e.Y, st.Render(e.Text)})
		case KindCircle:
			glyph, c := "○", e.Outline
			if e.Color != NoColor {
				glyph, c = "●", e.Color
			}
			pieces = append(pieces, piece{e.X - e.W, e.Y, lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(glyph)})
		case KindTile:
			name := strings.TrimSuffix(filepath.Base(e.Asset), filepath.Ext(e.Asset))
			if name == "" || name == "." {
				name = string(e.ID)
			}
			label := fmt.Sprintf("[%s %d/4]", name, e.Tile+1)
			pieces = append(pieces, piece{e.X, e.Y + e.H*e.Scale/2, lipgloss.NewStyle().Faint(true).Render(label)})
		case KindImage:
			pieces = append(pieces, piece{e.X, e.Y + e.H/2, lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color.Hex())).Render("◆")})
		case KindRect:
			lit++
			if border == NoColor {
				border = e.Color
			}
		}
	}

	sort.SliceStable(pieces, func(i, j int) bool {
		if rowOf(pieces[i].y) != rowOf(pieces[j].y) {
			return pieces[i].y < pieces[j].y
		}
		return pieces[i].x < pieces[j].x
	})

	var rows []string
	var cur []string
	row := -1
	for _, p := range pieces {
		if r := rowOf(p.y); r != row {
			if cur != nil {
				rows = append(rows, strings.Join(cur, " "))
			}
			cur, row = nil, r
		}
		cur = append(cur, p.text)
	}
	if cur != nil {
		rows = append(rows, strings.Join(cur, " "))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if border != NoColor {
		box = box.BorderForeground(lipgloss.Color(border.Hex()))
	}
	footer := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("frame %d  glow %d", s.Frame(), lit))
	body := box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n" + footer + "\n"

	// Raw-mode terminals do not translate \n.
	body = strings.ReplaceAll(body, "\n", "\r\n")
	if t.clear {
		body = "\x1b[H\x1b[2J" + body
	}
	return body
}

// rowOf buckets a pixel row into a text row of the preview.
func rowOf(y int) int { return y / 12 }
