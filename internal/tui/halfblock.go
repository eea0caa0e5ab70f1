package tui

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const upperHalf = "▀"

type cellColors struct {
	top, bottom string
}

// halfBlocks draws img as text, two pixel rows per line: the upper pixel
// is the glyph foreground and the lower one its background.
func halfBlocks(img image.Image) string {
	b := img.Bounds()
	styles := make(map[cellColors]lipgloss.Style)

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			key := cellColors{top: hex(img.At(x, y))}
			if y+1 < b.Max.Y {
				key.bottom = hex(img.At(x, y+1))
			} else {
				key.bottom = key.top
			}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(key.top)).
					Background(lipgloss.Color(key.bottom))
				styles[key] = st
			}
			sb.WriteString(st.Render(upperHalf))
		}
	}
	return sb.String()
}

func hex(c color.Color) string {
	cf, _ := colorful.MakeColor(opaque(c))
	return cf.Hex()
}

// opaque drops alpha; composites are always painted over an opaque sky.
func opaque(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff}
}
