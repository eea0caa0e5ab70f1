package export

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/skyline/internal/skyline"
	"github.com/san-kum/skyline/internal/surface"
)

var ErrNotRecorded = errors.New("export: layer surface does not record operations")

// SceneToSVG writes recorded layers, back to front, as one SVG document
// clipped to the viewport. Each layer becomes a translated group.
func SceneToSVG(layers []*skyline.Layer, width, height int, background color.Color) (string, error) {
	var defs, body strings.Builder
	grad := 0

	for _, l := range layers {
		rec, ok := l.Surface().(*surface.Recorder)
		if !ok {
			return "", fmt.Errorf("%s: %w", l.Name(), ErrNotRecorded)
		}
		x, y := l.Position()
		body.WriteString(fmt.Sprintf(`<g id="%s" class="%s" transform="translate(%.1f,%.1f)">
`, l.Name(), l.Kind(), x, y))

		for _, op := range rec.Ops() {
			if op.Kind != surface.OpFillRect {
				continue
			}
			fill := ""
			if op.Gradient != nil {
				id := fmt.Sprintf("fog%d", grad)
				grad++
				writeGradient(&defs, id, op.Gradient)
				fill = fmt.Sprintf(`fill="url(#%s)"`, id)
			} else {
				hex, opacity := paint(op.Color)
				fill = fmt.Sprintf(`fill="%s"`, hex)
				if opacity < 1 {
					fill += fmt.Sprintf(` fill-opacity="%.3f"`, opacity)
				}
			}
			body.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s/>
`, op.X, op.Y, op.W, op.H, fill))
		}
		body.WriteString("</g>\n")
	}

	bg, _ := paint(color.NRGBAModel.Convert(background).(color.NRGBA))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg))
	if defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(defs.String())
		sb.WriteString("</defs>\n")
	}
	sb.WriteString(body.String())
	sb.WriteString("</svg>")
	return sb.String(), nil
}

func writeGradient(sb *strings.Builder, id string, g *surface.Gradient) {
	sb.WriteString(fmt.Sprintf(`<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f">
`, id, g.X0, g.Y0, g.X1, g.Y1))
	for _, s := range g.Stops {
		hex, opacity := paint(s.Color)
		sb.WriteString(fmt.Sprintf(`<stop offset="%.4f" stop-color="%s" stop-opacity="%.3f"/>
`, s.Offset, hex, opacity))
	}
	sb.WriteString("</linearGradient>\n")
}

// paint splits a colour into an SVG hex value and an opacity.
func paint(c color.NRGBA) (string, float64) {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return cf.Hex(), float64(c.A) / 255
}
