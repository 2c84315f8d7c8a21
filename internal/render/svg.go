// Package render turns a laid-out chart into an image. It is the consumer
// of the draw command list and knows nothing about schedules.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gantt2svg/internal/gantt"
)

// SVG writes the chart as a standalone SVG document. Commands are emitted
// in order, so later ones paint over earlier ones.
func SVG(w io.Writer, c *gantt.Chart) error {
	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, c.Width, c.Height, c.Width, c.Height, escapeXML(c.Background)))

	for _, cmd := range c.Commands {
		writeCommand(&svg, cmd)
		svg.WriteString("\n")
	}
	svg.WriteString("</svg>\n")

	_, err := io.WriteString(w, svg.String())
	return err
}

func writeCommand(svg *strings.Builder, cmd gantt.Command) {
	switch c := cmd.(type) {
	case gantt.Rect:
		svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s"%s%s/>`,
			num(c.X), num(c.Y), num(c.W), num(c.H),
			fillAttrs(c.Fill, c.FillOpacity), strokeAttrs(c.Stroke, c.StrokeWidth)))

	case gantt.Line:
		svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
			num(c.X1), num(c.Y1), num(c.X2), num(c.Y2), escapeXML(c.Stroke), num(c.Width)))

	case gantt.Diamond:
		// Draw diamond as a rotated square using polygon
		svg.WriteString(fmt.Sprintf(`<polygon points="%s,%s %s,%s %s,%s %s,%s"%s%s/>`,
			num(c.CX), num(c.CY-c.Size), // top
			num(c.CX+c.Size), num(c.CY), // right
			num(c.CX), num(c.CY+c.Size), // bottom
			num(c.CX-c.Size), num(c.CY), // left
			fillAttrs(c.Fill, 1), strokeAttrs(c.Stroke, 1)))

	case gantt.Text:
		weight := "normal"
		if c.Font.Bold {
			weight = "bold"
		}
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="%s" dominant-baseline="central" font-family="%s" font-size="%s" font-weight="%s" fill="%s">%s</text>`,
			num(c.X), num(c.Y), c.Align, escapeXML(c.Font.Family), num(c.Font.Size), weight,
			escapeXML(c.Fill), escapeXML(c.Content)))
	}
}

func fillAttrs(fill string, opacity float64) string {
	if fill == "" {
		return ` fill="none"`
	}
	s := fmt.Sprintf(` fill="%s"`, escapeXML(fill))
	if opacity < 1 {
		s += fmt.Sprintf(` fill-opacity="%s"`, num(opacity))
	}
	return s
}

func strokeAttrs(stroke string, width float64) string {
	if stroke == "" {
		return ""
	}
	return fmt.Sprintf(` stroke="%s" stroke-width="%s"`, escapeXML(stroke), num(width))
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// escapeXML replaces the XML special characters (&, <, >, ", ') with their
// entity references.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
