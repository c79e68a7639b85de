package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"github.com/shopql/shopql/internal/present"
)

const (
	chartMargin   float32 = 40
	maxTickLabels         = 4
)

type chartPoint struct {
	X float32
	Y float32
}

// layoutPoints maps values onto pixel positions inside the plot area. Values
// spread evenly along the x axis in their row order; the y axis is scaled to
// the value range, with a flat series drawn at mid-height.
func layoutPoints(values []float64, width, height float32) []chartPoint {
	if len(values) == 0 || width <= 2*chartMargin || height <= 2*chartMargin {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	plotWidth := width - 2*chartMargin
	plotHeight := height - 2*chartMargin
	points := make([]chartPoint, len(values))
	for i, v := range values {
		x := chartMargin + plotWidth/2
		if len(values) > 1 {
			x = chartMargin + plotWidth*float32(i)/float32(len(values)-1)
		}
		y := chartMargin + plotHeight/2
		if max > min {
			y = chartMargin + plotHeight*float32(1-(v-min)/(max-min))
		}
		points[i] = chartPoint{X: x, Y: y}
	}
	return points
}

// BuildChart renders a chart spec into a fixed-size canvas container with
// axes, a title, and either a connected line or a single marker.
func BuildChart(spec present.ChartSpec, width, height int) fyne.CanvasObject {
	w, h := float32(width), float32(height)
	objects := make([]fyne.CanvasObject, 0)

	background := canvas.NewRectangle(color.White)
	background.Resize(fyne.NewSize(w, h))
	objects = append(objects, background)

	axisColor := color.NRGBA{A: 0xff}
	xAxis := canvas.NewLine(axisColor)
	xAxis.Position1 = fyne.NewPos(chartMargin, h-chartMargin)
	xAxis.Position2 = fyne.NewPos(w-chartMargin, h-chartMargin)
	yAxis := canvas.NewLine(axisColor)
	yAxis.Position1 = fyne.NewPos(chartMargin, chartMargin)
	yAxis.Position2 = fyne.NewPos(chartMargin, h-chartMargin)
	objects = append(objects, xAxis, yAxis)

	title := canvas.NewText(spec.Title, axisColor)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Move(fyne.NewPos(chartMargin, 8))
	objects = append(objects, title)

	points := layoutPoints(spec.Values, w, h)
	seriesColor := theme.Color(theme.ColorNamePrimary)
	for i, point := range points {
		if spec.Kind == present.ChartLine && i > 0 {
			segment := canvas.NewLine(seriesColor)
			segment.StrokeWidth = 2
			segment.Position1 = fyne.NewPos(points[i-1].X, points[i-1].Y)
			segment.Position2 = fyne.NewPos(point.X, point.Y)
			objects = append(objects, segment)
		}
		marker := canvas.NewCircle(seriesColor)
		marker.Resize(fyne.NewSize(6, 6))
		marker.Move(fyne.NewPos(point.X-3, point.Y-3))
		objects = append(objects, marker)
	}

	if len(spec.Labels) == len(points) {
		for _, idx := range tickIndexes(len(points), maxTickLabels) {
			tick := canvas.NewText(abbreviate(spec.Labels[idx]), axisColor)
			tick.TextSize = 10
			tick.Alignment = fyne.TextAlignCenter
			tick.Move(fyne.NewPos(points[idx].X-40, h-chartMargin+6))
			tick.Resize(fyne.NewSize(80, 14))
			objects = append(objects, tick)
		}
	}

	chart := container.NewWithoutLayout(objects...)
	chart.Resize(fyne.NewSize(w, h))
	return chart
}

// tickIndexes spreads up to max tick positions across a series of n points,
// always keeping the first and last.
func tickIndexes(n, max int) []int {
	if n <= 0 || max <= 0 {
		return nil
	}
	if max == 1 || n == 1 {
		return []int{0}
	}
	if n <= max {
		indexes := make([]int, n)
		for i := range indexes {
			indexes[i] = i
		}
		return indexes
	}
	indexes := make([]int, max)
	for i := range indexes {
		indexes[i] = i * (n - 1) / (max - 1)
	}
	return indexes
}

// abbreviate shortens an axis label so it fits under its tick; canvas text
// cannot rotate, so long date-time labels are truncated instead.
func abbreviate(label string) string {
	const limit = 10
	runes := []rune(label)
	if len(runes) <= limit {
		return label
	}
	return string(runes[:limit-2]) + ".."
}
