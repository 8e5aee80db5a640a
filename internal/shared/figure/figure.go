// Package figure builds plotly.js figure descriptions for close-price charts.
package figure

import (
	"fmt"

	"tickertalk/internal/feature/marketdata/domain/entity"
)

// plotly.js が解釈する日時の形式
const timeLayout = "2006-01-02 15:04:05"

// Figure is a plotly.js figure: traces plus layout, serialized as-is to the page.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one scatter series.
type Trace struct {
	Type   string     `json:"type"`
	Mode   string     `json:"mode"`
	Name   string     `json:"name"`
	X      []string   `json:"x"`
	Y      []*float64 `json:"y"`
	Line   Line       `json:"line"`
	Marker Marker     `json:"marker"`
}

// Line is the stroke style of a trace.
type Line struct {
	Color string `json:"color"`
}

// Marker is the point style of a trace.
type Marker struct {
	Symbol string `json:"symbol"`
	Size   int    `json:"size"`
}

// Text wraps a title string the way plotly.js expects it.
type Text struct {
	Text string `json:"text"`
}

// RangeSlider toggles the slider under the x axis.
type RangeSlider struct {
	Visible bool `json:"visible"`
}

// Axis is one layout axis. Type and RangeSlider are omitted when unset.
type Axis struct {
	Title       Text         `json:"title"`
	Type        string       `json:"type,omitempty"`
	RangeSlider *RangeSlider `json:"rangeslider,omitempty"`
}

// Font is the global text color of the layout.
type Font struct {
	Color string `json:"color"`
}

// Layout holds the figure title, axes and the dark theme colors.
type Layout struct {
	Title        Text   `json:"title"`
	XAxis        Axis   `json:"xaxis"`
	YAxis        Axis   `json:"yaxis"`
	PaperBGColor string `json:"paper_bgcolor"`
	PlotBGColor  string `json:"plot_bgcolor"`
	Font         Font   `json:"font"`
}

// CloseChart returns a lines+markers figure with one point per chart point.
func CloseChart(symbol string, points []entity.ChartPoint) Figure {
	x := make([]string, len(points))
	y := make([]*float64, len(points))
	for i, p := range points {
		x[i] = p.Time.UTC().Format(timeLayout)
		y[i] = p.Close
	}

	return Figure{
		Data: []Trace{{
			Type:   "scatter",
			Mode:   "lines+markers",
			Name:   fmt.Sprintf("Stock Price: %s", symbol),
			X:      x,
			Y:      y,
			Line:   Line{Color: "blue"},
			Marker: Marker{Symbol: "circle", Size: 6},
		}},
		Layout: Layout{
			Title:        Text{Text: fmt.Sprintf("Stock Chart for %s", symbol)},
			XAxis:        Axis{Title: Text{Text: "Time"}, Type: "date", RangeSlider: &RangeSlider{Visible: true}},
			YAxis:        Axis{Title: Text{Text: "Close Price"}},
			PaperBGColor: "#111111",
			PlotBGColor:  "#111111",
			Font:         Font{Color: "#f2f5fa"},
		},
	}
}
