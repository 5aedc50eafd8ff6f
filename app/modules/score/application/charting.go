package scoreservice

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette sets the colours of rendered charts.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	TextColor  drawing.Color
}

// DefaultPalette is a light theme suitable for printing.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorWhite,
	Bar:        drawing.ColorFromHex("1d4e89"),
	TextColor:  drawing.ColorFromHex("222222"),
}

// GenerateStandingsChart produces a PNG bar chart of total points per team.
func GenerateStandingsChart(standings []Standing, palette ChartPalette) ([]byte, error) {
	maxTotal := 0
	for _, s := range standings {
		maxTotal = max(maxTotal, s.Points.Total)
	}
	// go-chart cannot scale an axis whose range is zero.
	if maxTotal == 0 {
		return renderNoDataPlaceholder(palette)
	}

	bars := make([]chart.Value, 0, len(standings))
	for _, s := range standings {
		bars = append(bars, chart.Value{
			Label: s.Team.Name,
			Value: float64(s.Points.Total),
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		})
	}

	const (
		barWidth   = 50
		barSpacing = 40
	)
	width := max(400, (barWidth+barSpacing)*len(bars)+160)
	graph := chart.BarChart{
		Title:      "Standings",
		Width:      width,
		Height:     400,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		TitleStyle: chart.Style{
			FontColor: palette.TextColor,
		},
		XAxis: chart.Style{
			FontColor: palette.TextColor,
		},
		YAxis: chart.YAxis{
			Name: "Points",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(maxTotal),
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No points scored yet"
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(palette.TextColor)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
