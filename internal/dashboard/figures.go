package dashboard

import "perfdash/internal/analysis"

// Plotly's default qualitative palette
var palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

const (
	ageSalaryHover = "gender=%{fullData.name}<br>age=%{x}<br>salary=%{y}" +
		"<br>name_employee=%{customdata[0]}<br>position=%{customdata[1]}<extra></extra>"
	hoursScoreHover = "gender=%{fullData.name}<br>average_work_hours=%{x}<br>performance_score=%{y}" +
		"<br>salary=%{marker.size}<br>name_employee=%{customdata[0]}<extra></extra>"
)

const (
	histogramColor = "#636EFA"
	// largest marker diameter in px for size-encoded scatter plots
	maxMarkerSize = 20.0
)

// Figure is a Plotly figure specification; the browser passes it to Plotly.react unchanged.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is the subset of Plotly trace attributes the dashboard emits
type Trace struct {
	Type          string      `json:"type"`
	Name          string      `json:"name,omitempty"`
	Mode          string      `json:"mode,omitempty"`
	X             interface{} `json:"x"`
	Y             []float64   `json:"y"`
	Width         float64     `json:"width,omitempty"`
	Text          []string    `json:"text,omitempty"`
	TextPosition  string      `json:"textposition,omitempty"`
	CustomData    interface{} `json:"customdata,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
	Marker        *Marker     `json:"marker,omitempty"`
	LegendGroup   string      `json:"legendgroup,omitempty"`
}

// Marker styles bars and scatter points
type Marker struct {
	Color    string      `json:"color,omitempty"`
	Size     interface{} `json:"size,omitempty"`
	SizeMode string      `json:"sizemode,omitempty"`
	SizeRef  float64     `json:"sizeref,omitempty"`
	Opacity  float64     `json:"opacity,omitempty"`
}

// Layout is the subset of Plotly layout attributes the dashboard emits
type Layout struct {
	Title   Title    `json:"title"`
	XAxis   Axis     `json:"xaxis"`
	YAxis   Axis     `json:"yaxis"`
	BarGap  *float64 `json:"bargap,omitempty"`
	BarMode string   `json:"barmode,omitempty"`
	Legend  *Legend  `json:"legend,omitempty"`
}

// Title is a figure or axis title
type Title struct {
	Text string `json:"text"`
}

// Axis configures one Plotly axis
type Axis struct {
	Title Title `json:"title"`
}

// Legend names the legend box
type Legend struct {
	Title Title `json:"title"`
}

// ColorMap assigns palette colours by a group's position in the full dataset
type ColorMap map[string]string

// NewColorMap builds a ColorMap over groups in the given order
func NewColorMap(groups []string) ColorMap {
	m := make(ColorMap, len(groups))
	for i, g := range groups {
		m[g] = palette[i%len(palette)]
	}
	return m
}

// Color returns the colour of group, falling back to the first palette entry
func (m ColorMap) Color(group string) string {
	if c, ok := m[group]; ok {
		return c
	}
	return palette[0]
}

// HistogramFigure draws the performance score distribution
func HistogramFigure(h analysis.Histogram) Figure {
	bins := h.Bins()
	x := make([]float64, len(bins))
	y := make([]float64, len(bins))
	ranges := make([][]float64, len(bins))
	for i, b := range bins {
		x[i] = b.Center
		y[i] = float64(b.Count)
		ranges[i] = []float64{b.Lower, b.Upper}
	}

	gap := h.BarGap
	return Figure{
		Data: []Trace{{
			Type:          "bar",
			Name:          "performance_score",
			X:             x,
			Y:             y,
			CustomData:    ranges,
			HoverTemplate: "performance_score=%{customdata[0]:.1f}–%{customdata[1]:.1f}<br>count=%{y}<extra></extra>",
			Marker:        &Marker{Color: histogramColor},
		}},
		Layout: Layout{
			Title:  Title{Text: "Histograma del Desempeño"},
			XAxis:  Axis{Title: Title{Text: "performance_score"}},
			YAxis:  Axis{Title: Title{Text: "count"}},
			BarGap: &gap,
		},
	}
}

// AverageHoursFigure draws mean weekly hours per gender, one coloured bar per gender
func AverageHoursFigure(groups []analysis.GroupMean, colors ColorMap) Figure {
	traces := make([]Trace, 0, len(groups))
	for _, g := range groups {
		traces = append(traces, Trace{
			Type:          "bar",
			Name:          g.Group,
			LegendGroup:   g.Group,
			X:             []string{g.Group},
			Y:             []float64{g.Mean},
			Text:          []string{g.Label},
			TextPosition:  "auto",
			HoverTemplate: "gender=%{x}<br>average_work_hours=%{y:.2f}<extra></extra>",
			Marker:        &Marker{Color: colors.Color(g.Group)},
		})
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Title:   Title{Text: "Horas Promedio trabajadas"},
			XAxis:   Axis{Title: Title{Text: "gender"}},
			YAxis:   Axis{Title: Title{Text: "average_work_hours"}},
			BarMode: "relative",
			Legend:  &Legend{Title: Title{Text: "gender"}},
		},
	}
}

// AgeSalaryFigure scatters age against salary, coloured by gender
func AgeSalaryFigure(series []analysis.Series, colors ColorMap) Figure {
	traces := make([]Trace, 0, len(series))
	for _, s := range series {
		x, y := coordinates(s.Points)
		meta := make([][]string, len(s.Points))
		for i, p := range s.Points {
			meta[i] = []string{p.Name, p.Position}
		}
		traces = append(traces, Trace{
			Type:          "scatter",
			Mode:          "markers",
			Name:          s.Group,
			LegendGroup:   s.Group,
			X:             x,
			Y:             y,
			CustomData:    meta,
			HoverTemplate: ageSalaryHover,
			Marker:        &Marker{Color: colors.Color(s.Group)},
		})
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Title:  Title{Text: "Dispersión: Edad vs Salario"},
			XAxis:  Axis{Title: Title{Text: "age"}},
			YAxis:  Axis{Title: Title{Text: "salary"}},
			Legend: &Legend{Title: Title{Text: "gender"}},
		},
	}
}

// HoursScoreFigure scatters weekly hours against performance, marker area proportional to salary
func HoursScoreFigure(series []analysis.Series, colors ColorMap) Figure {
	sizeRef := 1.0
	if m := analysis.MaxSize(series); m > 0 {
		sizeRef = 2 * m / (maxMarkerSize * maxMarkerSize)
	}

	traces := make([]Trace, 0, len(series))
	for _, s := range series {
		x, y := coordinates(s.Points)
		sizes := make([]float64, len(s.Points))
		meta := make([][]string, len(s.Points))
		for i, p := range s.Points {
			sizes[i] = p.Size
			meta[i] = []string{p.Name}
		}
		traces = append(traces, Trace{
			Type:          "scatter",
			Mode:          "markers",
			Name:          s.Group,
			LegendGroup:   s.Group,
			X:             x,
			Y:             y,
			CustomData:    meta,
			HoverTemplate: hoursScoreHover,
			Marker: &Marker{
				Color:    colors.Color(s.Group),
				Size:     sizes,
				SizeMode: "area",
				SizeRef:  sizeRef,
				Opacity:  0.8,
			},
		})
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Title:  Title{Text: "Relación: Horas Trabajadas vs Desempeño"},
			XAxis:  Axis{Title: Title{Text: "average_work_hours"}},
			YAxis:  Axis{Title: Title{Text: "performance_score"}},
			Legend: &Legend{Title: Title{Text: "gender"}},
		},
	}
}

func coordinates(points []analysis.Point) ([]float64, []float64) {
	x := make([]float64, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.X
		y[i] = p.Y
	}
	return x, y
}
