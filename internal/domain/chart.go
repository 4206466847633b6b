package domain

import "time"

// ChartType identifies the rendering variant a chart was built with.
type ChartType string

const (
	ChartTypeBar     ChartType = "bar"
	ChartTypeLine    ChartType = "line"
	ChartTypePie     ChartType = "pie"
	ChartTypeArea    ChartType = "area"
	ChartTypeScatter ChartType = "scatter"

	ChartTypeColumn3D  ChartType = "column3d"
	ChartTypeBar3D     ChartType = "bar3d"
	ChartTypeLine3D    ChartType = "line3d"
	ChartTypeScatter3D ChartType = "scatter3d"
	ChartTypeArea3D    ChartType = "area3d"
)

// Dimension is the derived 2d/3d classification of a chart. It is computed
// from the chart type and never supplied by callers.
type Dimension string

const (
	Dimension2D Dimension = "2d"
	Dimension3D Dimension = "3d"
)

var chartTypes = map[ChartType]Dimension{
	ChartTypeBar:       Dimension2D,
	ChartTypeLine:      Dimension2D,
	ChartTypePie:       Dimension2D,
	ChartTypeArea:      Dimension2D,
	ChartTypeScatter:   Dimension2D,
	ChartTypeColumn3D:  Dimension3D,
	ChartTypeBar3D:     Dimension3D,
	ChartTypeLine3D:    Dimension3D,
	ChartTypeScatter3D: Dimension3D,
	ChartTypeArea3D:    Dimension3D,
}

// Valid reports whether t is a known chart type.
func (t ChartType) Valid() bool {
	_, ok := chartTypes[t]
	return ok
}

// Dimension returns the dimension partition t belongs to.
func (t ChartType) Dimension() Dimension {
	return chartTypes[t]
}

// DefaultChartTitle is used when the caller saves a chart without a title.
const DefaultChartTitle = "Untitled Chart"

// MaxDataPoints caps the stored data series; longer input is truncated.
const MaxDataPoints = 1000

// MaxPreviewPoints caps the lightweight preview sample.
const MaxPreviewPoints = 10

// Point is one data point of a chart series.
type Point map[string]any

// HasShape reports whether the point carries the coordinates required for
// the given dimension: x and y always, z only for 3d charts.
func (p Point) HasShape(d Dimension) bool {
	if p == nil {
		return false
	}
	if _, ok := p["x"]; !ok {
		return false
	}
	if _, ok := p["y"]; !ok {
		return false
	}
	if d == Dimension3D {
		if _, ok := p["z"]; !ok {
			return false
		}
	}
	return true
}

// ChartConfig echoes the parameters the chart was built with. The service
// stores it verbatim for the rendering UI and never interprets it.
type ChartConfig struct {
	ChartType ChartType `json:"chart_type"`
	Dimension Dimension `json:"dimension"`
	XAxis     string    `json:"x_axis"`
	YAxis     string    `json:"y_axis"`
	ZAxis     string    `json:"z_axis,omitempty"`
	Title     string    `json:"title"`
}

// Chart is a saved chart derived from one file's data.
type Chart struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"owner_id"`
	FileID      string      `json:"file_id"`
	Type        ChartType   `json:"chart_type"`
	Dimension   Dimension   `json:"dimension"`
	Title       string      `json:"title"`
	XAxis       string      `json:"x_axis"`
	YAxis       string      `json:"y_axis"`
	ZAxis       string      `json:"z_axis,omitempty"`
	Data        []Point     `json:"data"`
	DataPreview []Point     `json:"data_preview"`
	Image       string      `json:"image"`
	Config      ChartConfig `json:"config"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ExpiresAt returns the moment the record leaves the retention window.
func (c *Chart) ExpiresAt() time.Time {
	return c.CreatedAt.Add(RetentionWindow)
}

// Clone returns a copy safe to hand to callers.
func (c *Chart) Clone() *Chart {
	cp := *c
	cp.Data = clonePoints(c.Data)
	cp.DataPreview = clonePoints(c.DataPreview)
	return &cp
}

func clonePoints(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		m := make(Point, len(p))
		for k, v := range p {
			m[k] = v
		}
		out[i] = m
	}
	return out
}
