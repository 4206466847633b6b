package domain

import "testing"

func TestChartType_DimensionPartition(t *testing.T) {
	twoD := []ChartType{ChartTypeBar, ChartTypeLine, ChartTypePie, ChartTypeArea, ChartTypeScatter}
	threeD := []ChartType{ChartTypeColumn3D, ChartTypeBar3D, ChartTypeLine3D, ChartTypeScatter3D, ChartTypeArea3D}

	for _, ct := range twoD {
		if !ct.Valid() {
			t.Errorf("%s should be valid", ct)
		}
		if ct.Dimension() != Dimension2D {
			t.Errorf("%s should be 2d, got %s", ct, ct.Dimension())
		}
	}
	for _, ct := range threeD {
		if !ct.Valid() {
			t.Errorf("%s should be valid", ct)
		}
		if ct.Dimension() != Dimension3D {
			t.Errorf("%s should be 3d, got %s", ct, ct.Dimension())
		}
	}

	if ChartType("donut").Valid() {
		t.Errorf("unknown chart type must be invalid")
	}
}

func TestPoint_HasShape(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		dim  Dimension
		want bool
	}{
		{"Complete2D", Point{"x": "Jan", "y": 10}, Dimension2D, true},
		{"Complete3D", Point{"x": 1, "y": 2, "z": 3}, Dimension3D, true},
		{"2DPointFor3DChart", Point{"x": 1, "y": 2}, Dimension3D, false},
		{"ExtraZOn2DIsFine", Point{"x": 1, "y": 2, "z": 3}, Dimension2D, true},
		{"MissingY", Point{"x": 1}, Dimension2D, false},
		{"MissingX", Point{"y": 1}, Dimension2D, false},
		{"NilPoint", nil, Dimension2D, false},
		{"ZeroValuesCount", Point{"x": 0, "y": 0}, Dimension2D, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.HasShape(tt.dim); got != tt.want {
				t.Errorf("HasShape(%s) = %v, want %v", tt.dim, got, tt.want)
			}
		})
	}
}

func TestChart_CloneIsolatesData(t *testing.T) {
	c := &Chart{
		ID:          "c1",
		Data:        []Point{{"x": "a", "y": 1}},
		DataPreview: []Point{{"x": "a", "y": 1}},
	}

	cp := c.Clone()
	cp.Data[0]["y"] = 99
	cp.DataPreview[0]["y"] = 99

	if c.Data[0]["y"] != 1 || c.DataPreview[0]["y"] != 1 {
		t.Fatalf("clone mutation leaked into source chart")
	}
}
