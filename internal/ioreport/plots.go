package ioreport

import (
	"os"
	"sort"
	"strconv"

	"github.com/edmetrics/trendshift/pkg/study"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const histogramBins = 16

// earningsHistogram writes a faceted histogram of 10-year earnings, one
// panel per calendar year.
func earningsHistogram(rows []study.ModelRow, path string) error {
	byYear := make(map[int][]float64)
	for _, row := range rows {
		byYear[row.Year] = append(byYear[row.Year], row.Earnings)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	var panels []*plot.Plot
	for _, year := range years {
		p := plot.New()
		p.Title.Text = strconv.Itoa(year)
		p.X.Label.Text = "median earnings, 10y ($)"
		p.Y.Label.Text = "institutions"

		h, err := plotter.NewHist(plotter.Values(byYear[year]), histogramBins)
		if err != nil {
			return PlotError(path, err)
		}
		p.Add(h)
		panels = append(panels, p)
	}

	return writeGrid(panels, 3, path)
}

// interestScatter writes a two-panel scatter of standardized interest
// against earnings, pre-disclosure on the left, post on the right.
func interestScatter(rows []study.ModelRow, path string) error {
	groups := []string{study.GroupPre, study.GroupPost}

	var panels []*plot.Plot
	for _, group := range groups {
		var xys plotter.XYs
		for _, row := range rows {
			if row.Group != group {
				continue
			}
			xys = append(xys, plotter.XY{X: row.Earnings, Y: row.ZIndex})
		}

		p := plot.New()
		p.Title.Text = group
		p.X.Label.Text = "median earnings, 10y ($)"
		p.Y.Label.Text = "standardized interest"

		s, err := plotter.NewScatter(xys)
		if err != nil {
			return PlotError(path, err)
		}
		s.Radius = vg.Points(1.5)
		p.Add(s)
		panels = append(panels, p)
	}

	return writeGrid(panels, 2, path)
}

// writeGrid lays panels out in a fixed-column grid and writes a PNG.
func writeGrid(panels []*plot.Plot, cols int, path string) error {
	if len(panels) == 0 {
		return nil
	}
	if cols > len(panels) {
		cols = len(panels)
	}
	rows := (len(panels) + cols - 1) / cols

	grid := make([][]*plot.Plot, rows)
	for i := range grid {
		grid[i] = make([]*plot.Plot, cols)
		for j := range grid[i] {
			idx := i*cols + j
			if idx < len(panels) {
				grid[i][j] = panels[idx]
			}
		}
	}

	img := vgimg.New(vg.Points(320*float64(cols)), vg.Points(260*float64(rows)))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	canvases := plot.Align(grid, tiles, dc)
	for i := range grid {
		for j := range grid[i] {
			if grid[i][j] != nil {
				grid[i][j].Draw(canvases[i][j])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return PlotError(path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(f); err != nil {
		return PlotError(path, err)
	}
	return nil
}
