package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Marker layers, in drawing order.
const (
	LayerActive     = "active"
	LayerEndingSoon = "ending soon"
	LayerPreshow    = "preshow"
	LayerOffer      = "offer"
)

var layerOrder = []string{LayerActive, LayerEndingSoon, LayerPreshow, LayerOffer}

var layerColors = map[string]string{
	LayerActive:     "#f2a33a",
	LayerEndingSoon: "#e0474c",
	LayerPreshow:    "#9aa5b1",
	LayerOffer:      "#7b5cd6",
}

// MapPoint is one marker on the rendered map.
type MapPoint struct {
	Name  string
	Lat   float64
	Lng   float64
	Layer string
}

// RenderVenueMap writes a standalone HTML page with one scatter series per
// marker layer. Points with an unknown layer are skipped.
func RenderVenueMap(w io.Writer, title string, points []MapPoint) error {
	byLayer := make(map[string][]opts.GeoData, len(layerOrder))
	for _, p := range points {
		if _, ok := layerColors[p.Layer]; !ok {
			continue
		}
		byLayer[p.Layer] = append(byLayer[p.Layer], opts.GeoData{
			Name:  p.Name,
			Value: []float64{p.Lng, p.Lat},
		})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1000px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d promotions on the map", len(points)),
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	for _, layer := range layerOrder {
		data := byLayer[layer]
		if len(data) == 0 {
			continue
		}
		geo.AddSeries(layer, types.ChartScatter, data,
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: layerColors[layer],
			}),
		)
	}

	if err := geo.Render(w); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}
