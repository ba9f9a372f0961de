package sampler

import "image"

// Region is a named area of the face raster.
type Region struct {
	Name     string
	Contains func(x, y int) bool
}

// RegionExtractor partitions a w x h face raster into named sub-regions.
// Implementations return nil when they cannot produce regions for the input,
// letting the sampler fall through to the next strategy.
type RegionExtractor interface {
	Regions(w, h int, landmarks []image.Point) []Region
}

// meshSize is the landmark count of a full face mesh. Landmark-based
// extraction only engages with a complete mesh; partial point sets fall back
// to the geometric strategy.
const meshSize = 468

// Face-mesh landmark indices outlining each sampled area.
var meshRegionIndices = map[string][]int{
	"forehead":    {9, 10, 151, 337, 299, 333, 298, 301},
	"left_cheek":  {116, 117, 118, 119, 120, 121, 126, 142},
	"right_cheek": {345, 346, 347, 348, 349, 350, 355, 371},
	"nose_bridge": {6, 51, 48, 115, 131, 134, 102, 49, 220, 305, 331, 294},
	"chin":        {18, 175, 199, 200, 9, 10, 151, 175},
}

// regionOrder keeps extraction deterministic.
var regionOrder = []string{"forehead", "left_cheek", "right_cheek", "nose_bridge", "chin"}

// LandmarkRegions derives sampling polygons from face-mesh landmark points.
type LandmarkRegions struct{}

// Regions returns polygon regions for each anatomical area, or nil when the
// landmark set is not a full mesh.
func (LandmarkRegions) Regions(w, h int, landmarks []image.Point) []Region {
	if len(landmarks) < meshSize {
		return nil
	}
	out := make([]Region, 0, len(regionOrder))
	for _, name := range regionOrder {
		var poly []image.Point
		for _, idx := range meshRegionIndices[name] {
			if idx < len(landmarks) {
				poly = append(poly, landmarks[idx])
			}
		}
		if len(poly) < 3 {
			continue
		}
		p := poly
		out = append(out, Region{
			Name: name,
			Contains: func(x, y int) bool {
				return pointInPolygon(x, y, p)
			},
		})
	}
	return out
}

// GeometricRegions partitions the face with fixed proportional rectangles.
// Used when no landmark mesh is available.
type GeometricRegions struct{}

// Proportional region layout: x, y, width, height as fractions of the face
// bounds, chosen to avoid eyes, brows and mouth.
var geometricLayout = []struct {
	name       string
	x, y, w, h float64
}{
	{"forehead", 0.15, 0.08, 0.70, 0.25},
	{"left_cheek", 0.05, 0.30, 0.40, 0.35},
	{"right_cheek", 0.55, 0.30, 0.40, 0.35},
	{"nose_bridge", 0.35, 0.25, 0.30, 0.35},
	{"chin", 0.25, 0.65, 0.50, 0.25},
	{"upper_neck", 0.30, 0.85, 0.40, 0.15},
}

// Regions returns rectangle regions scaled to the raster size.
func (GeometricRegions) Regions(w, h int, _ []image.Point) []Region {
	out := make([]Region, 0, len(geometricLayout))
	for _, g := range geometricLayout {
		x0 := int(g.x * float64(w))
		y0 := int(g.y * float64(h))
		x1 := x0 + int(g.w*float64(w))
		y1 := y0 + int(g.h*float64(h))
		if x0 < 0 || y0 < 0 || x1 > w || y1 > h {
			continue
		}
		rx0, ry0, rx1, ry1 := x0, y0, x1, y1
		out = append(out, Region{
			Name: g.name,
			Contains: func(x, y int) bool {
				return x >= rx0 && x < rx1 && y >= ry0 && y < ry1
			},
		})
	}
	return out
}

// pointInPolygon tests polygon membership with the even-odd ray-crossing
// rule.
func pointInPolygon(x, y int, poly []image.Point) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		xi, yi := float64(poly[i].X), float64(poly[i].Y)
		xj, yj := float64(poly[j].X), float64(poly[j].Y)
		fx, fy := float64(x), float64(y)
		if (yi > fy) != (yj > fy) &&
			fx < (xj-xi)*(fy-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}
