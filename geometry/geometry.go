// Package geometry provides the shape value objects labels are made of.
// Area, length, distance and intersection math is delegated to the
// simplefeatures library; this package only owns construction and validation.
package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/lewtec/labelbridge/domain"
)

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func wktPoints(points []domain.Point2D) string {
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(formatCoord(p.X))
		b.WriteByte(' ')
		b.WriteString(formatCoord(p.Y))
	}
	return b.String()
}

// Point is a single 2D location.
type Point struct {
	X, Y float64

	g geom.Geometry
}

// NewPoint builds a point. Coordinates must be finite.
func NewPoint(x, y float64) (Point, error) {
	g, err := geom.UnmarshalWKT(fmt.Sprintf("POINT(%s %s)", formatCoord(x), formatCoord(y)))
	if err != nil {
		return Point{}, domain.Validationf("invalid point (%v, %v): %v", x, y, err)
	}
	return Point{X: x, Y: y, g: g}, nil
}

// Distance is the planar distance to another point.
func (p Point) Distance(other Point) float64 {
	d, _ := geom.Distance(p.g, other.g)
	return d
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%s, %s)", formatCoord(p.X), formatCoord(p.Y))
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	XMin, YMin, XMax, YMax float64

	g geom.Geometry
}

// NewBBox builds a bounding box from its min and max corners.
func NewBBox(xMin, yMin, xMax, yMax float64) (BBox, error) {
	if xMin > xMax || yMin > yMax {
		return BBox{}, domain.Validationf("bbox min corner (%v, %v) exceeds max corner (%v, %v)", xMin, yMin, xMax, yMax)
	}
	wkt := fmt.Sprintf("POLYGON((%s %s,%s %s,%s %s,%s %s,%s %s))",
		formatCoord(xMin), formatCoord(yMin),
		formatCoord(xMax), formatCoord(yMin),
		formatCoord(xMax), formatCoord(yMax),
		formatCoord(xMin), formatCoord(yMax),
		formatCoord(xMin), formatCoord(yMin),
	)
	g, err := geom.UnmarshalWKT(wkt)
	if err != nil {
		return BBox{}, domain.Validationf("invalid bbox: %v", err)
	}
	return BBox{XMin: xMin, YMin: yMin, XMax: xMax, YMax: yMax, g: g}, nil
}

// Area of the box.
func (b BBox) Area() float64 { return b.g.Area() }

// Intersects reports whether the boxes share any point.
func (b BBox) Intersects(other BBox) bool { return geom.Intersects(b.g, other.g) }

// Union returns the smallest box covering both.
func (b BBox) Union(other BBox) BBox {
	u, _ := NewBBox(
		min(b.XMin, other.XMin),
		min(b.YMin, other.YMin),
		max(b.XMax, other.XMax),
		max(b.YMax, other.YMax),
	)
	return u
}

// Points returns the min and max corners in label geometry form.
func (b BBox) Points() []domain.Point2D {
	return []domain.Point2D{{X: b.XMin, Y: b.YMin}, {X: b.XMax, Y: b.YMax}}
}

func (b BBox) String() string {
	return fmt.Sprintf("BBox(%s, %s, %s, %s)",
		formatCoord(b.XMin), formatCoord(b.YMin), formatCoord(b.XMax), formatCoord(b.YMax))
}

// Polygon is a simple closed ring of vertices.
type Polygon struct {
	Vertices []domain.Point2D

	g geom.Geometry
}

// NewPolygon builds a polygon from at least three vertices. The ring is
// closed automatically when the last vertex differs from the first.
func NewPolygon(vertices []domain.Point2D) (Polygon, error) {
	if err := domain.GeometryPolygon.Validate(vertices); err != nil {
		return Polygon{}, err
	}
	ring := vertices
	if ring[0] != ring[len(ring)-1] {
		ring = append(append([]domain.Point2D{}, ring...), ring[0])
	}
	g, err := geom.UnmarshalWKT(fmt.Sprintf("POLYGON((%s))", wktPoints(ring)))
	if err != nil {
		return Polygon{}, domain.Validationf("invalid polygon: %v", err)
	}
	return Polygon{Vertices: vertices, g: g}, nil
}

// Area of the polygon.
func (p Polygon) Area() float64 { return p.g.Area() }

// Intersects reports whether the polygons share any point.
func (p Polygon) Intersects(other Polygon) bool { return geom.Intersects(p.g, other.g) }

// Union merges the polygons into a single geometry.
func (p Polygon) Union(other Polygon) (geom.Geometry, error) {
	return geom.Union(p.g, other.g)
}

func (p Polygon) String() string {
	return fmt.Sprintf("Polygon(%d vertices, area=%s)", len(p.Vertices), formatCoord(p.Area()))
}

// Polyline is an open chain of vertices.
type Polyline struct {
	Vertices []domain.Point2D

	g geom.Geometry
}

// NewPolyline builds a polyline from at least two vertices.
func NewPolyline(vertices []domain.Point2D) (Polyline, error) {
	if err := domain.GeometryPolyline.Validate(vertices); err != nil {
		return Polyline{}, err
	}
	g, err := geom.UnmarshalWKT(fmt.Sprintf("LINESTRING(%s)", wktPoints(vertices)))
	if err != nil {
		return Polyline{}, domain.Validationf("invalid polyline: %v", err)
	}
	return Polyline{Vertices: vertices, g: g}, nil
}

// Length is the total planar length of the chain.
func (l Polyline) Length() float64 { return l.g.Length() }

// Intersects reports whether the polylines cross or touch.
func (l Polyline) Intersects(other Polyline) bool { return geom.Intersects(l.g, other.g) }

func (l Polyline) String() string {
	return fmt.Sprintf("Polyline(%d vertices, length=%s)", len(l.Vertices), formatCoord(l.Length()))
}
