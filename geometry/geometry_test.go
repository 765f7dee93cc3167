package geometry

import (
	"image"
	"math"
	"testing"

	"github.com/lewtec/labelbridge/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPoint(t *testing.T) {
	t.Run("distance", func(t *testing.T) {
		a, err := NewPoint(0, 0)
		if err != nil {
			t.Fatalf("NewPoint() error = %v", err)
		}
		b, err := NewPoint(3, 4)
		if err != nil {
			t.Fatalf("NewPoint() error = %v", err)
		}
		if d := a.Distance(b); !almostEqual(d, 5) {
			t.Errorf("Distance = %v, want 5", d)
		}
	})
}

func TestBBox(t *testing.T) {
	t.Run("area", func(t *testing.T) {
		b, err := NewBBox(10, 20, 30, 40)
		if err != nil {
			t.Fatalf("NewBBox() error = %v", err)
		}
		if a := b.Area(); !almostEqual(a, 400) {
			t.Errorf("Area = %v, want 400", a)
		}
	})

	t.Run("rejects inverted corners", func(t *testing.T) {
		_, err := NewBBox(30, 20, 10, 40)
		if !domain.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("intersects", func(t *testing.T) {
		a, _ := NewBBox(0, 0, 10, 10)
		b, _ := NewBBox(5, 5, 15, 15)
		c, _ := NewBBox(20, 20, 30, 30)

		if !a.Intersects(b) {
			t.Error("overlapping boxes should intersect")
		}
		if a.Intersects(c) {
			t.Error("disjoint boxes should not intersect")
		}
	})

	t.Run("union covers both", func(t *testing.T) {
		a, _ := NewBBox(0, 0, 10, 10)
		b, _ := NewBBox(5, 5, 15, 20)

		u := a.Union(b)
		if u.XMin != 0 || u.YMin != 0 || u.XMax != 15 || u.YMax != 20 {
			t.Errorf("Union = %+v", u)
		}
	})

	t.Run("points are min then max corner", func(t *testing.T) {
		b, _ := NewBBox(1, 2, 3, 4)
		pts := b.Points()
		if len(pts) != 2 || pts[0] != (domain.Point2D{X: 1, Y: 2}) || pts[1] != (domain.Point2D{X: 3, Y: 4}) {
			t.Errorf("Points = %v", pts)
		}
	})
}

func TestPolygon(t *testing.T) {
	square := []domain.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	t.Run("area of unit square", func(t *testing.T) {
		p, err := NewPolygon(square)
		if err != nil {
			t.Fatalf("NewPolygon() error = %v", err)
		}
		if a := p.Area(); !almostEqual(a, 1) {
			t.Errorf("Area = %v, want 1", a)
		}
	})

	t.Run("accepts pre-closed ring", func(t *testing.T) {
		closed := append(append([]domain.Point2D{}, square...), square[0])
		p, err := NewPolygon(closed)
		if err != nil {
			t.Fatalf("NewPolygon() error = %v", err)
		}
		if a := p.Area(); !almostEqual(a, 1) {
			t.Errorf("Area = %v, want 1", a)
		}
	})

	t.Run("rejects fewer than three vertices", func(t *testing.T) {
		_, err := NewPolygon(square[:2])
		if !domain.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("intersects", func(t *testing.T) {
		a, _ := NewPolygon(square)
		b, _ := NewPolygon([]domain.Point2D{{X: 0.5, Y: 0.5}, {X: 2, Y: 0.5}, {X: 2, Y: 2}})
		c, _ := NewPolygon([]domain.Point2D{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}})

		if !a.Intersects(b) {
			t.Error("overlapping polygons should intersect")
		}
		if a.Intersects(c) {
			t.Error("disjoint polygons should not intersect")
		}
	})

	t.Run("union of disjoint polygons keeps total area", func(t *testing.T) {
		a, _ := NewPolygon(square)
		b, _ := NewPolygon([]domain.Point2D{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}})

		u, err := a.Union(b)
		if err != nil {
			t.Fatalf("Union() error = %v", err)
		}
		if area := u.Area(); !almostEqual(area, 2) {
			t.Errorf("union area = %v, want 2", area)
		}
	})
}

func TestPolyline(t *testing.T) {
	t.Run("length", func(t *testing.T) {
		l, err := NewPolyline([]domain.Point2D{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 14}})
		if err != nil {
			t.Fatalf("NewPolyline() error = %v", err)
		}
		if got := l.Length(); !almostEqual(got, 15) {
			t.Errorf("Length = %v, want 15", got)
		}
	})

	t.Run("rejects single vertex", func(t *testing.T) {
		_, err := NewPolyline([]domain.Point2D{{X: 0, Y: 0}})
		if !domain.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("crossing polylines intersect", func(t *testing.T) {
		a, _ := NewPolyline([]domain.Point2D{{X: 0, Y: 0}, {X: 10, Y: 10}})
		b, _ := NewPolyline([]domain.Point2D{{X: 0, Y: 10}, {X: 10, Y: 0}})
		c, _ := NewPolyline([]domain.Point2D{{X: 20, Y: 20}, {X: 30, Y: 20}})

		if !a.Intersects(b) {
			t.Error("crossing polylines should intersect")
		}
		if a.Intersects(c) {
			t.Error("disjoint polylines should not intersect")
		}
	})
}

func TestBitmap(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 8, 6))
	b := NewBitmap(m)

	if b.Width() != 8 || b.Height() != 6 {
		t.Errorf("size = %dx%d, want 8x6", b.Width(), b.Height())
	}
}
