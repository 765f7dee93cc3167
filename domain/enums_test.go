package domain

import (
	"encoding/json"
	"testing"
)

func TestParseProjectType(t *testing.T) {
	t.Run("accepts known values", func(t *testing.T) {
		for _, s := range []string{"images", "videos", "volumes"} {
			got, err := ParseProjectType(s)
			if err != nil {
				t.Fatalf("ParseProjectType(%q) error = %v", s, err)
			}
			if got.String() != s {
				t.Errorf("ParseProjectType(%q) = %q", s, got)
			}
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParseProjectType("point-clouds")
		if err == nil {
			t.Fatal("expected error for unknown project type")
		}
		if !IsValidation(err) {
			t.Errorf("expected ValidationError, got %T", err)
		}
	})
}

func TestParseGeometryType(t *testing.T) {
	t.Run("accepts known values", func(t *testing.T) {
		for _, s := range []string{"polygon", "bitmap", "bbox", "point", "polyline"} {
			got, err := ParseGeometryType(s)
			if err != nil {
				t.Fatalf("ParseGeometryType(%q) error = %v", s, err)
			}
			if got.String() != s {
				t.Errorf("ParseGeometryType(%q) = %q", s, got)
			}
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParseGeometryType("cuboid")
		if !IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})
}

func TestGeometryTypeUnmarshal(t *testing.T) {
	t.Run("valid value", func(t *testing.T) {
		var g GeometryType
		if err := json.Unmarshal([]byte(`"polygon"`), &g); err != nil {
			t.Fatalf("Unmarshal error = %v", err)
		}
		if g != GeometryPolygon {
			t.Errorf("got %q, want polygon", g)
		}
	})

	t.Run("unknown value fails", func(t *testing.T) {
		var g GeometryType
		if err := json.Unmarshal([]byte(`"cuboid"`), &g); err == nil {
			t.Error("expected error for unknown geometry type")
		}
	})
}

func TestGeometryTypeValidate(t *testing.T) {
	pts := func(n int) []Point2D {
		out := make([]Point2D, n)
		for i := range out {
			out[i] = Point2D{X: float64(i), Y: float64(i)}
		}
		return out
	}

	cases := []struct {
		name    string
		geom    GeometryType
		points  int
		wantErr bool
	}{
		{"point with one vertex", GeometryPoint, 1, false},
		{"point with two vertices", GeometryPoint, 2, true},
		{"bbox with two corners", GeometryBBox, 2, false},
		{"bbox with one corner", GeometryBBox, 1, true},
		{"polyline with two vertices", GeometryPolyline, 2, false},
		{"polyline with one vertex", GeometryPolyline, 1, true},
		{"polygon with three vertices", GeometryPolygon, 3, false},
		{"polygon with two vertices", GeometryPolygon, 2, true},
		{"bitmap is unconstrained", GeometryBitmap, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.geom.Validate(pts(tc.points))
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tc.wantErr && !IsValidation(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}
