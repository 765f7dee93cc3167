package domain

import "fmt"

// ProjectType is the kind of media a project holds.
type ProjectType string

const (
	ProjectTypeImages  ProjectType = "images"
	ProjectTypeVideos  ProjectType = "videos"
	ProjectTypeVolumes ProjectType = "volumes"
)

var projectTypes = []ProjectType{ProjectTypeImages, ProjectTypeVideos, ProjectTypeVolumes}

// ParseProjectType converts a string into a ProjectType, failing with a
// ValidationError on unknown values.
func ParseProjectType(s string) (ProjectType, error) {
	for _, t := range projectTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &ValidationError{Msg: fmt.Sprintf("unknown project type %q", s)}
}

func (t ProjectType) String() string { return string(t) }

// UnmarshalText lets ProjectType values in JSON and YAML documents fail early
// instead of carrying an unknown type into a backend call.
func (t *ProjectType) UnmarshalText(text []byte) error {
	parsed, err := ParseProjectType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t ProjectType) MarshalText() ([]byte, error) { return []byte(t), nil }

// GeometryType is the shape classification of a label class.
type GeometryType string

const (
	GeometryPolygon  GeometryType = "polygon"
	GeometryBitmap   GeometryType = "bitmap"
	GeometryBBox     GeometryType = "bbox"
	GeometryPoint    GeometryType = "point"
	GeometryPolyline GeometryType = "polyline"
)

var geometryTypes = []GeometryType{
	GeometryPolygon,
	GeometryBitmap,
	GeometryBBox,
	GeometryPoint,
	GeometryPolyline,
}

// ParseGeometryType converts a string into a GeometryType, failing with a
// ValidationError on unknown values.
func ParseGeometryType(s string) (GeometryType, error) {
	for _, g := range geometryTypes {
		if string(g) == s {
			return g, nil
		}
	}
	return "", &ValidationError{Msg: fmt.Sprintf("unknown geometry type %q", s)}
}

func (g GeometryType) String() string { return string(g) }

func (g *GeometryType) UnmarshalText(text []byte) error {
	parsed, err := ParseGeometryType(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func (g GeometryType) MarshalText() ([]byte, error) { return []byte(g), nil }

// Validate checks that a point list can express this geometry type. A point
// is a single vertex, a bbox is its min and max corners, a polyline needs at
// least two vertices and a polygon at least three. Bitmap geometry is pixel
// data, not vertices, so any point list passes.
func (g GeometryType) Validate(points []Point2D) error {
	n := len(points)
	switch g {
	case GeometryPoint:
		if n != 1 {
			return &ValidationError{Msg: fmt.Sprintf("point geometry needs exactly 1 vertex, got %d", n)}
		}
	case GeometryBBox:
		if n != 2 {
			return &ValidationError{Msg: fmt.Sprintf("bbox geometry needs exactly 2 corners, got %d", n)}
		}
	case GeometryPolyline:
		if n < 2 {
			return &ValidationError{Msg: fmt.Sprintf("polyline geometry needs at least 2 vertices, got %d", n)}
		}
	case GeometryPolygon:
		if n < 3 {
			return &ValidationError{Msg: fmt.Sprintf("polygon geometry needs at least 3 vertices, got %d", n)}
		}
	case GeometryBitmap:
		// no vertex constraint
	default:
		return &ValidationError{Msg: fmt.Sprintf("unknown geometry type %q", string(g))}
	}
	return nil
}
