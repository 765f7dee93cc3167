package domain

// Point2D is a single vertex of a label geometry. Coordinates are in image
// pixel space, origin at the top-left corner.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// RGB is a color triple as the annotation platforms expect it.
type RGB [3]uint8

// AnnotatorInfo is the authenticated platform user.
type AnnotatorInfo struct {
	ID    int            `json:"id"`
	Name  string         `json:"name,omitempty"`
	Email string         `json:"email,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ProjectInfo is a project on the remote platform. The ID is always assigned
// by the backend, never locally.
type ProjectInfo struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Type        ProjectType    `json:"type"`
	Meta        map[string]any `json:"meta,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// DatasetInfo is a dataset inside a project. The parent project id travels in
// Meta under "project_id" because not every platform exposes it on the
// dataset record itself.
type DatasetInfo struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ProjectID reads the parent project id out of Meta. Returns 0 when absent.
func (d *DatasetInfo) ProjectID() int {
	if d.Meta == nil {
		return 0
	}
	switch v := d.Meta["project_id"].(type) {
	case int:
		return v
	case float64: // round-tripped through JSON
		return int(v)
	}
	return 0
}

// ImageInfo is an uploaded image. URL is the remote storage location the
// platform reports after the upload.
type ImageInfo struct {
	ID     int            `json:"id"`
	Name   string         `json:"name,omitempty"`
	URL    string         `json:"url"`
	Height int            `json:"height"`
	Width  int            `json:"width"`
	Meta   map[string]any `json:"meta,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// LabelClassInfo describes a class of annotated objects. ID is zero until the
// class has been created on a backend.
type LabelClassInfo struct {
	ID           int            `json:"id,omitempty"`
	Name         string         `json:"name"`
	Color        RGB            `json:"color"`
	GeometryType GeometryType   `json:"geometryType"`
	Meta         map[string]any `json:"meta,omitempty"`
}

// LabelInfo is a single labeled object on an image. How Geometry is
// interpreted depends on the geometry type of the class it references.
type LabelInfo struct {
	ID       int       `json:"id"`
	ClassID  int       `json:"classId,omitempty"`
	Text     string    `json:"text,omitempty"`
	Geometry []Point2D `json:"geometry"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// AnnotationInfo links an image to its set of labels. Labels are referenced
// by id only, mirroring the relational model of the remote platforms.
type AnnotationInfo struct {
	ID       int            `json:"id"`
	ImageID  int            `json:"imageId"`
	LabelIDs []int          `json:"labelIds,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
