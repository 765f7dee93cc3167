// Package backend defines the capability contract every annotation platform
// adapter implements, plus the registry adapters announce themselves to.
package backend

import (
	"context"

	"github.com/lewtec/labelbridge/domain"
)

// ProjectSpec describes a project to create.
type ProjectSpec struct {
	Name        string
	Description string
	Type        domain.ProjectType
	Classes     []domain.LabelClassInfo
}

// ProjectUpdate carries the fields of a project update. Empty strings leave
// the remote value untouched; a nil Classes slice leaves the class meta alone.
type ProjectUpdate struct {
	Name        string
	Description string
	Classes     []domain.LabelClassInfo
}

// DatasetSpec describes a dataset to create or the new values of an update.
type DatasetSpec struct {
	Name        string
	Description string
}

// LabelSpec describes a labeled object to create. Geometry is interpreted
// according to the geometry type of Class and validated against it before any
// backend call.
type LabelSpec struct {
	ImageID  int
	Class    domain.LabelClassInfo
	Text     string
	Geometry []domain.Point2D
}

// Validate checks the geometry against the class's geometry type.
func (s LabelSpec) Validate() error {
	return s.Class.GeometryType.Validate(s.Geometry)
}

// Backend is the operation set every annotation platform adapter supports.
// All calls are synchronous round-trips to the remote platform; nothing is
// cached locally, and no retries happen at this layer.
type Backend interface {
	// Name identifies the adapter ("supervisely", "roboflow", ...).
	Name() string

	// CurrentUser returns the profile the token authenticates as.
	CurrentUser(ctx context.Context) (*domain.AnnotatorInfo, error)

	CreateProject(ctx context.Context, spec ProjectSpec) (*domain.ProjectInfo, error)
	GetProject(ctx context.Context, projectID int) (*domain.ProjectInfo, error)
	ListProjects(ctx context.Context) ([]*domain.ProjectInfo, error)
	UpdateProject(ctx context.Context, projectID int, update ProjectUpdate) (*domain.ProjectInfo, error)
	DeleteProject(ctx context.Context, projectID int) error

	CreateDataset(ctx context.Context, projectID int, spec DatasetSpec) (*domain.DatasetInfo, error)
	GetDataset(ctx context.Context, datasetID int) (*domain.DatasetInfo, error)
	ListDatasets(ctx context.Context, projectID int) ([]*domain.DatasetInfo, error)
	ListAllDatasets(ctx context.Context) ([]*domain.DatasetInfo, error)
	UpdateDataset(ctx context.Context, datasetID int, spec DatasetSpec) (*domain.DatasetInfo, error)
	DeleteDataset(ctx context.Context, datasetID int) error

	UploadImage(ctx context.Context, datasetID int, name string, src UploadSource) (*domain.ImageInfo, error)
	UploadImages(ctx context.Context, datasetID int, uploads []ImageUpload) ([]*domain.ImageInfo, error)
	GetImage(ctx context.Context, imageID int) (*domain.ImageInfo, error)
	ListImages(ctx context.Context, datasetID int) ([]*domain.ImageInfo, error)
	DeleteImage(ctx context.Context, imageID int) error

	CreateClass(ctx context.Context, projectID int, class domain.LabelClassInfo) (*domain.LabelClassInfo, error)
	CreateClasses(ctx context.Context, projectID int, classes []domain.LabelClassInfo) ([]*domain.LabelClassInfo, error)
	ListClasses(ctx context.Context, projectID int) ([]*domain.LabelClassInfo, error)

	CreateLabel(ctx context.Context, spec LabelSpec) (*domain.LabelInfo, error)
	CreateLabels(ctx context.Context, specs []LabelSpec) ([]*domain.LabelInfo, error)

	CreateAnnotation(ctx context.Context, imageID int, labelIDs []int, meta map[string]any) (*domain.AnnotationInfo, error)
	GetAnnotation(ctx context.Context, annotationID int) (*domain.AnnotationInfo, error)
	ListAnnotations(ctx context.Context, datasetID int) ([]*domain.AnnotationInfo, error)
	DeleteAnnotation(ctx context.Context, annotationID int) error
}
