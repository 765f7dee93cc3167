// Package annotator is the user-facing entry point. It opens a named backend
// and exposes the full operation set behind one handle, so callers never deal
// with adapter packages directly.
package annotator

import (
	"context"

	"github.com/lewtec/labelbridge/backend"
	"github.com/lewtec/labelbridge/domain"

	// Adapters register themselves on import.
	_ "github.com/lewtec/labelbridge/backend/labelstudio"
	_ "github.com/lewtec/labelbridge/backend/roboflow"
	_ "github.com/lewtec/labelbridge/backend/supervisely"
)

// Annotator wraps an opened backend. All calls go straight to the remote
// platform; the struct itself holds no project or dataset state.
type Annotator struct {
	backend backend.Backend
}

// New opens the named backend with the given credentials. The name must be
// one of backend.Backends().
func New(ctx context.Context, backendName string, opts backend.Options) (*Annotator, error) {
	b, err := backend.Open(ctx, backendName, opts)
	if err != nil {
		return nil, err
	}
	return &Annotator{backend: b}, nil
}

// Backend reports the name of the platform this annotator talks to.
func (a *Annotator) Backend() string { return a.backend.Name() }

func (a *Annotator) CurrentUser(ctx context.Context) (*domain.AnnotatorInfo, error) {
	return a.backend.CurrentUser(ctx)
}

func (a *Annotator) CreateProject(ctx context.Context, spec backend.ProjectSpec) (*domain.ProjectInfo, error) {
	return a.backend.CreateProject(ctx, spec)
}

func (a *Annotator) GetProject(ctx context.Context, projectID int) (*domain.ProjectInfo, error) {
	return a.backend.GetProject(ctx, projectID)
}

func (a *Annotator) ListProjects(ctx context.Context) ([]*domain.ProjectInfo, error) {
	return a.backend.ListProjects(ctx)
}

func (a *Annotator) UpdateProject(ctx context.Context, projectID int, update backend.ProjectUpdate) (*domain.ProjectInfo, error) {
	return a.backend.UpdateProject(ctx, projectID, update)
}

func (a *Annotator) DeleteProject(ctx context.Context, projectID int) error {
	return a.backend.DeleteProject(ctx, projectID)
}

func (a *Annotator) CreateDataset(ctx context.Context, projectID int, spec backend.DatasetSpec) (*domain.DatasetInfo, error) {
	return a.backend.CreateDataset(ctx, projectID, spec)
}

func (a *Annotator) GetDataset(ctx context.Context, datasetID int) (*domain.DatasetInfo, error) {
	return a.backend.GetDataset(ctx, datasetID)
}

func (a *Annotator) ListDatasets(ctx context.Context, projectID int) ([]*domain.DatasetInfo, error) {
	return a.backend.ListDatasets(ctx, projectID)
}

func (a *Annotator) ListAllDatasets(ctx context.Context) ([]*domain.DatasetInfo, error) {
	return a.backend.ListAllDatasets(ctx)
}

func (a *Annotator) UpdateDataset(ctx context.Context, datasetID int, spec backend.DatasetSpec) (*domain.DatasetInfo, error) {
	return a.backend.UpdateDataset(ctx, datasetID, spec)
}

func (a *Annotator) DeleteDataset(ctx context.Context, datasetID int) error {
	return a.backend.DeleteDataset(ctx, datasetID)
}

func (a *Annotator) UploadImage(ctx context.Context, datasetID int, name string, src backend.UploadSource) (*domain.ImageInfo, error) {
	return a.backend.UploadImage(ctx, datasetID, name, src)
}

func (a *Annotator) UploadImages(ctx context.Context, datasetID int, uploads []backend.ImageUpload) ([]*domain.ImageInfo, error) {
	return a.backend.UploadImages(ctx, datasetID, uploads)
}

func (a *Annotator) GetImage(ctx context.Context, imageID int) (*domain.ImageInfo, error) {
	return a.backend.GetImage(ctx, imageID)
}

func (a *Annotator) ListImages(ctx context.Context, datasetID int) ([]*domain.ImageInfo, error) {
	return a.backend.ListImages(ctx, datasetID)
}

func (a *Annotator) DeleteImage(ctx context.Context, imageID int) error {
	return a.backend.DeleteImage(ctx, imageID)
}

func (a *Annotator) CreateClass(ctx context.Context, projectID int, class domain.LabelClassInfo) (*domain.LabelClassInfo, error) {
	return a.backend.CreateClass(ctx, projectID, class)
}

func (a *Annotator) CreateClasses(ctx context.Context, projectID int, classes []domain.LabelClassInfo) ([]*domain.LabelClassInfo, error) {
	return a.backend.CreateClasses(ctx, projectID, classes)
}

func (a *Annotator) ListClasses(ctx context.Context, projectID int) ([]*domain.LabelClassInfo, error) {
	return a.backend.ListClasses(ctx, projectID)
}

func (a *Annotator) CreateLabel(ctx context.Context, spec backend.LabelSpec) (*domain.LabelInfo, error) {
	return a.backend.CreateLabel(ctx, spec)
}

func (a *Annotator) CreateLabels(ctx context.Context, specs []backend.LabelSpec) ([]*domain.LabelInfo, error) {
	return a.backend.CreateLabels(ctx, specs)
}

func (a *Annotator) CreateAnnotation(ctx context.Context, imageID int, labelIDs []int, meta map[string]any) (*domain.AnnotationInfo, error) {
	return a.backend.CreateAnnotation(ctx, imageID, labelIDs, meta)
}

func (a *Annotator) GetAnnotation(ctx context.Context, annotationID int) (*domain.AnnotationInfo, error) {
	return a.backend.GetAnnotation(ctx, annotationID)
}

func (a *Annotator) ListAnnotations(ctx context.Context, datasetID int) ([]*domain.AnnotationInfo, error) {
	return a.backend.ListAnnotations(ctx, datasetID)
}

func (a *Annotator) DeleteAnnotation(ctx context.Context, annotationID int) error {
	return a.backend.DeleteAnnotation(ctx, annotationID)
}
