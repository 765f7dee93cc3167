package backend

import (
	"context"

	"github.com/lewtec/labelbridge/domain"
)

// Unimplemented is an embeddable Backend whose every operation fails with a
// BackendError wrapping domain.ErrNotImplemented. Stub adapters embed it and
// override what they support.
type Unimplemented struct {
	BackendName string
}

func (u Unimplemented) notImplemented(op string) error {
	return &domain.BackendError{Backend: u.BackendName, Op: op, Err: domain.ErrNotImplemented}
}

func (u Unimplemented) Name() string { return u.BackendName }

func (u Unimplemented) CurrentUser(context.Context) (*domain.AnnotatorInfo, error) {
	return nil, u.notImplemented("current user")
}

func (u Unimplemented) CreateProject(context.Context, ProjectSpec) (*domain.ProjectInfo, error) {
	return nil, u.notImplemented("create project")
}

func (u Unimplemented) GetProject(context.Context, int) (*domain.ProjectInfo, error) {
	return nil, u.notImplemented("get project")
}

func (u Unimplemented) ListProjects(context.Context) ([]*domain.ProjectInfo, error) {
	return nil, u.notImplemented("list projects")
}

func (u Unimplemented) UpdateProject(context.Context, int, ProjectUpdate) (*domain.ProjectInfo, error) {
	return nil, u.notImplemented("update project")
}

func (u Unimplemented) DeleteProject(context.Context, int) error {
	return u.notImplemented("delete project")
}

func (u Unimplemented) CreateDataset(context.Context, int, DatasetSpec) (*domain.DatasetInfo, error) {
	return nil, u.notImplemented("create dataset")
}

func (u Unimplemented) GetDataset(context.Context, int) (*domain.DatasetInfo, error) {
	return nil, u.notImplemented("get dataset")
}

func (u Unimplemented) ListDatasets(context.Context, int) ([]*domain.DatasetInfo, error) {
	return nil, u.notImplemented("list datasets")
}

func (u Unimplemented) ListAllDatasets(context.Context) ([]*domain.DatasetInfo, error) {
	return nil, u.notImplemented("list all datasets")
}

func (u Unimplemented) UpdateDataset(context.Context, int, DatasetSpec) (*domain.DatasetInfo, error) {
	return nil, u.notImplemented("update dataset")
}

func (u Unimplemented) DeleteDataset(context.Context, int) error {
	return u.notImplemented("delete dataset")
}

func (u Unimplemented) UploadImage(context.Context, int, string, UploadSource) (*domain.ImageInfo, error) {
	return nil, u.notImplemented("upload image")
}

func (u Unimplemented) UploadImages(context.Context, int, []ImageUpload) ([]*domain.ImageInfo, error) {
	return nil, u.notImplemented("upload images")
}

func (u Unimplemented) GetImage(context.Context, int) (*domain.ImageInfo, error) {
	return nil, u.notImplemented("get image")
}

func (u Unimplemented) ListImages(context.Context, int) ([]*domain.ImageInfo, error) {
	return nil, u.notImplemented("list images")
}

func (u Unimplemented) DeleteImage(context.Context, int) error {
	return u.notImplemented("delete image")
}

func (u Unimplemented) CreateClass(context.Context, int, domain.LabelClassInfo) (*domain.LabelClassInfo, error) {
	return nil, u.notImplemented("create class")
}

func (u Unimplemented) CreateClasses(context.Context, int, []domain.LabelClassInfo) ([]*domain.LabelClassInfo, error) {
	return nil, u.notImplemented("create classes")
}

func (u Unimplemented) ListClasses(context.Context, int) ([]*domain.LabelClassInfo, error) {
	return nil, u.notImplemented("list classes")
}

func (u Unimplemented) CreateLabel(context.Context, LabelSpec) (*domain.LabelInfo, error) {
	return nil, u.notImplemented("create label")
}

func (u Unimplemented) CreateLabels(context.Context, []LabelSpec) ([]*domain.LabelInfo, error) {
	return nil, u.notImplemented("create labels")
}

func (u Unimplemented) CreateAnnotation(context.Context, int, []int, map[string]any) (*domain.AnnotationInfo, error) {
	return nil, u.notImplemented("create annotation")
}

func (u Unimplemented) GetAnnotation(context.Context, int) (*domain.AnnotationInfo, error) {
	return nil, u.notImplemented("get annotation")
}

func (u Unimplemented) ListAnnotations(context.Context, int) ([]*domain.AnnotationInfo, error) {
	return nil, u.notImplemented("list annotations")
}

func (u Unimplemented) DeleteAnnotation(context.Context, int) error {
	return u.notImplemented("delete annotation")
}

// Verify that Unimplemented satisfies the full contract
var _ Backend = Unimplemented{}
