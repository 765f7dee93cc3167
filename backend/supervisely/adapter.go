// Package supervisely adapts the common annotation contract onto the
// Supervisely public API. It is the one functional backend; everything it
// returns is re-wrapped into the common domain records at a single
// translation boundary per entity type.
package supervisely

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"net/url"
	"path"
	"path/filepath"

	billy "github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lewtec/labelbridge/backend"
	"github.com/lewtec/labelbridge/domain"
)

// Name is the identifier this adapter registers under.
const Name = "supervisely"

func init() {
	backend.Register(Name, New)
}

// geometryToShape maps common geometry types onto the platform's shape names.
var geometryToShape = map[domain.GeometryType]string{
	domain.GeometryPolygon:  "polygon",
	domain.GeometryBitmap:   "bitmap",
	domain.GeometryBBox:     "rectangle",
	domain.GeometryPoint:    "point",
	domain.GeometryPolyline: "line",
}

var shapeToGeometry = func() map[string]domain.GeometryType {
	m := make(map[string]domain.GeometryType, len(geometryToShape))
	for k, v := range geometryToShape {
		m[v] = k
	}
	return m
}()

// Adapter implements backend.Backend against Supervisely. It holds the
// authenticated session and the resolved workspace; project and dataset ids
// are always explicit parameters, never adapter state.
type Adapter struct {
	client *client
	fs     billy.Filesystem
	log    *logrus.Entry

	user        *domain.AnnotatorInfo
	teamID      int
	workspaceID int
}

// New authenticates with the platform, resolves the caller's first team and
// first workspace, and returns a ready adapter. A failed profile lookup is an
// AuthenticationError, never a silent nil.
func New(ctx context.Context, opts backend.Options) (backend.Backend, error) {
	return newAdapter(ctx, opts, osfs.New("/"))
}

func newAdapter(ctx context.Context, opts backend.Options, fs billy.Filesystem) (*Adapter, error) {
	c := newClient(opts.BaseURL, opts.Token)

	user, err := c.usersMe(ctx)
	if err != nil {
		return nil, &domain.AuthenticationError{Backend: Name, Reason: err.Error()}
	}

	a := &Adapter{
		client: c,
		fs:     fs,
		log:    logrus.WithField("backend", Name),
		user:   toDomainUser(user),
	}
	if err := a.resolveWorkspace(ctx); err != nil {
		return nil, err
	}
	a.log.Infof("logged in as %s (workspace %d)", a.user.Email, a.workspaceID)
	return a, nil
}

// resolveWorkspace picks the first team and its first workspace. The platform
// scopes projects to workspaces but the common contract has no workspace
// concept, so the adapter pins one for its lifetime.
func (a *Adapter) resolveWorkspace(ctx context.Context) error {
	var teams struct {
		Entities []teamResponse `json:"entities"`
	}
	if err := a.client.get(ctx, "teams.list", nil, &teams); err != nil {
		return translateErr("list teams", "team", 0, err)
	}
	if len(teams.Entities) == 0 {
		return &domain.BackendError{Backend: Name, Op: "resolve workspace", Err: fmt.Errorf("account has no teams")}
	}
	a.teamID = teams.Entities[0].ID

	var workspaces struct {
		Entities []workspaceResponse `json:"entities"`
	}
	if err := a.client.get(ctx, "workspaces.list", idValues("teamId", a.teamID), &workspaces); err != nil {
		return translateErr("list workspaces", "team", a.teamID, err)
	}
	if len(workspaces.Entities) == 0 {
		return &domain.BackendError{Backend: Name, Op: "resolve workspace", Err: fmt.Errorf("team %d has no workspaces", a.teamID)}
	}
	a.workspaceID = workspaces.Entities[0].ID
	return nil
}

func (a *Adapter) Name() string { return Name }

// CurrentUser returns the profile resolved at construction time.
func (a *Adapter) CurrentUser(ctx context.Context) (*domain.AnnotatorInfo, error) {
	return a.user, nil
}

func (a *Adapter) CreateProject(ctx context.Context, spec backend.ProjectSpec) (*domain.ProjectInfo, error) {
	if spec.Name == "" {
		return nil, domain.Validationf("create project: name must not be empty")
	}
	projectType := spec.Type
	if projectType == "" {
		projectType = domain.ProjectTypeImages
	}

	var proj projectResponse
	err := a.client.post(ctx, "projects.add", map[string]any{
		"workspaceId": a.workspaceID,
		"name":        spec.Name,
		"description": spec.Description,
		"type":        projectType.String(),
	}, &proj)
	if err != nil {
		return nil, translateErr("create project", "workspace", a.workspaceID, err)
	}

	if len(spec.Classes) > 0 {
		if err := a.updateClassMeta(ctx, proj.ID, spec.Classes); err != nil {
			return nil, err
		}
	}

	// Every new project starts with a default dataset carrying its name.
	if _, err := a.CreateDataset(ctx, proj.ID, backend.DatasetSpec{Name: spec.Name}); err != nil {
		return nil, err
	}

	a.log.Infof("created project %q (id=%d)", proj.Name, proj.ID)

	info := toDomainProject(proj)
	if len(spec.Classes) > 0 {
		info.Meta = map[string]any{"classes": spec.Classes}
	}
	return info, nil
}

func (a *Adapter) GetProject(ctx context.Context, projectID int) (*domain.ProjectInfo, error) {
	var proj projectResponse
	if err := a.client.get(ctx, "projects.info", idValues("id", projectID), &proj); err != nil {
		return nil, translateErr("get project", "project", projectID, err)
	}
	return toDomainProject(proj), nil
}

func (a *Adapter) ListProjects(ctx context.Context) ([]*domain.ProjectInfo, error) {
	var out struct {
		Entities []projectResponse `json:"entities"`
	}
	if err := a.client.get(ctx, "projects.list", idValues("workspaceId", a.workspaceID), &out); err != nil {
		return nil, translateErr("list projects", "workspace", a.workspaceID, err)
	}
	projects := make([]*domain.ProjectInfo, len(out.Entities))
	for i, proj := range out.Entities {
		projects[i] = toDomainProject(proj)
	}
	return projects, nil
}

func (a *Adapter) UpdateProject(ctx context.Context, projectID int, update backend.ProjectUpdate) (*domain.ProjectInfo, error) {
	body := map[string]any{"id": projectID}
	if update.Name != "" {
		body["name"] = update.Name
	}
	if update.Description != "" {
		body["description"] = update.Description
	}
	if err := a.client.post(ctx, "projects.edit", body, nil); err != nil {
		return nil, translateErr("update project", "project", projectID, err)
	}
	if update.Classes != nil {
		if err := a.updateClassMeta(ctx, projectID, update.Classes); err != nil {
			return nil, err
		}
	}
	return a.GetProject(ctx, projectID)
}

func (a *Adapter) DeleteProject(ctx context.Context, projectID int) error {
	err := a.client.post(ctx, "projects.remove", map[string]any{"id": projectID}, nil)
	return translateErr("delete project", "project", projectID, err)
}

func (a *Adapter) CreateDataset(ctx context.Context, projectID int, spec backend.DatasetSpec) (*domain.DatasetInfo, error) {
	if spec.Name == "" {
		return nil, domain.Validationf("create dataset: name must not be empty")
	}
	var ds datasetResponse
	err := a.client.post(ctx, "datasets.add", map[string]any{
		"projectId":   projectID,
		"name":        spec.Name,
		"description": spec.Description,
	}, &ds)
	if err != nil {
		return nil, translateErr("create dataset", "project", projectID, err)
	}
	return toDomainDataset(ds, projectID), nil
}

func (a *Adapter) GetDataset(ctx context.Context, datasetID int) (*domain.DatasetInfo, error) {
	var ds datasetResponse
	if err := a.client.get(ctx, "datasets.info", idValues("id", datasetID), &ds); err != nil {
		return nil, translateErr("get dataset", "dataset", datasetID, err)
	}
	return toDomainDataset(ds, ds.ProjectID), nil
}

func (a *Adapter) ListDatasets(ctx context.Context, projectID int) ([]*domain.DatasetInfo, error) {
	var out struct {
		Entities []datasetResponse `json:"entities"`
	}
	if err := a.client.get(ctx, "datasets.list", idValues("projectId", projectID), &out); err != nil {
		return nil, translateErr("list datasets", "project", projectID, err)
	}
	datasets := make([]*domain.DatasetInfo, len(out.Entities))
	for i, ds := range out.Entities {
		datasets[i] = toDomainDataset(ds, projectID)
	}
	return datasets, nil
}

func (a *Adapter) ListAllDatasets(ctx context.Context) ([]*domain.DatasetInfo, error) {
	var out struct {
		Entities []datasetResponse `json:"entities"`
	}
	if err := a.client.get(ctx, "datasets.list-all", nil, &out); err != nil {
		return nil, translateErr("list all datasets", "workspace", a.workspaceID, err)
	}
	datasets := make([]*domain.DatasetInfo, len(out.Entities))
	for i, ds := range out.Entities {
		datasets[i] = toDomainDataset(ds, ds.ProjectID)
	}
	return datasets, nil
}

func (a *Adapter) UpdateDataset(ctx context.Context, datasetID int, spec backend.DatasetSpec) (*domain.DatasetInfo, error) {
	body := map[string]any{"id": datasetID}
	if spec.Name != "" {
		body["name"] = spec.Name
	}
	if spec.Description != "" {
		body["description"] = spec.Description
	}
	if err := a.client.post(ctx, "datasets.edit", body, nil); err != nil {
		return nil, translateErr("update dataset", "dataset", datasetID, err)
	}
	return a.GetDataset(ctx, datasetID)
}

func (a *Adapter) DeleteDataset(ctx context.Context, datasetID int) error {
	err := a.client.post(ctx, "datasets.remove", map[string]any{"id": datasetID}, nil)
	return translateErr("delete dataset", "dataset", datasetID, err)
}

func (a *Adapter) UploadImage(ctx context.Context, datasetID int, name string, src backend.UploadSource) (*domain.ImageInfo, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	var img imageResponse
	switch {
	case src.Path != "":
		if name == "" {
			name = filepath.Base(src.Path)
		}
		data, err := a.readFile(src.Path)
		if err != nil {
			return nil, &domain.BackendError{Backend: Name, Op: "upload image", Err: err}
		}
		err = a.client.upload(ctx, "images.upload", map[string]string{
			"datasetId": fmt.Sprint(datasetID),
			"name":      name,
		}, name, data, &img)
		if err != nil {
			return nil, translateErr("upload image", "dataset", datasetID, err)
		}

	case src.Link != "":
		if name == "" {
			name = nameFromLink(src.Link)
		}
		err := a.client.post(ctx, "images.add", map[string]any{
			"datasetId": datasetID,
			"name":      name,
			"link":      src.Link,
		}, &img)
		if err != nil {
			return nil, translateErr("upload image", "dataset", datasetID, err)
		}

	default:
		if name == "" {
			name = uuid.New().String() + ".png"
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, src.Image); err != nil {
			return nil, &domain.BackendError{Backend: Name, Op: "upload image", Err: err}
		}
		err := a.client.upload(ctx, "images.upload", map[string]string{
			"datasetId": fmt.Sprint(datasetID),
			"name":      name,
		}, name, buf.Bytes(), &img)
		if err != nil {
			return nil, translateErr("upload image", "dataset", datasetID, err)
		}
	}

	return toDomainImage(img), nil
}

// UploadImages uploads a batch one element at a time and fails fast: images
// uploaded before the failing element stay on the platform.
func (a *Adapter) UploadImages(ctx context.Context, datasetID int, uploads []backend.ImageUpload) ([]*domain.ImageInfo, error) {
	for i, up := range uploads {
		if err := up.Source.Validate(); err != nil {
			return nil, fmt.Errorf("upload %d: %w", i, err)
		}
	}
	images := make([]*domain.ImageInfo, 0, len(uploads))
	for i, up := range uploads {
		img, err := a.UploadImage(ctx, datasetID, up.Name, up.Source)
		if err != nil {
			return nil, fmt.Errorf("upload %d: %w", i, err)
		}
		images = append(images, img)
	}
	return images, nil
}

func (a *Adapter) GetImage(ctx context.Context, imageID int) (*domain.ImageInfo, error) {
	var img imageResponse
	if err := a.client.get(ctx, "images.info", idValues("id", imageID), &img); err != nil {
		return nil, translateErr("get image", "image", imageID, err)
	}
	return toDomainImage(img), nil
}

func (a *Adapter) ListImages(ctx context.Context, datasetID int) ([]*domain.ImageInfo, error) {
	var out struct {
		Entities []imageResponse `json:"entities"`
	}
	if err := a.client.get(ctx, "images.list", idValues("datasetId", datasetID), &out); err != nil {
		return nil, translateErr("list images", "dataset", datasetID, err)
	}
	images := make([]*domain.ImageInfo, len(out.Entities))
	for i, img := range out.Entities {
		images[i] = toDomainImage(img)
	}
	return images, nil
}

func (a *Adapter) DeleteImage(ctx context.Context, imageID int) error {
	err := a.client.post(ctx, "images.remove", map[string]any{"id": imageID}, nil)
	return translateErr("delete image", "image", imageID, err)
}

func (a *Adapter) CreateClass(ctx context.Context, projectID int, class domain.LabelClassInfo) (*domain.LabelClassInfo, error) {
	if class.Name == "" {
		return nil, domain.Validationf("create class: name must not be empty")
	}
	shape, ok := geometryToShape[class.GeometryType]
	if !ok {
		return nil, domain.Validationf("create class: unknown geometry type %q", class.GeometryType)
	}
	var resp classResponse
	err := a.client.post(ctx, "projects.classes.add", map[string]any{
		"projectId": projectID,
		"title":     class.Name,
		"shape":     shape,
		"color":     []int{int(class.Color[0]), int(class.Color[1]), int(class.Color[2])},
	}, &resp)
	if err != nil {
		return nil, translateErr("create class", "project", projectID, err)
	}
	return toDomainClass(resp), nil
}

func (a *Adapter) CreateClasses(ctx context.Context, projectID int, classes []domain.LabelClassInfo) ([]*domain.LabelClassInfo, error) {
	created := make([]*domain.LabelClassInfo, 0, len(classes))
	for _, class := range classes {
		c, err := a.CreateClass(ctx, projectID, class)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}
	return created, nil
}

func (a *Adapter) ListClasses(ctx context.Context, projectID int) ([]*domain.LabelClassInfo, error) {
	var out struct {
		Classes []classResponse `json:"classes"`
	}
	if err := a.client.get(ctx, "projects.meta", idValues("id", projectID), &out); err != nil {
		return nil, translateErr("list classes", "project", projectID, err)
	}
	classes := make([]*domain.LabelClassInfo, len(out.Classes))
	for i, c := range out.Classes {
		classes[i] = toDomainClass(c)
	}
	return classes, nil
}

func (a *Adapter) CreateLabel(ctx context.Context, spec backend.LabelSpec) (*domain.LabelInfo, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Class.ID == 0 {
		return nil, domain.Validationf("create label: class %q has no id, create it first", spec.Class.Name)
	}

	exterior := make([][2]float64, len(spec.Geometry))
	for i, p := range spec.Geometry {
		exterior[i] = [2]float64{p.X, p.Y}
	}

	var fig figureResponse
	err := a.client.post(ctx, "figures.add", map[string]any{
		"imageId":     spec.ImageID,
		"classId":     spec.Class.ID,
		"description": spec.Text,
		"geometry":    geometryWire{Points: pointsWire{Exterior: exterior}},
	}, &fig)
	if err != nil {
		return nil, translateErr("create label", "image", spec.ImageID, err)
	}
	return toDomainLabel(fig), nil
}

func (a *Adapter) CreateLabels(ctx context.Context, specs []backend.LabelSpec) ([]*domain.LabelInfo, error) {
	labels := make([]*domain.LabelInfo, 0, len(specs))
	for i, spec := range specs {
		label, err := a.CreateLabel(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("label %d: %w", i, err)
		}
		labels = append(labels, label)
	}
	return labels, nil
}

func (a *Adapter) CreateAnnotation(ctx context.Context, imageID int, labelIDs []int, meta map[string]any) (*domain.AnnotationInfo, error) {
	var ann annotationResponse
	err := a.client.post(ctx, "annotations.add", map[string]any{
		"imageId":   imageID,
		"figureIds": labelIDs,
		"meta":      meta,
	}, &ann)
	if err != nil {
		return nil, translateErr("create annotation", "image", imageID, err)
	}
	return toDomainAnnotation(ann), nil
}

func (a *Adapter) GetAnnotation(ctx context.Context, annotationID int) (*domain.AnnotationInfo, error) {
	var ann annotationResponse
	if err := a.client.get(ctx, "annotations.info", idValues("id", annotationID), &ann); err != nil {
		return nil, translateErr("get annotation", "annotation", annotationID, err)
	}
	return toDomainAnnotation(ann), nil
}

func (a *Adapter) ListAnnotations(ctx context.Context, datasetID int) ([]*domain.AnnotationInfo, error) {
	var out struct {
		Entities []annotationResponse `json:"entities"`
	}
	if err := a.client.get(ctx, "annotations.list", idValues("datasetId", datasetID), &out); err != nil {
		return nil, translateErr("list annotations", "dataset", datasetID, err)
	}
	annotations := make([]*domain.AnnotationInfo, len(out.Entities))
	for i, ann := range out.Entities {
		annotations[i] = toDomainAnnotation(ann)
	}
	return annotations, nil
}

func (a *Adapter) DeleteAnnotation(ctx context.Context, annotationID int) error {
	err := a.client.post(ctx, "annotations.remove", map[string]any{"id": annotationID}, nil)
	return translateErr("delete annotation", "annotation", annotationID, err)
}

func (a *Adapter) updateClassMeta(ctx context.Context, projectID int, classes []domain.LabelClassInfo) error {
	wire := make([]map[string]any, 0, len(classes))
	for _, class := range classes {
		shape, ok := geometryToShape[class.GeometryType]
		if !ok {
			return domain.Validationf("class %q: unknown geometry type %q", class.Name, class.GeometryType)
		}
		wire = append(wire, map[string]any{
			"title": class.Name,
			"shape": shape,
			"color": []int{int(class.Color[0]), int(class.Color[1]), int(class.Color[2])},
		})
	}
	err := a.client.post(ctx, "projects.meta.update", map[string]any{
		"id":      projectID,
		"classes": wire,
	}, nil)
	return translateErr("update project meta", "project", projectID, err)
}

func (a *Adapter) readFile(name string) ([]byte, error) {
	f, err := a.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// nameFromLink derives an upload name from the last path segment of a link,
// falling back to a generated name for opaque URLs.
func nameFromLink(link string) string {
	if u, err := url.Parse(link); err == nil {
		if base := path.Base(u.Path); base != "" && base != "." && base != "/" {
			return base
		}
	}
	return uuid.New().String()
}

// Conversions from wire shapes into the common domain records. These are the
// only places vendor fields are read.

func toDomainUser(u *userResponse) *domain.AnnotatorInfo {
	return &domain.AnnotatorInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Meta:      map[string]any{},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toDomainProject(p projectResponse) *domain.ProjectInfo {
	return &domain.ProjectInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Type:        domain.ProjectType(p.Type),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// toDomainDataset re-derives the parent project id into Meta; the vendor
// record does not always carry it.
func toDomainDataset(d datasetResponse, projectID int) *domain.DatasetInfo {
	return &domain.DatasetInfo{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Meta: map[string]any{
			"project_id": projectID,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDomainImage(img imageResponse) *domain.ImageInfo {
	url := img.FullStorageURL
	if url == "" {
		url = img.Link
	}
	return &domain.ImageInfo{
		ID:        img.ID,
		Name:      img.Name,
		URL:       url,
		Height:    img.Height,
		Width:     img.Width,
		Meta:      img.Meta,
		CreatedAt: img.CreatedAt,
		UpdatedAt: img.UpdatedAt,
	}
}

func toDomainClass(c classResponse) *domain.LabelClassInfo {
	var color domain.RGB
	for i := 0; i < len(c.Color) && i < 3; i++ {
		color[i] = uint8(c.Color[i])
	}
	geometryType, ok := shapeToGeometry[c.Shape]
	if !ok {
		geometryType = domain.GeometryBBox
	}
	return &domain.LabelClassInfo{
		ID:           c.ID,
		Name:         c.Title,
		Color:        color,
		GeometryType: geometryType,
	}
}

func toDomainLabel(f figureResponse) *domain.LabelInfo {
	points := make([]domain.Point2D, len(f.Geometry.Points.Exterior))
	for i, xy := range f.Geometry.Points.Exterior {
		points[i] = domain.Point2D{X: xy[0], Y: xy[1]}
	}
	return &domain.LabelInfo{
		ID:        f.ID,
		ClassID:   f.ClassID,
		Text:      f.Description,
		Geometry:  points,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func toDomainAnnotation(ann annotationResponse) *domain.AnnotationInfo {
	return &domain.AnnotationInfo{
		ID:        ann.ID,
		ImageID:   ann.ImageID,
		LabelIDs:  ann.FigureIDs,
		Meta:      ann.Meta,
		CreatedAt: ann.CreatedAt,
		UpdatedAt: ann.UpdatedAt,
	}
}

// Verify that Adapter implements the full backend contract
var _ backend.Backend = (*Adapter)(nil)
