package supervisely

import (
	"bytes"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

// testToken is the api key the fake platform accepts.
const testToken = "test-token"

// fakeServer is an in-memory stand-in for the Supervisely public API, just
// enough of it to exercise the adapter. State is keyed by id like the real
// platform; ids are assigned server-side.
type fakeServer struct {
	t   *testing.T
	srv *httptest.Server

	nextID       int
	projects     map[int]*projectResponse
	datasets     map[int]*datasetResponse
	images       map[int]*imageResponse
	imageDataset map[int]int
	classes      map[int][]classResponse
	figures      map[int]*figureResponse
	annotations  map[int]*annotationResponse
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{
		t:            t,
		nextID:       100,
		projects:     map[int]*projectResponse{},
		datasets:     map[int]*datasetResponse{},
		images:       map[int]*imageResponse{},
		imageDataset: map[int]int{},
		classes:      map[int][]classResponse{},
		figures:      map[int]*figureResponse{},
		annotations:  map[int]*annotationResponse{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/users.me", f.handleUsersMe)
	mux.HandleFunc("/teams.list", f.handleTeamsList)
	mux.HandleFunc("/workspaces.list", f.handleWorkspacesList)
	mux.HandleFunc("/projects.add", f.handleProjectsAdd)
	mux.HandleFunc("/projects.info", f.handleProjectsInfo)
	mux.HandleFunc("/projects.list", f.handleProjectsList)
	mux.HandleFunc("/projects.edit", f.handleProjectsEdit)
	mux.HandleFunc("/projects.remove", f.handleProjectsRemove)
	mux.HandleFunc("/projects.meta", f.handleProjectsMeta)
	mux.HandleFunc("/projects.meta.update", f.handleProjectsMetaUpdate)
	mux.HandleFunc("/projects.classes.add", f.handleClassesAdd)
	mux.HandleFunc("/datasets.add", f.handleDatasetsAdd)
	mux.HandleFunc("/datasets.info", f.handleDatasetsInfo)
	mux.HandleFunc("/datasets.list", f.handleDatasetsList)
	mux.HandleFunc("/datasets.list-all", f.handleDatasetsListAll)
	mux.HandleFunc("/datasets.edit", f.handleDatasetsEdit)
	mux.HandleFunc("/datasets.remove", f.handleDatasetsRemove)
	mux.HandleFunc("/images.upload", f.handleImagesUpload)
	mux.HandleFunc("/images.add", f.handleImagesAdd)
	mux.HandleFunc("/images.info", f.handleImagesInfo)
	mux.HandleFunc("/images.list", f.handleImagesList)
	mux.HandleFunc("/images.remove", f.handleImagesRemove)
	mux.HandleFunc("/figures.add", f.handleFiguresAdd)
	mux.HandleFunc("/annotations.add", f.handleAnnotationsAdd)
	mux.HandleFunc("/annotations.info", f.handleAnnotationsInfo)
	mux.HandleFunc("/annotations.list", f.handleAnnotationsList)
	mux.HandleFunc("/annotations.remove", f.handleAnnotationsRemove)

	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != testToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) URL() string { return f.srv.URL }

func (f *fakeServer) id() int {
	f.nextID++
	return f.nextID
}

const fakeTimestamp = "2024-01-01T00:00:00Z"

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": what + " not found"})
}

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func queryID(r *http.Request, key string) int {
	id, _ := strconv.Atoi(r.URL.Query().Get(key))
	return id
}

func (f *fakeServer) handleUsersMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userResponse{
		ID:        1,
		Name:      "Test Annotator",
		Email:     "annotator@example.com",
		CreatedAt: fakeTimestamp,
		UpdatedAt: fakeTimestamp,
	})
}

func (f *fakeServer) handleTeamsList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"entities": []teamResponse{{ID: 10, Name: "default-team"}},
	})
}

func (f *fakeServer) handleWorkspacesList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"entities": []workspaceResponse{{ID: 20, Name: "default-workspace", TeamID: 10}},
	})
}

func (f *fakeServer) handleProjectsAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkspaceID int    `json:"workspaceId"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	proj := &projectResponse{
		ID:          f.id(),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		WorkspaceID: req.WorkspaceID,
		CreatedAt:   fakeTimestamp,
		UpdatedAt:   fakeTimestamp,
	}
	f.projects[proj.ID] = proj
	writeJSON(w, http.StatusOK, proj)
}

func (f *fakeServer) handleProjectsInfo(w http.ResponseWriter, r *http.Request) {
	proj, ok := f.projects[queryID(r, "id")]
	if !ok {
		notFound(w, "project")
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (f *fakeServer) handleProjectsList(w http.ResponseWriter, r *http.Request) {
	entities := []projectResponse{}
	for _, proj := range f.projects {
		entities = append(entities, *proj)
	}
	writeJSON(w, http.StatusOK, map[string]any{"entities": entities})
}

func (f *fakeServer) handleProjectsEdit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	proj, ok := f.projects[req.ID]
	if !ok {
		notFound(w, "project")
		return
	}
	if req.Name != "" {
		proj.Name = req.Name
	}
	if req.Description != "" {
		proj.Description = req.Description
	}
	writeJSON(w, http.StatusOK, proj)
}

func (f *fakeServer) handleProjectsRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	readJSON(r, &req)
	if _, ok := f.projects[req.ID]; !ok {
		notFound(w, "project")
		return
	}
	delete(f.projects, req.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (f *fakeServer) handleProjectsMeta(w http.ResponseWriter, r *http.Request) {
	id := queryID(r, "id")
	if _, ok := f.projects[id]; !ok {
		notFound(w, "project")
		return
	}
	classes := f.classes[id]
	if classes == nil {
		classes = []classResponse{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"classes": classes})
}

func (f *fakeServer) handleProjectsMetaUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID      int             `json:"id"`
		Classes []classResponse `json:"classes"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if _, ok := f.projects[req.ID]; !ok {
		notFound(w, "project")
		return
	}
	for i := range req.Classes {
		req.Classes[i].ID = f.id()
	}
	f.classes[req.ID] = req.Classes
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (f *fakeServer) handleClassesAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID int    `json:"projectId"`
		Title     string `json:"title"`
		Shape     string `json:"shape"`
		Color     []int  `json:"color"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if _, ok := f.projects[req.ProjectID]; !ok {
		notFound(w, "project")
		return
	}
	class := classResponse{ID: f.id(), Title: req.Title, Shape: req.Shape, Color: req.Color}
	f.classes[req.ProjectID] = append(f.classes[req.ProjectID], class)
	writeJSON(w, http.StatusOK, class)
}

func (f *fakeServer) handleDatasetsAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID   int    `json:"projectId"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if _, ok := f.projects[req.ProjectID]; !ok {
		notFound(w, "project")
		return
	}
	ds := &datasetResponse{
		ID:          f.id(),
		Name:        req.Name,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		CreatedAt:   fakeTimestamp,
		UpdatedAt:   fakeTimestamp,
	}
	f.datasets[ds.ID] = ds
	writeJSON(w, http.StatusOK, ds)
}

func (f *fakeServer) handleDatasetsInfo(w http.ResponseWriter, r *http.Request) {
	ds, ok := f.datasets[queryID(r, "id")]
	if !ok {
		notFound(w, "dataset")
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (f *fakeServer) handleDatasetsList(w http.ResponseWriter, r *http.Request) {
	projectID := queryID(r, "projectId")
	entities := []datasetResponse{}
	for _, ds := range f.datasets {
		if ds.ProjectID == projectID {
			entities = append(entities, *ds)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entities": entities})
}

func (f *fakeServer) handleDatasetsListAll(w http.ResponseWriter, r *http.Request) {
	entities := []datasetResponse{}
	for _, ds := range f.datasets {
		entities = append(entities, *ds)
	}
	writeJSON(w, http.StatusOK, map[string]any{"entities": entities})
}

func (f *fakeServer) handleDatasetsEdit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ds, ok := f.datasets[req.ID]
	if !ok {
		notFound(w, "dataset")
		return
	}
	if req.Name != "" {
		ds.Name = req.Name
	}
	if req.Description != "" {
		ds.Description = req.Description
	}
	writeJSON(w, http.StatusOK, ds)
}

func (f *fakeServer) handleDatasetsRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	readJSON(r, &req)
	if _, ok := f.datasets[req.ID]; !ok {
		notFound(w, "dataset")
		return
	}
	delete(f.datasets, req.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (f *fakeServer) handleImagesUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	datasetID, _ := strconv.Atoi(r.FormValue("datasetId"))
	if _, ok := f.datasets[datasetID]; !ok {
		notFound(w, "dataset")
		return
	}
	name := r.FormValue("name")

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	defer file.Close()
	var buf bytes.Buffer
	buf.ReadFrom(file)

	width, height := 0, 0
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(buf.Bytes())); err == nil {
		width, height = cfg.Width, cfg.Height
	}

	img := &imageResponse{
		ID:             f.id(),
		Name:           name,
		FullStorageURL: "https://storage.test/" + name,
		Height:         height,
		Width:          width,
		Meta:           map[string]any{},
		CreatedAt:      fakeTimestamp,
		UpdatedAt:      fakeTimestamp,
	}
	f.images[img.ID] = img
	f.imageDataset[img.ID] = datasetID
	writeJSON(w, http.StatusOK, img)
}

func (f *fakeServer) handleImagesAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DatasetID int    `json:"datasetId"`
		Name      string `json:"name"`
		Link      string `json:"link"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if _, ok := f.datasets[req.DatasetID]; !ok {
		notFound(w, "dataset")
		return
	}
	img := &imageResponse{
		ID:        f.id(),
		Name:      req.Name,
		Link:      req.Link,
		Meta:      map[string]any{},
		CreatedAt: fakeTimestamp,
		UpdatedAt: fakeTimestamp,
	}
	f.images[img.ID] = img
	f.imageDataset[img.ID] = req.DatasetID
	writeJSON(w, http.StatusOK, img)
}

func (f *fakeServer) handleImagesInfo(w http.ResponseWriter, r *http.Request) {
	img, ok := f.images[queryID(r, "id")]
	if !ok {
		notFound(w, "image")
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (f *fakeServer) handleImagesList(w http.ResponseWriter, r *http.Request) {
	datasetID := queryID(r, "datasetId")
	entities := []imageResponse{}
	for id, img := range f.images {
		if f.imageDataset[id] == datasetID {
			entities = append(entities, *img)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entities": entities})
}

func (f *fakeServer) handleImagesRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	readJSON(r, &req)
	if _, ok := f.images[req.ID]; !ok {
		notFound(w, "image")
		return
	}
	delete(f.images, req.ID)
	delete(f.imageDataset, req.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (f *fakeServer) handleFiguresAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageID     int          `json:"imageId"`
		ClassID     int          `json:"classId"`
		Description string       `json:"description"`
		Geometry    geometryWire `json:"geometry"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if _, ok := f.images[req.ImageID]; !ok {
		notFound(w, "image")
		return
	}
	fig := &figureResponse{
		ID:          f.id(),
		ImageID:     req.ImageID,
		ClassID:     req.ClassID,
		Description: req.Description,
		Geometry:    req.Geometry,
		CreatedAt:   fakeTimestamp,
		UpdatedAt:   fakeTimestamp,
	}
	f.figures[fig.ID] = fig
	writeJSON(w, http.StatusOK, fig)
}

func (f *fakeServer) handleAnnotationsAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageID   int            `json:"imageId"`
		FigureIDs []int          `json:"figureIds"`
		Meta      map[string]any `json:"meta"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if _, ok := f.images[req.ImageID]; !ok {
		notFound(w, "image")
		return
	}
	ann := &annotationResponse{
		ID:        f.id(),
		ImageID:   req.ImageID,
		FigureIDs: req.FigureIDs,
		Meta:      req.Meta,
		CreatedAt: fakeTimestamp,
		UpdatedAt: fakeTimestamp,
	}
	f.annotations[ann.ID] = ann
	writeJSON(w, http.StatusOK, ann)
}

func (f *fakeServer) handleAnnotationsInfo(w http.ResponseWriter, r *http.Request) {
	ann, ok := f.annotations[queryID(r, "id")]
	if !ok {
		notFound(w, "annotation")
		return
	}
	writeJSON(w, http.StatusOK, ann)
}

func (f *fakeServer) handleAnnotationsList(w http.ResponseWriter, r *http.Request) {
	datasetID := queryID(r, "datasetId")
	entities := []annotationResponse{}
	for _, ann := range f.annotations {
		if f.imageDataset[ann.ImageID] == datasetID {
			entities = append(entities, *ann)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entities": entities})
}

func (f *fakeServer) handleAnnotationsRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	readJSON(r, &req)
	if _, ok := f.annotations[req.ID]; !ok {
		notFound(w, "annotation")
		return
	}
	delete(f.annotations, req.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
