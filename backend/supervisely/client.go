package supervisely

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lewtec/labelbridge/domain"
)

// DefaultBaseURL is the production public API endpoint.
const DefaultBaseURL = "https://app.supervisely.com/public/api/v3"

// userLookupTimeout caps the profile lookup only; every other call runs on
// the caller's context.
const userLookupTimeout = 5 * time.Second

// apiError is a non-2xx response from the platform, before it is translated
// into the common error taxonomy.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

// client is a thin wrapper over the Supervisely public HTTP API. It owns the
// wire shapes and nothing else; translation into domain records happens in
// the adapter.
type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func newClient(baseURL, token string) *client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{},
	}
}

func (c *client) get(ctx context.Context, apiPath string, query url.Values, out any) error {
	u := c.baseURL + "/" + apiPath
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *client) post(ctx context.Context, apiPath string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+apiPath, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// upload posts file bytes as a multipart form, the way the platform's image
// upload endpoint expects them.
func (c *client) upload(ctx context.Context, apiPath string, fields map[string]string, filename string, data []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+apiPath, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

func (c *client) do(req *http.Request, out any) error {
	req.Header.Set("x-api-key", c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := ""
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			msg = payload.Error
		} else {
			msg = payload.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &apiError{Status: resp.StatusCode, Message: msg}
}

// usersMe fetches the profile the token authenticates as. Unlike every other
// call it carries a hard 5 second timeout.
func (c *client) usersMe(ctx context.Context) (*userResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, userLookupTimeout)
	defer cancel()

	var out userResponse
	if err := c.get(ctx, "users.me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func idValues(key string, id int) url.Values {
	return url.Values{key: []string{strconv.Itoa(id)}}
}

// Wire shapes. Field names follow the platform's camelCase JSON.

type userResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type teamResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type workspaceResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	TeamID int    `json:"teamId"`
}

type projectResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	WorkspaceID int    `json:"workspaceId"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type datasetResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ProjectID   int    `json:"projectId"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type imageResponse struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Link           string         `json:"link"`
	FullStorageURL string         `json:"fullStorageUrl"`
	Height         int            `json:"height"`
	Width          int            `json:"width"`
	Meta           map[string]any `json:"meta"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
}

type classResponse struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Shape string `json:"shape"`
	Color []int  `json:"color"`
}

type pointsWire struct {
	Exterior [][2]float64 `json:"exterior"`
}

type geometryWire struct {
	Points pointsWire `json:"points"`
}

type figureResponse struct {
	ID          int          `json:"id"`
	ImageID     int          `json:"imageId"`
	ClassID     int          `json:"classId"`
	Description string       `json:"description"`
	Geometry    geometryWire `json:"geometry"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

type annotationResponse struct {
	ID        int            `json:"id"`
	ImageID   int            `json:"imageId"`
	FigureIDs []int          `json:"figureIds"`
	Meta      map[string]any `json:"meta"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

// translateErr maps a low-level client failure onto the common taxonomy,
// attaching the operation and, when known, the id the call addressed.
func translateErr(op, resource string, id int, err error) error {
	if err == nil {
		return nil
	}
	var ae *apiError
	if errors.As(err, &ae) {
		switch ae.Status {
		case http.StatusNotFound:
			return &domain.NotFoundError{Resource: resource, ID: id}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &domain.AuthenticationError{Backend: Name, Reason: ae.Message}
		}
	}
	return &domain.BackendError{Backend: Name, Op: op, Err: err}
}
