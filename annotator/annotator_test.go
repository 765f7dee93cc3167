package annotator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewtec/labelbridge/backend"
	"github.com/lewtec/labelbridge/domain"
)

// platformStub answers just enough of the Supervisely API for the facade to
// come up and run a listing call.
func platformStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	reply := func(v any) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(v)
		}
	}
	mux.HandleFunc("/users.me", reply(map[string]any{
		"id": 1, "name": "Test Annotator", "email": "annotator@example.com",
	}))
	mux.HandleFunc("/teams.list", reply(map[string]any{
		"entities": []map[string]any{{"id": 10, "name": "team"}},
	}))
	mux.HandleFunc("/workspaces.list", reply(map[string]any{
		"entities": []map[string]any{{"id": 20, "name": "workspace", "teamId": 10}},
	}))
	mux.HandleFunc("/projects.list", reply(map[string]any{
		"entities": []map[string]any{
			{"id": 101, "name": "claims", "type": "images", "workspaceId": 20},
		},
	}))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown backend fails with validation error", func(t *testing.T) {
		_, err := New(ctx, "cvat", backend.Options{Token: "tok"})
		assert.True(t, domain.IsValidation(err), "want ValidationError, got %v", err)
	})

	t.Run("stub backends open by name", func(t *testing.T) {
		for _, name := range []string{"roboflow", "labelstudio"} {
			a, err := New(ctx, name, backend.Options{Token: "tok"})
			require.NoError(t, err, name)
			assert.Equal(t, name, a.Backend())

			_, err = a.ListProjects(ctx)
			assert.ErrorIs(t, err, domain.ErrNotImplemented)
		}
	})

	t.Run("supervisely calls pass through", func(t *testing.T) {
		srv := platformStub(t)

		a, err := New(ctx, "supervisely", backend.Options{Token: "tok", BaseURL: srv.URL})
		require.NoError(t, err)
		assert.Equal(t, "supervisely", a.Backend())

		user, err := a.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "annotator@example.com", user.Email)

		projects, err := a.ListProjects(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "claims", projects[0].Name)
		assert.Equal(t, domain.ProjectTypeImages, projects[0].Type)
	})
}

func TestRegisteredBackends(t *testing.T) {
	names := backend.Backends()
	for _, want := range []string{"labelstudio", "roboflow", "supervisely"} {
		if !containsName(names, want) {
			t.Errorf("Backends() = %v, missing %q", names, want)
		}
	}
}

func containsName(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
