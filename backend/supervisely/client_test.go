package supervisely

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lewtec/labelbridge/domain"
)

func TestClientErrors(t *testing.T) {
	t.Run("non-2xx yields apiError with platform message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "project not found"}`))
		}))
		t.Cleanup(srv.Close)

		c := newClient(srv.URL, "tok")
		err := c.get(context.Background(), "projects.info", nil, nil)

		var ae *apiError
		if !errors.As(err, &ae) {
			t.Fatalf("expected apiError, got %v", err)
		}
		if ae.Status != http.StatusNotFound {
			t.Errorf("Status = %d, want 404", ae.Status)
		}
		if ae.Message != "project not found" {
			t.Errorf("Message = %q", ae.Message)
		}
	})

	t.Run("message falls back to status text for non-json bodies", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "<html>gateway</html>", http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		c := newClient(srv.URL, "tok")
		err := c.get(context.Background(), "users.me", nil, nil)

		var ae *apiError
		if !errors.As(err, &ae) {
			t.Fatalf("expected apiError, got %v", err)
		}
		if ae.Message != http.StatusText(http.StatusBadGateway) {
			t.Errorf("Message = %q", ae.Message)
		}
	})

	t.Run("token is sent on every request", func(t *testing.T) {
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("x-api-key")
			w.Write([]byte(`{}`))
		}))
		t.Cleanup(srv.Close)

		c := newClient(srv.URL, "secret")
		if err := c.get(context.Background(), "users.me", nil, nil); err != nil {
			t.Fatalf("get() error = %v", err)
		}
		if got != "secret" {
			t.Errorf("x-api-key = %q, want secret", got)
		}
	})

	t.Run("profile lookup times out on a hung server", func(t *testing.T) {
		block := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-block
		}))
		t.Cleanup(func() {
			close(block)
			srv.Close()
		})

		c := newClient(srv.URL, "tok")
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		if _, err := c.usersMe(ctx); err == nil {
			t.Error("expected timeout error")
		}
	})
}

func TestTranslateErr(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		if err := translateErr("projects.info", "project", 1, nil); err != nil {
			t.Errorf("got %v", err)
		}
	})

	t.Run("404 becomes not found", func(t *testing.T) {
		err := translateErr("projects.info", "project", 42, &apiError{Status: 404, Message: "missing"})
		var nf *domain.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if nf.Resource != "project" || nf.ID != 42 {
			t.Errorf("got %+v", nf)
		}
	})

	t.Run("401 and 403 become authentication errors", func(t *testing.T) {
		for _, status := range []int{401, 403} {
			err := translateErr("users.me", "user", 0, &apiError{Status: status, Message: "denied"})
			var ae *domain.AuthenticationError
			if !errors.As(err, &ae) {
				t.Errorf("status %d: expected AuthenticationError, got %v", status, err)
			}
		}
	})

	t.Run("anything else becomes a backend error keeping the cause", func(t *testing.T) {
		cause := &apiError{Status: 500, Message: "boom"}
		err := translateErr("projects.add", "project", 0, cause)
		var be *domain.BackendError
		if !errors.As(err, &be) {
			t.Fatalf("expected BackendError, got %v", err)
		}
		if be.Op != "projects.add" {
			t.Errorf("Op = %q", be.Op)
		}
		if !errors.Is(err, cause) {
			t.Error("cause not wrapped")
		}
	})
}
