package upstream

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestAppName(t *testing.T) {
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/acct-1/access/apps/app-1":
			w.Write([]byte(`{"result":{"name":"Wiki"}}`))
		case "/accounts/acct-1/access/apps/app-2":
			w.Write([]byte(`{"result":{}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	c := newTestClient(srv.URL, srv.URL)

	name, err := c.AppName(context.Background(), "app-1")
	if err != nil || name != "Wiki" {
		t.Fatalf("expected Wiki, got %q %v", name, err)
	}

	if _, err := c.AppName(context.Background(), "app-2"); !errors.Is(err, ErrAppNameMissing) {
		t.Fatalf("expected ErrAppNameMissing, got %v", err)
	}

	if _, err := c.AppName(context.Background(), "app-3"); err == nil {
		t.Fatalf("expected error for 404")
	}
}
