package account

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Sharif-Hamza/eventlynk-backend/pkg/errors"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/status"
)

func TestFindByID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/admin/users/U1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "service-key" {
			t.Errorf("apikey header = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"U1","email":"user@example.com"}`)
	}))
	defer ts.Close()

	repo := NewAccountRepository(ts.URL, "service-key", logrus.New(), ts.Client())

	acc, err := repo.FindByID(context.Background(), "U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if acc.Email != "user@example.com" {
		t.Errorf("email = %q", acc.Email)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	repo := NewAccountRepository(ts.URL, "service-key", logrus.New(), ts.Client())

	_, err := repo.FindByID(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected an error")
	}

	ae := errors.Destruct(err)
	if ae.Status != status.NOT_FOUND {
		t.Errorf("status = %q, want %q", ae.Status, status.NOT_FOUND)
	}
}
