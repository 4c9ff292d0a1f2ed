package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Sharif-Hamza/eventlynk-backend/pkg/status"
)

func TestDestructAppError(t *testing.T) {
	t.Parallel()

	err := New(http.StatusBadRequest, status.NOT_FOUND, "event with id 'E1' is not found")

	ae := Destruct(err)
	if ae.HTTPStatusCode != http.StatusBadRequest {
		t.Errorf("http status = %d, want 400", ae.HTTPStatusCode)
	}
	if ae.Status != status.NOT_FOUND {
		t.Errorf("status = %q, want %q", ae.Status, status.NOT_FOUND)
	}
	if err.Error() != "event with id 'E1' is not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestDestructPlainError(t *testing.T) {
	t.Parallel()

	ae := Destruct(fmt.Errorf("connection reset"))
	if ae.HTTPStatusCode != http.StatusInternalServerError {
		t.Errorf("http status = %d, want 500", ae.HTTPStatusCode)
	}
	if ae.Status != status.INTERNAL_SERVER_ERROR {
		t.Errorf("status = %q, want %q", ae.Status, status.INTERNAL_SERVER_ERROR)
	}
	if ae.Message != "connection reset" {
		t.Errorf("message = %q", ae.Message)
	}
}
