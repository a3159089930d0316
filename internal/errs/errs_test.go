package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", NotFound("game", 7), http.StatusNotFound},
		{"validation", &ValidationError{Errors: []FieldError{{Field: "Name", Error: "Name is required"}}}, http.StatusBadRequest},
		{"duplicate", Persistence("add game", gorm.ErrDuplicatedKey), http.StatusConflict},
		{"foreign key", Persistence("add game", gorm.ErrForeignKeyViolated), http.StatusConflict},
		{"store", Persistence("list games", errors.New("connection refused")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestPersistenceUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := fmt.Errorf("outer: %w", Persistence("update game", base))

	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError in chain")
	}
	if perr.Op != "update game" || !errors.Is(err, base) {
		t.Fatalf("unexpected persistence error: %v", perr)
	}
	if Persistence("noop", nil) != nil {
		t.Fatal("nil error must pass through")
	}
}

func TestValidationErrorField(t *testing.T) {
	verr := &ValidationError{Errors: []FieldError{{Field: "Name", Error: "Name is required"}}}
	if verr.Field("Name") != "Name is required" || verr.Field("Description") != "" {
		t.Fatalf("unexpected field lookup: %v", verr)
	}
	if verr.Error() != "validation failed: Name is required" {
		t.Fatalf("unexpected message %q", verr.Error())
	}
}
