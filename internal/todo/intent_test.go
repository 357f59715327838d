package todo

import (
	"errors"
	"testing"
	"time"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		title string
		want  error
	}{
		{"buy milk", nil},
		{"", ErrTitleRequired},
		{"   ", ErrTitleRequired},
		{"buy error milk", ErrForbiddenWord},
		{"errors everywhere", ErrForbiddenWord},
	}
	for _, tt := range tests {
		if got := ValidateTitle(tt.title); !errors.Is(got, tt.want) {
			t.Errorf("ValidateTitle(%q): got %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestNewCreateRequiresID(t *testing.T) {
	if _, err := NewCreate("", "fine title", time.Time{}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestNewCreateDefaultsCreatedAt(t *testing.T) {
	in, err := NewCreate("id1", "fine title", time.Time{})
	if err != nil {
		t.Fatalf("new create: %v", err)
	}
	if in.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to default to now")
	}
}

func TestParseCreatedAt(t *testing.T) {
	if _, err := ParseCreatedAt("2025-06-01T12:00:00Z"); err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if _, err := ParseCreatedAt(""); err != nil {
		t.Fatalf("empty should default: %v", err)
	}
	if _, err := ParseCreatedAt("not-a-time"); !errors.Is(err, ErrBadTimestamp) {
		t.Fatalf("expected ErrBadTimestamp, got %v", err)
	}
}

func TestNewUpdateTitleValidates(t *testing.T) {
	if _, err := NewUpdateTitle("a", "contains error word"); !errors.Is(err, ErrForbiddenWord) {
		t.Fatalf("expected ErrForbiddenWord, got %v", err)
	}
	if _, err := NewUpdateTitle("", "fine"); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestIsValidKind(t *testing.T) {
	for _, k := range []Kind{KindCreate, KindToggle, KindToggleAll, KindUpdateTitle, KindDelete, KindDeleteCompleted} {
		if !IsValidKind(k) {
			t.Errorf("expected %q valid", k)
		}
	}
	if IsValidKind(Kind("fetchTodos")) {
		t.Error("expected unknown kind invalid")
	}
}

func TestIsValidationError(t *testing.T) {
	for _, err := range []error{ErrTitleRequired, ErrForbiddenWord, ErrMissingID, ErrBadTimestamp} {
		if !IsValidationError(err) {
			t.Errorf("expected %v to be a validation error", err)
		}
	}
	if IsValidationError(ErrNotFound) {
		t.Error("ErrNotFound is not a validation error")
	}
}
