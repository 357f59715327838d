package todo

import (
	"strings"
	"time"
)

// Kind identifies a mutation intent kind
type Kind string

const (
	KindCreate          Kind = "createTodo"
	KindToggle          Kind = "toggleTodo"
	KindToggleAll       Kind = "toggleAll"
	KindUpdateTitle     Kind = "updateTodo"
	KindDelete          Kind = "deleteTodo"
	KindDeleteCompleted Kind = "deleteCompleted"
)

// IsValidKind checks if a kind is valid
func IsValidKind(k Kind) bool {
	switch k {
	case KindCreate, KindToggle, KindToggleAll, KindUpdateTitle, KindDelete, KindDeleteCompleted:
		return true
	}
	return false
}

// Intent describes one user-initiated change that has not yet been
// confirmed by the store. It is immutable once constructed; the
// constructors below enforce the validation rules, so an Intent in an
// Inflight set is always well-formed.
//
// Which fields are meaningful depends on Kind:
//
//	Create          ID, Title, CreatedAt
//	Toggle          ID, Complete
//	ToggleAll       Complete
//	UpdateTitle     ID, Title
//	Delete          ID
//	DeleteCompleted (none)
type Intent struct {
	Kind      Kind
	ID        string
	Title     string
	Complete  bool
	CreatedAt time.Time
}

// ValidateTitle enforces the title rules shared by create and update:
// non-empty after trimming, and free of the literal substring "error"
// (demonstration rule standing in for a business validation failure).
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if strings.Contains(title, "error") {
		return ErrForbiddenWord
	}
	return nil
}

// ParseCreatedAt parses an optional client-supplied creation timestamp.
// An empty string yields the current time.
func ParseCreatedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	for _, f := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadTimestamp
}

// NewCreate builds a create intent. The ID must be client-generated
// and collision-resistant (see store.NewTodoID); a zero createdAt is
// replaced with the current time.
func NewCreate(id, title string, createdAt time.Time) (Intent, error) {
	if id == "" {
		return Intent{}, ErrMissingID
	}
	if err := ValidateTitle(title); err != nil {
		return Intent{}, err
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return Intent{Kind: KindCreate, ID: id, Title: title, CreatedAt: createdAt}, nil
}

// NewToggle builds an intent to set one item's complete flag.
func NewToggle(id string, complete bool) (Intent, error) {
	if id == "" {
		return Intent{}, ErrMissingID
	}
	return Intent{Kind: KindToggle, ID: id, Complete: complete}, nil
}

// NewToggleAll builds an intent to set every item's complete flag.
func NewToggleAll(complete bool) Intent {
	return Intent{Kind: KindToggleAll, Complete: complete}
}

// NewUpdateTitle builds an intent to retitle one item.
func NewUpdateTitle(id, title string) (Intent, error) {
	if id == "" {
		return Intent{}, ErrMissingID
	}
	if err := ValidateTitle(title); err != nil {
		return Intent{}, err
	}
	return Intent{Kind: KindUpdateTitle, ID: id, Title: title}, nil
}

// NewDelete builds an intent to delete one item.
func NewDelete(id string) (Intent, error) {
	if id == "" {
		return Intent{}, ErrMissingID
	}
	return Intent{Kind: KindDelete, ID: id}, nil
}

// NewDeleteCompleted builds an intent to delete every completed item.
func NewDeleteCompleted() Intent {
	return Intent{Kind: KindDeleteCompleted}
}

// item synthesizes the predicted item for a create intent.
func (in Intent) item() Item {
	return Item{ID: in.ID, Title: in.Title, CreatedAt: in.CreatedAt}
}
