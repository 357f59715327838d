package store

import (
	"fmt"
	"time"

	"github.com/marcus/ticklist/internal/todo"
)

// CreateTodo inserts a todo with the client-supplied id. Inserting an
// id that already exists is an error; ids are caller-generated UUIDs
// so collisions indicate a duplicate submission.
func (s *Store) CreateTodo(userID, id, title string, createdAt time.Time) error {
	if id == "" {
		return todo.ErrMissingID
	}
	now := time.Now().UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	_, err := s.conn.Exec(
		`INSERT INTO todos (id, user_id, title, complete, created_at, updated_at) VALUES (?, ?, ?, 0, ?, ?)`,
		id, userID, title, createdAt.UTC(), now,
	)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

// SetComplete updates a single todo's complete flag.
func (s *Store) SetComplete(userID, todoID string, complete bool) error {
	res, err := s.conn.Exec(
		`UPDATE todos SET complete = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		boolInt(complete), time.Now().UTC(), todoID, userID,
	)
	if err != nil {
		return fmt.Errorf("set complete: %w", err)
	}
	return requireRow(res.RowsAffected())
}

// SetAllComplete updates the complete flag on every todo owned by the
// user.
func (s *Store) SetAllComplete(userID string, complete bool) error {
	_, err := s.conn.Exec(
		`UPDATE todos SET complete = ?, updated_at = ? WHERE user_id = ?`,
		boolInt(complete), time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("set all complete: %w", err)
	}
	return nil
}

// SetTitle updates a single todo's title.
func (s *Store) SetTitle(userID, todoID, title string) error {
	res, err := s.conn.Exec(
		`UPDATE todos SET title = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		title, time.Now().UTC(), todoID, userID,
	)
	if err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	return requireRow(res.RowsAffected())
}

// DeleteTodo deletes a single todo.
func (s *Store) DeleteTodo(userID, todoID string) error {
	res, err := s.conn.Exec(
		`DELETE FROM todos WHERE id = ? AND user_id = ?`,
		todoID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return requireRow(res.RowsAffected())
}

// DeleteCompleted deletes every completed todo owned by the user and
// returns how many rows were removed.
func (s *Store) DeleteCompleted(userID string) (int64, error) {
	res, err := s.conn.Exec(
		`DELETE FROM todos WHERE user_id = ? AND complete = 1`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete completed: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ListTodos returns the user's confirmed snapshot, oldest first.
func (s *Store) ListTodos(userID string) ([]todo.Item, error) {
	rows, err := s.conn.Query(
		`SELECT id, title, complete, created_at FROM todos WHERE user_id = ? ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var items []todo.Item
	for rows.Next() {
		var it todo.Item
		var complete int
		if err := rows.Scan(&it.ID, &it.Title, &complete, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		it.Complete = complete != 0
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: iterate: %w", err)
	}
	return items, nil
}

// GetTodo returns one of the user's todos, or todo.ErrNotFound.
func (s *Store) GetTodo(userID, todoID string) (*todo.Item, error) {
	var it todo.Item
	var complete int
	err := s.conn.QueryRow(
		`SELECT id, title, complete, created_at FROM todos WHERE id = ? AND user_id = ?`,
		todoID, userID,
	).Scan(&it.ID, &it.Title, &complete, &it.CreatedAt)
	if err != nil {
		return nil, notFoundOr("get todo", err)
	}
	it.Complete = complete != 0
	return &it, nil
}

// requireRow maps a zero-row update/delete to todo.ErrNotFound so the
// caller cannot tell a foreign-owned item from a missing one.
func requireRow(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return todo.ErrNotFound
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
