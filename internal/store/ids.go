package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// NewTodoID generates a collision-resistant todo ID. It is exported so
// the web layer can pre-assign identity at intent-creation time,
// before the store confirms the insert.
func NewTodoID() string {
	return uuid.NewString()
}

// NewUserID generates a prefixed user ID.
func NewUserID() string {
	id, err := generateID("u_")
	if err != nil {
		// crypto/rand failure is fatal
		panic("generate id: " + err.Error())
	}
	return id
}

// generateID creates a prefixed ID from 8 random bytes.
func generateID(prefix string) (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s", prefix, hex.EncodeToString(b)), nil
}
