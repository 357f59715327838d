package store

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

// Session represents a logged-in browser session. Only the SHA-256
// hash of the token is stored; the plaintext lives in the cookie.
type Session struct {
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// CreateSession issues a new session token for the user and returns
// the plaintext token to set in the cookie.
func (s *Store) CreateSession(userID string, ttl time.Duration) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(b)

	now := time.Now().UTC()
	_, err := s.conn.Exec(
		`INSERT INTO sessions (token_hash, user_id, expires_at, created_at, last_seen_at) VALUES (?, ?, ?, ?, ?)`,
		hashToken(token), userID, now.Add(ttl), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return token, nil
}

// GetSession resolves a cookie token to a live session, or nil if the
// token is unknown or expired.
func (s *Store) GetSession(token string) (*Session, error) {
	sess := &Session{}
	err := s.conn.QueryRow(
		`SELECT user_id, expires_at, created_at FROM sessions WHERE token_hash = ?`,
		hashToken(token),
	).Scan(&sess.UserID, &sess.ExpiresAt, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess.ExpiresAt.Before(time.Now().UTC()) {
		return nil, nil
	}

	s.conn.Exec(`UPDATE sessions SET last_seen_at = ? WHERE token_hash = ?`,
		time.Now().UTC(), hashToken(token))
	return sess, nil
}

// DeleteSession revokes a session token. Unknown tokens are a no-op.
func (s *Store) DeleteSession(token string) error {
	if _, err := s.conn.Exec(`DELETE FROM sessions WHERE token_hash = ?`, hashToken(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes sessions past their expiry and
// returns how many were removed.
func (s *Store) CleanupExpiredSessions() (int64, error) {
	res, err := s.conn.Exec(`DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
