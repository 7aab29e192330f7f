// Package session persists the client's session slot (bearer token plus the
// cached user and exam selection) in a local sqlite database.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "github.com/mattn/go-sqlite3"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
)

// Storage keys. Everything under these keys is cleared together on logout.
const (
	keyToken        = "auth_token"
	keyCachedUser   = "cached_user"
	keySelectedExam = "selected_exam"
)

// Store is a durable key-value slot backed by sqlite.
type Store struct {
	conn *sql.DB
}

// Open creates the database file (and its parent directory) if needed and
// initializes the schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err = createTables(db); err != nil {
		return nil, err
	}
	return &Store{conn: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	return err
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *Store) set(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT OR REPLACE INTO session (key, value, updated_at) VALUES (?, ?, ?)",
		key, value, time.Now().Unix(),
	)
	return err
}

// Token returns the persisted bearer token, or "" when none is stored.
func (s *Store) Token() (string, error) {
	return s.get(keyToken)
}

// SetToken persists the bearer token.
func (s *Store) SetToken(token string) error {
	return s.set(keyToken, token)
}

// CachedUser returns the last persisted user record, if any.
func (s *Store) CachedUser() (*models.User, error) {
	raw, err := s.get(keyCachedUser)
	if err != nil || raw == "" {
		return nil, err
	}
	var usr models.User
	if err := json.Unmarshal([]byte(raw), &usr); err != nil {
		return nil, fmt.Errorf("corrupt cached user entry: %w", err)
	}
	return &usr, nil
}

// SetCachedUser persists a convenience copy of the signed-in user.
func (s *Store) SetCachedUser(usr models.User) error {
	raw, err := json.Marshal(usr)
	if err != nil {
		return err
	}
	return s.set(keyCachedUser, string(raw))
}

// SelectedExam returns the persisted exam selection, or "".
func (s *Store) SelectedExam() (string, error) {
	return s.get(keySelectedExam)
}

// SetSelectedExam persists the exam selection.
func (s *Store) SetSelectedExam(examID string) error {
	return s.set(keySelectedExam, examID)
}

// Clear removes every session key in one transaction. Called on logout.
func (s *Store) Clear() error {
	_, err := s.conn.Exec(
		"DELETE FROM session WHERE key IN (?, ?, ?)",
		keyToken, keyCachedUser, keySelectedExam,
	)
	return err
}

// TokenUsable reports whether a token is present and not past its expiry
// claim. The signature is not verified; only the server can do that. This
// gates the auth bootstrap so an absent or expired token never triggers a
// doomed network call.
func (s *Store) TokenUsable() bool {
	token, err := s.Token()
	if err != nil || token == "" {
		return false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Opaque (non-JWT) tokens are assumed usable until the server says
		// otherwise.
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}
