// Package credstore persists the session credential and identity across
// process restarts. State lives in a single-row SQLite table; the
// credential is encrypted at rest with a fernet key generated on first use.
// This is the only state the client persists.
package credstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fernet/fernet-go"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is a durable key-value holder for the session credential and
// username. All methods are safe for concurrent use; writes are
// last-write-wins.
type Store struct {
	db  *sql.DB
	key *fernet.Key
}

// Open opens (creating if necessary) the session database at dbPath and the
// fernet key at keyPath, then applies any pending schema migrations.
func Open(dbPath, keyPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	key, err := loadOrGenerateKey(keyPath)
	if err != nil {
		return nil, err
	}

	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, key: key}, nil
}

// openDatabase opens a connection to the SQLite database
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to migrate session database: %w", err)
	}
	return nil
}

// loadOrGenerateKey reads the fernet key from keyPath, generating and
// persisting a fresh one when the file does not exist yet.
func loadOrGenerateKey(keyPath string) (*fernet.Key, error) {
	data, err := os.ReadFile(keyPath)
	if errors.Is(err, os.ErrNotExist) {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		if err := os.WriteFile(keyPath, []byte(key.Encode()), 0o600); err != nil {
			return nil, fmt.Errorf("failed to write session key: %w", err)
		}
		return &key, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session key: %w", err)
	}

	keys, err := fernet.DecodeKeys(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode session key: %w", err)
	}
	return keys[0], nil
}

// Load returns the persisted credential and username. A missing session is
// not an error: both return values are empty. A credential that cannot be
// decrypted (for example after the key file was replaced) is treated as
// missing and cleared.
func (s *Store) Load() (credential, username string, err error) {
	var encrypted []byte
	row := s.db.QueryRow("SELECT credential, username FROM session WHERE id = 1")
	if err := row.Scan(&encrypted, &username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("failed to load session: %w", err)
	}

	plaintext := fernet.VerifyAndDecrypt(encrypted, 0, []*fernet.Key{s.key})
	if plaintext == nil {
		_ = s.Clear()
		return "", "", nil
	}

	return string(plaintext), username, nil
}

// Save persists the credential and username, replacing any previous session.
func (s *Store) Save(credential, username string) error {
	encrypted, err := fernet.EncryptAndSign([]byte(credential), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt credential: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO session (id, credential, username, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			credential = excluded.credential,
			username = excluded.username,
			updated_at = excluded.updated_at`,
		encrypted, username,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an already-empty store is a
// no-op.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM session WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
