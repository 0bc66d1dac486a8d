package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"worktime/internal/errors"
	"worktime/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Repository defines the interface for key-value storage operations
type Repository interface {
	Get(ctx context.Context, key string) (*Record, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*Record, error)
	Close() error
}

// Options tunes per-operation deadlines. Zero values disable the deadline.
type Options struct {
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	DirPermissions os.FileMode
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// New creates a new SQLite repository instance without deadlines
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions creates a repository, creating the parent directory of
// dbPath when needed, and runs pending migrations.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if dbPath != MemoryPath {
		perm := opts.DirPermissions
		if perm == 0 {
			perm = 0o755
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), perm); err != nil {
			return nil, errors.NewStorageError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	if dbPath == MemoryPath {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get retrieves the record stored under key
func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Record, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_store WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanRecord, "key", key, key)
}

// Put stores value under key, replacing any previous value
func (r *SQLiteRepository) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.NewInvalidInputError("key", key, "key cannot be empty")
	}

	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return Execute(ctx, r.db, query, key, value, FormatTimeForDB(r.now()))
}

// Delete removes the record stored under key
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `DELETE FROM kv_store WHERE key = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "key", key, key)
}

// List retrieves all records ordered by key
func (r *SQLiteRepository) List(ctx context.Context) ([]*Record, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_store ORDER BY key ASC`
	return QueryMultiple(ctx, r.db, query, ScanRecords, "records")
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
