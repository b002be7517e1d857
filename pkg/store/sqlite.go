package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/scanlog/scanlog/pkg/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// timeLayout is fixed-width: TEXT comparison orders like time.
const timeLayout = "2006-01-02 15:04:05.000000"

// Open opens the SQLite database at path (":memory:" works for tests) and
// applies pending migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory:
	// databases alive for the life of the pool.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate brings the schema up to date with the embedded goose migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// SQLiteRepository implements Repository on database/sql with SQLite.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// Create persists a new scan.
func (r *SQLiteRepository) Create(ctx context.Context, barcode string) (*models.Scan, error) {
	scannedAt := r.now().UTC().Truncate(time.Microsecond)

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO scans (barcode, scanned_at) VALUES (?, ?)",
		barcode, scannedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read scan id: %w", err)
	}

	return &models.Scan{ID: id, Barcode: barcode, ScannedAt: scannedAt}, nil
}

// List returns scans matching filter ordered newest first.
func (r *SQLiteRepository) List(ctx context.Context, filter models.QueryFilter) ([]models.Scan, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidFilter)
	}

	var (
		where []string
		args  []any
	)
	if filter.Start != nil {
		where = append(where, "scanned_at >= ?")
		args = append(args, filter.Start.UTC().Format(timeLayout))
	}
	if filter.End != nil {
		where = append(where, "scanned_at < ?")
		args = append(args, filter.End.UTC().Format(timeLayout))
	}
	if filter.Barcode != "" {
		where = append(where, `barcode LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Barcode)+"%")
	}

	query := "SELECT id, barcode, scanned_at FROM scans"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY scanned_at DESC, id DESC LIMIT ? OFFSET ?"

	limit := filter.Limit
	if limit == 0 {
		limit = -1
	}
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	scans := []models.Scan{}
	for rows.Next() {
		var (
			s         models.Scan
			scannedAt string
		)
		if err := rows.Scan(&s.ID, &s.Barcode, &scannedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		s.ScannedAt, err = time.ParseInLocation(timeLayout, scannedAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse scanned_at %q: %w", scannedAt, err)
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scans: %w", err)
	}
	return scans, nil
}

// DeleteAll removes every scan.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM scans")
	if err != nil {
		return 0, fmt.Errorf("failed to delete scans: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted scans: %w", err)
	}
	return n, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
