package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ifc-builder/internal/archive/models"
)

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции и убеждается в наличии admin-клиента.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return r.ensureAdmin(ctx)
}

func (r *Repository) GetByCredentials(ctx context.Context, login, password string) (*models.Client, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, login, password, name, created_at
        FROM clients
        WHERE login = ? AND password = ?
    `, login, password)

	var c models.Client
	if err := row.Scan(&c.ID, &c.Login, &c.Password, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, login, password, name, created_at
        FROM clients
        WHERE id = ?
    `, id)

	var c models.Client
	if err := row.Scan(&c.ID, &c.Login, &c.Password, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &c, nil
}

// ============================================================
// Build log
// ============================================================

// InsertBuild добавляет запись в журнал сборок.
func (r *Repository) InsertBuild(ctx context.Context, rec *models.BuildRecord) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO builds (id, client_id, project, file_name, valid, violations, walls)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, rec.ID, rec.ClientID, rec.Project, rec.FileName, boolToInt(rec.Valid), rec.Violations, rec.Walls)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// ListBuilds возвращает сборки клиента, новые первыми.
func (r *Repository) ListBuilds(ctx context.Context, clientID string) ([]models.BuildRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, client_id, project, file_name, valid, violations, walls, created_at
        FROM builds
        WHERE client_id = ?
        ORDER BY created_at DESC
    `, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BuildRecord{}
	for rows.Next() {
		var rec models.BuildRecord
		var valid int
		if err := rows.Scan(&rec.ID, &rec.ClientID, &rec.Project, &rec.FileName, &valid, &rec.Violations, &rec.Walls, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Valid = valid != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) GetBuild(ctx context.Context, clientID, buildID string) (*models.BuildRecord, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, client_id, project, file_name, valid, violations, walls, created_at
        FROM builds
        WHERE client_id = ? AND id = ?
    `, clientID, buildID)

	var rec models.BuildRecord
	var valid int
	if err := row.Scan(&rec.ID, &rec.ClientID, &rec.Project, &rec.FileName, &valid, &rec.Violations, &rec.Walls, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	rec.Valid = valid != 0
	return &rec, nil
}

// ============================================================
// Migrations & Seeding
// ============================================================

func (r *Repository) runMigrations(migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.Exec(string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (r *Repository) ensureAdmin(ctx context.Context) error {
	_, err := r.GetByCredentials(ctx, "admin", "admin")
	if err == nil {
		return nil
	}
	if !strings.Contains(err.Error(), "not found") {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO clients (id, login, password, name)
        VALUES (?, ?, ?, ?)
    `,
		"11111111-1111-1111-1111-111111111111",
		"admin",
		"admin",
		"Admin Client",
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}
