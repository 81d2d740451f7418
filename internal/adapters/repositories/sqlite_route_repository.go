package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"aguaruta-service/internal/domain"
	"aguaruta-service/internal/ports"
)

// SQLite-backed implementation of the RouteRepository port, used for local
// runs and tests.
type SqliteRouteRepository struct{ DB *sql.DB }

func NewSqliteRouteRepository(db *sql.DB) *SqliteRouteRepository {
	return &SqliteRouteRepository{DB: db}
}

// ListPoints returns the whole active route ordered by camion, dia, nombre.
func (r *SqliteRouteRepository) ListPoints(ctx context.Context) ([]*domain.RoutePoint, error) {
	if r.DB == nil {
		return nil, errors.New("sqlite route repository: DB is nil")
	}

	query := `
	SELECT id, camion, nombre, dia, litros, telefono, latitud, longitud
	FROM ruta_activa
	ORDER BY camion, dia, nombre;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list route points: query ruta_activa table: %w", err)
	}
	defer rows.Close()

	return scanRoutePoints(rows)
}

// InsertPoint stores a new point and fills in its ID.
func (r *SqliteRouteRepository) InsertPoint(ctx context.Context, p *domain.RoutePoint) error {
	if r.DB == nil {
		return errors.New("sqlite route repository: DB is nil")
	}

	if err := p.Validate(); err != nil {
		return fmt.Errorf("insert route point: %w", err)
	}

	query := `
	INSERT INTO ruta_activa (camion, nombre, dia, litros, telefono, latitud, longitud)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id;
	`
	err := r.DB.QueryRowContext(ctx, query,
		nullString(p.Camion),
		strings.TrimSpace(p.Nombre),
		nullString(p.Dia),
		nullFloat(p.Litros),
		nullString(p.Telefono),
		nullFloat(p.Latitud),
		nullFloat(p.Longitud),
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert route point: %w", err)
	}

	return nil
}

// UpdatePoint applies a partial update to one point.
func (r *SqliteRouteRepository) UpdatePoint(ctx context.Context, id int64, u ports.RoutePointUpdate) error {
	if r.DB == nil {
		return errors.New("sqlite route repository: DB is nil")
	}

	if u.Empty() {
		return errors.New("update route point: no fields to update")
	}

	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)

	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if u.Camion != nil {
		add("camion", *u.Camion)
	}
	if u.Nombre != nil {
		add("nombre", *u.Nombre)
	}
	if u.Dia != nil {
		add("dia", *u.Dia)
	}
	if u.Litros != nil {
		add("litros", *u.Litros)
	}
	if u.Telefono != nil {
		add("telefono", *u.Telefono)
	}
	if u.Latitud != nil {
		add("latitud", *u.Latitud)
	}
	if u.Longitud != nil {
		add("longitud", *u.Longitud)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE ruta_activa SET %s WHERE id = ?;",
		strings.Join(sets, ", "),
	)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update route point id=%d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update route point id=%d: rows affected: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("update route point id=%d: %w", id, ports.ErrPointNotFound)
	}

	return nil
}

// ReplaceAll loads a new route in one transaction.
func (r *SqliteRouteRepository) ReplaceAll(ctx context.Context, points []*domain.RoutePoint, truncate bool) (int, error) {
	if r.DB == nil {
		return 0, errors.New("sqlite route repository: DB is nil")
	}

	for i, p := range points {
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("replace route: point at index %d: %w", i, err)
		}
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("replace route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if truncate {
		// SQLite has no TRUNCATE; an unqualified DELETE is the equivalent.
		if _, err := tx.ExecContext(ctx, "DELETE FROM ruta_activa;"); err != nil {
			return 0, fmt.Errorf("replace route: truncate: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO ruta_activa (camion, nombre, dia, litros, telefono, latitud, longitud)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("replace route: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range points {
		_, err := stmt.ExecContext(ctx,
			nullString(p.Camion),
			strings.TrimSpace(p.Nombre),
			nullString(p.Dia),
			nullFloat(p.Litros),
			nullString(p.Telefono),
			nullFloat(p.Latitud),
			nullFloat(p.Longitud),
		)
		if err != nil {
			return 0, fmt.Errorf("replace route: insert point at index %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("replace route: commit tx: %w", err)
	}

	return len(points), nil
}
