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

// Postgres-backed implementation of the RouteRepository port.
type PostgresRouteRepository struct{ DB *sql.DB }

func NewPostgresRouteRepository(db *sql.DB) *PostgresRouteRepository {
	return &PostgresRouteRepository{DB: db}
}

// ListPoints returns the whole active route ordered by camion, dia, nombre.
func (r *PostgresRouteRepository) ListPoints(ctx context.Context) ([]*domain.RoutePoint, error) {
	if r.DB == nil {
		return nil, errors.New("postgres route repository: DB is nil")
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

func scanRoutePoints(rows *sql.Rows) ([]*domain.RoutePoint, error) {
	points := make([]*domain.RoutePoint, 0, 64)
	for rows.Next() {
		var (
			p      domain.RoutePoint
			camion sql.NullString
			dia    sql.NullString
			litros sql.NullFloat64
			tel    sql.NullString
			lat    sql.NullFloat64
			lon    sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &camion, &p.Nombre, &dia, &litros, &tel, &lat, &lon); err != nil {
			return nil, fmt.Errorf("list route points: scan row: %w", err)
		}

		p.Camion = stringPtr(camion)
		p.Dia = stringPtr(dia)
		p.Litros = floatPtr(litros)
		p.Telefono = stringPtr(tel)
		p.Latitud = floatPtr(lat)
		p.Longitud = floatPtr(lon)
		points = append(points, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list route points: row iteration: %w", err)
	}

	return points, nil
}

// InsertPoint stores a new point and fills in its ID.
func (r *PostgresRouteRepository) InsertPoint(ctx context.Context, p *domain.RoutePoint) error {
	if r.DB == nil {
		return errors.New("postgres route repository: DB is nil")
	}

	if err := p.Validate(); err != nil {
		return fmt.Errorf("insert route point: %w", err)
	}

	query := `
	INSERT INTO ruta_activa (camion, nombre, dia, litros, telefono, latitud, longitud)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
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
func (r *PostgresRouteRepository) UpdatePoint(ctx context.Context, id int64, u ports.RoutePointUpdate) error {
	if r.DB == nil {
		return errors.New("postgres route repository: DB is nil")
	}

	if u.Empty() {
		return errors.New("update route point: no fields to update")
	}

	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
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
		"UPDATE ruta_activa SET %s WHERE id = $%d;",
		strings.Join(sets, ", "), len(args),
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
func (r *PostgresRouteRepository) ReplaceAll(ctx context.Context, points []*domain.RoutePoint, truncate bool) (int, error) {
	if r.DB == nil {
		return 0, errors.New("postgres route repository: DB is nil")
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
		if _, err := tx.ExecContext(ctx, "TRUNCATE TABLE ruta_activa;"); err != nil {
			return 0, fmt.Errorf("replace route: truncate: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO ruta_activa (camion, nombre, dia, litros, telefono, latitud, longitud)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
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
