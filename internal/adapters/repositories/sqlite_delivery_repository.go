package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"aguaruta-service/internal/domain"
	"aguaruta-service/internal/ports"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLite-backed implementation of the DeliveryRepository port, used for
// local runs and tests. Dates are ISO-8601 text.
type SqliteDeliveryRepository struct{ DB *sql.DB }

func NewSqliteDeliveryRepository(db *sql.DB) *SqliteDeliveryRepository {
	return &SqliteDeliveryRepository{DB: db}
}

func isSqliteUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// Insert stores one delivery record. The engine fills id and creado_en.
func (r *SqliteDeliveryRepository) Insert(ctx context.Context, d *domain.Delivery) error {
	if r.DB == nil {
		return errors.New("sqlite delivery repository: DB is nil")
	}

	if err := d.Validate(); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}

	query := `
	INSERT INTO entregas (
		fecha, camion, nombre, litros, estado, motivo,
		telefono, latitud, longitud, foto_url, usuario
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id, creado_en;
	`

	var creadoEn string
	err := r.DB.QueryRowContext(ctx, query,
		d.Fecha.Format(domain.DateLayout),
		strings.TrimSpace(d.Camion),
		strings.TrimSpace(d.Nombre),
		nullFloat(d.Litros),
		int(d.Estado),
		nullString(d.Motivo),
		nullString(d.Telefono),
		nullFloat(d.Latitud),
		nullFloat(d.Longitud),
		nullString(d.FotoURL),
		nullString(d.Usuario),
	).Scan(&d.ID, &creadoEn)
	if err != nil {
		if isSqliteUniqueViolation(err) {
			return fmt.Errorf("insert delivery: %w", domain.ErrDuplicateDelivery)
		}
		return fmt.Errorf("insert delivery: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, creadoEn)
	if err != nil {
		return fmt.Errorf("insert delivery: parse creado_en %q: %w", creadoEn, err)
	}
	d.CreadoEn = ts

	return nil
}

// List returns records in the date range, newest first.
func (r *SqliteDeliveryRepository) List(ctx context.Context, f ports.DeliveryFilter) ([]*domain.Delivery, error) {
	if r.DB == nil {
		return nil, errors.New("sqlite delivery repository: DB is nil")
	}

	if f.Desde.IsZero() || f.Hasta.IsZero() {
		return nil, errors.New("list deliveries: desde and hasta are required")
	}

	where := []string{"fecha BETWEEN ? AND ?"}
	args := []any{f.Desde.Format(domain.DateLayout), f.Hasta.Format(domain.DateLayout)}

	if c := strings.TrimSpace(f.Camion); c != "" {
		where = append(where, "UPPER(camion) = UPPER(?)")
		args = append(args, c)
	}
	if n := strings.TrimSpace(f.Nombre); n != "" {
		where = append(where, "LOWER(nombre) LIKE LOWER(?)")
		args = append(args, "%"+n+"%")
	}
	if f.Estado != nil {
		where = append(where, "estado = ?")
		args = append(args, int(*f.Estado))
	}
	if f.NotDelivered {
		where = append(where, fmt.Sprintf("estado <> %d", domain.StatusEntregada))
	}

	query := fmt.Sprintf(`
	SELECT id, fecha, camion, nombre, litros, estado, motivo,
	       telefono, latitud, longitud, foto_url, usuario, creado_en
	FROM entregas
	WHERE %s
	ORDER BY fecha DESC, id DESC;
	`, strings.Join(where, " AND "))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: query entregas table: %w", err)
	}
	defer rows.Close()

	deliveries := make([]*domain.Delivery, 0, 64)
	for rows.Next() {
		var (
			d        domain.Delivery
			fecha    string
			creadoEn string
			estado   int
			litros   sql.NullFloat64
			motivo   sql.NullString
			tel      sql.NullString
			lat      sql.NullFloat64
			lon      sql.NullFloat64
			foto     sql.NullString
			usuario  sql.NullString
		)
		err := rows.Scan(
			&d.ID, &fecha, &d.Camion, &d.Nombre, &litros, &estado,
			&motivo, &tel, &lat, &lon, &foto, &usuario, &creadoEn,
		)
		if err != nil {
			return nil, fmt.Errorf("list deliveries: scan row: %w", err)
		}

		d.Fecha, err = time.Parse(domain.DateLayout, fecha)
		if err != nil {
			return nil, fmt.Errorf("list deliveries: parse fecha %q: %w", fecha, err)
		}
		d.CreadoEn, err = time.Parse(time.RFC3339, creadoEn)
		if err != nil {
			return nil, fmt.Errorf("list deliveries: parse creado_en %q: %w", creadoEn, err)
		}

		d.Estado = domain.Status(estado)
		d.Litros = floatPtr(litros)
		d.Motivo = stringPtr(motivo)
		d.Telefono = stringPtr(tel)
		d.Latitud = floatPtr(lat)
		d.Longitud = floatPtr(lon)
		d.FotoURL = stringPtr(foto)
		d.Usuario = stringPtr(usuario)
		deliveries = append(deliveries, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: row iteration: %w", err)
	}

	return deliveries, nil
}
