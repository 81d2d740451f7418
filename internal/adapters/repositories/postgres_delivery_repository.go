package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"aguaruta-service/internal/domain"
	"aguaruta-service/internal/platform/obs"
	"aguaruta-service/internal/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// Postgres-backed implementation of the DeliveryRepository port.
type PostgresDeliveryRepository struct{ DB *sql.DB }

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{DB: db}
}

// Insert stores one delivery record. The engine fills id and creado_en.
func (r *PostgresDeliveryRepository) Insert(ctx context.Context, d *domain.Delivery) (err error) {
	defer obs.Time(ctx, "entregas.repo.Insert")(&err)

	if r.DB == nil {
		return errors.New("postgres delivery repository: DB is nil")
	}

	if err := d.Validate(); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}

	query := `
	INSERT INTO entregas (
		fecha, camion, nombre, litros, estado, motivo,
		telefono, latitud, longitud, foto_url, usuario
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id, creado_en;
	`

	err = r.DB.QueryRowContext(ctx, query,
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
	).Scan(&d.ID, &d.CreadoEn)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("insert delivery: %w", domain.ErrDuplicateDelivery)
		}
		return fmt.Errorf("insert delivery: %w", err)
	}

	return nil
}

// List returns records in the date range, newest first.
func (r *PostgresDeliveryRepository) List(ctx context.Context, f ports.DeliveryFilter) (_ []*domain.Delivery, err error) {
	defer obs.Time(ctx, "entregas.repo.List")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres delivery repository: DB is nil")
	}

	if f.Desde.IsZero() || f.Hasta.IsZero() {
		return nil, errors.New("list deliveries: desde and hasta are required")
	}

	where := []string{"fecha BETWEEN $1 AND $2"}
	args := []any{f.Desde.Format(domain.DateLayout), f.Hasta.Format(domain.DateLayout)}

	if c := strings.TrimSpace(f.Camion); c != "" {
		args = append(args, c)
		where = append(where, fmt.Sprintf("UPPER(camion) = UPPER($%d)", len(args)))
	}
	if n := strings.TrimSpace(f.Nombre); n != "" {
		args = append(args, "%"+n+"%")
		where = append(where, fmt.Sprintf("nombre ILIKE $%d", len(args)))
	}
	if f.Estado != nil {
		args = append(args, int(*f.Estado))
		where = append(where, fmt.Sprintf("estado = $%d", len(args)))
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
			d       domain.Delivery
			estado  int
			litros  sql.NullFloat64
			motivo  sql.NullString
			tel     sql.NullString
			lat     sql.NullFloat64
			lon     sql.NullFloat64
			foto    sql.NullString
			usuario sql.NullString
		)
		err := rows.Scan(
			&d.ID, &d.Fecha, &d.Camion, &d.Nombre, &litros, &estado,
			&motivo, &tel, &lat, &lon, &foto, &usuario, &d.CreadoEn,
		)
		if err != nil {
			return nil, fmt.Errorf("list deliveries: scan row: %w", err)
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
