package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema. Every statement is guarded with
// IF NOT EXISTS so the tool can be re-run against a live database without
// touching existing data.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createEntregasQuery := `
	CREATE TABLE IF NOT EXISTS entregas (
		id         SERIAL PRIMARY KEY,
		fecha      DATE NOT NULL,
		camion     VARCHAR(10) NOT NULL,
		nombre     TEXT NOT NULL,
		litros     NUMERIC,
		estado     SMALLINT NOT NULL,
		motivo     TEXT,
		telefono   TEXT,
		latitud    NUMERIC(9,6),
		longitud   NUMERIC(9,6),
		foto_url   TEXT,
		usuario    TEXT,
		creado_en  TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`

	// One record per truck per recipient per day.
	createUniqueIndexQuery := `
	CREATE UNIQUE INDEX IF NOT EXISTS uq_entregas_fecha_camion_nombre
	ON entregas (fecha, camion, nombre);
	`

	createFechaIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_entregas_fecha
	ON entregas (fecha);
	`

	createCamionFechaIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_entregas_camion_fecha
	ON entregas (camion, fecha);
	`

	createRutaActivaQuery := `
	CREATE TABLE IF NOT EXISTS ruta_activa (
		id        SERIAL PRIMARY KEY,
		camion    VARCHAR(10),
		nombre    TEXT NOT NULL,
		dia       TEXT,
		litros    NUMERIC,
		telefono  TEXT,
		latitud   NUMERIC(9,6),
		longitud  NUMERIC(9,6)
	);
	`

	createRutaActivaIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_ruta_activa_camion_dia
	ON ruta_activa (camion, dia);
	`

	statements := []string{
		createEntregasQuery,
		createUniqueIndexQuery,
		createFechaIndexQuery,
		createCamionFechaIndexQuery,
		createRutaActivaQuery,
		createRutaActivaIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
