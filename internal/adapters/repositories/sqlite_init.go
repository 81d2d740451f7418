package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite schema for local runs. Mirrors the Postgres schema:
// dates and timestamps are stored as ISO-8601 text, which keeps range
// comparisons correct under lexical ordering.
func InitSqliteSchema(ctx context.Context, db *sql.DB) error {
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
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		fecha      TEXT NOT NULL,
		camion     TEXT NOT NULL,
		nombre     TEXT NOT NULL,
		litros     REAL,
		estado     INTEGER NOT NULL,
		motivo     TEXT,
		telefono   TEXT,
		latitud    REAL,
		longitud   REAL,
		foto_url   TEXT,
		usuario    TEXT,
		creado_en  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);
	`

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
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		camion    TEXT,
		nombre    TEXT NOT NULL,
		dia       TEXT,
		litros    REAL,
		telefono  TEXT,
		latitud   REAL,
		longitud  REAL
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
