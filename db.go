package taxidb

import (
	"database/sql"
	"fmt"
	"github.com/duckdb/duckdb-go/v2"
	"github.com/jmoiron/sqlx"
	"log/slog"
	"strings"
)

func openDB(path string, memoryLimit string) (*sqlx.DB, error) {
	connector, err := duckdb.NewConnector(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db := sqlx.NewDb(sql.OpenDB(connector), "duckdb")

	if memoryLimit != "" {
		if _, err := db.Exec("SET memory_limit = " + sqlQuote(memoryLimit)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set memory_limit: %w", err)
		}
	}

	// Reading parquet over https needs the httpfs extension. Local files
	// work without it, so failing to install (say offline) is not fatal.
	for _, stmt := range []string{"INSTALL httpfs", "LOAD httpfs"} {
		if _, err := db.Exec(stmt); err != nil {
			slog.Warn(fmt.Sprintf("%s: %v", stmt, err))
			break
		}
	}

	return db, nil
}

func openDBReadOnly(path string) (*sqlx.DB, error) {
	connector, err := duckdb.NewConnector(path+"?access_mode=read_only", nil)
	if err != nil {
		return nil, fmt.Errorf("open %s read-only: %w", path, err)
	}
	return sqlx.NewDb(sql.OpenDB(connector), "duckdb"), nil
}

// sqlQuote escapes v as a single-quoted SQL string literal. Identifiers and
// file paths get interpolated into DDL, which can't take bind parameters.
func sqlQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
