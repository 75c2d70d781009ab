package repo

import (
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/privnurse/privnurse/internal/config"
)

//go:embed schema.sql
var schemaSQL string

func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func ApplyMigrations(db *sqlx.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}

// paginate appends a Postgres LIMIT/OFFSET clause to builder output. gendry's
// _limit renders MySQL's `LIMIT ?,?`, which Postgres rejects, so paging is
// appended here instead.
func paginate(sqlStr string, args []interface{}, page, limit int) (string, []interface{}) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return sqlStr + " LIMIT ? OFFSET ?", append(args, limit, offset)
}
