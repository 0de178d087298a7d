package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// parseTime is required so viewed_at and published_at scan into time.Time.
const driverParamStr string = "?parseTime=true"

// The pool is shared between the web server and the reminder batch job,
// so it stays small; connections are recycled to survive proxy idle timeouts.
const (
	poolMaxOpenConns    = 10
	poolMaxIdleConns    = 10
	poolConnMaxLifetime = 5 * time.Minute
)

func Connect(ctx context.Context, uri string) (*sql.DB, error) {
	db, err := sql.Open("mysql", uri+driverParamStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to MySQL DB: %w", err)
	}

	db.SetMaxOpenConns(poolMaxOpenConns)
	db.SetMaxIdleConns(poolMaxIdleConns)
	db.SetConnMaxLifetime(poolConnMaxLifetime)

	err = db.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking MySQL DB connection: %w", err)
	}

	return db, nil
}
