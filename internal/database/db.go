// Package database opens the MySQL pool the repositories run on.
package database

import (
	"context"
	"database/sql"
	"net"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/todo-list-api/internal/config"
)

// DSN builds the MySQL connection string. parseTime maps DATETIME columns
// onto time.Time, and loc=UTC keeps token expiries and due dates in one zone
// end to end; utf8mb4 covers anything a user types into a title.
func DSN(user, pass, host, port, name string) string {
	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	return cred + "@tcp(" + net.JoinHostPort(host, port) + ")/" + name +
		"?charset=utf8mb4&parseTime=true&loc=UTC"
}

// Open connects to MySQL with the configured pool limits and verifies the
// connection before handing it out.
func Open(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxConns)
	db.SetMaxIdleConns(cfg.DBMaxConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnLifeMins) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
