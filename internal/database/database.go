// Package database はプロセス全体で共有するデータベース接続を管理します。
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"task-tracker/backend/internal/config"
)

// DB は sqlx.DB にドライバー固有の情報を持たせたものです。
// 起動時に一度だけ Open し、終了時に Close します。
type DB struct {
	*sqlx.DB
	dialect dialect
}

// SupportsReturning は INSERT ... RETURNING で採番IDを受け取るべきかを返します。
func (db *DB) SupportsReturning() bool {
	return db.dialect.returning
}

// Open は設定に従ってデータベースに接続し、スキーマを作成します。
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	sqlxDB, err := sqlx.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite は書き込みが直列化されるため接続は1本で十分。
		// ":memory:" は接続ごとに別DBになるので、1本でなければならない。
		sqlxDB.SetMaxOpenConns(1)
		sqlxDB.SetMaxIdleConns(1)
		sqlxDB.SetConnMaxLifetime(0)
	} else {
		sqlxDB.SetMaxOpenConns(25)
		sqlxDB.SetMaxIdleConns(25)
		sqlxDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlxDB.PingContext(ctx); err != nil {
		sqlxDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{DB: sqlxDB, dialect: d}
	if cfg.Driver == config.DriverSQLite {
		if err := db.applySQLitePragmas(ctx, cfg.Path); err != nil {
			db.Close()
			return nil, err
		}
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema はtodosテーブルとインデックスを作成します。何度実行しても安全です。
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range db.dialect.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not apply schema: %w", err)
		}
	}
	return nil
}

func (db *DB) applySQLitePragmas(ctx context.Context, path string) error {
	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("could not apply %q: %w", p, err)
		}
	}
	return nil
}

// BuildDSN はドライバーごとの接続文字列を組み立てます。
func BuildDSN(cfg config.DatabaseConfig) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	switch cfg.Driver {
	case config.DriverSQLite:
		return cfg.Path, nil
	case config.DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Pass
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
		mc.DBName = cfg.Name
		mc.ParseTime = true
		// 値が変わらないUPDATEでも一致した行数を返させる (存在確認に使うため)
		mc.ClientFoundRows = true
		return mc.FormatDSN(), nil
	case config.DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Pass),
			Host:   net.JoinHostPort(cfg.Host, cfg.Port),
			Path:   "/" + cfg.Name,
		}
		return u.String(), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case config.DriverSQLite:
		return sqliteDialect, nil
	case config.DriverMySQL:
		return mysqlDialect, nil
	case config.DriverPostgres:
		return postgresDialect, nil
	}
	return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}
