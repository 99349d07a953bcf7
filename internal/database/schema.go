package database

// dialect はドライバーごとの差分をまとめたものです。
type dialect struct {
	driverName string // database/sql に登録されたドライバー名
	schema     []string
	// returning が true の場合、INSERT ... RETURNING id で採番されたIDを受け取ります。
	// (pgx は LastInsertId をサポートしません)
	returning bool
}

// すべてのステートメントは毎回の起動時に実行されるため冪等である必要があります。
var sqliteDialect = dialect{
	driverName: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS todos (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			description TEXT,
			completed   BOOLEAN NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL,
			updated_at  DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_todos_completed ON todos(completed)`,
	},
}

// MySQL には CREATE INDEX IF NOT EXISTS が無いため、インデックスはテーブル定義に含めます。
var mysqlDialect = dialect{
	driverName: "mysql",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS todos (
			id          BIGINT AUTO_INCREMENT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NULL,
			completed   BOOLEAN NOT NULL DEFAULT FALSE,
			created_at  DATETIME(6) NOT NULL,
			updated_at  DATETIME(6) NOT NULL,
			INDEX idx_todos_completed (completed)
		)`,
	},
}

var postgresDialect = dialect{
	driverName: "pgx",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS todos (
			id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT,
			completed   BOOLEAN NOT NULL DEFAULT FALSE,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_todos_completed ON todos(completed)`,
	},
	returning: true,
}
