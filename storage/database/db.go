package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/fs"
)

const migrationsDir = "migrations"

func postgresURL(dbName string, conf *core.Config) string {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func sqliteDSN(filePath string) string {
	q := make(url.Values)
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	return "file:" + filePath + "?" + q.Encode()
}

// Open returns a handle on the configured store. Callers own it and must Close it.
func Open(conf *core.Config) (*sqlx.DB, error) {
	switch conf.Database.Engine {
	case core.EngineSQLite:
		db, err := sqlx.Open("sqlite", sqliteDSN(conf.Database.Path))
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlite database")
		}
		// one operator, one writer
		db.SetMaxOpenConns(1)
		return db, nil
	case core.EnginePostgres:
		db, err := sqlx.Open("postgres", postgresURL(conf.Database.Name, conf))
		if err != nil {
			return nil, errors.Wrap(err, "opening postgres database")
		}
		return db, nil
	default:
		return nil, errors.Errorf("unsupported database engine %q", conf.Database.Engine)
	}
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func createDB(db *sql.DB, conf *core.Config) error {
	// check if DB exists
	var exists bool
	rows, err := db.Query("SELECT true FROM pg_database WHERE datname = $1", conf.Database.Name)
	if err != nil {
		return errors.Wrap(err, "checking DB")
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err = rows.Scan(&exists); err != nil {
			return errors.Wrap(err, "checking DB")
		}
	}
	if err = rows.Err(); err != nil {
		return errors.Wrap(err, "checking DB")
	}

	// create DB if not exist
	if !exists {
		if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", conf.Database.Name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

// CreateIfNotExist creates the postgres database. The sqlite file is created on first open.
func CreateIfNotExist(conf *core.Config) error {
	if conf.Database.Engine != core.EnginePostgres {
		return nil
	}

	db, err := sql.Open("postgres", postgresURL("postgres", conf))
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()

	if err = ping(db); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	if err = createDB(db, conf); err != nil {
		return errors.Wrap(err, "creating database")
	}
	return nil
}

// SetupMigrations points goose at the embedded migrations of the engine and returns their directory.
func SetupMigrations(engine string, logger core.Logger) (string, error) {
	dialect := "sqlite3"
	if engine == core.EnginePostgres {
		dialect = "postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return "", errors.Wrap(err, "setting migrations dialect")
	}
	goose.SetBaseFS(appfs.FS)
	if logger != nil {
		goose.SetLogger(gooseLogger{logger})
	} else {
		goose.SetLogger(goose.NopLogger())
	}
	return path.Join(migrationsDir, engine), nil
}

// Migrate applies every pending migration.
func Migrate(db *sqlx.DB, engine string, logger core.Logger) error {
	dir, err := SetupMigrations(engine, logger)
	if err != nil {
		return err
	}
	if err := goose.Up(db.DB, dir); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
