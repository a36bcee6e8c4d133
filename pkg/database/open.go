package database

import (
	"errors"
	"strings"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Driver names returned by DriverFor
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type options struct {
	log          *zap.Logger
	maxOpenConns int
	maxIdleConns int
}

// Option configures NewGormDB
type Option func(*options)

// WithLogger routes GORM's own logging through zap
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithPool sets connection pool limits on the underlying *sql.DB
func WithPool(maxOpen, maxIdle int) Option {
	return func(o *options) {
		o.maxOpenConns = maxOpen
		o.maxIdleConns = maxIdle
	}
}

// NewGormDB creates a new GORM database connection using the provided DSN.
// Postgres URLs and key/value DSNs open the postgres driver, "sqlite:" and
// "file:" DSNs or paths ending in .db open sqlite.
func NewGormDB(dsn string, opts ...Option) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is not set")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	cfg := &gorm.Config{}
	if o.log != nil {
		cfg.Logger = newGormLogger(o.log)
	} else {
		cfg.Logger = logger.Discard
	}

	var dialector gorm.Dialector
	switch DriverFor(dsn) {
	case DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(dsn))
	default:
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.maxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.maxOpenConns)
	}
	if o.maxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.maxIdleConns)
	}

	return db, nil
}

// DriverFor reports which driver a DSN selects
func DriverFor(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"),
		strings.HasPrefix(dsn, "file:"),
		strings.HasSuffix(dsn, ".db"),
		dsn == ":memory:":
		return DriverSQLite
	default:
		return DriverPostgres
	}
}

// sqliteDSN strips the sqlite: scheme and makes sure foreign keys are on so
// that set deletes cascade at the database level too
func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite:")
	dsn = strings.TrimPrefix(dsn, "//")

	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
