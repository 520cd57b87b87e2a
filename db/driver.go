package db

import (
	"fmt"
	"sync"
)

// Driver encapsulates database-specific connection behaviour: building a
// DSN from structured options and supplying an error mapper tuned to the
// driver. The database/sql driver itself must be blank-imported by the
// binary (mysql and postgres in the root command, sqlite3 in tests).
type Driver interface {
	// Name is the database/sql driver name, e.g. "mysql".
	Name() string

	// DSN converts structured options into the driver's DSN format.
	DSN(opts DriverOptions) (string, error)

	// ErrorMapper returns a mapper for this driver's error types.
	ErrorMapper() ErrorMapper
}

// DriverOptions carries common connection parameters in a
// driver-agnostic form.
type DriverOptions struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	// Extra holds driver-specific key/value parameters.
	Extra map[string]string
}

var (
	driversMu sync.RWMutex
	drivers   = map[string]Driver{
		"mysql":    MySQLDriver{},
		"postgres": PostgresDriver{},
		"sqlite3":  SQLiteDriver{},
	}
)

// RegisterDriver adds or replaces a Driver in the registry.
func RegisterDriver(d Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers[d.Name()] = d
}

// LookupDriver returns a registered Driver by name.
func LookupDriver(name string) (Driver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	d, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("staffcore/db: driver %q not registered", name)
	}
	return d, nil
}

// OpenWithDriver opens a DB through a registered Driver, constructing
// the DSN from structured options and installing the driver-specific
// error mapper.
func OpenWithDriver(driverName string, driverOpts DriverOptions, cfg Config) (*DB, error) {
	drv, err := LookupDriver(driverName)
	if err != nil {
		return nil, err
	}

	dsn, err := drv.DSN(driverOpts)
	if err != nil {
		return nil, fmt.Errorf("staffcore/db: DSN construction failed: %w", err)
	}

	cfg.DriverName = drv.Name()
	cfg.DSN = dsn

	d, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	d.SetErrorMapper(ChainMapper(drv.ErrorMapper(), DefaultErrorMapper()))
	return d, nil
}

// MySQLDriver targets go-sql-driver/mysql, the production backend.
type MySQLDriver struct{}

func (MySQLDriver) Name() string { return "mysql" }

func (MySQLDriver) DSN(o DriverOptions) (string, error) {
	if o.Host == "" || o.Database == "" {
		return "", fmt.Errorf("mysql driver: Host and Database are required")
	}
	port := o.Port
	if port == 0 {
		port = 3306
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC",
		o.User, o.Password, o.Host, port, o.Database)
	for k, v := range o.Extra {
		dsn += fmt.Sprintf("&%s=%s", k, v)
	}
	return dsn, nil
}

func (MySQLDriver) ErrorMapper() ErrorMapper { return mapperFrom(mapMySQLError) }

// PostgresDriver targets lib/pq.
type PostgresDriver struct{}

func (PostgresDriver) Name() string { return "postgres" }

func (PostgresDriver) DSN(o DriverOptions) (string, error) {
	if o.Host == "" || o.Database == "" {
		return "", fmt.Errorf("postgres driver: Host and Database are required")
	}
	port := o.Port
	if port == 0 {
		port = 5432
	}
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		o.Host, port, o.User, o.Password, o.Database, sslMode)
	for k, v := range o.Extra {
		dsn += fmt.Sprintf(" %s=%s", k, v)
	}
	return dsn, nil
}

func (PostgresDriver) ErrorMapper() ErrorMapper { return mapperFrom(mapPostgresError) }

// SQLiteDriver targets mattn/go-sqlite3, used by the test suite.
type SQLiteDriver struct{}

func (SQLiteDriver) Name() string { return "sqlite3" }

func (SQLiteDriver) DSN(o DriverOptions) (string, error) {
	if o.Database == "" {
		return "", fmt.Errorf("sqlite3 driver: Database (file path) is required")
	}
	dsn := o.Database
	sep := "?"
	for k, v := range o.Extra {
		dsn += sep + k + "=" + v
		sep = "&"
	}
	return dsn, nil
}

func (SQLiteDriver) ErrorMapper() ErrorMapper { return mapperFrom(mapSQLiteError) }

// mapperFrom adapts the internal matchers, which return nil when the
// error is not theirs, into mappers that pass unmatched errors through.
func mapperFrom(match func(error) error) ErrorMapper {
	return ErrorMapperFunc(func(err error) error {
		if err == nil {
			return nil
		}
		if mapped := match(err); mapped != nil {
			return mapped
		}
		return err
	})
}
