package mysqlb

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/sync/singleflight"

	"github.com/syssam/mysqlb/dialect"
	"github.com/syssam/mysqlb/dialect/sql"
)

// Opener creates the driver used by a Client. The default opener connects
// to MySQL with the client Config.
type Opener func(ctx context.Context, cfg Config) (dialect.Driver, error)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for connection events and, with debug
// enabled, for statements.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithDebug logs every statement.
func WithDebug() Option {
	return func(c *Client) {
		c.debug = true
	}
}

// WithStats collects statement statistics, readable with Client.Stats.
func WithStats(opts ...sql.StatsOption) Option {
	return func(c *Client) {
		c.stats = &sql.QueryStats{}
		c.statsOpts = append(c.statsOpts, opts...)
	}
}

// WithOpener replaces the default MySQL opener.
func WithOpener(o Opener) Option {
	return func(c *Client) {
		c.opener = o
	}
}

// Client owns a single lazily opened database connection and binds
// queries to it.
//
//	client, err := mysqlb.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	users, err := client.Use("users").Where("age", ">", 18).Get(ctx)
//
// The connection is created on first use and released by Close. A closed
// client reconnects on its next use.
type Client struct {
	cfg       Config
	log       *slog.Logger
	opener    Opener
	debug     bool
	stats     *sql.QueryStats
	statsOpts []sql.StatsOption

	group singleflight.Group
	mu    sync.RWMutex
	drv   dialect.Driver
}

// Open validates cfg and returns a Client. No connection is made until the
// client is used.
func Open(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		cfg:    cfg,
		log:    slog.Default(),
		opener: openMySQL,
		debug:  cfg.Debug,
	}
	if cfg.SlowThreshold > 0 {
		c.stats = &sql.QueryStats{}
		c.statsOpts = append(c.statsOpts, sql.WithSlowThreshold(cfg.SlowThreshold))
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Use returns a query on table bound to the client.
func (c *Client) Use(table string) *sql.Query {
	return sql.NewQuery(c, table)
}

// Connected opens the connection if it is not open yet.
func (c *Client) Connected(ctx context.Context) error {
	_, err := c.driver(ctx)
	return err
}

// Exec runs a raw statement that does not return rows. See dialect.ExecQuerier.
func (c *Client) Exec(ctx context.Context, query string, args, v any) error {
	drv, err := c.driver(ctx)
	if err != nil {
		return err
	}
	return drv.Exec(ctx, query, args, v)
}

// Query runs a raw statement that returns rows. See dialect.ExecQuerier.
func (c *Client) Query(ctx context.Context, query string, args, v any) error {
	drv, err := c.driver(ctx)
	if err != nil {
		return err
	}
	return drv.Query(ctx, query, args, v)
}

// Dialect implements dialect.Driver.
func (c *Client) Dialect() string { return dialect.MySQL }

// Close closes the connection, if open. The handle is cleared even if
// closing fails.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drv == nil {
		return nil
	}
	err := c.drv.Close()
	c.drv = nil
	c.log.Debug("connection closed", "database", c.cfg.Database, "error", err)
	return err
}

// Stats returns the statement statistics. It is the zero snapshot unless
// statistics are enabled.
func (c *Client) Stats() sql.StatsSnapshot {
	if c.stats == nil {
		return sql.StatsSnapshot{}
	}
	return c.stats.Stats()
}

// driver returns the open driver, opening it on first use. Concurrent
// first uses share one opening attempt.
func (c *Client) driver(ctx context.Context) (dialect.Driver, error) {
	c.mu.RLock()
	drv := c.drv
	c.mu.RUnlock()
	if drv != nil {
		return drv, nil
	}
	v, err, _ := c.group.Do("open", func() (any, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.drv != nil {
			return c.drv, nil
		}
		drv, err := c.opener(ctx, c.cfg)
		if err != nil {
			return nil, err
		}
		if c.stats != nil {
			opts := append([]sql.StatsOption{sql.WithQueryStats(c.stats), sql.WithSlowQueryLog(c.log)}, c.statsOpts...)
			drv = sql.NewStatsDriver(drv, opts...)
		}
		if c.debug {
			drv = sql.NewDebugDriver(drv, sql.DebugWithLogger(c.log))
		}
		c.drv = drv
		c.log.Debug("connection opened", "host", c.cfg.Host, "port", c.cfg.Port, "database", c.cfg.Database)
		return drv, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(dialect.Driver), nil
}

// openMySQL opens a database handle capped at one physical connection.
func openMySQL(ctx context.Context, cfg Config) (dialect.Driver, error) {
	connector, err := mysql.NewConnector(cfg.MySQL())
	if err != nil {
		return nil, fmt.Errorf("mysqlb: connector: %w", err)
	}
	db := stdsql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sql.OpenDB(dialect.MySQL, db), nil
}

var _ dialect.Driver = (*Client)(nil)
