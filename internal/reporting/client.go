// Package reporting provides write-only connectivity to the corporate
// reporting database (MS SQL Server). The nightly sync job pushes deal
// financial summaries there so the office BI tooling never has to touch
// the operational Postgres database.
package reporting

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb" // MS SQL Server driver
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/config"
)

const (
	// Retry configuration for connection attempts
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 10 * time.Second
	defaultBackoffFactor  = 2.0

	defaultHealthCheckTimeout = 5 * time.Second

	// summaryTable is where deal summaries land. Owned by the BI team;
	// schema changes go through them.
	summaryTable = "dbo.deal_financial_summary"
)

// Client provides write access to the reporting database. It manages
// connection pooling and upserts summary rows.
type Client struct {
	db           *sql.DB
	config       *config.ReportingConfig
	logger       *zap.Logger
	queryTimeout time.Duration
}

// DealSummary is one row of the reporting summary table. Money fields are
// nil when the deal has no value recorded yet.
type DealSummary struct {
	DealID            string
	HomeownerName     string
	Address           string
	City              string
	State             string
	RepName           string
	Status            string
	Phase             string
	RCV               *decimal.Decimal
	ACV               *decimal.Decimal
	Deductible        *decimal.Decimal
	Depreciation      *decimal.Decimal
	SalesTax          *decimal.Decimal
	BaseAmount        *decimal.Decimal
	CommissionPercent decimal.Decimal
	CommissionAmount  *decimal.Decimal
	CommissionPaid    bool
	ApprovedDate      *time.Time
	CompletedDate     *time.Time
	CreatedAt         time.Time
}

// HealthStatus represents the health check result for the reporting connection
type HealthStatus struct {
	Status     string        `json:"status"`
	Latency    time.Duration `json:"latency_ms"`
	Error      string        `json:"error,omitempty"`
	MaxOpen    int           `json:"max_open_connections"`
	Open       int           `json:"open_connections"`
	InUse      int           `json:"in_use"`
	Idle       int           `json:"idle"`
	WaitCount  int64         `json:"wait_count"`
	WaitTimeMs int64         `json:"wait_time_ms"`
}

// NewClient creates a new reporting client with the given configuration.
// Returns nil if reporting is not enabled or not configured. The client
// establishes a connection pool with retry logic for transient failures.
func NewClient(cfg *config.ReportingConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("Reporting connection disabled")
		return nil, nil
	}

	if cfg.URL == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("Reporting enabled but missing credentials, skipping connection",
			zap.Bool("url_present", cfg.URL != ""),
			zap.Bool("user_present", cfg.User != ""),
			zap.Bool("password_present", cfg.Password != ""),
		)
		return nil, nil
	}

	logger.Info("Initializing reporting connection",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
		zap.Int("conn_max_lifetime_seconds", cfg.ConnMaxLifetime),
		zap.Int("query_timeout_seconds", cfg.QueryTimeout),
	)

	connStr, err := buildConnectionString(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	var db *sql.DB
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxRetries; attempt++ {
		logger.Info("Attempting reporting connection",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxRetries),
		)

		db, err = sql.Open("sqlserver", connStr)
		if err != nil {
			logger.Warn("Failed to open reporting connection",
				zap.Error(err),
				zap.Int("attempt", attempt),
			)
			if attempt < defaultMaxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

		ctx, cancel := context.WithTimeout(context.Background(), defaultHealthCheckTimeout)
		err = db.PingContext(ctx)
		cancel()

		if err != nil {
			logger.Warn("Reporting ping failed",
				zap.Error(err),
				zap.Int("attempt", attempt),
			)
			_ = db.Close()
			if attempt < defaultMaxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		logger.Info("Reporting connection established successfully",
			zap.Int("attempts_taken", attempt),
		)

		return &Client{
			db:           db,
			config:       cfg,
			logger:       logger,
			queryTimeout: cfg.QueryTimeoutDuration(),
		}, nil
	}

	return nil, fmt.Errorf("failed to connect to reporting database after %d attempts: %w", defaultMaxRetries, err)
}

// buildConnectionString constructs a SQL Server connection string from the
// config. URL format expected: host:port/database or host:port.
func buildConnectionString(cfg *config.ReportingConfig) (string, error) {
	urlParts := strings.SplitN(cfg.URL, "/", 2)
	hostPort := urlParts[0]
	database := ""
	if len(urlParts) > 1 {
		database = urlParts[1]
	}

	hostParts := strings.SplitN(hostPort, ":", 2)
	host := hostParts[0]
	port := "1433" // Default SQL Server port
	if len(hostParts) > 1 {
		port = hostParts[1]
	}

	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	if database != "" {
		query.Add("database", database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		RawQuery: query.Encode(),
	}

	return u.String(), nil
}

// Close gracefully closes the reporting connection. Should be called
// during application shutdown.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}

	c.logger.Info("Closing reporting connection")

	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close reporting connection", zap.Error(err))
		return fmt.Errorf("failed to close reporting connection: %w", err)
	}

	return nil
}

// IsEnabled returns true if the client is initialized and ready for writes.
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}

// HealthCheck performs a health check on the reporting connection.
// Returns detailed status including connection pool statistics.
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if c == nil || c.db == nil {
		return &HealthStatus{
			Status: "disabled",
		}
	}

	start := time.Now()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	err := c.db.PingContext(ctx)
	latency := time.Since(start)

	stats := c.db.Stats()
	status := &HealthStatus{
		Latency:    latency,
		MaxOpen:    stats.MaxOpenConnections,
		Open:       stats.OpenConnections,
		InUse:      stats.InUse,
		Idle:       stats.Idle,
		WaitCount:  stats.WaitCount,
		WaitTimeMs: stats.WaitDuration.Milliseconds(),
	}

	if err != nil {
		c.logger.Warn("Reporting health check failed",
			zap.Error(err),
			zap.Duration("latency", latency),
		)
		status.Status = "unhealthy"
		status.Error = err.Error()
	} else {
		status.Status = "healthy"
	}

	return status
}

// UpsertDealSummaries merges summary rows into the reporting table, one
// MERGE per row. A failing row is logged and skipped so one bad record
// never blocks the rest of the batch. Returns synced and failed counts.
func (c *Client) UpsertDealSummaries(ctx context.Context, rows []DealSummary) (int, int, error) {
	if c == nil || c.db == nil {
		return 0, 0, fmt.Errorf("reporting client not initialized")
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	syncedAt := time.Now().UTC()

	synced, failed := 0, 0
	for i := range rows {
		if err := c.upsertSummary(ctx, &rows[i], syncedAt); err != nil {
			c.logger.Warn("Failed to upsert deal summary",
				zap.String("deal_id", rows[i].DealID),
				zap.Error(err),
			)
			failed++
			continue
		}
		synced++
	}

	c.logger.Debug("Deal summary batch written",
		zap.Int("synced", synced),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)

	return synced, failed, nil
}

func (c *Client) upsertSummary(ctx context.Context, row *DealSummary, syncedAt time.Time) error {
	query := fmt.Sprintf(`
MERGE INTO %s AS target
USING (SELECT @DealID AS deal_id) AS source
ON target.deal_id = source.deal_id
WHEN MATCHED THEN UPDATE SET
	homeowner_name = @HomeownerName,
	address = @Address,
	city = @City,
	state = @State,
	rep_name = @RepName,
	status = @Status,
	phase = @Phase,
	rcv = @RCV,
	acv = @ACV,
	deductible = @Deductible,
	depreciation = @Depreciation,
	sales_tax = @SalesTax,
	base_amount = @BaseAmount,
	commission_percent = @CommissionPercent,
	commission_amount = @CommissionAmount,
	commission_paid = @CommissionPaid,
	approved_date = @ApprovedDate,
	completed_date = @CompletedDate,
	created_at = @CreatedAt,
	synced_at = @SyncedAt
WHEN NOT MATCHED THEN INSERT
	(deal_id, homeowner_name, address, city, state, rep_name, status, phase,
	 rcv, acv, deductible, depreciation, sales_tax, base_amount,
	 commission_percent, commission_amount, commission_paid,
	 approved_date, completed_date, created_at, synced_at)
VALUES
	(@DealID, @HomeownerName, @Address, @City, @State, @RepName, @Status, @Phase,
	 @RCV, @ACV, @Deductible, @Depreciation, @SalesTax, @BaseAmount,
	 @CommissionPercent, @CommissionAmount, @CommissionPaid,
	 @ApprovedDate, @CompletedDate, @CreatedAt, @SyncedAt);`, summaryTable)

	_, err := c.db.ExecContext(ctx, query,
		sql.Named("DealID", row.DealID),
		sql.Named("HomeownerName", row.HomeownerName),
		sql.Named("Address", row.Address),
		sql.Named("City", row.City),
		sql.Named("State", row.State),
		sql.Named("RepName", row.RepName),
		sql.Named("Status", row.Status),
		sql.Named("Phase", row.Phase),
		sql.Named("RCV", decimalArg(row.RCV)),
		sql.Named("ACV", decimalArg(row.ACV)),
		sql.Named("Deductible", decimalArg(row.Deductible)),
		sql.Named("Depreciation", decimalArg(row.Depreciation)),
		sql.Named("SalesTax", decimalArg(row.SalesTax)),
		sql.Named("BaseAmount", decimalArg(row.BaseAmount)),
		sql.Named("CommissionPercent", row.CommissionPercent.StringFixed(2)),
		sql.Named("CommissionAmount", decimalArg(row.CommissionAmount)),
		sql.Named("CommissionPaid", row.CommissionPaid),
		sql.Named("ApprovedDate", timeArg(row.ApprovedDate)),
		sql.Named("CompletedDate", timeArg(row.CompletedDate)),
		sql.Named("CreatedAt", row.CreatedAt),
		sql.Named("SyncedAt", syncedAt),
	)
	return err
}

// decimalArg renders a nullable decimal as a driver-friendly value.
func decimalArg(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.StringFixed(2)
}

func timeArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
