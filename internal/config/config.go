package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"memberfund-backend/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Email      EmailConfig      `yaml:"email"`
	Push       PushConfig       `yaml:"push"`
	JWT        JWTConfig        `yaml:"jwt"`
	Log        LogConfig        `yaml:"log"`
	Governance GovernanceConfig `yaml:"governance"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	APIKey   string `yaml:"api_key"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}

// PushConfig contains Firebase Cloud Messaging settings
type PushConfig struct {
	Enabled         bool   `yaml:"enabled"`
	CredentialsFile string `yaml:"credentials_file"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// GovernanceConfig contains the payout governance rules. Every parameter
// the engine consumes is supplied here; none are hard-coded.
type GovernanceConfig struct {
	GracePeriodDays              int      `yaml:"grace_period_days"`
	FundThresholdCents           int64    `yaml:"fund_threshold_cents"`
	LaunchDate                   string   `yaml:"launch_date"` // yyyy-mm-dd
	RequiredMonthsAfterLaunch    int      `yaml:"required_months_after_launch"`
	RewardPerWinnerCents         int64    `yaml:"reward_per_winner_cents"`
	ApprovalAmountThresholdCents int64    `yaml:"approval_amount_threshold_cents"`
	StandardApprovals            int      `yaml:"standard_approvals"`
	LargeAmountApprovals         int      `yaml:"large_amount_approvals"`
	AllowedApproverRoles         []string `yaml:"allowed_approver_roles"`
	WorkflowMaxAgeDays           int      `yaml:"workflow_max_age_days"`
	DefaultWarningDays           int      `yaml:"default_warning_days"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SweepDefaults        string `yaml:"sweep_defaults"`
	EvaluateFund         string `yaml:"evaluate_fund"`
	ExpireStaleWorkflows string `yaml:"expire_stale_workflows"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.From = val
	}

	// Push
	if val := os.Getenv("FCM_CREDENTIALS_FILE"); val != "" {
		c.Push.CredentialsFile = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Governance
	if val := os.Getenv("FUND_THRESHOLD_CENTS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Governance.FundThresholdCents)
	}
	if val := os.Getenv("GRACE_PERIOD_DAYS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Governance.GracePeriodDays)
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 15
	}
	if c.JWT.RefreshTokenExpiry == 0 {
		c.JWT.RefreshTokenExpiry = 60 * 24 * 7
	}

	// Governance validation
	if c.Governance.GracePeriodDays < 0 {
		return fmt.Errorf("grace period days must be >= 0")
	}
	if c.Governance.LaunchDate == "" {
		return fmt.Errorf("governance launch date is required")
	}
	if _, err := time.Parse("2006-01-02", c.Governance.LaunchDate); err != nil {
		return fmt.Errorf("invalid governance launch date: %w", err)
	}
	if c.Governance.RewardPerWinnerCents <= 0 {
		return fmt.Errorf("reward per winner must be > 0")
	}
	if len(c.Governance.AllowedApproverRoles) == 0 {
		c.Governance.AllowedApproverRoles = []string{string(domain.RoleAdmin), string(domain.RoleFinanceManager)}
	}
	if c.Governance.StandardApprovals == 0 {
		c.Governance.StandardApprovals = 1
	}
	if c.Governance.LargeAmountApprovals == 0 {
		c.Governance.LargeAmountApprovals = 2
	}
	if c.Governance.ApprovalAmountThresholdCents == 0 {
		c.Governance.ApprovalAmountThresholdCents = c.Governance.FundThresholdCents
	}
	if c.Governance.WorkflowMaxAgeDays == 0 {
		c.Governance.WorkflowMaxAgeDays = 30
	}
	if c.Governance.DefaultWarningDays == 0 {
		c.Governance.DefaultWarningDays = 7
	}

	// Scheduler defaults
	if c.Scheduler.SweepDefaults == "" {
		c.Scheduler.SweepDefaults = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.EvaluateFund == "" {
		c.Scheduler.EvaluateFund = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.ExpireStaleWorkflows == "" {
		c.Scheduler.ExpireStaleWorkflows = "0 0 4 * * *" // 4 AM UTC
	}

	return nil
}

// LaunchTime returns the parsed launch date. Validate guarantees it parses.
func (c *Config) LaunchTime() time.Time {
	t, _ := time.Parse("2006-01-02", c.Governance.LaunchDate)
	return t
}

// ApproverRoles returns the allow-listed approver roles as domain values.
func (c *Config) ApproverRoles() []domain.Role {
	roles := make([]domain.Role, 0, len(c.Governance.AllowedApproverRoles))
	for _, r := range c.Governance.AllowedApproverRoles {
		roles = append(roles, domain.Role(r))
	}
	return roles
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
