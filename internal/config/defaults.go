package config

const (
	DefaultHTTPPort             = 8080
	DefaultReadTimeout          = 10
	DefaultWriteTimeout         = 10
	DefaultIdleTimeout          = 60
	DefaultShutdownTimeout      = 15
	DefaultDBPort               = 5432
	DefaultSSLMode              = "disable"
	DefaultMaxOpenConns         = 25
	DefaultMaxIdleConns         = 5
	DefaultConnMaxLifetime      = 300
	DefaultLogLevel             = "info"
	DefaultMetricsPath          = "/metrics"
	DefaultServiceName          = "tutor-booking-service"
	DefaultClientTimeout        = 5
	DefaultCourseTTL            = 300
	DefaultKafkaTopic           = "booking-notifications"
	DefaultMaxOptions           = 10
	DefaultSerializationRetries = 3
	DefaultRequestsPerMinute    = 60
	DefaultBurst                = 10
)

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = DefaultHTTPPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = DefaultIdleTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultSSLMode
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = DefaultMaxIdleConns
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = DefaultConnMaxLifetime
	}

	if c.Logs.Level == "" {
		c.Logs.Level = DefaultLogLevel
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = DefaultServiceName
	}

	if c.CourseService.Timeout == 0 {
		c.CourseService.Timeout = DefaultClientTimeout
	}
	if c.UserService.Timeout == 0 {
		c.UserService.Timeout = DefaultClientTimeout
	}
	if c.Cache.CourseTTL == 0 {
		c.Cache.CourseTTL = DefaultCourseTTL
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = DefaultKafkaTopic
	}

	if c.Booking.MaxOptions == 0 {
		c.Booking.MaxOptions = DefaultMaxOptions
	}

	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = DefaultBurst
	}
}
