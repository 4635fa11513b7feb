package config

type Database struct {
	Host     string `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int    `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string `mapstructure:"DATABASE_NAME" default:"samplestore"`
	User     string `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string `mapstructure:"DATABASE_PASSWORD" default:"samplestore"`
}

type Redis struct {
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"coldstack"`
	Service  string `mapstructure:"SERVICE" default:"samplestore"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}

type Trace struct {
	Version        string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	TraceEndpoint  string `mapstructure:"TRACE_TRACEENDPOINT" default:""`
	MetricEndpoint string `mapstructure:"TRACE_METRICENDPOINT" default:""`
}

type Storage struct {
	// 货架占用率告警阈值，达到即返回容量提示
	CapacityWarnThreshold float64 `mapstructure:"STORAGE_CAPACITY_WARN_THRESHOLD" default:"0.8"`
	// 批量迁移方案在 Redis 中的保留时长（分钟）
	PlanTTLMinutes int `mapstructure:"STORAGE_PLAN_TTL_MINUTES" default:"30"`
	// 条码层级分隔符
	BarcodeSeparator string `mapstructure:"STORAGE_BARCODE_SEPARATOR" default:"-"`
}
