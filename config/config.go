package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Postgres     PostgresConfig     `mapstructure:"postgres"`
	SessionRedis SessionRedisConfig `mapstructure:"sessionredis"`
	LobbyRedis   LobbyRedisConfig   `mapstructure:"lobbyredis"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Match        MatchConfig        `mapstructure:"match"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Host        string `mapstructure:"host"`
	Description string `mapstructure:"description"`

	// AllowOrigins is passed to the CORS middleware.
	AllowOrigins string `mapstructure:"alloworigins"`
}

type PostgresConfig struct {
	Port     string `mapstructure:"port"`
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SessionRedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LobbyRedisConfig is the pub/sub instance used to fan match lifecycle events
// out to lobby subscribers across processes.
type LobbyRedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Brokers     []string      `mapstructure:"brokers"`
	MatchTopic  string        `mapstructure:"matchtopic"`
	UserTopic   string        `mapstructure:"usertopic"`
	GroupID     string        `mapstructure:"groupid"`
	DialTimeout time.Duration `mapstructure:"dialtimeout"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtsecret"`
	// TrustGatewayHeaders accepts X-User-Id / X-User-Name set by an upstream
	// gateway that already authenticated the request.
	TrustGatewayHeaders bool `mapstructure:"trustgatewayheaders"`
}

type MatchConfig struct {
	StaleAfter      time.Duration `mapstructure:"staleafter"`
	StoreTimeout    time.Duration `mapstructure:"storetimeout"`
	PingPeriod      time.Duration `mapstructure:"pingperiod"`
	PongWait        time.Duration `mapstructure:"pongwait"`
	WriteWait       time.Duration `mapstructure:"writewait"`
	MaxMessageSize  int64         `mapstructure:"maxmessagesize"`
	SendBuffer      int           `mapstructure:"sendbuffer"`
	FramesPerSecond float64       `mapstructure:"framespersecond"`
	FrameBurst      int           `mapstructure:"frameburst"`
	CleanupOnBoot   bool          `mapstructure:"cleanuponboot"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requestsperminute"`
	Burst             int `mapstructure:"burst"`
}

func Read() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/")

	setDefaults()

	// ENV overrides with prefix MATCH_ and dot-to-underscore replacement
	viper.SetEnvPrefix("MATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zap.L().Warn("Failed to read configuration file", zap.Error(err))
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		zap.L().Error("Configuration could not be parsed", zap.Error(err))
	}

	return config
}

func setDefaults() {
	viper.SetDefault("app.name", "match-service")
	viper.SetDefault("app.version", "0.1.0")
	viper.SetDefault("app.env", "development")

	viper.SetDefault("server.port", "8084")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.alloworigins", "*")

	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.user", "myuser")
	viper.SetDefault("postgres.password", "mypassword")
	viper.SetDefault("postgres.db", "matchdb")
	viper.SetDefault("postgres.sslmode", "disable")

	viper.SetDefault("sessionredis.host", "localhost")
	viper.SetDefault("sessionredis.port", "6379")
	viper.SetDefault("sessionredis.db", 0)

	viper.SetDefault("lobbyredis.enabled", false)
	viper.SetDefault("lobbyredis.host", "localhost")
	viper.SetDefault("lobbyredis.port", "6379")
	viper.SetDefault("lobbyredis.db", 1)

	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.matchtopic", "match-events")
	viper.SetDefault("kafka.usertopic", "user-events")
	viper.SetDefault("kafka.groupid", "match-service")
	viper.SetDefault("kafka.dialtimeout", 10*time.Second)

	viper.SetDefault("auth.trustgatewayheaders", false)

	viper.SetDefault("match.staleafter", 5*time.Minute)
	viper.SetDefault("match.storetimeout", 5*time.Second)
	viper.SetDefault("match.pingperiod", 30*time.Second)
	viper.SetDefault("match.pongwait", 60*time.Second)
	viper.SetDefault("match.writewait", 10*time.Second)
	viper.SetDefault("match.maxmessagesize", 512)
	viper.SetDefault("match.sendbuffer", 256)
	viper.SetDefault("match.framespersecond", 10.0)
	viper.SetDefault("match.frameburst", 20)
	viper.SetDefault("match.cleanuponboot", true)

	viper.SetDefault("ratelimit.requestsperminute", 600)
	viper.SetDefault("ratelimit.burst", 60)
}
