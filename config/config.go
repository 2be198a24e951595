package config

import (
	"errors"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config 服务配置，全部来自环境变量（.env 文件中的值会先被加载）
type Config struct {
	Port string `env:"PORT,default=3000"`

	DBDriver       string `env:"DB_DRIVER,default=mysql"`
	DBHost         string `env:"DB_HOST,default=127.0.0.1"`
	DBPort         string `env:"DB_PORT,default=3306"`
	DBUser         string `env:"DB_USER,default=root"`
	DBPassword     string `env:"DB_PASSWORD"`
	DBName         string `env:"DB_NAME,default=agri"`
	DBDSN          string `env:"DB_DSN"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS,default=10,strict"`
	DBAutoMigrate  bool   `env:"DB_AUTO_MIGRATE,default=false,strict"`

	LogLevel    string   `env:"LOG_LEVEL,default=info"`
	CORSOrigins []string `env:"CORS_ORIGINS,default=*"`

	// PasswordStorage bcrypt 或 plain（兼容已有的明文密码数据）
	PasswordStorage string        `env:"PASSWORD_STORAGE,default=bcrypt"`
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTTTL          time.Duration `env:"JWT_TTL,default=168h,strict"`
	RequireAuth     bool          `env:"REQUIRE_AUTH,default=false,strict"`

	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaTopic   string   `env:"KAFKA_TOPIC,default=agrilab.records"`
}

// Load 加载 .env（如果存在）并解析环境变量
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return Decode()
}

// Decode 只从当前环境变量解析配置
func Decode() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil {
		return nil, err
	}
	if cfg.RequireAuth && cfg.JWTSecret == "" {
		return nil, errors.New("REQUIRE_AUTH needs JWT_SECRET")
	}
	switch cfg.PasswordStorage {
	case "bcrypt", "plain":
	default:
		return nil, errors.New("PASSWORD_STORAGE must be bcrypt or plain")
	}
	return cfg, nil
}
