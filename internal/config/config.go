package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Env           string          `yaml:"env" env-default:"local"`
	ServiceName   string          `yaml:"service_name" env-default:"PsyTech API"`
	PublicBaseURL string          `yaml:"public_base_url" env:"PUBLIC_BASE_URL" env-default:"http://localhost:3000"`
	HTTP          HTTPConfig      `yaml:"http"`
	Storage       StorageConfig   `yaml:"storage"`
	Redis         RedisConf       `yaml:"redis"`
	Admin         AdminConfig     `yaml:"admin"`
	Webhook       WebhookConfig   `yaml:"webhook"`
	Email         EmailConfig     `yaml:"email"`
	AI            AIConfig        `yaml:"ai"`
	Worker        WorkerConfig    `yaml:"worker"`
	Cache         CacheConfig     `yaml:"cache"`
	Media         MediaConfig     `yaml:"media"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"*"`
}

// StorageConfig selects the content store. Driver is "postgres" or "mongo".
type StorageConfig struct {
	Driver        string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	DSN           string `yaml:"dsn" env:"DATABASE_DSN"`
	MongoURI      string `yaml:"mongo_uri" env:"MONGO_URL"`
	MongoDatabase string `yaml:"mongo_database" env:"DB_NAME" env-default:"psytech"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

// AdminConfig holds the HTTP Basic credentials for /admin routes.
// PasswordHash (bcrypt) wins over Password when both are set.
type AdminConfig struct {
	Password     string `yaml:"password" env:"ADMIN_PASSWORD"`
	PasswordHash string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
}

type WebhookConfig struct {
	URL         string        `yaml:"url" env:"MAKE_WEBHOOK_URL"`
	MaxAttempts int           `yaml:"max_attempts" env-default:"3"`
	BaseDelay   time.Duration `yaml:"base_delay" env-default:"1s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
}

type EmailConfig struct {
	ResendAPIKey      string `yaml:"resend_api_key" env:"RESEND_API_KEY"`
	Sender            string `yaml:"sender" env:"SENDER_EMAIL" env-default:"onboarding@resend.dev"`
	NotificationEmail string `yaml:"notification_email" env:"NOTIFICATION_EMAIL"`
}

type AIConfig struct {
	Enabled     bool   `yaml:"enabled" env:"AI_ENABLED"`
	APIKey      string `yaml:"api_key" env:"AI_API_KEY"`
	BaseURL     string `yaml:"base_url" env:"AI_BASE_URL"`
	TextModel   string `yaml:"text_model" env-default:"gpt-4o"`
	ImageModel  string `yaml:"image_model" env-default:"dall-e-3"`
	Images      bool   `yaml:"images" env-default:"true"`
	AutoPublish bool   `yaml:"auto_publish" env:"AUTO_PUBLISH_POSTS"`
	Schedule    string `yaml:"schedule" env-default:"0 9 * * mon,thu"`
	Language    string `yaml:"language" env-default:"en"`
}

type WorkerConfig struct {
	Workers   int `yaml:"workers" env-default:"4"`
	QueueSize int `yaml:"queue_size" env-default:"128"`
}

// MediaConfig is where generated hero images are written and served from.
// An empty Dir keeps images inline on the post.
type MediaConfig struct {
	Dir     string `yaml:"dir" env:"MEDIA_DIR"`
	BaseURL string `yaml:"base_url" env:"MEDIA_BASE_URL" env-default:"http://localhost:8080/uploads"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env-default:"1m"`
}

// RateLimitConfig bounds POST /contact per client IP. Requests == 0 disables it.
type RateLimitConfig struct {
	Requests int           `yaml:"requests" env-default:"5"`
	Window   time.Duration `yaml:"window" env-default:"1m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	if err := cfg.validate(); err != nil {
		panic("invalid config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
