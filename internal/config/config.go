// Package config lee la configuración del servicio: defaults, archivo YAML opcional y
// overrides por variables de entorno (en ese orden).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "ADOPTIONS_CONFIG"

	defaultTimezone = "UTC"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Storage       StorageConfig       `yaml:"storage"`
	Scheduling    SchedulingConfig    `yaml:"scheduling"`
	Documents     DocumentsConfig     `yaml:"documents"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Auth          AuthConfig          `yaml:"auth"`
	Log           LogConfig           `yaml:"log"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// DatabaseConfig: DSN vacío => store in-memory (modo dev).
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StorageConfig: Driver "memory" o "minio".
type StorageConfig struct {
	Driver    string        `yaml:"driver"`
	Endpoint  string        `yaml:"endpoint"`
	AccessKey string        `yaml:"accessKey"`
	SecretKey string        `yaml:"secretKey"`
	Bucket    string        `yaml:"bucket"`
	Region    string        `yaml:"region"`
	UseSSL    bool          `yaml:"useSSL"`
	URLTTL    time.Duration `yaml:"urlTTL"`
}

// SchedulingConfig define las reglas de agenda de visitas.
type SchedulingConfig struct {
	Timezone    string   `yaml:"timezone"`
	Slots       []string `yaml:"slots"` // HH:MM
	HorizonDays int      `yaml:"horizonDays"`

	location *time.Location
}

// Location resuelve Timezone; cae a UTC si no fue validada.
func (s SchedulingConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	return time.UTC
}

type DocumentsConfig struct {
	RequiredTypes []string `yaml:"requiredTypes"`
	MaxBytes      int64    `yaml:"maxBytes"`
}

// NotificationsConfig: Driver "log" (goroutine + logger/webhook) o "queue" (asynq).
type NotificationsConfig struct {
	Driver     string        `yaml:"driver"`
	WebhookURL string        `yaml:"webhookURL"`
	Timeout    time.Duration `yaml:"timeout"`
}

type AuthConfig struct {
	OdinBaseURL  string `yaml:"odinBaseURL"`
	OdinAPIKey   string `yaml:"odinAPIKey"`
	PlansBaseURL string `yaml:"plansBaseURL"`
	PlansAPIKey  string `yaml:"plansAPIKey"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Storage: StorageConfig{
			Driver: "memory",
			Bucket: "adoptions",
			Region: "us-east-1",
			URLTTL: 15 * time.Minute,
		},
		Scheduling: SchedulingConfig{
			Timezone:    defaultTimezone,
			Slots:       []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"},
			HorizonDays: 30,
			location:    time.UTC,
		},
		Documents: DocumentsConfig{
			RequiredTypes: []string{"identification", "proof_of_address", "national_id"},
			MaxBytes:      5 << 20, // 5 MiB
		},
		Notifications: NotificationsConfig{
			Driver:  "log",
			Timeout: 5 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text", App: "pet-adoption"},
	}
}

// Load lee path (si no es vacío) sobre los defaults y aplica overrides de entorno.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		// yaml.v3 sólo pisa los campos presentes en el archivo.
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv usa ADOPTIONS_CONFIG como path del archivo (opcional).
func LoadFromEnv() (Config, error) {
	return Load(os.Getenv(configPathEnv))
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	if v, ok := lookupInt("REDIS_DB"); ok {
		c.Redis.DB = v
	}

	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Storage.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Storage.Bucket, "MINIO_BUCKET")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		c.Storage.UseSSL = strings.EqualFold(v, "true")
	}

	setString(&c.Scheduling.Timezone, "SCHEDULE_TIMEZONE")
	if v, ok := lookupInt("SCHEDULE_HORIZON_DAYS"); ok {
		c.Scheduling.HorizonDays = v
	}

	setString(&c.Notifications.Driver, "NOTIFY_DRIVER")
	setString(&c.Notifications.WebhookURL, "NOTIFY_WEBHOOK_URL")

	setString(&c.Auth.OdinBaseURL, "ODIN_BASE_URL")
	setString(&c.Auth.OdinAPIKey, "ODIN_API_KEY")
	setString(&c.Auth.PlansBaseURL, "PLANS_BASE_URL")
	setString(&c.Auth.PlansAPIKey, "PLANS_API_KEY")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.App, "APP_NAME")
}

func (c *Config) validate() error {
	tz := strings.TrimSpace(c.Scheduling.Timezone)
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("config: unknown scheduling timezone %q: %w", tz, err)
	}
	c.Scheduling.Timezone = tz
	c.Scheduling.location = loc

	if len(c.Scheduling.Slots) == 0 {
		return fmt.Errorf("config: scheduling.slots must not be empty")
	}
	for _, s := range c.Scheduling.Slots {
		if _, err := time.Parse("15:04", s); err != nil {
			return fmt.Errorf("config: invalid slot %q (want HH:MM)", s)
		}
	}
	if c.Scheduling.HorizonDays <= 0 {
		return fmt.Errorf("config: scheduling.horizonDays must be positive")
	}
	if len(c.Documents.RequiredTypes) == 0 {
		return fmt.Errorf("config: documents.requiredTypes must not be empty")
	}
	if c.Documents.MaxBytes <= 0 {
		c.Documents.MaxBytes = Default().Documents.MaxBytes
	}

	switch c.Storage.Driver {
	case "memory", "minio":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Notifications.Driver {
	case "log", "queue":
	default:
		return fmt.Errorf("config: unknown notifications driver %q", c.Notifications.Driver)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func lookupInt(key string) (int, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}
