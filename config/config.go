// config/config.go
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// --- Sub-structs, mirroring the YAML layout ---

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Env            string   `mapstructure:"env"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	ProvinceTTL time.Duration `mapstructure:"provinceTTL"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type BookingConfig struct {
	// CodeRetries bounds how many times create re-derives the booking code
	// after hitting the unique index on bookingCode.
	CodeRetries int `mapstructure:"codeRetries"`
}

type SeedConfig struct {
	MasterRegionFile string `mapstructure:"masterRegionFile"`
	AdminEmail       string `mapstructure:"adminEmail"`
	AdminPassword    string `mapstructure:"adminPassword"`
}

// --- Main Config struct ---

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Redis   RedisConfig   `mapstructure:"redis"`
	S3      S3Config      `mapstructure:"s3"`
	Booking BookingConfig `mapstructure:"booking"`
	Seed    SeedConfig    `mapstructure:"seed"`
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.dbName", "contingent_booking")
	v.SetDefault("jwt.expiration", 24*time.Hour)
	v.SetDefault("redis.provinceTTL", 24*time.Hour)
	v.SetDefault("booking.codeRetries", 3)
	v.SetDefault("seed.masterRegionFile", "data/master_region.json")
	v.SetDefault("seed.adminEmail", "superadmin@example.com")
}

// LoadConfig reads config.yaml from path and overrides it with environment variables.
// A .env file in the working directory is loaded first when present.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	setDefaults(v)

	v.AutomaticEnv()

	// "mongo.uri" in YAML maps to MONGO_URI and so on.
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.dbName", "MONGO_DBNAME")
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.env", "APP_ENV")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.region", "S3_REGION")
	v.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	v.BindEnv("booking.codeRetries", "BOOKING_CODE_RETRIES")
	v.BindEnv("seed.masterRegionFile", "SEED_MASTER_REGION_FILE")
	v.BindEnv("seed.adminEmail", "SEED_ADMIN_EMAIL")
	v.BindEnv("seed.adminPassword", "SEED_ADMIN_PASSWORD")

	// Without a config file only defaults and environment variables are used.
	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}

	if config.Booking.CodeRetries < 1 {
		config.Booking.CodeRetries = 1
	}

	return config, nil
}
