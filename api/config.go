package api

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
}

type StorageConfig struct {
	Driver      string
	DatabaseURL string

	TableNameTeams    string
	TableNameJudges   string
	TableNameCriteria string
	TableNameRatings  string
	TableNameState    string
	DynamoEndpoint    string
}

type ServerConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type AuthConfig struct {
	AdminCode       string
	JWTSecret       string
	SessionTTL      time.Duration
	LoginRatePerMin float64
	LoginBurst      int
}

// Local reports whether the service runs as a plain HTTP server rather than
// inside a lambda.
func (c *Config) Local() bool {
	return c.Env == "local" || c.Env == "development"
}

// SetDefaults registers defaults and the environment names of the settings
// that come from secrets.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.env", "local")
	v.SetDefault("server.logLevel", "debug")
	v.SetDefault("server.allowedOrigins", []string{"http://localhost:5173"})

	v.SetDefault("storage.driver", storage.DriverSQLite)
	v.SetDefault("storage.databaseUrl", "file:judging.db")
	v.SetDefault("storage.tableNameTeams", "JudgingTeams")
	v.SetDefault("storage.tableNameJudges", "JudgingJudges")
	v.SetDefault("storage.tableNameCriteria", "JudgingCriteria")
	v.SetDefault("storage.tableNameRatings", "JudgingRatings")
	v.SetDefault("storage.tableNameState", "JudgingState")

	v.SetDefault("auth.sessionTTL", 24*time.Hour)
	v.SetDefault("auth.loginRatePerMin", 10)
	v.SetDefault("auth.loginBurst", 5)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.env", "APP_ENV")
	_ = v.BindEnv("server.allowedOrigins", "CORS_ORIGINS")
	_ = v.BindEnv("storage.driver", "DATABASE_DRIVER")
	_ = v.BindEnv("storage.databaseUrl", "DATABASE_URL")
	_ = v.BindEnv("storage.dynamoEndpoint", "DYNAMODB_ENDPOINT")
	_ = v.BindEnv("auth.adminCode", "ADMIN_CODE")
	_ = v.BindEnv("auth.jwtSecret", "JWT_SECRET")
}

var settingsOnce sync.Once

func ReadConfig(v *viper.Viper) *Config {
	conf := &Config{
		StorageConfig: StorageConfig{
			Driver:            v.GetString("storage.driver"),
			DatabaseURL:       v.GetString("storage.databaseUrl"),
			TableNameTeams:    v.GetString("storage.tableNameTeams"),
			TableNameJudges:   v.GetString("storage.tableNameJudges"),
			TableNameCriteria: v.GetString("storage.tableNameCriteria"),
			TableNameRatings:  v.GetString("storage.tableNameRatings"),
			TableNameState:    v.GetString("storage.tableNameState"),
			DynamoEndpoint:    v.GetString("storage.dynamoEndpoint"),
		},
		ServerConfig: ServerConfig{
			Port:           v.GetInt("server.port"),
			Env:            v.GetString("server.env"),
			LogLevel:       v.GetString("server.logLevel"),
			AllowedOrigins: splitOrigins(v.GetStringSlice("server.allowedOrigins")),
		},
		AuthConfig: AuthConfig{
			AdminCode:       v.GetString("auth.adminCode"),
			JWTSecret:       v.GetString("auth.jwtSecret"),
			SessionTTL:      v.GetDuration("auth.sessionTTL"),
			LoginRatePerMin: v.GetFloat64("auth.loginRatePerMin"),
			LoginBurst:      v.GetInt("auth.loginBurst"),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Infof("CONFIG: storage driver %q, env %q, port %d", conf.Driver, conf.Env, conf.Port)
	})

	return conf
}

// splitOrigins accepts both a yaml list and a comma separated env value.
func splitOrigins(values []string) []string {
	origins := make([]string, 0, len(values))
	for _, v := range values {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return origins
}

// Validate checks everything the HTTP server needs.
func (c *Config) Validate() error {
	if err := c.ValidateStorage(); err != nil {
		return err
	}
	if c.AdminCode == "" {
		return errors.New("auth.adminCode (ADMIN_CODE) is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("auth.jwtSecret (JWT_SECRET) must be at least 32 characters")
	}
	if c.SessionTTL <= 0 {
		return errors.New("auth.sessionTTL must be positive")
	}
	return nil
}

func (c *Config) ValidateStorage() error {
	switch c.Driver {
	case storage.DriverPostgres, storage.DriverSQLite:
		if c.DatabaseURL == "" {
			return errors.New("storage.databaseUrl (DATABASE_URL) is required for sql drivers")
		}
	case DriverDynamo:
	default:
		return errors.New("storage.driver must be one of postgres, sqlite, dynamodb")
	}
	return nil
}
