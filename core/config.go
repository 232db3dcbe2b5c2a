package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

type (
	DatabaseConfig struct {
		Engine     string `mapstructure:"engine"`
		Path       string `mapstructure:"path"` // sqlite only
		Host       string `mapstructure:"host"`
		Port       int    `mapstructure:"port"`
		Name       string `mapstructure:"name"`
		User       string `mapstructure:"user"`
		Password   string `mapstructure:"password"`
		DisableTLS bool   `mapstructure:"disableTLS"`
	}

	ReportConfig struct {
		PassThreshold float64 `mapstructure:"passThreshold"`
		FailThreshold float64 `mapstructure:"failThreshold"`
	}

	Config struct {
		Env          string         `mapstructure:"env"`
		Debug        bool           `mapstructure:"debug"`
		TestMode     bool           `mapstructure:"testMode"`
		AppName      string         `mapstructure:"appName"`
		Build        string         `mapstructure:"build"`
		RollbarToken string         `mapstructure:"rollbarToken"`
		Database     DatabaseConfig `mapstructure:"database"`
		Report       ReportConfig   `mapstructure:"report"`
	}
)

func (dc DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", dc.Host, dc.Port)
}

// NewConfig reads the configuration for the current ENV (DEV by default).
// Values come from defaults, then config/.env.<env> if it exists, then <ENV>_* variables,
// e.g. DEV_DATABASE_PATH=/var/lib/escola.db
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", false)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Escola")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("database.engine", EngineSQLite)
	v.SetDefault("database.path", "escola.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "escola")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("report.passThreshold", 7.0)
	v.SetDefault("report.failThreshold", 4.9)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetDefault("env", env)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}
	v.AutomaticEnv()

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	conf.Database.Engine = CleanString(conf.Database.Engine, true)
	if conf.Database.Engine != EngineSQLite && conf.Database.Engine != EnginePostgres {
		return nil, errors.Errorf("unsupported database engine %q", conf.Database.Engine)
	}
	return &conf, nil
}
