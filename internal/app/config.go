package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goto/salt/config"
	"github.com/goto/siphon/core/fetch"
	"github.com/goto/siphon/core/schema"
	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/internal/store"
	"github.com/goto/siphon/internal/store/postgres"
	"github.com/goto/siphon/jobs"
	siphonhttp "github.com/goto/siphon/pkg/http"
	"github.com/goto/siphon/pkg/opentelemetry"
	"github.com/mcuadros/go-defaults"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel  string                       `mapstructure:"log_level" default:"info"`
	LogFormat string                       `mapstructure:"log_format" default:"text"`
	DB        store.Config                 `mapstructure:"db"`
	HTTP      siphonhttp.ClientConfig      `mapstructure:"http"`
	Fetch     fetch.Config                 `mapstructure:"fetch"`
	Schema    schema.Config                `mapstructure:"schema"`
	Persist   postgres.PersistConfig       `mapstructure:"persist"`
	Telemetry opentelemetry.Config         `mapstructure:"telemetry"`
	Apis      []*domain.ApiDefinition      `mapstructure:"apis"`
	Jobs      map[jobs.Type]jobs.JobConfig `mapstructure:"jobs"`
}

func LoadConfig(configFile string) (Config, error) {
	var cfg Config
	defaults.SetDefaults(&cfg)

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("config file %s not found, using defaults\n", configFile)
		return cfg, nil
	}

	loader := config.NewLoader(
		config.WithFile(configFile),
		config.WithDecoderConfigOption(viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			config.StringToJsonFunc(),
		))),
	)
	if err := loader.Load(&cfg); err != nil {
		if errors.As(err, &config.ConfigFileNotFoundError{}) {
			fmt.Println(err)
			return cfg, nil
		}
		return Config{}, err
	}

	return cfg, nil
}
