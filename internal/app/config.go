package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ansel1/merry"
	"github.com/fpawel/evictdash/internal/data"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DB             data.Config `yaml:"db" toml:"db"`
	Addr           string      `yaml:"addr" toml:"addr" comment:"listen address of the HTTP API"`
	AllowedOrigins []string    `yaml:"allowed_origins,omitempty" toml:"allowed_origins,omitempty" comment:"CORS origins, empty allows any"`
	LogLevel       string      `yaml:"log_level" toml:"log_level" comment:"debug|info|warn|err"`
}

const (
	defaultConfigFileName = "evictdash.yaml"
	envDB                 = "EVICTDASH_DB"
	envAddr               = "EVICTDASH_ADDR"
	envConfig             = "EVICTDASH_CONFIG"
)

func defaultConfig() Config {
	return Config{
		DB: data.Config{
			File:        "evictdash.sqlite",
			ForeignKeys: true,
			BusyTimeout: 5 * time.Second,
		},
		Addr:     ":8080",
		LogLevel: "info",
	}
}

// loadConfig reads the yaml or toml file, by extension. The default file is
// created with default values when it does not exist, any other missing file
// is an error. EVICTDASH_DB and EVICTDASH_ADDR override the file.
func loadConfig(filename string) (Config, error) {
	c := defaultConfig()
	if filename == "" {
		filename = defaultConfigFileName
	}

	b, err := ioutil.ReadFile(filename)
	switch {
	case os.IsNotExist(err) && filepath.Base(filename) == defaultConfigFileName:
		if err := saveConfig(filename, c); err != nil {
			log.PrintErr(merry.Append(err, "save default config"))
		}
	case err != nil:
		return c, merry.Wrap(err)
	default:
		if err := unmarshalConfig(filename, b, &c); err != nil {
			return c, merry.Appendf(err, "config %s", filename)
		}
	}

	if s := os.Getenv(envDB); s != "" {
		c.DB.File = s
	}
	if s := os.Getenv(envAddr); s != "" {
		c.Addr = s
	}
	return c, nil
}

func saveConfig(filename string, c Config) error {
	b, err := marshalConfig(filename, c)
	if err != nil {
		return err
	}
	return merry.Wrap(ioutil.WriteFile(filename, b, 0666))
}

func isToml(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}

func marshalConfig(filename string, c Config) ([]byte, error) {
	if isToml(filename) {
		b, err := toml.Marshal(c)
		return b, merry.Wrap(err)
	}
	b, err := yaml.Marshal(c)
	return b, merry.Wrap(err)
}

func unmarshalConfig(filename string, b []byte, c *Config) error {
	if isToml(filename) {
		return merry.Wrap(toml.Unmarshal(b, c))
	}
	return merry.Wrap(yaml.Unmarshal(b, c))
}
