package client

import (
	"io/ioutil"

	"github.com/Yunpeng-J/zipf/pkg/workload"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Workload workload.Config `yaml:"workload" mapstructure:"workload"`

	Clients int `yaml:"clients" mapstructure:"clients"`
	// Interval bounds a load run, in seconds.
	Interval int `yaml:"interval" mapstructure:"interval"`
	// Number is the trace length, and caps a load run when positive.
	Number    int    `yaml:"number" mapstructure:"number"`
	Directory string `yaml:"directory" mapstructure:"directory"`
	// Record writes every observed access of a load run to disk.
	Record bool `yaml:"record" mapstructure:"record"`
	TopK   int  `yaml:"topK" mapstructure:"topK"`

	MetricsAddr string `yaml:"metricsAddr" mapstructure:"metricsAddr"`
	MetricsType string `yaml:"metricsType" mapstructure:"metricsType"`
}

var defaultConfig = Config{
	Clients:     16,
	Interval:    10,
	Number:      50000,
	Directory:   ".",
	TopK:        10,
	MetricsType: "disabled",
}

// LoadConfig reads a YAML config file and applies defaults.
func LoadConfig(f string) (Config, error) {
	raw, err := ioutil.ReadFile(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "error loading %s", f)
	}
	config := Config{}
	if err = yaml.Unmarshal(raw, &config); err != nil {
		return Config{}, errors.Wrapf(err, "error unmarshal %s", f)
	}
	return config.WithDefaults(), nil
}

// FromSettings decodes a flat settings map such as viper.AllSettings().
// Keys match case-insensitively and strings are converted to numbers.
func FromSettings(settings map[string]interface{}) (Config, error) {
	config := Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "create config decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return Config{}, errors.Wrap(err, "decode settings")
	}
	return config.WithDefaults(), nil
}

func (c Config) WithDefaults() Config {
	c.Workload = c.Workload.WithDefaults()
	if c.Clients == 0 {
		c.Clients = defaultConfig.Clients
	}
	if c.Interval == 0 {
		c.Interval = defaultConfig.Interval
	}
	if c.Number == 0 {
		c.Number = defaultConfig.Number
	}
	if c.Directory == "" {
		c.Directory = defaultConfig.Directory
	}
	if c.TopK == 0 {
		c.TopK = defaultConfig.TopK
	}
	if c.MetricsType == "" {
		c.MetricsType = defaultConfig.MetricsType
	}
	return c
}

func (c Config) Validate() error {
	if c.Clients < 1 {
		return errors.Errorf("clients must be positive, got %d", c.Clients)
	}
	if c.Interval < 1 {
		return errors.Errorf("interval must be positive, got %d", c.Interval)
	}
	if c.Number < 0 {
		return errors.Errorf("number must not be negative, got %d", c.Number)
	}
	if c.TopK < 0 {
		return errors.Errorf("topK must not be negative, got %d", c.TopK)
	}
	return errors.Wrap(c.Workload.Validate(), "workload")
}
