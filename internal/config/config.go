// Package config loads trainer settings from defaults, an optional config
// file, DCD_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/CSMONE/mlpack/dcd"
	"github.com/CSMONE/mlpack/internal/logging"
)

// Config is the top-level configuration of the train command.
type Config struct {
	Input  string       `mapstructure:"input"  validate:"required"`
	Test   string       `mapstructure:"test"`
	Train  TrainConfig  `mapstructure:"train"`
	Log    LogConfig    `mapstructure:"log"`
	Output OutputConfig `mapstructure:"output"`
}

// TrainConfig mirrors dcd.Parameter plus the model selection options.
type TrainConfig struct {
	Cp             float64 `mapstructure:"cp"             validate:"gt=0"`
	Cn             float64 `mapstructure:"cn"             validate:"gt=0"`
	Regularization string  `mapstructure:"regularization" validate:"required"`
	MaxEpochs      int     `mapstructure:"max_epochs"     validate:"min=1"`
	MaxIters       int     `mapstructure:"max_iters"      validate:"min=0"`
	Accuracy       float64 `mapstructure:"accuracy"       validate:"gt=0"`
	Seed           int64   `mapstructure:"seed"`
	ObjValue       bool    `mapstructure:"objvalue"`
	Folds          int     `mapstructure:"folds"          validate:"omitempty,min=2"`
	FindC          bool    `mapstructure:"find_c"`
	MaxC           float64 `mapstructure:"max_c"          validate:"gt=0"`
}

// LogConfig selects log level, format and destination.
type LogConfig struct {
	Level      string `mapstructure:"level"       validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format"      validate:"oneof=json text"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"    validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAge     int    `mapstructure:"max_age"     validate:"min=0"`
	Compress   bool   `mapstructure:"compress"`
}

// OutputConfig names optional report files.
type OutputConfig struct {
	MetricsFile string `mapstructure:"metrics_file"`
	Plot        string `mapstructure:"plot"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"input":          "input",
	"test":           "test",
	"cp":             "train.cp",
	"cn":             "train.cn",
	"regularization": "train.regularization",
	"epochs":         "train.max_epochs",
	"iters":          "train.max_iters",
	"accuracy":       "train.accuracy",
	"seed":           "train.seed",
	"objvalue":       "train.objvalue",
	"folds":          "train.folds",
	"find-c":         "train.find_c",
	"max-c":          "train.max_c",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"log-file":       "log.file",
	"metrics-file":   "output.metrics_file",
	"plot":           "output.plot",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "")
	v.SetDefault("test", "")
	v.SetDefault("output.metrics_file", "")
	v.SetDefault("output.plot", "")
	v.SetDefault("log.file", "")
	v.SetDefault("train.cp", 1.0)
	v.SetDefault("train.cn", 1.0)
	v.SetDefault("train.regularization", "l1")
	v.SetDefault("train.max_epochs", 1000)
	v.SetDefault("train.max_iters", 0)
	v.SetDefault("train.accuracy", 0.1)
	v.SetDefault("train.seed", 0)
	v.SetDefault("train.max_c", 1024.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}

// RegisterFlags declares the command-line flags understood by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (toml, yaml or json)")
	fs.StringP("input", "i", "", "training set file in libsvm format")
	fs.StringP("test", "t", "", "test set file in libsvm format")
	fs.Float64P("c", "c", 1, "set both class penalties")
	fs.Float64("cp", 1, "penalty of positive samples")
	fs.Float64("cn", 1, "penalty of negative samples")
	fs.StringP("regularization", "s", "l1", "l1 (L1-loss, box bounded) or l2 (L2-loss)")
	fs.IntP("epochs", "e", 1000, "maximum number of epochs")
	fs.Int("iters", 0, "coordinate steps per epoch, 0 means one pass")
	fs.Float64("accuracy", 0.1, "stopping tolerance on the projected gradient gap")
	fs.Int64("seed", 0, "seed of the permutation generator")
	fs.Bool("objvalue", false, "compute the objective value and support vector count")
	fs.IntP("folds", "v", 0, "n-fold cross validation mode")
	fs.BoolP("find-c", "C", false, "search the penalty C by cross validation")
	fs.Float64("max-c", 1024, "largest penalty tried by --find-c")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-format", "json", "json or text")
	fs.String("log-file", "", "log file, rotated; stdout when empty")
	fs.String("metrics-file", "", "write prometheus metrics in textfile format")
	fs.String("plot", "", "write the optimality gap per epoch as a PNG")
}

// Load reads the configuration. path may be empty; fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DCD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if flag := fs.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if fs != nil && fs.Changed("c") {
		c, _ := fs.GetFloat64("c")
		if !fs.Changed("cp") {
			cfg.Train.Cp = c
		}
		if !fs.Changed("cn") {
			cfg.Train.Cn = c
		}
	}
	cfg.Train.Regularization = strings.ToLower(strings.TrimSpace(cfg.Train.Regularization))
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	if dcd.GetRegularizationByName(cfg.Train.Regularization) == nil {
		return nil, errors.Newf("config validation failed: unknown regularization %q", cfg.Train.Regularization)
	}
	return &cfg, nil
}

// Parameter converts the training section into a dcd.Parameter.
func (c *Config) Parameter() (*dcd.Parameter, error) {
	regularization := dcd.GetRegularizationByName(c.Train.Regularization)
	if regularization == nil {
		return nil, errors.Wrapf(dcd.ErrInvalidParameter, "unknown regularization %q", c.Train.Regularization)
	}
	param := dcd.NewParameter(c.Train.Cp, c.Train.Cn, regularization, c.Train.MaxEpochs, c.Train.MaxIters, c.Train.Accuracy)
	param.SetSeed(c.Train.Seed)
	param.SetObjValue(c.Train.ObjValue)
	if err := param.Validate(); err != nil {
		return nil, err
	}
	return param, nil
}

// Logging converts the log section into a logging.Config.
func (c *Config) Logging(service string) logging.Config {
	return logging.Config{
		Service:    service,
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}
