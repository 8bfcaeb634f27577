// Package config gathers the run settings from defaults, an optional
// opensye.yaml file, OPENSYE_* environment variables (a .env file is loaded
// into the environment first) and command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"opensye/internal/compiler"
	"opensye/internal/exercise"
	"opensye/internal/leet"
	"opensye/internal/locale"
)

// Keys, shared by the config file, the environment and the flags.
const (
	KeyLang           = "lang"
	KeyExercises      = "exercises"
	KeyOnly           = "only"
	KeyYear           = "year"
	KeyTitle          = "title"
	KeyAuthor         = "author"
	KeyFilename       = "filename"
	KeyLeet           = "l33t"
	KeySeed           = "seed"
	KeyOutDir         = "out_dir"
	KeyCompile        = "compile"
	KeyLatexmk        = "latexmk"
	KeyCompileTimeout = "compile_timeout"
	KeyLogFile        = "log_file"
	KeyLogLevel       = "log_level"
	KeyYes            = "yes"
)

const (
	DefaultFilename = "my_first_SYE_exercice.tex"
	DefaultAuthor   = "sergiu.ivanov@univ-evry.fr"
	DefaultLogFile  = "opensye.log"
	EnvPrefix       = "OPENSYE"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Lang           locale.Locale
	Exercises      int
	Only           []string
	Year           int
	Title          string
	Author         string
	Filename       string
	Leet           int
	Seed           uint64
	OutDir         string
	Compile        bool
	Latexmk        string
	CompileTimeout time.Duration
	LogFile        string
	LogLevel       string
	AssumeYes      bool
}

// LoadEnv loads .env style files into the process environment. Missing
// files are ignored.
func LoadEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not load env file: %w", err)
	}
	return nil
}

func SetDefaults(v *viper.Viper, now time.Time) {
	v.SetDefault(KeyLang, string(locale.FR))
	v.SetDefault(KeyExercises, exercise.Available())
	v.SetDefault(KeyOnly, []string{})
	v.SetDefault(KeyYear, now.Year())
	v.SetDefault(KeyTitle, "")
	v.SetDefault(KeyAuthor, DefaultAuthor)
	v.SetDefault(KeyFilename, DefaultFilename)
	v.SetDefault(KeyLeet, 0)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyOutDir, ".")
	v.SetDefault(KeyCompile, true)
	v.SetDefault(KeyLatexmk, compiler.DefaultTool)
	v.SetDefault(KeyCompileTimeout, compiler.DefaultTimeout)
	v.SetDefault(KeyLogFile, DefaultLogFile)
	v.SetDefault(KeyLogLevel, "INFO")
	v.SetDefault(KeyYes, false)
}

// New returns a viper instance with defaults, env binding and the config
// file search path set up.
func New(now time.Time) *viper.Viper {
	v := viper.New()
	SetDefaults(v, now)
	v.SetConfigName("opensye")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the config file if there is one.
func ReadFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("could not read config file: %w", err)
	}
	return nil
}

// Load builds and validates a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	lang, err := locale.Parse(v.GetString(KeyLang))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := &Config{
		Lang:           lang,
		Exercises:      v.GetInt(KeyExercises),
		Only:           v.GetStringSlice(KeyOnly),
		Year:           v.GetInt(KeyYear),
		Title:          v.GetString(KeyTitle),
		Author:         v.GetString(KeyAuthor),
		Filename:       v.GetString(KeyFilename),
		Leet:           v.GetInt(KeyLeet),
		Seed:           v.GetUint64(KeySeed),
		OutDir:         v.GetString(KeyOutDir),
		Compile:        v.GetBool(KeyCompile),
		Latexmk:        v.GetString(KeyLatexmk),
		CompileTimeout: v.GetDuration(KeyCompileTimeout),
		LogFile:        v.GetString(KeyLogFile),
		LogLevel:       v.GetString(KeyLogLevel),
		AssumeYes:      v.GetBool(KeyYes),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var problems []string
	if err := c.Lang.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(c.Only) == 0 && (c.Exercises < 1 || c.Exercises > exercise.Available()) {
		problems = append(problems, fmt.Sprintf("exercises must be between 1 and %d, got %d", exercise.Available(), c.Exercises))
	}
	if c.Year < 1 {
		problems = append(problems, fmt.Sprintf("year must be positive, got %d", c.Year))
	}
	if c.Leet < 0 {
		problems = append(problems, fmt.Sprintf("l33t level cannot be negative, got %d", c.Leet))
	}
	if c.Filename == "" || !strings.HasSuffix(c.Filename, ".tex") || strings.ContainsAny(c.Filename, `/\`) {
		problems = append(problems, fmt.Sprintf("filename must be a bare .tex file name, got %q", c.Filename))
	}
	if c.Compile && c.CompileTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("compile timeout must be positive, got %s", c.CompileTimeout))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// LeetLevel is the obfuscation level actually applied.
func (c *Config) LeetLevel() int {
	return min(c.Leet, leet.MaxLevel)
}

// DocumentTitle falls back to the localized default title.
func (c *Config) DocumentTitle() string {
	if strings.TrimSpace(c.Title) != "" {
		return c.Title
	}
	return locale.Text(c.Lang, locale.DocDefaultTitle)
}
