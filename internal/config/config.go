package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Runtime   RuntimeConfig   `mapstructure:"runtime"`
	Server    ServerConfig    `mapstructure:"server"`
	LogLevel  string          `mapstructure:"log_level"`
}

type PathsConfig struct {
	VocabPath string `mapstructure:"vocab_path"`
	ModelPath string `mapstructure:"model_path"`
}

type TokenizerConfig struct {
	Backend        string   `mapstructure:"backend"`
	UnknownToken   string   `mapstructure:"unknown_token"`
	MaxInputChars  int      `mapstructure:"max_input_chars"`
	MinFrequency   int      `mapstructure:"min_frequency"`
	MaxTokens      int      `mapstructure:"max_tokens"`
	ReservedTokens []string `mapstructure:"reserved_tokens"`
}

type RuntimeConfig struct {
	ORTLibraryPath string `mapstructure:"ort_library_path"`
	ORTAPIVersion  int    `mapstructure:"ort_api_version"`
	InputName      string `mapstructure:"input_name"`
	OutputName     string `mapstructure:"output_name"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	Workers         int    `mapstructure:"workers"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			VocabPath: "models/vocab.txt",
			ModelPath: "models/model.onnx",
		},
		Tokenizer: TokenizerConfig{
			Backend:        BackendWordpiece,
			UnknownToken:   "[UNK]",
			MaxInputChars:  200,
			MinFrequency:   -1,
			MaxTokens:      -1,
			ReservedTokens: nil,
		},
		Runtime: RuntimeConfig{
			ORTLibraryPath: "",
			ORTAPIVersion:  23,
			InputName:      "input_ids",
			OutputName:     "",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    4096,
			Workers:         2,
			RequestTimeout:  60,
			ShutdownTimeout: 30,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-vocab-path", defaults.Paths.VocabPath, "Path to newline-delimited vocabulary file")
	fs.String("paths-model-path", defaults.Paths.ModelPath, "Path to ONNX model")
	fs.String("tokenizer-backend", defaults.Tokenizer.Backend, "Tokenizer backend (wordpiece|sugarme)")
	fs.String("tokenizer-unknown-token", defaults.Tokenizer.UnknownToken, "Placeholder for unknown/unmatchable words")
	fs.Int("tokenizer-max-input-chars", defaults.Tokenizer.MaxInputChars, "Maximum characters per word before emitting the unknown placeholder")
	fs.Int("tokenizer-min-frequency", defaults.Tokenizer.MinFrequency, "Prune vocabulary tokens below this frequency (-1 to disable)")
	fs.Int("tokenizer-max-tokens", defaults.Tokenizer.MaxTokens, "Cap on vocabulary size (-1 to disable)")
	fs.StringSlice("tokenizer-reserved-tokens", defaults.Tokenizer.ReservedTokens, "Tokens that always survive vocabulary pruning")
	fs.String("runtime-ort-library-path", defaults.Runtime.ORTLibraryPath, "Path to ONNX Runtime shared library")
	fs.String("ort-lib", defaults.Runtime.ORTLibraryPath, "Path to ONNX Runtime shared library (alias for --runtime-ort-library-path)")
	fs.Int("runtime-ort-api-version", defaults.Runtime.ORTAPIVersion, "ONNX Runtime C API version")
	fs.String("runtime-input-name", defaults.Runtime.InputName, "Model input tensor name for token IDs")
	fs.String("runtime-output-name", defaults.Runtime.OutputName, "Model output tensor name (empty selects the first float32 output)")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request text size in bytes")
	fs.Int("server-workers", defaults.Server.Workers, "Maximum concurrent embedding requests")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request timeout in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain period in seconds")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("WORDPIECE")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("runtime.ort_library_path", "WORDPIECE_ORT_LIB", "ORT_LIBRARY_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind ort env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("wordpiece")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.vocab_path", c.Paths.VocabPath)
	v.SetDefault("paths.model_path", c.Paths.ModelPath)
	v.SetDefault("tokenizer.backend", c.Tokenizer.Backend)
	v.SetDefault("tokenizer.unknown_token", c.Tokenizer.UnknownToken)
	v.SetDefault("tokenizer.max_input_chars", c.Tokenizer.MaxInputChars)
	v.SetDefault("tokenizer.min_frequency", c.Tokenizer.MinFrequency)
	v.SetDefault("tokenizer.max_tokens", c.Tokenizer.MaxTokens)
	v.SetDefault("tokenizer.reserved_tokens", c.Tokenizer.ReservedTokens)
	v.SetDefault("runtime.ort_library_path", c.Runtime.ORTLibraryPath)
	v.SetDefault("runtime.ort_api_version", c.Runtime.ORTAPIVersion)
	v.SetDefault("runtime.input_name", c.Runtime.InputName)
	v.SetDefault("runtime.output_name", c.Runtime.OutputName)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.vocab_path", "paths-vocab-path")
	v.RegisterAlias("paths.model_path", "paths-model-path")
	v.RegisterAlias("tokenizer.backend", "tokenizer-backend")
	v.RegisterAlias("tokenizer.unknown_token", "tokenizer-unknown-token")
	v.RegisterAlias("tokenizer.max_input_chars", "tokenizer-max-input-chars")
	v.RegisterAlias("tokenizer.min_frequency", "tokenizer-min-frequency")
	v.RegisterAlias("tokenizer.max_tokens", "tokenizer-max-tokens")
	v.RegisterAlias("tokenizer.reserved_tokens", "tokenizer-reserved-tokens")
	v.RegisterAlias("runtime.ort_library_path", "runtime-ort-library-path")
	v.RegisterAlias("runtime.ort_library_path", "ort-lib")
	v.RegisterAlias("runtime.ort_api_version", "runtime-ort-api-version")
	v.RegisterAlias("runtime.input_name", "runtime-input-name")
	v.RegisterAlias("runtime.output_name", "runtime-output-name")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.max_text_bytes", "server-max-text-bytes")
	v.RegisterAlias("server.workers", "server-workers")
	v.RegisterAlias("server.request_timeout", "server-request-timeout")
	v.RegisterAlias("server.shutdown_timeout", "server-shutdown-timeout")
	v.RegisterAlias("log_level", "log-level")
}
