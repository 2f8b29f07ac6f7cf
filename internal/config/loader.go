package config

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/3leaps/s3uri/pkg/browse"
	"github.com/3leaps/s3uri/pkg/provider/s3"
)

const (
	// AppName names the config directory and the environment prefix.
	AppName = "s3uri"

	// EnvPrefix is prepended to every key when read from the environment.
	EnvPrefix = "S3URI"

	configName = "config"
	configType = "yaml"
)

var (
	configMu  sync.RWMutex
	appConfig *Config
	usedFile  string
)

// awsEnv lists the standard AWS variables each key also honours, after its
// own S3URI_ variable.
var awsEnv = map[string][]string{
	"region":            {"AWS_REGION", "AWS_DEFAULT_REGION"},
	"profile":           {"AWS_PROFILE"},
	"endpoint":          {"AWS_ENDPOINT_URL_S3", "AWS_ENDPOINT_URL"},
	"access_key_id":     {"AWS_ACCESS_KEY_ID"},
	"secret_access_key": {"AWS_SECRET_ACCESS_KEY"},
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"region":           "region",
	"profile":          "profile",
	"endpoint":         "endpoint",
	"force-path-style": "force_path_style",
	"imds-region":      "imds_region",
	"bucket":           "bucket",
	"prefix":           "prefix",
	"delimiter":        "delimiter",
	"max-keys":         "max_keys",
	"list-timeout":     "list_timeout",
	"include":          "include",
	"exclude":          "exclude",
	"debug":            "debug",
	"log-level":        "logging.level",
}

// Options select the sources Load reads beyond defaults and the environment.
type Options struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string

	// Flags contributes every flag the operator set explicitly.
	Flags *pflag.FlagSet

	// Overrides win over every other source. Nested maps are flattened to
	// dotted keys.
	Overrides map[string]any
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("region", "")
	v.SetDefault("profile", "")
	v.SetDefault("endpoint", "")
	v.SetDefault("force_path_style", false)
	v.SetDefault("access_key_id", "")
	v.SetDefault("secret_access_key", "")
	v.SetDefault("imds_region", false)

	v.SetDefault("bucket", "")
	v.SetDefault("prefix", "")
	v.SetDefault("delimiter", browse.DefaultDelimiter)
	v.SetDefault("max_keys", s3.DefaultMaxKeys)
	v.SetDefault("list_timeout", browse.DefaultListTimeout.String())

	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})

	v.SetDefault("debug", false)
	v.SetDefault("logging.level", "info")
}

// Load builds the effective configuration and makes it available through
// GetConfig. Sources, lowest to highest: defaults, config file, environment,
// flags, overrides.
func Load(ctx context.Context, opts Options) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	file, err := readConfigFile(v, opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	for key, val := range flatten("", opts.Overrides) {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidConfig, err)
	}
	cfg.Include = trimAll(cfg.Include)
	cfg.Exclude = trimAll(cfg.Exclude)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configMu.Lock()
	appConfig = &cfg
	usedFile = file
	configMu.Unlock()

	return &cfg, nil
}

// GetConfig returns the configuration from the last successful Load, or nil.
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// ConfigFileUsed returns the file the last successful Load read, if any.
func ConfigFileUsed() string {
	configMu.RLock()
	defer configMu.RUnlock()
	return usedFile
}

// DefaultConfigDir is the XDG config directory for s3uri
// ($XDG_CONFIG_HOME/s3uri, else ~/.config/s3uri).
func DefaultConfigDir() string {
	return gfconfig.GetAppConfigDir(AppName)
}

// EnvVars lists every environment variable Load consults, keyed by
// configuration key.
func EnvVars() map[string][]string {
	out := make(map[string][]string)
	for _, key := range keys() {
		out[key] = envNames(key)
	}
	return out
}

func readConfigFile(v *viper.Viper, explicit string) (string, error) {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, explicit, err)
		}
		return v.ConfigFileUsed(), nil
	}

	dir := DefaultConfigDir()
	if dir == "" {
		return "", nil
	}
	v.AddConfigPath(dir)
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, dir, err)
	}
	return v.ConfigFileUsed(), nil
}

func bindEnv(v *viper.Viper) error {
	for _, key := range keys() {
		args := append([]string{key}, envNames(key)...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

func envNames(key string) []string {
	own := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	return append([]string{own}, awsEnv[key]...)
}

func keys() []string {
	out := make([]string, 0, len(flagKeys)+2)
	seen := make(map[string]bool)
	for _, k := range flagKeys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, k := range []string{"access_key_id", "secret_access_key"} {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func flatten(prefix string, m map[string]any) map[string]any {
	out := make(map[string]any)
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := val.(map[string]any); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = val
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
