package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmake-init/cmake-init/internal/branding"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys understood by the scaffolder.
const (
	KeyCMakeMinimum = "cmake_minimum"
	KeyCXXStandard  = "cxx_standard"
	KeySFMLVersion  = "sfml_version"
	KeyFlavor       = "flavor"
)

// Keys lists every known setting in display order.
var Keys = []string{KeyCMakeMinimum, KeyCXXStandard, KeySFMLVersion, KeyFlavor}

// Settings are the toolchain defaults applied to every generated project.
type Settings struct {
	CMakeMinimum string `json:"cmake_minimum"`
	CXXStandard  string `json:"cxx_standard"`
	SFMLVersion  string `json:"sfml_version"`
	Flavor       string `json:"flavor"`
}

// Dir returns the path to the config directory (~/.cmake-init/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.cmake-init/config.yaml).
func FilePath() string {
	if v := os.Getenv(branding.EnvVar("CONFIG")); v != "" {
		return v
	}
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the directory holding the config file if it does not exist.
func EnsureDir() error {
	dir := filepath.Dir(FilePath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyCMakeMinimum, "3.12")
	viper.SetDefault(KeyCXXStandard, "20")
	viper.SetDefault(KeySFMLVersion, "2.5")
	viper.SetDefault(KeyFlavor, "plain")
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet or does not parse;
	// doctor reports the latter.
	values, err := readLiteral(FilePath())
	if err != nil {
		return
	}
	_ = viper.MergeConfigMap(values)
}

// readLiteral decodes the settings file keeping every scalar as its
// literal text. viper's own YAML decoding would turn an unquoted 3.20
// into the float 3.2.
func readLiteral(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	values := map[string]interface{}{}
	if len(root.Content) == 0 {
		return values, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: top level must be a mapping", path)
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]
		if val.Kind == yaml.ScalarNode {
			values[key.Value] = val.Value
			continue
		}
		var v interface{}
		if err := val.Decode(&v); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		values[key.Value] = v
	}
	return values, nil
}

// Current returns the effective settings after defaults, file and env.
// Values are read through Get because AutomaticEnv overrides are not
// visible to viper.Unmarshal.
func Current() *Settings {
	return &Settings{
		CMakeMinimum: viper.GetString(KeyCMakeMinimum),
		CXXStandard:  viper.GetString(KeyCXXStandard),
		SFMLVersion:  viper.GetString(KeySFMLVersion),
		Flavor:       viper.GetString(KeyFlavor),
	}
}

// IsKnownKey reports whether key is a setting the scaffolder reads.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
