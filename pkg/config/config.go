package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var configDir string
var configFilePath string
var storageDir string

// getConfigDir returns platform-specific config directory
func getConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		// Windows: %LOCALAPPDATA%\resep\cli
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = home
		}
		return filepath.Join(appData, "resep", "cli"), nil
	}

	// Unix-like (macOS, Linux): ~/.config/resep/cli
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "resep", "cli"), nil
}

// getSystemConfigPaths returns platform-specific system config paths
func getSystemConfigPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join(os.Getenv("ProgramFiles"), "Resep", "cli", "config.toml")}
	}

	return []string{
		"/etc/resep/cli/config.toml",
		"/usr/local/etc/resep/cli/config.toml",
	}
}

// Init initializes the configuration
func Init(configPath string) error {
	var err error
	if configPath != "" {
		configDir = filepath.Dir(configPath)
		configFilePath = configPath
	} else {
		configDir, err = getConfigDir()
		if err != nil {
			return err
		}
		configFilePath = filepath.Join(configDir, "config.toml")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	// .env files never override variables already set in the environment
	_ = godotenv.Load(filepath.Join(configDir, ".env"))
	_ = godotenv.Load()

	viper.Reset()
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("RESEP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Load system config first (if exists) - serves as foundation
	for _, sysConfigPath := range getSystemConfigPaths() {
		if _, err := os.Stat(sysConfigPath); err == nil {
			viper.SetConfigFile(sysConfigPath)
			_ = viper.ReadInConfig()
			break
		}
	}

	// Load user config second (overrides system config)
	viper.SetConfigFile(configFilePath)
	_ = viper.MergeInConfig()

	storageDir = GetString("storage.dir")

	return nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:3000")
	viper.SetDefault("api.timeout", 10)
	viper.SetDefault("catalog.page_size", 50)
	viper.SetDefault("fetch.concurrency", 8)
	viper.SetDefault("output.format", "text")
	viper.SetDefault("share.base_url", "http://localhost:5173/")

	viper.SetDefault("storage.dir", filepath.Join(configDir, "storage"))

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", filepath.Join(configDir, "resep-cli.log"))
	viper.SetDefault("log.max_size_mb", 5)
	viper.SetDefault("log.max_backups", 3)
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetString returns a string configuration value
func GetString(key string) string {
	value := viper.GetString(key)
	if key == "storage.dir" || key == "log.file" {
		return expandPath(value)
	}
	return value
}

// GetInt returns an int configuration value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool configuration value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// SetString sets a string configuration value in memory only
func SetString(key string, value string) {
	viper.Set(key, value)
}

// Save persists a configuration value to the user config file
func Save(key string, value string) error {
	viper.Set(key, value)
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		return viper.SafeWriteConfigAs(configFilePath)
	}
	return viper.WriteConfigAs(configFilePath)
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// GetStorageDir returns the directory holding persisted local state
func GetStorageDir() string {
	return storageDir
}
