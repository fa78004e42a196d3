package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyDB            = "db"
	KeyLogLevel      = "log_level"
	KeyRollingWindow = "rolling_window"
	KeyPhotoDir      = "photo_dir"
	KeyBackupDir     = "backup_dir"
	KeyServeAddr     = "serve.addr"

	EnvPrefix = "TRACKER"

	DefaultLogLevel      = "warn"
	DefaultRollingWindow = 7
	DefaultServeAddr     = "127.0.0.1:8080"
)

// Keys lists every setting `config set` accepts.
var Keys = []string{KeyDB, KeyLogLevel, KeyRollingWindow, KeyPhotoDir, KeyBackupDir, KeyServeAddr}

// Settings is the resolved configuration.
type Settings struct {
	DBPath        string `json:"db" yaml:"db"`
	LogLevel      string `json:"log_level" yaml:"log_level"`
	RollingWindow int    `json:"rolling_window" yaml:"rolling_window"`
	PhotoDir      string `json:"photo_dir" yaml:"photo_dir"`
	BackupDir     string `json:"backup_dir" yaml:"backup_dir"`
	ServeAddr     string `json:"serve_addr" yaml:"serve_addr"`
	ConfigFile    string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
}

// NewViper returns a viper instance with defaults and TRACKER_ environment
// overrides. Nested keys map to underscores: serve.addr is TRACKER_SERVE_ADDR.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyRollingWindow, DefaultRollingWindow)
	v.SetDefault(KeyServeAddr, DefaultServeAddr)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadConfig loads path, or the default config file when path is empty. A
// missing default file is not an error.
func ReadConfig(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		def, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = def
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (!explicit && errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// SettingsFrom resolves v into Settings, filling path defaults derived from
// the database location.
func SettingsFrom(v *viper.Viper) (Settings, error) {
	s := Settings{
		DBPath:        strings.TrimSpace(v.GetString(KeyDB)),
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		RollingWindow: v.GetInt(KeyRollingWindow),
		PhotoDir:      strings.TrimSpace(v.GetString(KeyPhotoDir)),
		BackupDir:     strings.TrimSpace(v.GetString(KeyBackupDir)),
		ServeAddr:     strings.TrimSpace(v.GetString(KeyServeAddr)),
		ConfigFile:    v.ConfigFileUsed(),
	}
	if s.DBPath == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return Settings{}, err
		}
		s.DBPath = p
	}
	if s.PhotoDir == "" {
		s.PhotoDir = SiblingDir(s.DBPath, photoDirName)
	}
	if s.BackupDir == "" {
		s.BackupDir = SiblingDir(s.DBPath, backupDirName)
	}
	if s.RollingWindow <= 0 {
		return Settings{}, fmt.Errorf("%s must be > 0, got %d", KeyRollingWindow, s.RollingWindow)
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// SetConfigValue validates key and value and writes them to the YAML file at
// path, keeping the other keys already there.
func SetConfigValue(path, key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if !isKnownKey(key) {
		known := append([]string(nil), Keys...)
		sort.Strings(known)
		return fmt.Errorf("unknown config key %q (use %s)", key, strings.Join(known, "|"))
	}
	var typed any = value
	switch key {
	case KeyRollingWindow:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		typed = n
	case KeyLogLevel:
		if _, err := ParseLevel(value); err != nil {
			return err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	v.Set(key, typed)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func isKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
