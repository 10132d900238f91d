package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath = "~/.sidekick"
	configName  = ".sidekick" // .yaml is implicit
	envPrefix   = "SIDEKICK"
)

// Config locates the journal on disk and says whether this machine may
// deliver reminders.
type Config interface {
	BasePath() string
	NotificationsEnabled() bool
}

// LoadConfig reads .sidekick.yaml from $SIDEKICK_CONFIG_PATH or the working
// directory. SIDEKICK_PATH and SIDEKICK_NOTIFICATIONS override the file.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("notifications", true)
	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(envPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:          path,
		Notifications: v.GetBool("notifications"),
	}, nil
}

type fileConfig struct {
	Path          string `json:"path"`
	Notifications bool   `json:"notifications"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) NotificationsEnabled() bool {
	return f.Notifications
}
