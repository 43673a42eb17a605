package providers

import (
	"contestd/internal/structures"
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "CONTESTD_LOG_LEVEL")
	viper.BindEnv("poller.interval", "CONTESTD_POLL_INTERVAL")
	viper.BindEnv("poller.leadTime", "CONTESTD_LEAD_TIME")
	viper.BindEnv("persistence.saveInterval", "CONTESTD_SAVE_INTERVAL")
	viper.BindEnv("notifier.type", "CONTESTD_NOTIFIER")
	viper.BindEnv("notifier.endpoint", "CONTESTD_NOTIFIER_ENDPOINT")
	viper.BindEnv("notifier.token", "CONTESTD_NOTIFIER_TOKEN")
	viper.BindEnv("cache.enabled", "CONTESTD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CONTESTD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ContestReminderDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
