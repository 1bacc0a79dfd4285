package configuration

import (
	"errors"
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"os"
	"strings"
	"time"
)

type Configuration struct {
	Sources    []SourceConfig   `json:"sources"`
	FanControl FanControlConfig `json:"fanControl"`
	Controller ControllerConfig `json:"controller"`
	Loop       LoopConfig       `json:"loop"`
	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

type LoopConfig struct {
	// Time to sleep between two successful control cycles.
	Interval time.Duration `json:"interval"`
	// Number of representative temperatures kept for the history endpoint and metrics.
	HistorySize int `json:"historySize"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("ipmifan")
	viper.SetConfigType("yaml")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/ipmifan/")
	}

	viper.SetEnvPrefix("ipmifan")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("sources", DefaultSources())

	viper.SetDefault("fanControl.exec", "/usr/bin/ipmitool")
	viper.SetDefault("fanControl.timeout", 20*time.Second)
	viper.SetDefault("fanControl.automaticArgs", []string{"raw", "0x30", "0x30", "0x01", "0x01"})
	viper.SetDefault("fanControl.manualArgs", []string{"raw", "0x30", "0x30", "0x01", "0x00"})
	viper.SetDefault("fanControl.levelArgs", []string{"raw", "0x30", "0x30", "0x02", "0xff", LevelPlaceholder})

	controller := DefaultControllerConfig()
	viper.SetDefault("controller.lowLevel", controller.LowLevel)
	viper.SetDefault("controller.highLevel", controller.HighLevel)
	viper.SetDefault("controller.maxLevel", controller.MaxLevel)
	viper.SetDefault("controller.defaultThreshold", controller.DefaultThreshold)
	viper.SetDefault("controller.hysteresis", controller.Hysteresis)
	viper.SetDefault("controller.enableRetries", controller.EnableRetries)
	viper.SetDefault("controller.enableRetryDelay", controller.EnableRetryDelay)
	viper.SetDefault("controller.curve.baseTemp", controller.Curve.BaseTemp)
	viper.SetDefault("controller.curve.knees", controller.Curve.Knees)

	viper.SetDefault("loop.interval", 3*time.Second)
	viper.SetDefault("loop.historySize", 20)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)
}

// DetectAndReadConfigFile reads the configuration file and returns its path.
// An empty path is returned when no file was found, in which case the defaults apply.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			ui.Warning("No configuration file found, using defaults")
			return ""
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// decode into a fresh struct, mapstructure would merge into existing slices
	var config Configuration
	err := viper.Unmarshal(&config, viper.DecodeHook(decodeHooks()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
	CurrentConfig = config
}
