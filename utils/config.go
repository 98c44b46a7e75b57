package utils

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const envPrefix = "tresidus"

func setDefaults() {
	viper.SetDefault("server.port", "5000")
	viper.SetDefault("server.version", "1.0.0")
	viper.SetDefault("server.mode", "production")
	viper.SetDefault("log.level", "info")

	viper.SetDefault("store.backend", "file")
	viper.SetDefault("store.file.path", "data/consulting-requests.json")
	viper.SetDefault("mongo.database", "tresidus")
	viper.SetDefault("mongo.pool", 10)

	viper.SetDefault("notification.mode", "inline")
	viper.SetDefault("notification.recipient", "support@tresidus.com")
	viper.SetDefault("notification.from", "noreply@tresidus.com")
	viper.SetDefault("notification.lang", "en")
	viper.SetDefault("smtp.port", 587)

	viper.SetDefault("i18n.dir", "i18n")
}

// LoadConfig reads the yaml config file and lets TRESIDUS_ prefixed
// environment variables override any key
func LoadConfig(file string) {
	setDefaults()

	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func InitLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}
