package main

import (
	"flag"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tresidus/tresidus-api/background"
	"github.com/tresidus/tresidus-api/external/mailer"
	"github.com/tresidus/tresidus-api/utils"
)

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	var configFile string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	utils.LoadConfig(configFile)

	utils.InitLog()

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         viper.GetString("sentry.dsn"),
		Environment: viper.GetString("sentry.environment"),
	}); err != nil {
		log.Error(err)
	}

	panicIfError(utils.InitI18NBundle(viper.GetString("i18n.dir")))

	taskServer, err := background.NewTaskServer(viper.GetString("redis.conn"), viper.GetString("redis.queue"))
	panicIfError(err)

	sender := mailer.NewSMTPSender(mailer.Config{
		Host:     viper.GetString("smtp.host"),
		Port:     viper.GetInt("smtp.port"),
		Username: viper.GetString("smtp.username"),
		Password: viper.GetString("smtp.password"),
	})

	center := background.NewEmailNotificationCenter(
		sender,
		viper.GetString("notification.from"),
		viper.GetString("notification.recipient"),
		viper.GetString("notification.lang"),
	)

	manager := background.New(taskServer, center)
	panicIfError(manager.RegisterTasks())

	// the machinery worker handles SIGINT/SIGTERM with a warm shutdown
	log.WithField("prefix", "init").Info("Starting notify worker")
	if err := manager.Run(); err != nil {
		log.WithError(err).Info("notify worker stopped")
	}
}
