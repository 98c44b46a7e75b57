package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"

	"github.com/tresidus/tresidus-api/api"
	"github.com/tresidus/tresidus-api/background"
	"github.com/tresidus/tresidus-api/consulting"
	"github.com/tresidus/tresidus-api/external/mailer"
	"github.com/tresidus/tresidus-api/store"
	"github.com/tresidus/tresidus-api/utils"
)

var (
	server         *api.Server
	requestStore   store.RequestStore
	// notifier whose deliveries are still in flight at shutdown
	pending interface{ Wait() }
)

// newNotifier builds the notifier selected by notification.mode
func newNotifier() (consulting.Notifier, error) {
	switch mode := viper.GetString("notification.mode"); mode {
	case background.ModeQueue:
		taskServer, err := background.NewTaskServer(viper.GetString("redis.conn"), viper.GetString("redis.queue"))
		if err != nil {
			return nil, err
		}
		queueNotifier := background.NewQueueNotifier(taskServer)
		pending = queueNotifier
		return queueNotifier, nil
	case background.ModeInline:
		sender := mailer.NewSMTPSender(mailer.Config{
			Host:     viper.GetString("smtp.host"),
			Port:     viper.GetInt("smtp.port"),
			Username: viper.GetString("smtp.username"),
			Password: viper.GetString("smtp.password"),
		})
		inlineNotifier := background.NewInlineNotifier(background.NewEmailNotificationCenter(
			sender,
			viper.GetString("notification.from"),
			viper.GetString("notification.recipient"),
			viper.GetString("notification.lang"),
		))
		pending = inlineNotifier
		return inlineNotifier, nil
	default:
		log.WithField("prefix", "init").Warnf("notification mode %q, notifications are discarded", mode)
		return background.DiscardNotifier{}, nil
	}
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())
	shutdownDone := make(chan struct{})

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if pending != nil {
			log.Info("Waiting for pending notifications")
			pending.Wait()
		}

		if requestStore != nil {
			log.Info("Shutting down request store")
			requestStore.Close()
		}

		sentry.Flush(5 * time.Second)
		close(shutdownDone)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	utils.LoadConfig(configFile)

	utils.InitLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Release:          viper.GetString("server.version"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	if err := utils.InitI18NBundle(viper.GetString("i18n.dir")); err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Initialized i18n bundle")

	var err error
	requestStore, err = store.Open(initialCtx, store.ConfigFromViper())
	if err != nil {
		log.Panic(err)
	}

	notifier, err := newNotifier()
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Infof("Initialized %s notifier", viper.GetString("notification.mode"))

	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:    "tresidus",
		Separator: ".",
	}, time.Second)
	defer closer.Close()

	// Init http server
	server = api.NewServer(consulting.NewService(requestStore, notifier, scope))
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	if err := server.Run(":" + viper.GetString("server.port")); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutdownDone
}
