package main

import (
	"context"
	"flag"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tresidus/tresidus-api/store"
	"github.com/tresidus/tresidus-api/utils"
)

func main() {
	var configFile string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	utils.LoadConfig(configFile)

	utils.InitLog()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Open runs the backend initialization: the file document, mongo
	// indexes or the postgres table
	s, err := store.Open(ctx, store.ConfigFromViper())
	if err != nil {
		log.Panic(err)
	}
	defer s.Close()

	log.WithField("prefix", "migrate").Infof("migrated %s store", viper.GetString("store.backend"))
}
