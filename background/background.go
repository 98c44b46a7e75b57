package background

import (
	"github.com/RichardKnop/machinery/v1"
	"github.com/RichardKnop/machinery/v1/config"
	"github.com/sirupsen/logrus"
)

const DefaultQueue = "tresidus_background"

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "notify")
}

// NewTaskServer returns a machinery server backed by redis. Both the api
// process (producer) and the notify worker (consumer) build one.
func NewTaskServer(redisConn, queue string) (*machinery.Server, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	var conf = &config.Config{
		Broker:        redisConn,
		DefaultQueue:  queue,
		ResultBackend: redisConn,
	}
	return machinery.NewServer(conf)
}
