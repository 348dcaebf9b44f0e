package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log = newLogger()

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)

	// LEDANIM_LOG takes any logrus level name, DEBUG=1 is the shortcut
	if lvl, err := logrus.ParseLevel(os.Getenv("LEDANIM_LOG")); err == nil {
		log.SetLevel(lvl)
	} else if os.Getenv("DEBUG") == "1" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}
