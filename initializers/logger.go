package initializers

import (
	log "github.com/sirupsen/logrus"

	"site-qhse-backend/config"
	"site-qhse-backend/fiberlog"
)

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

func InitLogger() *fiberlog.Config {
	level, err := log.ParseLevel(config.Conf.App.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetFormatter(jsonFormatter())
	log.SetLevel(level)

	accessLogger := log.New()
	accessLogger.SetFormatter(jsonFormatter())
	accessLogger.SetLevel(level)
	return &fiberlog.Config{
		Logger: accessLogger,
		Tags: []string{
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.RequestID,
		},
	}
}
