package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const requestMessage = "запрос api"

func collectFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := make(log.Fields, len(ftm))
	for tag, fn := range ftm {
		value := fn(c, d)
		if str, ok := value.(string); ok && str == "" {
			continue
		}
		fields[tag] = value
	}
	return fields
}

// New - middleware журнала запросов поверх logrus.
// Уровень записи выбирается по коду ответа, preflight-запросы не пишутся.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	d := &data{pid: os.Getpid()}
	ftm := getFuncTagMap(cfg, d)
	return func(c *fiber.Ctx) error {
		d.start = time.Now()
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}

		base := cfg.Logger
		if base == nil {
			base = log.StandardLogger()
		}
		entry := base.WithFields(collectFields(ftm, c, d))
		switch status := c.Response().StatusCode(); {
		case status >= fiber.StatusInternalServerError:
			entry.Error(requestMessage)
		case status >= fiber.StatusMultipleChoices:
			entry.Warn(requestMessage)
		default:
			entry.Info(requestMessage)
		}
		return err
	}
}
