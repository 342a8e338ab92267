package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectionParams - параметры подключения к postgres
type ConnectionParams struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	DebugMode      bool
	MigrateOnStart bool
}

func (p ConnectionParams) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
		p.Host, p.Port, p.User, p.Name, p.Password)
}

func Connect(params ConnectionParams) error {
	if DB != nil {
		return nil
	}
	conn, err := gorm.Open(postgres.Open(params.dsn()), &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return errors.Wrap(err, "ошибка подключения к БД")
	}
	if params.DebugMode {
		conn.Logger = logger.Default.LogMode(logger.Info)
		conn = conn.Debug()
	}
	DB = conn
	if params.MigrateOnStart {
		if err := AutoMigrateDB(); err != nil {
			return err
		}
	}
	log.
		WithField("host", params.Host).
		WithField("database", params.Name).
		Info("сервис подключен к БД")
	return nil
}

func PingDB() error {
	conn, err := DB.DB()
	if err != nil {
		return err
	}
	return conn.Ping()
}
