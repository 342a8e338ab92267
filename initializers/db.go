package initializers

import (
	"site-qhse-backend/config"
	"site-qhse-backend/db"
)

func InitDBConnection() {
	err := db.Connect(db.ConnectionParams{
		Host:           config.Conf.Database.Host,
		Port:           config.Conf.Database.Port,
		Name:           config.Conf.Database.Name,
		User:           config.Conf.Database.User,
		Password:       config.Conf.Database.Password,
		DebugMode:      *config.Conf.Database.DebugMode,
		MigrateOnStart: *config.Conf.Database.MigrateOnStart,
	})
	if err != nil {
		panic(err.Error())
	}

	db.InitPreload()
}
