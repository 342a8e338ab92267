package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "site-qhse-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Department")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkSite{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkSite")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkSiteRole{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkSiteRole")
	}
	if err := DB.AutoMigrate(&dbmodels.CorrectiveActionUser{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CorrectiveActionUser")
	}
	if err := DB.AutoMigrate(&dbmodels.ObservationClassification{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ObservationClassification")
	}
	if err := DB.AutoMigrate(&dbmodels.ChecklistInspection{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ChecklistInspection")
	}
	if err := DB.AutoMigrate(&dbmodels.PermitToWork{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры PermitToWork")
	}
	if err := DB.AutoMigrate(&dbmodels.SafetyObservation{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SafetyObservation")
	}
	if err := DB.AutoMigrate(&dbmodels.Manpower{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Manpower")
	}
	if err := DB.AutoMigrate(&dbmodels.ToolBoxTalk{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ToolBoxTalk")
	}
	if err := DB.AutoMigrate(&dbmodels.Worker{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Worker")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
