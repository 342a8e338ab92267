package db

import (
	log "github.com/sirupsen/logrus"

	"site-qhse-backend/config"
	usersstore "site-qhse-backend/lib/users/store"
	authutils "site-qhse-backend/lib/utils/auth-utils"
	worksitestore "site-qhse-backend/lib/worksite/store"
	dbmodels "site-qhse-backend/models/db"
)

func InitPreload() {
	addGlobalAdmin()
	fillClassifications()
}

func addGlobalAdmin() {
	if config.Conf.Admin.Email == "" {
		log.Warn("администратор не добавлен, отсутствует настройка ADMIN_EMAIL")
		return
	}
	userStore := usersstore.NewInstance(DB)
	existedRec, err := userStore.FindByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if existedRec != nil {
		return
	}
	hash, err := authutils.HashPassword(config.Conf.Admin.Password)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	rec := dbmodels.User{
		IsActive:     true,
		IsEPCAdmin:   true,
		PasswordHash: hash,
		FirstName:    config.Conf.Admin.FirstName,
		LastName:     config.Conf.Admin.LastName,
		Email:        config.Conf.Admin.Email,
	}
	_, err = userStore.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
	}
}

func fillClassifications() {
	store := worksitestore.NewInstance(DB)
	list, err := store.ListClassifications()
	if err != nil {
		log.WithError(err).Error("ошибка предзаполнения классификаций наблюдений")
		return
	}
	if len(list) > 0 {
		return
	}
	defaults := []string{
		"Housekeeping",
		"Work at height",
		"Electrical safety",
		"PPE",
		"Lifting operations",
		"Excavation",
		"Scaffolding",
		"Fire safety",
		"Material handling",
		"Environment",
	}
	for _, name := range defaults {
		if err := store.AddClassification(name); err != nil {
			log.WithError(err).WithField("name", name).Error("ошибка добавления классификации")
			return
		}
	}
	log.Info("классификации наблюдений добавлены")
}
