package worksitestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkSite) (id string, err error)
	GetByID(id string) (rec *dbmodels.WorkSite, err error)
	List() (list []dbmodels.WorkSite, err error)

	ListCorrectiveActionUsers(workSiteID string) (list []dbmodels.CorrectiveActionUser, err error)
	IsCorrectiveActionUser(workSiteID, userID string) (bool, error)
	AddCorrectiveActionUser(workSiteID, userID string) error
	RemoveCorrectiveActionUsers(workSiteID string) error

	ListClassifications() (list []dbmodels.ObservationClassification, err error)
	AddClassification(name string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkSite) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.WorkSite, error) {
	rec := dbmodels.WorkSite{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List() (list []dbmodels.WorkSite, err error) {
	list = []dbmodels.WorkSite{}
	err = i.db.
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCorrectiveActionUsers(workSiteID string) (list []dbmodels.CorrectiveActionUser, err error) {
	list = []dbmodels.CorrectiveActionUser{}
	err = i.db.
		Where("work_site_id = ?", workSiteID).
		Preload("User").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) IsCorrectiveActionUser(workSiteID, userID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.CorrectiveActionUser{}).
		Where("work_site_id = ?", workSiteID).
		Where("user_id = ?", userID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) AddCorrectiveActionUser(workSiteID, userID string) error {
	rec := dbmodels.CorrectiveActionUser{
		WorkSiteID: workSiteID,
		UserID:     userID,
	}
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) RemoveCorrectiveActionUsers(workSiteID string) error {
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Delete(&dbmodels.CorrectiveActionUser{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListClassifications() (list []dbmodels.ObservationClassification, err error) {
	list = []dbmodels.ObservationClassification{}
	err = i.db.
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) AddClassification(name string) error {
	rec := dbmodels.ObservationClassification{Name: name}
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}
