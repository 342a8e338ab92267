package workerstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Worker) (id string, err error)
	GetByID(workSiteID, id string) (rec *dbmodels.Worker, err error)
	List(workSiteID string) (list []dbmodels.Worker, err error)
	ListByCreatedUnder(workSiteID, userID string) (list []dbmodels.Worker, err error)
	Update(workSiteID, id string, updMap map[string]interface{}) error
	Delete(workSiteID, id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Worker) (id string, err error) {
	err = i.db.
		Omit("CreatedUnder").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(workSiteID, id string) (*dbmodels.Worker, error) {
	rec := dbmodels.Worker{}
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Preload("CreatedUnder").
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

func (i impl) List(workSiteID string) (list []dbmodels.Worker, err error) {
	list = []dbmodels.Worker{}
	err = i.db.
		Where("work_site_id = ?", workSiteID).
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByCreatedUnder(workSiteID, userID string) (list []dbmodels.Worker, err error) {
	list = []dbmodels.Worker{}
	err = i.db.
		Where("work_site_id = ?", workSiteID).
		Where("created_under_id = ?", userID).
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(workSiteID, id string, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.Worker{}).
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(workSiteID, id string) error {
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Delete(&dbmodels.Worker{}).
		Error
	if err != nil {
		return err
	}
	return nil
}
