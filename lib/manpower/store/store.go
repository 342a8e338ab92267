package manpowerstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Manpower) (id string, err error)
	GetByID(workSiteID, id string) (rec *dbmodels.Manpower, err error)
	FindByKey(workSiteID string, date time.Time, subContractorID string) (rec *dbmodels.Manpower, err error)
	List(workSiteID string, from, to *time.Time) (list []dbmodels.Manpower, err error)
	ListBySubContractor(workSiteID, userID string, from, to *time.Time) (list []dbmodels.Manpower, err error)
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

func (i impl) Create(rec dbmodels.Manpower) (id string, err error) {
	err = i.db.
		Omit("SubContractor", "VerifiedBy").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(workSiteID, id string) (*dbmodels.Manpower, error) {
	rec := dbmodels.Manpower{}
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Preload("SubContractor").
		Preload("VerifiedBy").
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

func (i impl) FindByKey(workSiteID string, date time.Time, subContractorID string) (*dbmodels.Manpower, error) {
	rec := dbmodels.Manpower{}
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("date = ?", date).
		Where("sub_contractor_id = ?", subContractorID).
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

func (i impl) List(workSiteID string, from, to *time.Time) (list []dbmodels.Manpower, err error) {
	list = []dbmodels.Manpower{}
	tx := i.db.
		Where("work_site_id = ?", workSiteID)
	if from != nil {
		tx = tx.Where("date >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("date <= ?", *to)
	}
	err = tx.
		Preload("SubContractor").
		Order("date DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListBySubContractor(workSiteID, userID string, from, to *time.Time) (list []dbmodels.Manpower, err error) {
	list = []dbmodels.Manpower{}
	tx := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("sub_contractor_id = ?", userID)
	if from != nil {
		tx = tx.Where("date >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("date <= ?", *to)
	}
	err = tx.
		Order("date DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(workSiteID, id string, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.Manpower{}).
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
		Delete(&dbmodels.Manpower{}).
		Error
	if err != nil {
		return err
	}
	return nil
}
