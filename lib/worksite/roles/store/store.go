package worksiterolesstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"site-qhse-backend/models"
	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkSiteRole) (id string, err error)
	GetByUser(workSiteID, userID string) (rec *dbmodels.WorkSiteRole, err error)
	ListByWorkSite(workSiteID string) (list []dbmodels.WorkSiteRole, err error)
	ListByRole(workSiteID string, role models.Role) (list []dbmodels.WorkSiteRole, err error)
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

func (i impl) Create(rec dbmodels.WorkSiteRole) (id string, err error) {
	err = i.db.
		Omit("User").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByUser(workSiteID, userID string) (*dbmodels.WorkSiteRole, error) {
	rec := dbmodels.WorkSiteRole{}
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("user_id = ?", userID).
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

func (i impl) ListByWorkSite(workSiteID string) (list []dbmodels.WorkSiteRole, err error) {
	list = []dbmodels.WorkSiteRole{}
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

func (i impl) ListByRole(workSiteID string, role models.Role) (list []dbmodels.WorkSiteRole, err error) {
	list = []dbmodels.WorkSiteRole{}
	err = i.db.
		Where("work_site_id = ?", workSiteID).
		Where("role = ?", role).
		Preload("User").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(workSiteID, id string) error {
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Delete(&dbmodels.WorkSiteRole{}).
		Error
	if err != nil {
		return err
	}
	return nil
}
