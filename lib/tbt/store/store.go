package tbtstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ToolBoxTalk) (id string, err error)
	GetByID(workSiteID, id string) (rec *dbmodels.ToolBoxTalk, err error)
	List(workSiteID string, from, to *time.Time) (list []dbmodels.ToolBoxTalk, err error)
	ListByAuthor(workSiteID, userID string, from, to *time.Time) (list []dbmodels.ToolBoxTalk, err error)
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

func (i impl) Create(rec dbmodels.ToolBoxTalk) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(workSiteID, id string) (*dbmodels.ToolBoxTalk, error) {
	rec := dbmodels.ToolBoxTalk{}
	err := i.db.
		Where("work_site_id = ?", workSiteID).
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

func (i impl) List(workSiteID string, from, to *time.Time) (list []dbmodels.ToolBoxTalk, err error) {
	list = []dbmodels.ToolBoxTalk{}
	tx := i.db.
		Where("work_site_id = ?", workSiteID)
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

func (i impl) ListByAuthor(workSiteID, userID string, from, to *time.Time) (list []dbmodels.ToolBoxTalk, err error) {
	list = []dbmodels.ToolBoxTalk{}
	tx := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("created_by_id = ?", userID)
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
		Model(&dbmodels.ToolBoxTalk{}).
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
		Delete(&dbmodels.ToolBoxTalk{}).
		Error
	if err != nil {
		return err
	}
	return nil
}
