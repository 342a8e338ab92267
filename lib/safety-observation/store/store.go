package safetyobservationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"site-qhse-backend/models"
	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.SafetyObservation) (id string, err error)
	GetByID(workSiteID, id string) (rec *dbmodels.SafetyObservation, err error)
	List(workSiteID string) (list []dbmodels.SafetyObservation, err error)
	ListByAssignee(workSiteID, userID string) (list []dbmodels.SafetyObservation, err error)
	Update(workSiteID, id string, updMap map[string]interface{}) error
	UpdateWhereStatus(workSiteID, id string, from models.CorrectiveActionStatus, updMap map[string]interface{}) (updated bool, err error)
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

func (i impl) Create(rec dbmodels.SafetyObservation) (id string, err error) {
	err = i.db.
		Omit("ReportedBy", "Department", "SubContractor", "CorrectiveActionAssignedTo").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(workSiteID, id string) (*dbmodels.SafetyObservation, error) {
	rec := dbmodels.SafetyObservation{}
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Preload("ReportedBy").
		Preload("Department").
		Preload("SubContractor").
		Preload("CorrectiveActionAssignedTo").
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

func (i impl) List(workSiteID string) (list []dbmodels.SafetyObservation, err error) {
	list = []dbmodels.SafetyObservation{}
	err = i.db.
		Where("work_site_id = ?", workSiteID).
		Preload("ReportedBy").
		Preload("CorrectiveActionAssignedTo").
		Order("observation_date DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByAssignee(workSiteID, userID string) (list []dbmodels.SafetyObservation, err error) {
	list = []dbmodels.SafetyObservation{}
	err = i.db.
		Where("work_site_id = ?", workSiteID).
		Where("corrective_action_assigned_to_id = ?", userID).
		Preload("ReportedBy").
		Order("observation_date DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(workSiteID, id string, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.SafetyObservation{}).
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

// UpdateWhereStatus - переход цикла корректирующих действий с предусловием
// по текущему статусу
func (i impl) UpdateWhereStatus(workSiteID, id string, from models.CorrectiveActionStatus, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.SafetyObservation{}).
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (i impl) Delete(workSiteID, id string) error {
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Delete(&dbmodels.SafetyObservation{}).
		Error
	if err != nil {
		return err
	}
	return nil
}
