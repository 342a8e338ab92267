package inspectionstore

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"site-qhse-backend/models"
	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ChecklistInspection) (id string, err error)
	GetByID(workSiteID, id string) (rec *dbmodels.ChecklistInspection, err error)
	List(workSiteID, category string) (list []dbmodels.ChecklistInspection, err error)
	ListByParticipant(workSiteID, category, userID string) (list []dbmodels.ChecklistInspection, err error)
	ApproveWitnessSlot(workSiteID, id string, slot int, updMap map[string]interface{}) (updated bool, err error)
	UpdateStatus(workSiteID, id string, status models.ApprovalStatus) error
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

func (i impl) Create(rec dbmodels.ChecklistInspection) (id string, err error) {
	err = i.db.
		Omit("CheckedBy", "Witness1", "Witness2", "Witness3").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(workSiteID, id string) (*dbmodels.ChecklistInspection, error) {
	rec := dbmodels.ChecklistInspection{}
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Preload("CheckedBy").
		Preload("Witness1").
		Preload("Witness2").
		Preload("Witness3").
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

func (i impl) List(workSiteID, category string) (list []dbmodels.ChecklistInspection, err error) {
	list = []dbmodels.ChecklistInspection{}
	tx := i.db.
		Where("work_site_id = ?", workSiteID)
	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	err = tx.
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByParticipant(workSiteID, category, userID string) (list []dbmodels.ChecklistInspection, err error) {
	list = []dbmodels.ChecklistInspection{}
	tx := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("checked_by_id = ? OR witness1_id = ? OR witness2_id = ? OR witness3_id = ?",
			userID, userID, userID, userID)
	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	err = tx.
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ApproveWitnessSlot - подтверждение слота свидетеля. Условие
// witness_N_approved = false закрывает гонку повторного подтверждения:
// проигравший запрос не меняет строк.
func (i impl) ApproveWitnessSlot(workSiteID, id string, slot int, updMap map[string]interface{}) (bool, error) {
	if slot < 1 || slot > 3 {
		return false, errors.Errorf("недопустимый номер слота: %v", slot)
	}
	tx := i.db.
		Model(&dbmodels.ChecklistInspection{}).
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Where(fmt.Sprintf("witness%v_approved = ?", slot), false).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (i impl) UpdateStatus(workSiteID, id string, status models.ApprovalStatus) error {
	err := i.db.
		Model(&dbmodels.ChecklistInspection{}).
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Update("approval_status", status).
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
		Delete(&dbmodels.ChecklistInspection{}).
		Error
	if err != nil {
		return err
	}
	return nil
}
