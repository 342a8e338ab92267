package ptwstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"site-qhse-backend/models"
	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.PermitToWork) (id string, err error)
	GetByID(workSiteID, id string) (rec *dbmodels.PermitToWork, err error)
	List(workSiteID string, statuses []models.PTWStatus) (list []dbmodels.PermitToWork, err error)
	ListBySubmitter(workSiteID, userID string, statuses []models.PTWStatus) (list []dbmodels.PermitToWork, err error)
	Update(workSiteID, id string, updMap map[string]interface{}) error
	UpdateWhereStatus(workSiteID, id string, from models.PTWStatus, updMap map[string]interface{}) (updated bool, err error)
	ExpireSweep(workSiteID string, now time.Time) error
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

func (i impl) Create(rec dbmodels.PermitToWork) (id string, err error) {
	err = i.db.
		Omit("SubmittedBy", "VerifiedBy", "ApprovedBy").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(workSiteID, id string) (*dbmodels.PermitToWork, error) {
	rec := dbmodels.PermitToWork{}
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Preload("SubmittedBy").
		Preload("VerifiedBy").
		Preload("ApprovedBy").
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

func (i impl) List(workSiteID string, statuses []models.PTWStatus) (list []dbmodels.PermitToWork, err error) {
	list = []dbmodels.PermitToWork{}
	tx := i.db.
		Where("work_site_id = ?", workSiteID)
	if len(statuses) != 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	err = tx.
		Preload("SubmittedBy").
		Order("submitted_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListBySubmitter(workSiteID, userID string, statuses []models.PTWStatus) (list []dbmodels.PermitToWork, err error) {
	list = []dbmodels.PermitToWork{}
	tx := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("submitted_by_id = ?", userID)
	if len(statuses) != 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	err = tx.
		Order("submitted_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(workSiteID, id string, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.PermitToWork{}).
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

// UpdateWhereStatus - переход статуса с предусловием. Если статус уже
// изменён конкурирующим запросом, обновление не затрагивает строк.
func (i impl) UpdateWhereStatus(workSiteID, id string, from models.PTWStatus, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.PermitToWork{}).
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// ExpireSweep - атомарное закрытие просроченных нарядов площадки.
// Выполняется в транзакции, повторный запуск ничего не меняет.
func (i impl) ExpireSweep(workSiteID string, now time.Time) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&dbmodels.PermitToWork{}).
			Where("work_site_id = ?", workSiteID).
			Where("validity <= ?", now).
			Where("status = ?", models.PTWStatusClientApproved).
			Updates(map[string]interface{}{
				"status":    models.PTWStatusAutoClosed,
				"closed_at": now,
			}).
			Error
		if err != nil {
			return errors.Wrap(err, "ошибка автозакрытия просроченных нарядов")
		}
		err = tx.
			Model(&dbmodels.PermitToWork{}).
			Where("work_site_id = ?", workSiteID).
			Where("validity <= ?", now).
			Where("status IN ?", []models.PTWStatus{
				models.PTWStatusSubmitted,
				models.PTWStatusEPCApproved,
				models.PTWStatusClientRejected,
			}).
			Update("status", models.PTWStatusExpired).
			Error
		if err != nil {
			return errors.Wrap(err, "ошибка пометки просроченных нарядов")
		}
		return nil
	})
}

func (i impl) Delete(workSiteID, id string) error {
	err := i.db.
		Where("work_site_id = ?", workSiteID).
		Where("id = ?", id).
		Delete(&dbmodels.PermitToWork{}).
		Error
	if err != nil {
		return err
	}
	return nil
}
