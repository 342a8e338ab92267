package dbmodels

import (
	"time"

	"site-qhse-backend/models"
)

// ChecklistInspection - инспекционный чек-лист с многосторонним
// согласованием. Одна структура обслуживает все категории: содержимое
// чек-листа лежит в Payload, число свидетелей определяется категорией.
// Для категорий с двумя свидетелями третий слот пуст.
type ChecklistInspection struct {
	BaseWorkSiteModel
	AuditModel
	Category string `gorm:"type:varchar(155);index"`

	CheckedByID   string `gorm:"type:varchar(36)"`
	CheckedBy     *User
	CheckedByDate time.Time

	Witness1ID        string `gorm:"type:varchar(36)"`
	Witness1          *User
	Witness1Approved  bool
	Witness1Date      *time.Time
	Witness1Signature string // ссылка на файл подписи

	Witness2ID        string `gorm:"type:varchar(36)"`
	Witness2          *User
	Witness2Approved  bool
	Witness2Date      *time.Time
	Witness2Signature string

	Witness3ID        string `gorm:"type:varchar(36)"`
	Witness3          *User
	Witness3Approved  bool
	Witness3Date      *time.Time
	Witness3Signature string

	ApprovalStatus models.ApprovalStatus `gorm:"type:varchar(15);index"`
	Payload        JSONDocument          `gorm:"type:jsonb"`
}

// WitnessIDs - назначенные свидетели по заполненным слотам
func (r ChecklistInspection) WitnessIDs() []string {
	ids := []string{r.Witness1ID, r.Witness2ID}
	if r.Witness3ID != "" {
		ids = append(ids, r.Witness3ID)
	}
	return ids
}

// WitnessSlot - номер незакрытого слота пользователя (0, если такого нет).
// Подошедший слот должен быть назначен на пользователя и ещё не подтверждён.
func (r ChecklistInspection) WitnessSlot(userID string) int {
	switch {
	case r.Witness1ID == userID && !r.Witness1Approved:
		return 1
	case r.Witness2ID == userID && !r.Witness2Approved:
		return 2
	case r.Witness3ID == userID && !r.Witness3Approved:
		return 3
	}
	return 0
}

func (r ChecklistInspection) ApprovedCount() int {
	count := 0
	for _, approved := range []bool{r.Witness1Approved, r.Witness2Approved, r.Witness3Approved} {
		if approved {
			count++
		}
	}
	return count
}

func (r ChecklistInspection) AllWitnessesApproved() bool {
	return r.ApprovedCount() == len(r.WitnessIDs())
}

func (r ChecklistInspection) IsParticipant(userID string) bool {
	if r.CheckedByID == userID {
		return true
	}
	for _, id := range r.WitnessIDs() {
		if id == userID {
			return true
		}
	}
	return false
}

func (r ChecklistInspection) IsApproved() bool {
	return r.ApprovalStatus == models.ApprovalStatusApproved
}
