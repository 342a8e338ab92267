package dbmodels

import (
	"time"

	"site-qhse-backend/models"
)

// SafetyObservation - наблюдение по безопасности с вложенным циклом
// корректирующих действий (Status) поверх состояния наблюдения
// (ObservationStatus).
type SafetyObservation struct {
	BaseWorkSiteModel
	AuditModel
	ReportedByID string `gorm:"type:varchar(36)"`
	ReportedBy   *User

	ObservationDate time.Time
	ObservationTime string `gorm:"type:varchar(8)"` // ЧЧ:ММ
	WorkLocation    string `gorm:"type:varchar(155)"`

	DepartmentID string `gorm:"type:varchar(36)"`
	Department   *Department

	ActivityPerformed string
	SubContractorID   string `gorm:"type:varchar(36)"`
	SubContractor     *User

	ObservationFound string
	ObservationType  models.ObservationType `gorm:"type:varchar(155)"`
	Classification   string                 `gorm:"type:varchar(155)"` // из справочника классификаций
	RiskRated        models.RiskRating      `gorm:"type:varchar(155)"`

	CorrectiveActionRequired     string
	CorrectiveActionTaken        string
	CorrectiveActionAssignedToID string `gorm:"type:varchar(36)"`
	CorrectiveActionAssignedTo   *User

	ObservationStatus models.ObservationStatus `gorm:"type:varchar(155);index"`
	ClosedOn          *time.Time

	BeforeImage string // ссылки на файлы
	AfterImage  string
	Remarks     string

	Status models.CorrectiveActionStatus `gorm:"type:varchar(25);index"`
}
