package dbmodels

import (
	"time"

	"site-qhse-backend/models"
)

// PermitToWork - наряд-допуск. Номер генерируется при создании и уникален.
type PermitToWork struct {
	BaseWorkSiteModel
	AuditModel
	PermitNo   string `gorm:"type:varchar(255);uniqueIndex"`
	IssuedDate *time.Time
	Validity   time.Time // срок действия, при создании строго в будущем

	SubmittedByID        string `gorm:"type:varchar(36)"`
	SubmittedBy          *User
	SubmittedAt          time.Time
	SubmittedBySignature string

	VerifiedByID        string `gorm:"type:varchar(36)"`
	VerifiedBy          *User
	VerifiedAt          *time.Time
	VerifiedBySignature string

	ApprovedByID        string `gorm:"type:varchar(36)"`
	ApprovedBy          *User
	ApprovedAt          *time.Time
	ApprovedBySignature string

	RejectedByID   string `gorm:"type:varchar(36)"`
	RejectedRemark string

	Status models.PTWStatus `gorm:"type:varchar(255);index"`

	ClosureRequestedByID string `gorm:"type:varchar(36)"`
	ClosureRequestedAt   *time.Time
	ClosureAcceptedByID  string `gorm:"type:varchar(36)"`
	ClosedAt             *time.Time

	// содержимое наряда (участок, описание работ, меры безопасности)
	Payload JSONDocument `gorm:"type:jsonb"`
}

func (r PermitToWork) ClosureRequested() bool {
	return r.ClosureRequestedByID != ""
}
