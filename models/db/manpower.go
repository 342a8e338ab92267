package dbmodels

import (
	"time"

	"site-qhse-backend/models"
)

// Manpower - суточный отчёт субподрядчика по персоналу.
// На площадку, дату и субподрядчика допускается один отчёт.
type Manpower struct {
	BaseModel
	AuditModel
	WorkSiteID      string    `gorm:"type:varchar(255);uniqueIndex:idx_manpower_report" json:"work_site_id"`
	Date            time.Time `gorm:"uniqueIndex:idx_manpower_report"`
	NumberOfWorkers int
	SubContractorID string `gorm:"type:varchar(36);uniqueIndex:idx_manpower_report"`
	SubContractor   *User

	VerificationStatus models.ManpowerVerificationStatus `gorm:"type:varchar(25);default:'Not Verified'"`
	VerifiedByID       string                            `gorm:"type:varchar(36)"`
	VerifiedBy         *User
}
