package dbmodels

import "time"

// Worker - рабочий в реестре площадки. CreatedUnder - пользователь,
// за которым числится рабочий; должен иметь роль на площадке.
type Worker struct {
	BaseWorkSiteModel
	AuditModel
	CreatedUnderID string `gorm:"type:varchar(36)"`
	CreatedUnder   *User

	InductionDate time.Time
	Name          string `gorm:"type:varchar(150)"`
	ProfilePic    string
	FatherName    string `gorm:"type:varchar(150)"`
	Gender        string `gorm:"type:varchar(1)"`
	DateOfBirth   time.Time
	BloodGroup    string `gorm:"type:varchar(3)"`
	Designation   string `gorm:"type:varchar(150)"`

	MobileNumber           string `gorm:"type:varchar(15)"`
	EmergencyContactNumber string `gorm:"type:varchar(15)"`
	IdentityMarks          string
	Address                string
	City                   string `gorm:"type:varchar(150)"`
	State                  string `gorm:"type:varchar(150)"`
	Country                string `gorm:"type:varchar(2)"`
	Pincode                string `gorm:"type:varchar(15)"`

	MedicalFitness string // ссылки на файлы
	IdentityProof  string
}
