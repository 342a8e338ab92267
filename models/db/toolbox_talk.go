package dbmodels

import "time"

// ToolBoxTalk - запись о проведённом инструктаже
type ToolBoxTalk struct {
	BaseWorkSiteModel
	AuditModel
	Topic                string `gorm:"type:varchar(255)"`
	Date                 time.Time
	NumberOfParticipants int
	AgencyName           string `gorm:"type:varchar(255)"`
	Evidence             string // ссылки на файлы
	Attendance           string
}
