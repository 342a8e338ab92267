package dbmodels

import (
	"time"

	"site-qhse-backend/models"
)

// WorkSite - рабочая площадка, граница арендатора.
// ID формируется как slug от названия при создании и далее не меняется.
type WorkSite struct {
	ID        string `gorm:"primaryKey;type:varchar(255)" json:"id"`
	Name      string `gorm:"type:varchar(45)" json:"name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkSiteRole - роль пользователя на площадке.
// У пары (пользователь, площадка) не может быть больше одной роли.
type WorkSiteRole struct {
	BaseModel
	UserID     string `gorm:"type:varchar(36);uniqueIndex:idx_worksite_role_user"`
	User       *User
	WorkSiteID string `gorm:"type:varchar(255);uniqueIndex:idx_worksite_role_user"`
	Role       models.Role `gorm:"type:varchar(50)"`
}

// CorrectiveActionUser - пользователь площадки, назначаемый исполнителем
// корректирующих действий по наблюдениям
type CorrectiveActionUser struct {
	BaseModel
	WorkSiteID string `gorm:"type:varchar(255);uniqueIndex:idx_ca_user"`
	UserID     string `gorm:"type:varchar(36);uniqueIndex:idx_ca_user"`
	User       *User
}

// ObservationClassification - справочник классификаций наблюдений
type ObservationClassification struct {
	BaseModel
	Name string `gorm:"type:varchar(155)"`
}
