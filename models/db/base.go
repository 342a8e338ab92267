package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BaseWorkSiteModel struct {
	BaseModel
	WorkSiteID string `gorm:"type:varchar(255);index" json:"work_site_id"`
}

// AuditModel - штампы автора для сущностей с ручным сопровождением
type AuditModel struct {
	CreatedByID     string `gorm:"type:varchar(36)" json:"created_by_id"`
	LastUpdatedByID string `gorm:"type:varchar(36)" json:"last_updated_by_id"`
}

// JSONDocument - непрозрачный документ (jsonb); структура содержимого
// определяется категорией и сервером не интерпретируется
type JSONDocument map[string]interface{}

func (j JSONDocument) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *JSONDocument) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return nil
}
