package dbmodels

import "fmt"

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	FirstName    string
	LastName     string
	Company      string
	IsEPCAdmin   bool // главный администратор, действует на всех площадках
	IsActive     bool `gorm:"default:true"`
	Departments  []Department `gorm:"many2many:user_departments;"`
}

func (u User) GetFullName() string {
	return fmt.Sprintf("%v %v", u.FirstName, u.LastName)
}

func (u User) InDepartment(departmentID string) bool {
	for _, department := range u.Departments {
		if department.ID == departmentID {
			return true
		}
	}
	return false
}

type Department struct {
	BaseModel
	Name string
}
