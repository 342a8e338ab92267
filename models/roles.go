package models

import "github.com/pkg/errors"

type Role string

const (
	RoleEPCAdmin         Role = "epc_admin" // главный администратор (покупатель системы)
	RoleEPC              Role = "epc"
	RoleClient           Role = "client"
	RoleSubContractor    Role = "sub_contractor"
	RoleQualityInspector Role = "quality_inspector"
	RoleSafetyOfficer    Role = "safety_officer"
)

var roleHumanName = map[Role]string{
	RoleEPCAdmin:         "Администратор EPC",
	RoleEPC:              "Пользователь EPC",
	RoleClient:           "Заказчик",
	RoleSubContractor:    "Субподрядчик",
	RoleQualityInspector: "Инспектор качества",
	RoleSafetyOfficer:    "Инженер по ТБ",
}

func (r Role) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r Role) Validate() error {
	if _, exist := roleHumanName[r]; !exist {
		return errors.Errorf("неизвестная роль (%v)", string(r))
	}
	return nil
}

func (r Role) IsEPCTier() bool {
	return r == RoleEPC || r == RoleEPCAdmin
}

// Actor - действующий пользователь запроса.
// GlobalAdmin выставляется по флагу пользователя и действует вне привязки к площадке.
type Actor struct {
	ID          string
	GlobalAdmin bool
}
