package permissions

import (
	"site-qhse-backend/db"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	initchecker "site-qhse-backend/lib/utils/init-checker"
	worksiterolesstore "site-qhse-backend/lib/worksite/roles/store"
	worksitestore "site-qhse-backend/lib/worksite/store"
	"site-qhse-backend/models"
)

// Rule - предикат доступа к операции.
// Roles - роли на площадке, которым операция разрешена.
// NoAdminBypass отключает обход по флагу глобального администратора:
// такие операции требуют персонального участия (слот свидетеля,
// назначенный исполнитель), и роль проверяется для всех одинаково.
type Rule struct {
	Roles         []models.Role
	NoAdminBypass bool
}

// AnyOf - предикат "любая из ролей", с обходом для глобального админа
func AnyOf(roles ...models.Role) Rule {
	return Rule{Roles: roles}
}

// StrictAnyOf - предикат без обхода по флагу администратора
func StrictAnyOf(roles ...models.Role) Rule {
	return Rule{Roles: roles, NoAdminBypass: true}
}

type Provider interface {
	RoleOf(workSiteID string, actor models.Actor) (role models.Role, err error)
	Require(workSiteID string, actor models.Actor, rule Rule) error
	RequireConfigured(workSiteID string, actor models.Actor) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		roleStore:     worksiterolesstore.NewInstance(db.DB),
		workSiteStore: worksitestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"roleStore", instance.roleStore,
		"workSiteStore", instance.workSiteStore,
	)
	Instance = instance
}

type impl struct {
	roleStore     worksiterolesstore.Provider
	workSiteStore worksitestore.Provider
}

// checkWorkSite - площадка указана и существует
func (i impl) checkWorkSite(workSiteID string) error {
	if workSiteID == "" {
		return apperrors.Configuration("")
	}
	site, err := i.workSiteStore.GetByID(workSiteID)
	if err != nil {
		return err
	}
	if site == nil {
		return apperrors.NotFound("рабочая площадка не найдена")
	}
	return nil
}

func (i impl) RoleOf(workSiteID string, actor models.Actor) (models.Role, error) {
	rec, err := i.roleStore.GetByUser(workSiteID, actor.ID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", nil
	}
	return rec.Role, nil
}

// Require - проверка предиката операции. Исключение NoAdminBypass
// проверяется раньше обхода: администратор без подходящей роли на
// площадке такие операции не выполняет.
func (i impl) Require(workSiteID string, actor models.Actor, rule Rule) error {
	if err := i.checkWorkSite(workSiteID); err != nil {
		return err
	}
	role, err := i.RoleOf(workSiteID, actor)
	if err != nil {
		return err
	}
	for _, allowed := range rule.Roles {
		if role == allowed {
			return nil
		}
	}
	if actor.GlobalAdmin && !rule.NoAdminBypass {
		return nil
	}
	if role == "" {
		return apperrors.Configuration("у пользователя нет роли на площадке")
	}
	return apperrors.Permission("")
}

// RequireConfigured - у пользователя есть хоть какая-то роль на площадке
// (либо флаг глобального администратора)
func (i impl) RequireConfigured(workSiteID string, actor models.Actor) error {
	if err := i.checkWorkSite(workSiteID); err != nil {
		return err
	}
	if actor.GlobalAdmin {
		return nil
	}
	role, err := i.RoleOf(workSiteID, actor)
	if err != nil {
		return err
	}
	if role == "" {
		return apperrors.Configuration("у пользователя нет роли на площадке")
	}
	return nil
}
