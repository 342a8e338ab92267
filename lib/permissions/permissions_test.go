package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "site-qhse-backend/lib/utils/app-errors"
	"site-qhse-backend/models"
	dbmodels "site-qhse-backend/models/db"
)

type fakeRoleStore struct {
	roles map[string]models.Role // userID -> роль
}

func (f fakeRoleStore) Create(rec dbmodels.WorkSiteRole) (string, error) { return rec.ID, nil }

func (f fakeRoleStore) GetByUser(workSiteID, userID string) (*dbmodels.WorkSiteRole, error) {
	role, exist := f.roles[userID]
	if !exist {
		return nil, nil
	}
	return &dbmodels.WorkSiteRole{UserID: userID, Role: role}, nil
}

func (f fakeRoleStore) ListByWorkSite(workSiteID string) ([]dbmodels.WorkSiteRole, error) {
	return nil, nil
}

func (f fakeRoleStore) ListByRole(workSiteID string, role models.Role) ([]dbmodels.WorkSiteRole, error) {
	return nil, nil
}

func (f fakeRoleStore) Delete(workSiteID, id string) error { return nil }

type fakeWorkSiteStore struct {
	sites map[string]bool
}

func (f fakeWorkSiteStore) Create(rec dbmodels.WorkSite) (string, error) { return rec.ID, nil }

func (f fakeWorkSiteStore) GetByID(id string) (*dbmodels.WorkSite, error) {
	if !f.sites[id] {
		return nil, nil
	}
	return &dbmodels.WorkSite{ID: id}, nil
}

func (f fakeWorkSiteStore) List() ([]dbmodels.WorkSite, error) { return nil, nil }

func (f fakeWorkSiteStore) ListCorrectiveActionUsers(workSiteID string) ([]dbmodels.CorrectiveActionUser, error) {
	return nil, nil
}

func (f fakeWorkSiteStore) IsCorrectiveActionUser(workSiteID, userID string) (bool, error) {
	return false, nil
}

func (f fakeWorkSiteStore) AddCorrectiveActionUser(workSiteID, userID string) error { return nil }

func (f fakeWorkSiteStore) RemoveCorrectiveActionUsers(workSiteID string) error { return nil }

func (f fakeWorkSiteStore) ListClassifications() ([]dbmodels.ObservationClassification, error) {
	return nil, nil
}

func (f fakeWorkSiteStore) AddClassification(name string) error { return nil }

func newTestPermissions(roles map[string]models.Role) impl {
	return impl{
		roleStore:     fakeRoleStore{roles: roles},
		workSiteStore: fakeWorkSiteStore{sites: map[string]bool{"site": true}},
	}
}

func TestPermissions(t *testing.T) {
	handler := newTestPermissions(map[string]models.Role{
		"epc-user": models.RoleEPC,
		"sub-user": models.RoleSubContractor,
	})

	t.Run(`разрешение по роли`, func(t *testing.T) {
		err := handler.Require("site", models.Actor{ID: "epc-user"}, AnyOf(models.RoleEPC, models.RoleEPCAdmin))
		require.Nil(t, err)
	})

	t.Run(`отказ при несовпадении роли`, func(t *testing.T) {
		err := handler.Require("site", models.Actor{ID: "sub-user"}, AnyOf(models.RoleEPC))
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))
	})

	t.Run(`обход для глобального администратора`, func(t *testing.T) {
		err := handler.Require("site", models.Actor{ID: "stranger", GlobalAdmin: true}, AnyOf(models.RoleEPC))
		require.Nil(t, err)
	})

	t.Run(`NoAdminBypass отключает обход`, func(t *testing.T) {
		err := handler.Require("site", models.Actor{ID: "stranger", GlobalAdmin: true}, StrictAnyOf(models.RoleSubContractor))
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	})

	t.Run(`NoAdminBypass пропускает администратора с подходящей ролью`, func(t *testing.T) {
		err := handler.Require("site", models.Actor{ID: "sub-user", GlobalAdmin: true}, StrictAnyOf(models.RoleSubContractor))
		require.Nil(t, err)
	})

	t.Run(`пустая площадка - ошибка конфигурации`, func(t *testing.T) {
		err := handler.Require("", models.Actor{ID: "epc-user"}, AnyOf(models.RoleEPC))
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	})

	t.Run(`несуществующая площадка не найдена`, func(t *testing.T) {
		err := handler.Require("unknown-site", models.Actor{ID: "epc-user"}, AnyOf(models.RoleEPC))
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})

	t.Run(`пользователь без роли - ошибка конфигурации`, func(t *testing.T) {
		err := handler.Require("site", models.Actor{ID: "stranger"}, AnyOf(models.RoleEPC))
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	})

	t.Run(`RequireConfigured по роли и по флагу администратора`, func(t *testing.T) {
		require.Nil(t, handler.RequireConfigured("site", models.Actor{ID: "sub-user"}))
		require.Nil(t, handler.RequireConfigured("site", models.Actor{ID: "stranger", GlobalAdmin: true}))
		err := handler.RequireConfigured("site", models.Actor{ID: "stranger"})
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	})

	t.Run(`RoleOf без роли возвращает пустую строку`, func(t *testing.T) {
		role, err := handler.RoleOf("site", models.Actor{ID: "stranger"})
		require.Nil(t, err)
		require.Equal(t, models.Role(""), role)
	})
}
