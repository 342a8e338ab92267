package worksiteroles

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "site-qhse-backend/lib/utils/app-errors"
	"site-qhse-backend/models"
	worksiteapimodels "site-qhse-backend/models/api/worksite"
	dbmodels "site-qhse-backend/models/db"
)

type fakeStore struct {
	seq  int
	recs map[string]dbmodels.WorkSiteRole
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]dbmodels.WorkSiteRole{}}
}

func (f *fakeStore) Create(rec dbmodels.WorkSiteRole) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("role-%d", f.seq)
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeStore) GetByUser(workSiteID, userID string) (*dbmodels.WorkSiteRole, error) {
	for _, rec := range f.recs {
		if rec.WorkSiteID == workSiteID && rec.UserID == userID {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListByWorkSite(workSiteID string) ([]dbmodels.WorkSiteRole, error) {
	list := []dbmodels.WorkSiteRole{}
	for _, rec := range f.recs {
		if rec.WorkSiteID == workSiteID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeStore) ListByRole(workSiteID string, role models.Role) ([]dbmodels.WorkSiteRole, error) {
	list := []dbmodels.WorkSiteRole{}
	for _, rec := range f.recs {
		if rec.WorkSiteID == workSiteID && rec.Role == role {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeStore) Delete(workSiteID, id string) error {
	rec, exist := f.recs[id]
	if exist && rec.WorkSiteID == workSiteID {
		delete(f.recs, id)
	}
	return nil
}

type fakeUserStore struct {
	users map[string]bool
}

func (f fakeUserStore) Create(rec dbmodels.User) (string, error) { return rec.ID, nil }

func (f fakeUserStore) GetByID(id string) (*dbmodels.User, error) {
	if !f.users[id] {
		return nil, nil
	}
	return &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: id}}, nil
}

func (f fakeUserStore) FindByEmail(email string) (*dbmodels.User, error) { return nil, nil }

func (f fakeUserStore) ListByIDs(ids []string) ([]dbmodels.User, error) { return nil, nil }

func TestRoleAssignment(t *testing.T) {
	newHandler := func() impl {
		return impl{
			store:     newFakeStore(),
			userStore: fakeUserStore{users: map[string]bool{"u1": true, "u2": true}},
		}
	}

	t.Run(`назначение и чтение роли`, func(t *testing.T) {
		handler := newHandler()
		id, err := handler.Assign("site", worksiteapimodels.RoleAssignData{
			UserID: "u1",
			Role:   models.RoleSubContractor,
		})
		require.Nil(t, err)
		require.NotEmpty(t, id)

		role, err := handler.RoleOf("site", "u1")
		require.Nil(t, err)
		require.Equal(t, models.RoleSubContractor, role)
	})

	t.Run(`несуществующий пользователь`, func(t *testing.T) {
		handler := newHandler()
		_, err := handler.Assign("site", worksiteapimodels.RoleAssignData{
			UserID: "ghost",
			Role:   models.RoleEPC,
		})
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})

	t.Run(`повторное назначение - конфликт`, func(t *testing.T) {
		handler := newHandler()
		_, err := handler.Assign("site", worksiteapimodels.RoleAssignData{
			UserID: "u1",
			Role:   models.RoleEPC,
		})
		require.Nil(t, err)

		_, err = handler.Assign("site", worksiteapimodels.RoleAssignData{
			UserID: "u1",
			Role:   models.RoleClient,
		})
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run(`одна роль на каждой из площадок`, func(t *testing.T) {
		handler := newHandler()
		_, err := handler.Assign("site-a", worksiteapimodels.RoleAssignData{
			UserID: "u1",
			Role:   models.RoleEPC,
		})
		require.Nil(t, err)
		_, err = handler.Assign("site-b", worksiteapimodels.RoleAssignData{
			UserID: "u1",
			Role:   models.RoleClient,
		})
		require.Nil(t, err)

		role, err := handler.RoleOf("site-b", "u1")
		require.Nil(t, err)
		require.Equal(t, models.RoleClient, role)
	})

	t.Run(`без роли возвращается пустая строка`, func(t *testing.T) {
		handler := newHandler()
		role, err := handler.RoleOf("site", "u2")
		require.Nil(t, err)
		require.Equal(t, models.Role(""), role)
	})

	t.Run(`отзыв роли`, func(t *testing.T) {
		handler := newHandler()
		id, err := handler.Assign("site", worksiteapimodels.RoleAssignData{
			UserID: "u2",
			Role:   models.RoleSafetyOfficer,
		})
		require.Nil(t, err)

		require.Nil(t, handler.Revoke("site", id))
		role, err := handler.RoleOf("site", "u2")
		require.Nil(t, err)
		require.Equal(t, models.Role(""), role)
	})

	t.Run(`выборка по роли`, func(t *testing.T) {
		handler := newHandler()
		_, err := handler.Assign("site", worksiteapimodels.RoleAssignData{
			UserID: "u1",
			Role:   models.RoleSubContractor,
		})
		require.Nil(t, err)
		_, err = handler.Assign("site", worksiteapimodels.RoleAssignData{
			UserID: "u2",
			Role:   models.RoleEPC,
		})
		require.Nil(t, err)

		list, err := handler.UsersInRole("site", models.RoleSubContractor)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "u1", list[0].UserID)

		all, err := handler.List("site")
		require.Nil(t, err)
		require.Len(t, all, 2)
	})

	t.Run(`кандидаты в свидетели без запрашивающего`, func(t *testing.T) {
		handler := newHandler()
		_, err := handler.Assign("site", worksiteapimodels.RoleAssignData{
			UserID: "u1",
			Role:   models.RoleQualityInspector,
		})
		require.Nil(t, err)
		_, err = handler.Assign("site", worksiteapimodels.RoleAssignData{
			UserID: "u2",
			Role:   models.RoleEPC,
		})
		require.Nil(t, err)

		list, err := handler.WitnessCandidates("site", "u1")
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "u2", list[0].UserID)
	})
}
