package manpower

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"site-qhse-backend/lib/permissions"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	"site-qhse-backend/models"
	manpowerapimodels "site-qhse-backend/models/api/manpower"
	dbmodels "site-qhse-backend/models/db"
)

type fakeStore struct {
	seq  int
	recs map[string]dbmodels.Manpower
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]dbmodels.Manpower{}}
}

func (f *fakeStore) Create(rec dbmodels.Manpower) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("rec-%d", f.seq)
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeStore) GetByID(workSiteID, id string) (*dbmodels.Manpower, error) {
	rec, exist := f.recs[id]
	if !exist || rec.WorkSiteID != workSiteID {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) FindByKey(workSiteID string, date time.Time, subContractorID string) (*dbmodels.Manpower, error) {
	for _, rec := range f.recs {
		if rec.WorkSiteID == workSiteID && rec.Date.Equal(date) && rec.SubContractorID == subContractorID {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) List(workSiteID string, from, to *time.Time) ([]dbmodels.Manpower, error) {
	list := []dbmodels.Manpower{}
	for _, rec := range f.recs {
		if rec.WorkSiteID != workSiteID {
			continue
		}
		if from != nil && rec.Date.Before(*from) {
			continue
		}
		if to != nil && rec.Date.After(*to) {
			continue
		}
		list = append(list, rec)
	}
	return list, nil
}

func (f *fakeStore) ListBySubContractor(workSiteID, userID string, from, to *time.Time) ([]dbmodels.Manpower, error) {
	all, _ := f.List(workSiteID, from, to)
	list := []dbmodels.Manpower{}
	for _, rec := range all {
		if rec.SubContractorID == userID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeStore) Update(workSiteID, id string, updMap map[string]interface{}) error {
	rec, exist := f.recs[id]
	if !exist || rec.WorkSiteID != workSiteID {
		return nil
	}
	if value, ok := updMap["number_of_workers"]; ok {
		rec.NumberOfWorkers = value.(int)
	}
	if value, ok := updMap["verification_status"]; ok {
		rec.VerificationStatus = value.(models.ManpowerVerificationStatus)
	}
	if value, ok := updMap["verified_by_id"]; ok {
		rec.VerifiedByID = value.(string)
	}
	if value, ok := updMap["last_updated_by_id"]; ok {
		rec.LastUpdatedByID = value.(string)
	}
	f.recs[id] = rec
	return nil
}

func (f *fakeStore) Delete(workSiteID, id string) error {
	rec, exist := f.recs[id]
	if exist && rec.WorkSiteID == workSiteID {
		delete(f.recs, id)
	}
	return nil
}

type fakeRoleStore struct {
	roles map[string]models.Role
}

func (f fakeRoleStore) Create(rec dbmodels.WorkSiteRole) (string, error) { return rec.ID, nil }

func (f fakeRoleStore) GetByUser(workSiteID, userID string) (*dbmodels.WorkSiteRole, error) {
	role, exist := f.roles[userID]
	if !exist {
		return nil, nil
	}
	return &dbmodels.WorkSiteRole{UserID: userID, WorkSiteID: workSiteID, Role: role}, nil
}

func (f fakeRoleStore) ListByWorkSite(workSiteID string) ([]dbmodels.WorkSiteRole, error) {
	return nil, nil
}

func (f fakeRoleStore) ListByRole(workSiteID string, role models.Role) ([]dbmodels.WorkSiteRole, error) {
	return nil, nil
}

func (f fakeRoleStore) Delete(workSiteID, id string) error { return nil }

type fakePermissions struct {
	roles map[string]models.Role
}

func (f fakePermissions) RoleOf(workSiteID string, actor models.Actor) (models.Role, error) {
	return f.roles[actor.ID], nil
}

func (f fakePermissions) Require(workSiteID string, actor models.Actor, rule permissions.Rule) error {
	role := f.roles[actor.ID]
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

func (f fakePermissions) RequireConfigured(workSiteID string, actor models.Actor) error {
	if actor.GlobalAdmin {
		return nil
	}
	if f.roles[actor.ID] == "" {
		return apperrors.Configuration("у пользователя нет роли на площадке")
	}
	return nil
}

const testSite = "solar-park"

func testRoles() map[string]models.Role {
	return map[string]models.Role{
		"sub-1":    models.RoleSubContractor,
		"sub-2":    models.RoleSubContractor,
		"epc-1":    models.RoleEPC,
		"client-1": models.RoleClient,
	}
}

func newTestHandler() (impl, *fakeStore) {
	store := newFakeStore()
	roles := testRoles()
	handler := impl{
		store:       store,
		roleStore:   fakeRoleStore{roles: roles},
		permissions: fakePermissions{roles: roles},
	}
	return handler, store
}

var (
	subActor    = models.Actor{ID: "sub-1"}
	sub2Actor   = models.Actor{ID: "sub-2"}
	epcActor    = models.Actor{ID: "epc-1"}
	clientActor = models.Actor{ID: "client-1"}
)

func reportData(day time.Time, workers int) manpowerapimodels.ManpowerData {
	return manpowerapimodels.ManpowerData{
		Date:            day,
		NumberOfWorkers: workers,
	}
}

func TestManpowerCreate(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run(`субподрядчик подаёт отчёт за себя`, func(t *testing.T) {
		handler, store := newTestHandler()
		request := reportData(day, 25)
		// чужой идентификатор игнорируется
		request.SubContractorID = "sub-2"
		id, err := handler.Create(testSite, subActor, request)
		require.Nil(t, err)

		rec := store.recs[id]
		require.Equal(t, "sub-1", rec.SubContractorID)
		require.Equal(t, models.ManpowerNotVerified, rec.VerificationStatus)
	})

	t.Run(`дата нормализуется к началу суток`, func(t *testing.T) {
		handler, store := newTestHandler()
		id, err := handler.Create(testSite, subActor,
			reportData(time.Date(2026, 3, 14, 17, 42, 3, 0, time.UTC), 10))
		require.Nil(t, err)
		require.Equal(t, day, store.recs[id].Date)
	})

	t.Run(`повторный отчёт за дату - конфликт`, func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)

		_, err = handler.Create(testSite, subActor,
			reportData(day.Add(9*time.Hour), 30))
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindConflict))

		// другой субподрядчик за ту же дату подаёт свободно
		request := reportData(day, 12)
		request.SubContractorID = "sub-2"
		_, err = handler.Create(testSite, epcActor, request)
		require.Nil(t, err)
	})

	t.Run(`EPC подаёт за субподрядчика`, func(t *testing.T) {
		handler, store := newTestHandler()
		request := reportData(day, 40)
		request.SubContractorID = "sub-2"
		id, err := handler.Create(testSite, epcActor, request)
		require.Nil(t, err)
		require.Equal(t, "sub-2", store.recs[id].SubContractorID)
	})

	t.Run(`получатель отчёта обязан быть субподрядчиком`, func(t *testing.T) {
		handler, _ := newTestHandler()
		request := reportData(day, 40)
		request.SubContractorID = "client-1"
		_, err := handler.Create(testSite, epcActor, request)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run(`заказчик отчёты не подаёт`, func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.Create(testSite, clientActor, reportData(day, 25))
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))
	})

	t.Run(`число рабочих положительное`, func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.Create(testSite, subActor, reportData(day, 0))
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func TestManpowerVerify(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run(`проверка отчёта EPC`, func(t *testing.T) {
		handler, store := newTestHandler()
		id, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)

		err = handler.Verify(testSite, id, epcActor,
			manpowerapimodels.VerifyData{Status: models.ManpowerVerified})
		require.Nil(t, err)

		rec := store.recs[id]
		require.Equal(t, models.ManpowerVerified, rec.VerificationStatus)
		require.Equal(t, "epc-1", rec.VerifiedByID)
	})

	t.Run(`возврат на доработку без подписи проверяющего`, func(t *testing.T) {
		handler, store := newTestHandler()
		id, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)

		err = handler.Verify(testSite, id, epcActor,
			manpowerapimodels.VerifyData{Status: models.ManpowerRevise})
		require.Nil(t, err)

		rec := store.recs[id]
		require.Equal(t, models.ManpowerRevise, rec.VerificationStatus)
		require.Empty(t, rec.VerifiedByID)
	})

	t.Run(`субподрядчик не проверяет`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)

		err = handler.Verify(testSite, id, subActor,
			manpowerapimodels.VerifyData{Status: models.ManpowerVerified})
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))
	})

	t.Run(`сброс статуса проверкой не задаётся`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)

		err = handler.Verify(testSite, id, epcActor,
			manpowerapimodels.VerifyData{Status: models.ManpowerNotVerified})
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run(`проверенный отчёт не редактируется и не удаляется`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)
		require.Nil(t, handler.Verify(testSite, id, epcActor,
			manpowerapimodels.VerifyData{Status: models.ManpowerVerified}))

		err = handler.Update(testSite, id, subActor, reportData(day, 30))
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))

		err = handler.Delete(testSite, id, subActor)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
	})

	t.Run(`правка возвращает отчёт в непроверенные`, func(t *testing.T) {
		handler, store := newTestHandler()
		id, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)
		require.Nil(t, handler.Verify(testSite, id, epcActor,
			manpowerapimodels.VerifyData{Status: models.ManpowerRevise}))

		require.Nil(t, handler.Update(testSite, id, subActor, reportData(day, 30)))
		rec := store.recs[id]
		require.Equal(t, 30, rec.NumberOfWorkers)
		require.Equal(t, models.ManpowerNotVerified, rec.VerificationStatus)
	})

	t.Run(`чужой отчёт субподрядчик не правит`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)

		err = handler.Update(testSite, id, sub2Actor, reportData(day, 1))
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))

		err = handler.Delete(testSite, id, sub2Actor)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))
	})
}

func TestManpowerVisibility(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	seed := func(t *testing.T) (impl, string, string) {
		handler, _ := newTestHandler()
		first, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)
		second, err := handler.Create(testSite, sub2Actor, reportData(day, 12))
		require.Nil(t, err)
		require.Nil(t, handler.Verify(testSite, first, epcActor,
			manpowerapimodels.VerifyData{Status: models.ManpowerVerified}))
		return handler, first, second
	}

	t.Run(`заказчику доступны только проверенные`, func(t *testing.T) {
		handler, first, second := seed(t)

		_, err := handler.Get(testSite, first, clientActor)
		require.Nil(t, err)

		_, err = handler.Get(testSite, second, clientActor)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))

		list, err := handler.List(testSite, clientActor, nil, nil)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, first, list[0].ID)
	})

	t.Run(`субподрядчик видит только свои отчёты`, func(t *testing.T) {
		handler, first, _ := seed(t)
		list, err := handler.List(testSite, subActor, nil, nil)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, first, list[0].ID)
	})

	t.Run(`EPC видит все отчёты`, func(t *testing.T) {
		handler, _, _ := seed(t)
		list, err := handler.List(testSite, epcActor, nil, nil)
		require.Nil(t, err)
		require.Len(t, list, 2)
	})

	t.Run(`фильтр по периоду`, func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)
		_, err = handler.Create(testSite, subActor, reportData(day.AddDate(0, 0, 7), 30))
		require.Nil(t, err)

		from := day.AddDate(0, 0, 1)
		list, err := handler.List(testSite, epcActor, &from, nil)
		require.Nil(t, err)
		require.Len(t, list, 1)
	})

	t.Run(`выгрузка реестра в xlsx`, func(t *testing.T) {
		handler, _, _ := seed(t)
		file, err := handler.ExportXLSX(testSite, epcActor, nil, nil)
		require.Nil(t, err)
		require.NotEmpty(t, file)
	})
}

func TestManpowerDelete(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run(`субподрядчик удаляет свой непроверенный отчёт`, func(t *testing.T) {
		handler, store := newTestHandler()
		id, err := handler.Create(testSite, subActor, reportData(day, 25))
		require.Nil(t, err)

		require.Nil(t, handler.Delete(testSite, id, subActor))
		require.Empty(t, store.recs)
	})

	t.Run(`EPC удаляет любой непроверенный отчёт`, func(t *testing.T) {
		handler, store := newTestHandler()
		id, err := handler.Create(testSite, sub2Actor, reportData(day, 12))
		require.Nil(t, err)

		require.Nil(t, handler.Delete(testSite, id, epcActor))
		require.Empty(t, store.recs)
	})
}
