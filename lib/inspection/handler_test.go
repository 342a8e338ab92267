package inspection

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"site-qhse-backend/lib/permissions"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	"site-qhse-backend/models"
	inspectionapimodels "site-qhse-backend/models/api/inspection"
	dbmodels "site-qhse-backend/models/db"
)

type fakeStore struct {
	seq  int
	recs map[string]*dbmodels.ChecklistInspection
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]*dbmodels.ChecklistInspection{}}
}

func (f *fakeStore) Create(rec dbmodels.ChecklistInspection) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("rec-%d", f.seq)
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeStore) GetByID(workSiteID, id string) (*dbmodels.ChecklistInspection, error) {
	rec, exist := f.recs[id]
	if !exist || rec.WorkSiteID != workSiteID {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeStore) List(workSiteID, category string) ([]dbmodels.ChecklistInspection, error) {
	list := []dbmodels.ChecklistInspection{}
	for _, rec := range f.recs {
		if rec.WorkSiteID != workSiteID {
			continue
		}
		if category != "" && rec.Category != category {
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeStore) ListByParticipant(workSiteID, category, userID string) ([]dbmodels.ChecklistInspection, error) {
	all, _ := f.List(workSiteID, category)
	list := []dbmodels.ChecklistInspection{}
	for _, rec := range all {
		if rec.IsParticipant(userID) {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeStore) ApproveWitnessSlot(workSiteID, id string, slot int, updMap map[string]interface{}) (bool, error) {
	rec, exist := f.recs[id]
	if !exist || rec.WorkSiteID != workSiteID {
		return false, nil
	}
	now := time.Now()
	switch slot {
	case 1:
		if rec.Witness1Approved {
			return false, nil
		}
		rec.Witness1Approved = true
		rec.Witness1Date = &now
	case 2:
		if rec.Witness2Approved {
			return false, nil
		}
		rec.Witness2Approved = true
		rec.Witness2Date = &now
	case 3:
		if rec.Witness3Approved {
			return false, nil
		}
		rec.Witness3Approved = true
		rec.Witness3Date = &now
	default:
		return false, nil
	}
	return true, nil
}

func (f *fakeStore) UpdateStatus(workSiteID, id string, status models.ApprovalStatus) error {
	if rec, exist := f.recs[id]; exist && rec.WorkSiteID == workSiteID {
		rec.ApprovalStatus = status
	}
	return nil
}

func (f *fakeStore) Delete(workSiteID, id string) error {
	delete(f.recs, id)
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
	return &dbmodels.WorkSiteRole{UserID: userID, Role: role}, nil
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
	return apperrors.Permission("")
}

func (f fakePermissions) RequireConfigured(workSiteID string, actor models.Actor) error {
	if actor.GlobalAdmin || f.roles[actor.ID] != "" {
		return nil
	}
	return apperrors.Configuration("у пользователя нет роли на площадке")
}

func newTestHandler(roles map[string]models.Role) (impl, *fakeStore) {
	store := newFakeStore()
	handler := impl{
		store:       store,
		roleStore:   fakeRoleStore{roles: roles},
		permissions: fakePermissions{roles: roles},
	}
	return handler, store
}

const testSite = "solar-park"

func testRoles() map[string]models.Role {
	return map[string]models.Role{
		"checker": models.RoleQualityInspector,
		"w1":      models.RoleEPC,
		"w2":      models.RoleClient,
		"w3":      models.RoleSubContractor,
		"viewer":  models.RoleSafetyOfficer,
	}
}

func threeWitnessData() inspectionapimodels.InspectionData {
	return inspectionapimodels.InspectionData{
		Category:      "excavation",
		CheckedByDate: time.Now(),
		Witness1ID:    "w1",
		Witness2ID:    "w2",
		Witness3ID:    "w3",
		Payload:       map[string]interface{}{"item1": "ok"},
	}
}

func TestInspectionCreate(t *testing.T) {
	t.Run(`создание с тремя свидетелями`, func(t *testing.T) {
		handler, store := newTestHandler(testRoles())
		id, err := handler.Create(testSite, models.Actor{ID: "checker"}, threeWitnessData())
		require.Nil(t, err)
		rec := store.recs[id]
		require.NotNil(t, rec)
		require.Equal(t, models.ApprovalStatusInitiated, rec.ApprovalStatus)
		require.Equal(t, "checker", rec.CheckedByID)
	})

	t.Run(`администратор без роли не становится проверяющим`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		_, err := handler.Create(testSite, models.Actor{ID: "admin", GlobalAdmin: true}, threeWitnessData())
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	})

	t.Run(`проверяющий не может быть свидетелем`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		data := threeWitnessData()
		data.Witness2ID = "checker"
		_, err := handler.Create(testSite, models.Actor{ID: "checker"}, data)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run(`свидетель без роли на площадке`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		data := threeWitnessData()
		data.Witness3ID = "stranger"
		_, err := handler.Create(testSite, models.Actor{ID: "checker"}, data)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run(`число свидетелей должно совпадать с категорией`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		data := threeWitnessData()
		data.Witness3ID = "" // для excavation нужно три
		_, err := handler.Create(testSite, models.Actor{ID: "checker"}, data)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run(`свидетели должны быть разными`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		data := threeWitnessData()
		data.Witness3ID = "w1"
		_, err := handler.Create(testSite, models.Actor{ID: "checker"}, data)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func TestWitnessApproval(t *testing.T) {
	signature := inspectionapimodels.WitnessApprovalData{Signature: "signatures/sig.png"}

	t.Run(`полный цикл согласования`, func(t *testing.T) {
		handler, store := newTestHandler(testRoles())
		id, err := handler.Create(testSite, models.Actor{ID: "checker"}, threeWitnessData())
		require.Nil(t, err)

		err = handler.RecordWitnessApproval(testSite, id, models.Actor{ID: "w1"}, signature)
		require.Nil(t, err)
		require.Equal(t, models.ApprovalStatusInProgress, store.recs[id].ApprovalStatus)

		err = handler.RecordWitnessApproval(testSite, id, models.Actor{ID: "w2"}, signature)
		require.Nil(t, err)
		require.Equal(t, models.ApprovalStatusInProgress, store.recs[id].ApprovalStatus)

		err = handler.RecordWitnessApproval(testSite, id, models.Actor{ID: "w3"}, signature)
		require.Nil(t, err)
		require.Equal(t, models.ApprovalStatusApproved, store.recs[id].ApprovalStatus)
	})

	t.Run(`повторное подтверждение отклоняется`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		id, err := handler.Create(testSite, models.Actor{ID: "checker"}, threeWitnessData())
		require.Nil(t, err)

		require.Nil(t, handler.RecordWitnessApproval(testSite, id, models.Actor{ID: "w1"}, signature))
		err = handler.RecordWitnessApproval(testSite, id, models.Actor{ID: "w1"}, signature)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotAllowed))
	})

	t.Run(`посторонний пользователь отклоняется`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		id, err := handler.Create(testSite, models.Actor{ID: "checker"}, threeWitnessData())
		require.Nil(t, err)

		err = handler.RecordWitnessApproval(testSite, id, models.Actor{ID: "viewer"}, signature)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotAllowed))
	})

	t.Run(`глобальный администратор не подменяет свидетеля`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		id, err := handler.Create(testSite, models.Actor{ID: "checker"}, threeWitnessData())
		require.Nil(t, err)

		err = handler.RecordWitnessApproval(testSite, id, models.Actor{ID: "admin", GlobalAdmin: true}, signature)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotAllowed))
	})

	t.Run(`согласованный чек-лист неизменяем`, func(t *testing.T) {
		handler, store := newTestHandler(testRoles())
		id, err := handler.Create(testSite, models.Actor{ID: "checker"}, threeWitnessData())
		require.Nil(t, err)
		for _, userID := range []string{"w1", "w2", "w3"} {
			require.Nil(t, handler.RecordWitnessApproval(testSite, id, models.Actor{ID: userID}, signature))
		}
		require.Equal(t, models.ApprovalStatusApproved, store.recs[id].ApprovalStatus)

		// повторная подпись по закрытому слоту - тот же отказ, что и чужому
		err = handler.RecordWitnessApproval(testSite, id, models.Actor{ID: "w1"}, signature)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotAllowed))

		err = handler.Delete(testSite, id, models.Actor{ID: "checker"})
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
	})

	t.Run(`запись с чужой площадки не видна`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		id, err := handler.Create(testSite, models.Actor{ID: "checker"}, threeWitnessData())
		require.Nil(t, err)

		err = handler.RecordWitnessApproval("other-site", id, models.Actor{ID: "w1"}, signature)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestInspectionVisibility(t *testing.T) {
	signature := inspectionapimodels.WitnessApprovalData{Signature: "signatures/sig.png"}

	t.Run(`до согласования чек-лист закрыт для посторонних`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		id, err := handler.Create(testSite, models.Actor{ID: "checker"}, threeWitnessData())
		require.Nil(t, err)

		_, err = handler.Get(testSite, id, models.Actor{ID: "viewer"})
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))

		// участник и EPC видят
		_, err = handler.Get(testSite, id, models.Actor{ID: "w2"})
		require.Nil(t, err)
		_, err = handler.Get(testSite, id, models.Actor{ID: "w1"})
		require.Nil(t, err)
	})

	t.Run(`после согласования чек-лист открыт всем ролям`, func(t *testing.T) {
		handler, _ := newTestHandler(testRoles())
		id, err := handler.Create(testSite, models.Actor{ID: "checker"}, threeWitnessData())
		require.Nil(t, err)
		for _, userID := range []string{"w1", "w2", "w3"} {
			require.Nil(t, handler.RecordWitnessApproval(testSite, id, models.Actor{ID: userID}, signature))
		}
		_, err = handler.Get(testSite, id, models.Actor{ID: "viewer"})
		require.Nil(t, err)
	})
}

func TestInspectionList(t *testing.T) {
	signature := inspectionapimodels.WitnessApprovalData{Signature: "signatures/sig.png"}

	prepare := func(t *testing.T) (impl, string) {
		handler, _ := newTestHandler(testRoles())
		id, err := handler.Create(testSite, models.Actor{ID: "checker"}, threeWitnessData())
		require.Nil(t, err)
		return handler, id
	}

	t.Run(`action-required только по своему незакрытому слоту`, func(t *testing.T) {
		handler, id := prepare(t)
		list, err := handler.List(testSite, models.Actor{ID: "w1"}, FilterActionRequired, "")
		require.Nil(t, err)
		require.Len(t, list, 1)

		require.Nil(t, handler.RecordWitnessApproval(testSite, id, models.Actor{ID: "w1"}, signature))
		list, err = handler.List(testSite, models.Actor{ID: "w1"}, FilterActionRequired, "")
		require.Nil(t, err)
		require.Len(t, list, 0)
	})

	t.Run(`action-required пуст для непричастной роли`, func(t *testing.T) {
		handler, _ := prepare(t)
		list, err := handler.List(testSite, models.Actor{ID: "viewer"}, FilterActionRequired, "")
		require.Nil(t, err)
		require.Len(t, list, 0)
	})

	t.Run(`по умолчанию выбираются согласованные`, func(t *testing.T) {
		handler, id := prepare(t)
		list, err := handler.List(testSite, models.Actor{ID: "viewer"}, "", "")
		require.Nil(t, err)
		require.Len(t, list, 0)

		for _, userID := range []string{"w1", "w2", "w3"} {
			require.Nil(t, handler.RecordWitnessApproval(testSite, id, models.Actor{ID: userID}, signature))
		}
		list, err = handler.List(testSite, models.Actor{ID: "viewer"}, "", "")
		require.Nil(t, err)
		require.Len(t, list, 1)
	})

	t.Run(`in-progress для участника`, func(t *testing.T) {
		handler, id := prepare(t)
		require.Nil(t, handler.RecordWitnessApproval(testSite, id, models.Actor{ID: "w1"}, signature))
		list, err := handler.List(testSite, models.Actor{ID: "w2"}, FilterInProgress, "")
		require.Nil(t, err)
		require.Len(t, list, 1)

		list, err = handler.List(testSite, models.Actor{ID: "w2"}, FilterInitiated, "")
		require.Nil(t, err)
		require.Len(t, list, 0)
	})
}
