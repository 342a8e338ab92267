package ptw

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"site-qhse-backend/lib/permissions"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	"site-qhse-backend/models"
	ptwapimodels "site-qhse-backend/models/api/ptw"
	dbmodels "site-qhse-backend/models/db"
)

type fakeStore struct {
	seq  int
	recs map[string]*dbmodels.PermitToWork
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]*dbmodels.PermitToWork{}}
}

func (f *fakeStore) Create(rec dbmodels.PermitToWork) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("rec-%d", f.seq)
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeStore) GetByID(workSiteID, id string) (*dbmodels.PermitToWork, error) {
	rec, exist := f.recs[id]
	if !exist || rec.WorkSiteID != workSiteID {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeStore) List(workSiteID string, statuses []models.PTWStatus) ([]dbmodels.PermitToWork, error) {
	list := []dbmodels.PermitToWork{}
	for _, rec := range f.recs {
		if rec.WorkSiteID != workSiteID {
			continue
		}
		if len(statuses) != 0 && !statusIn(rec.Status, statuses) {
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeStore) ListBySubmitter(workSiteID, userID string, statuses []models.PTWStatus) ([]dbmodels.PermitToWork, error) {
	all, _ := f.List(workSiteID, statuses)
	list := []dbmodels.PermitToWork{}
	for _, rec := range all {
		if rec.SubmittedByID == userID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeStore) Update(workSiteID, id string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeStore) UpdateWhereStatus(workSiteID, id string, from models.PTWStatus, updMap map[string]interface{}) (bool, error) {
	rec, exist := f.recs[id]
	if !exist || rec.WorkSiteID != workSiteID || rec.Status != from {
		return false, nil
	}
	if status, ok := updMap["status"]; ok {
		rec.Status = status.(models.PTWStatus)
	}
	if v, ok := updMap["verified_by_id"]; ok {
		rec.VerifiedByID = v.(string)
	}
	if v, ok := updMap["approved_by_id"]; ok {
		rec.ApprovedByID = v.(string)
	}
	if v, ok := updMap["issued_date"]; ok {
		issued := v.(time.Time)
		rec.IssuedDate = &issued
	}
	if v, ok := updMap["rejected_by_id"]; ok {
		rec.RejectedByID = v.(string)
	}
	if v, ok := updMap["rejected_remark"]; ok {
		rec.RejectedRemark = v.(string)
	}
	if v, ok := updMap["closure_requested_by_id"]; ok {
		rec.ClosureRequestedByID = v.(string)
	}
	if v, ok := updMap["closure_accepted_by_id"]; ok {
		rec.ClosureAcceptedByID = v.(string)
	}
	if v, ok := updMap["closed_at"]; ok {
		closed := v.(time.Time)
		rec.ClosedAt = &closed
	}
	return true, nil
}

func (f *fakeStore) ExpireSweep(workSiteID string, now time.Time) error {
	for _, rec := range f.recs {
		if rec.WorkSiteID != workSiteID || rec.Validity.After(now) {
			continue
		}
		switch rec.Status {
		case models.PTWStatusClientApproved:
			rec.Status = models.PTWStatusAutoClosed
			closed := now
			rec.ClosedAt = &closed
		case models.PTWStatusSubmitted, models.PTWStatusEPCApproved, models.PTWStatusClientRejected:
			rec.Status = models.PTWStatusExpired
		}
	}
	return nil
}

func (f *fakeStore) Delete(workSiteID, id string) error {
	delete(f.recs, id)
	return nil
}

func statusIn(status models.PTWStatus, statuses []models.PTWStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

type fakeUserStore struct{}

func (f fakeUserStore) Create(rec dbmodels.User) (string, error)        { return rec.ID, nil }
func (f fakeUserStore) GetByID(id string) (*dbmodels.User, error)       { return nil, nil }
func (f fakeUserStore) FindByEmail(email string) (*dbmodels.User, error) { return nil, nil }
func (f fakeUserStore) ListByIDs(ids []string) ([]dbmodels.User, error)  { return nil, nil }

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

const testSite = "solar-park"

var (
	sub    = models.Actor{ID: "sub"}
	epc    = models.Actor{ID: "epc"}
	client = models.Actor{ID: "client"}
	admin  = models.Actor{ID: "admin", GlobalAdmin: true}
)

func newTestHandler() (impl, *fakeStore) {
	store := newFakeStore()
	handler := impl{
		store:     store,
		userStore: fakeUserStore{},
		permissions: fakePermissions{roles: map[string]models.Role{
			"sub":    models.RoleSubContractor,
			"sub2":   models.RoleSubContractor,
			"epc":    models.RoleEPC,
			"client": models.RoleClient,
			"viewer": models.RoleSafetyOfficer,
		}},
	}
	return handler, store
}

func validPTWData() ptwapimodels.PTWData {
	return ptwapimodels.PTWData{
		Validity:  time.Now().Add(48 * time.Hour),
		Signature: "signatures/sub.png",
		Payload:   map[string]interface{}{"area": "блок 2"},
	}
}

func submitPermit(t *testing.T, handler impl) string {
	id, err := handler.Submit(testSite, sub, validPTWData())
	require.Nil(t, err)
	return id
}

func TestPTWSubmit(t *testing.T) {
	t.Run(`подача субподрядчиком`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := submitPermit(t, handler)
		rec := store.recs[id]
		require.Equal(t, models.PTWStatusSubmitted, rec.Status)
		require.Equal(t, "sub", rec.SubmittedByID)
		require.Regexp(t, regexp.MustCompile(`^PTW-[0-9A-F]{8}$`), rec.PermitNo)
	})

	t.Run(`номера нарядов не повторяются`, func(t *testing.T) {
		handler, store := newTestHandler()
		id1 := submitPermit(t, handler)
		id2 := submitPermit(t, handler)
		require.NotEqual(t, store.recs[id1].PermitNo, store.recs[id2].PermitNo)
	})

	t.Run(`подача доступна только субподрядчику`, func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.Submit(testSite, epc, validPTWData())
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))
	})

	t.Run(`администратор не подаёт наряды в обход роли`, func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.Submit(testSite, admin, validPTWData())
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))
	})

	t.Run(`срок действия должен быть в будущем`, func(t *testing.T) {
		handler, _ := newTestHandler()
		data := validPTWData()
		data.Validity = time.Now().Add(-time.Hour)
		_, err := handler.Submit(testSite, sub, data)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run(`подпись обязательна`, func(t *testing.T) {
		handler, _ := newTestHandler()
		data := validPTWData()
		data.Signature = ""
		_, err := handler.Submit(testSite, sub, data)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func TestPTWTransitions(t *testing.T) {
	signature := ptwapimodels.SignatureData{Signature: "signatures/sig.png"}

	t.Run(`полный жизненный цикл`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := submitPermit(t, handler)

		require.Nil(t, handler.Verify(testSite, id, epc, signature))
		require.Equal(t, models.PTWStatusEPCApproved, store.recs[id].Status)

		require.Nil(t, handler.ClientApprove(testSite, id, client, signature))
		require.Equal(t, models.PTWStatusClientApproved, store.recs[id].Status)
		require.NotNil(t, store.recs[id].IssuedDate)

		require.Nil(t, handler.RequestClosure(testSite, id, epc))
		require.Equal(t, "epc", store.recs[id].ClosureRequestedByID)

		require.Nil(t, handler.Close(testSite, id, client))
		require.Equal(t, models.PTWStatusClosed, store.recs[id].Status)
		require.NotNil(t, store.recs[id].ClosedAt)
	})

	t.Run(`повторная проверка не проходит`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := submitPermit(t, handler)
		require.Nil(t, handler.Verify(testSite, id, epc, signature))
		err := handler.Verify(testSite, id, epc, signature)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
	})

	t.Run(`утверждение без проверки EPC не проходит`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := submitPermit(t, handler)
		err := handler.ClientApprove(testSite, id, client, signature)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
	})

	t.Run(`отклонение заказчиком требует причину`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := submitPermit(t, handler)
		require.Nil(t, handler.Verify(testSite, id, epc, signature))

		err := handler.ClientReject(testSite, id, client, ptwapimodels.RejectData{})
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindValidation))

		require.Nil(t, handler.ClientReject(testSite, id, client, ptwapimodels.RejectData{Remark: "нет схемы ограждения"}))
		require.Equal(t, models.PTWStatusClientRejected, store.recs[id].Status)
		require.Equal(t, "нет схемы ограждения", store.recs[id].RejectedRemark)
	})

	t.Run(`закрытие без запроса закрытия не проходит`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := submitPermit(t, handler)
		require.Nil(t, handler.Verify(testSite, id, epc, signature))
		require.Nil(t, handler.ClientApprove(testSite, id, client, signature))

		err := handler.Close(testSite, id, client)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
	})

	t.Run(`повторный запрос закрытия не проходит`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := submitPermit(t, handler)
		require.Nil(t, handler.Verify(testSite, id, epc, signature))
		require.Nil(t, handler.ClientApprove(testSite, id, client, signature))
		require.Nil(t, handler.RequestClosure(testSite, id, epc))

		err := handler.RequestClosure(testSite, id, epc)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
	})

	t.Run(`переходы закрыты для чужих ролей`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := submitPermit(t, handler)

		err := handler.Verify(testSite, id, client, signature)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))

		require.Nil(t, handler.Verify(testSite, id, epc, signature))
		err = handler.ClientApprove(testSite, id, epc, signature)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))
	})
}

func TestPTWExpiry(t *testing.T) {
	signature := ptwapimodels.SignatureData{Signature: "signatures/sig.png"}

	expire := func(store *fakeStore, id string) {
		store.recs[id].Validity = time.Now().Add(-time.Hour)
	}

	t.Run(`открытый наряд закрывается автоматически`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := submitPermit(t, handler)
		require.Nil(t, handler.Verify(testSite, id, epc, signature))
		require.Nil(t, handler.ClientApprove(testSite, id, client, signature))

		expire(store, id)
		view, err := handler.Get(testSite, id, epc)
		require.Nil(t, err)
		require.Equal(t, models.PTWStatusAutoClosed, view.Status)
		require.NotNil(t, view.ClosedAt)
	})

	t.Run(`неутверждённый наряд помечается просроченным`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := submitPermit(t, handler)

		expire(store, id)
		view, err := handler.Get(testSite, id, epc)
		require.Nil(t, err)
		require.Equal(t, models.PTWStatusExpired, view.Status)
	})

	t.Run(`просроченный наряд не проходит проверку`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := submitPermit(t, handler)

		expire(store, id)
		err := handler.Verify(testSite, id, epc, signature)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
	})

	t.Run(`наряд истекает ровно в момент окончания срока`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := submitPermit(t, handler)
		deadline := store.recs[id].Validity

		require.Nil(t, store.ExpireSweep(testSite, deadline))
		require.Equal(t, models.PTWStatusExpired, store.recs[id].Status)
	})

	t.Run(`повторный проход ничего не меняет`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := submitPermit(t, handler)
		expire(store, id)

		require.Nil(t, store.ExpireSweep(testSite, time.Now()))
		require.Nil(t, store.ExpireSweep(testSite, time.Now()))
		require.Equal(t, models.PTWStatusExpired, store.recs[id].Status)
	})
}

func TestPTWListing(t *testing.T) {
	signature := ptwapimodels.SignatureData{Signature: "signatures/sig.png"}

	t.Run(`субподрядчик видит только свои наряды`, func(t *testing.T) {
		handler, store := newTestHandler()
		submitPermit(t, handler)
		otherID, err := handler.Submit(testSite, models.Actor{ID: "sub2"}, validPTWData())
		require.Nil(t, err)
		require.NotNil(t, store.recs[otherID])

		list, err := handler.List(testSite, sub, FilterSubmitted)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "sub", list[0].SubmittedByID)

		list, err = handler.List(testSite, epc, FilterSubmitted)
		require.Nil(t, err)
		require.Len(t, list, 2)
	})

	t.Run(`недоступный роли ключ даёт пустой список`, func(t *testing.T) {
		handler, _ := newTestHandler()
		submitPermit(t, handler)

		list, err := handler.List(testSite, models.Actor{ID: "client"}, FilterSubmitted)
		require.Nil(t, err)
		require.Len(t, list, 0)

		list, err = handler.List(testSite, models.Actor{ID: "viewer"}, FilterPendingApproval)
		require.Nil(t, err)
		require.Len(t, list, 0)
	})

	t.Run(`субподрядчику доступны наряды на утверждении`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := submitPermit(t, handler)
		require.Nil(t, handler.Verify(testSite, id, epc, signature))

		list, err := handler.List(testSite, sub, FilterPendingApproval)
		require.Nil(t, err)
		require.Len(t, list, 1)
	})

	t.Run(`просроченные наряды скрыты от наблюдающих ролей`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := submitPermit(t, handler)
		store.recs[id].Validity = time.Now().Add(-time.Hour)

		list, err := handler.List(testSite, models.Actor{ID: "viewer"}, FilterExpired)
		require.Nil(t, err)
		require.Len(t, list, 0)

		list, err = handler.List(testSite, epc, FilterExpired)
		require.Nil(t, err)
		require.Len(t, list, 1)
	})

	t.Run(`опубликованные наряды субподрядчик видит целиком`, func(t *testing.T) {
		handler, _ := newTestHandler()
		otherID, err := handler.Submit(testSite, models.Actor{ID: "sub2"}, validPTWData())
		require.Nil(t, err)
		require.Nil(t, handler.Verify(testSite, otherID, epc, signature))
		require.Nil(t, handler.ClientApprove(testSite, otherID, client, signature))

		list, err := handler.List(testSite, sub, FilterOpen)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "sub2", list[0].SubmittedByID)
	})

	t.Run(`открытые наряды видны всем ролям`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := submitPermit(t, handler)
		require.Nil(t, handler.Verify(testSite, id, epc, signature))
		require.Nil(t, handler.ClientApprove(testSite, id, client, signature))

		list, err := handler.List(testSite, models.Actor{ID: "viewer"}, FilterOpen)
		require.Nil(t, err)
		require.Len(t, list, 1)
	})

	t.Run(`до публикации наряд закрыт для непричастных ролей`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := submitPermit(t, handler)

		_, err := handler.Get(testSite, id, models.Actor{ID: "viewer"})
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))

		_, err = handler.Get(testSite, id, sub)
		require.Nil(t, err)
		_, err = handler.Get(testSite, id, client)
		require.Nil(t, err)
	})
}

func TestPTWDelete(t *testing.T) {
	signature := ptwapimodels.SignatureData{Signature: "signatures/sig.png"}

	t.Run(`поданный наряд удаляет подавший`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := submitPermit(t, handler)
		require.Nil(t, handler.Delete(testSite, id, sub))
		require.Nil(t, store.recs[id])
	})

	t.Run(`чужой субподрядчик не удаляет`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := submitPermit(t, handler)
		err := handler.Delete(testSite, id, models.Actor{ID: "sub2"})
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindPermission))
	})

	t.Run(`открытый наряд не удаляется`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := submitPermit(t, handler)
		require.Nil(t, handler.Verify(testSite, id, epc, signature))
		require.Nil(t, handler.ClientApprove(testSite, id, client, signature))

		err := handler.Delete(testSite, id, sub)
		require.NotNil(t, err)
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidTransition))
	})
}
