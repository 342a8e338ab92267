package manpower

import (
	"time"

	log "github.com/sirupsen/logrus"

	"site-qhse-backend/db"
	xlsexport "site-qhse-backend/lib/export/xls"
	manpowerstore "site-qhse-backend/lib/manpower/store"
	"site-qhse-backend/lib/permissions"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	initchecker "site-qhse-backend/lib/utils/init-checker"
	worksiterolesstore "site-qhse-backend/lib/worksite/roles/store"
	"site-qhse-backend/models"
	manpowerapimodels "site-qhse-backend/models/api/manpower"
	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(workSiteID string, actor models.Actor, request manpowerapimodels.ManpowerData) (id string, err error)
	Verify(workSiteID, id string, actor models.Actor, request manpowerapimodels.VerifyData) error
	Update(workSiteID, id string, actor models.Actor, request manpowerapimodels.ManpowerData) error
	Get(workSiteID, id string, actor models.Actor) (item manpowerapimodels.ManpowerView, err error)
	List(workSiteID string, actor models.Actor, from, to *time.Time) (list []manpowerapimodels.ManpowerView, err error)
	ExportXLSX(workSiteID string, actor models.Actor, from, to *time.Time) (file []byte, err error)
	Delete(workSiteID, id string, actor models.Actor) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       manpowerstore.NewInstance(db.DB),
		roleStore:   worksiterolesstore.NewInstance(db.DB),
		permissions: permissions.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"roleStore", instance.roleStore,
		"permissions", instance.permissions,
	)
	Instance = instance
}

type impl struct {
	store       manpowerstore.Provider
	roleStore   worksiterolesstore.Provider
	permissions permissions.Provider
}

func (i impl) Create(workSiteID string, actor models.Actor, request manpowerapimodels.ManpowerData) (id string, err error) {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("user_id", actor.ID)
	err = i.permissions.Require(workSiteID, actor,
		permissions.AnyOf(models.RoleSubContractor, models.RoleEPC, models.RoleEPCAdmin))
	if err != nil {
		return "", err
	}
	role, err := i.permissions.RoleOf(workSiteID, actor)
	if err != nil {
		return "", err
	}
	// субподрядчик подаёт отчёт только за себя
	if role == models.RoleSubContractor {
		request.SubContractorID = actor.ID
	}
	if err = request.Validate(); err != nil {
		return "", apperrors.Validation(err.Error())
	}
	subRole, err := i.roleStore.GetByUser(workSiteID, request.SubContractorID)
	if err != nil {
		return "", err
	}
	if subRole == nil || subRole.Role != models.RoleSubContractor {
		return "", apperrors.Validation("указанный пользователь не является субподрядчиком площадки")
	}
	date := truncateToDay(request.Date)
	existed, err := i.store.FindByKey(workSiteID, date, request.SubContractorID)
	if err != nil {
		return "", err
	}
	if existed != nil {
		return "", apperrors.Conflict("отчёт за эту дату уже подан")
	}
	rec := dbmodels.Manpower{
		AuditModel: dbmodels.AuditModel{
			CreatedByID:     actor.ID,
			LastUpdatedByID: actor.ID,
		},
		WorkSiteID:         workSiteID,
		Date:               date,
		NumberOfWorkers:    request.NumberOfWorkers,
		SubContractorID:    request.SubContractorID,
		VerificationStatus: models.ManpowerNotVerified,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.WithField("rec_id", id).Info("подан суточный отчёт по персоналу")
	return id, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (i impl) Verify(workSiteID, id string, actor models.Actor, request manpowerapimodels.VerifyData) error {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("rec_id", id)
	err := i.permissions.Require(workSiteID, actor, permissions.AnyOf(models.RoleEPC, models.RoleEPCAdmin))
	if err != nil {
		return err
	}
	if err = request.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	updMap := map[string]interface{}{
		"verification_status": request.Status,
		"last_updated_by_id":  actor.ID,
	}
	if request.Status == models.ManpowerVerified {
		updMap["verified_by_id"] = actor.ID
	}
	if err := i.store.Update(workSiteID, id, updMap); err != nil {
		return err
	}
	logger.WithField("status", request.Status).Info("проверен отчёт по персоналу")
	return nil
}

func (i impl) Update(workSiteID, id string, actor models.Actor, request manpowerapimodels.ManpowerData) error {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("rec_id", id)
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	if err := i.requireOwnership(workSiteID, actor, rec); err != nil {
		return err
	}
	// проверенный отчёт не редактируется
	if rec.VerificationStatus == models.ManpowerVerified {
		return apperrors.InvalidTransition()
	}
	if request.NumberOfWorkers <= 0 {
		return apperrors.Validation("число рабочих должно быть положительным")
	}
	updMap := map[string]interface{}{
		"number_of_workers":   request.NumberOfWorkers,
		"verification_status": models.ManpowerNotVerified,
		"last_updated_by_id":  actor.ID,
	}
	if err := i.store.Update(workSiteID, id, updMap); err != nil {
		return err
	}
	logger.Info("обновлён отчёт по персоналу")
	return nil
}

func (i impl) requireOwnership(workSiteID string, actor models.Actor, rec *dbmodels.Manpower) error {
	if actor.GlobalAdmin {
		return nil
	}
	role, err := i.permissions.RoleOf(workSiteID, actor)
	if err != nil {
		return err
	}
	if role.IsEPCTier() {
		return nil
	}
	if role == models.RoleSubContractor && rec.SubContractorID == actor.ID {
		return nil
	}
	return apperrors.Permission("")
}

func (i impl) Get(workSiteID, id string, actor models.Actor) (manpowerapimodels.ManpowerView, error) {
	err := i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return manpowerapimodels.ManpowerView{}, err
	}
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return manpowerapimodels.ManpowerView{}, err
	}
	if rec == nil {
		return manpowerapimodels.ManpowerView{}, apperrors.NotFound("")
	}
	role, err := i.permissions.RoleOf(workSiteID, actor)
	if err != nil {
		return manpowerapimodels.ManpowerView{}, err
	}
	// заказчику доступны только проверенные отчёты
	if role == models.RoleClient && rec.VerificationStatus != models.ManpowerVerified {
		return manpowerapimodels.ManpowerView{}, apperrors.Permission("")
	}
	return manpowerapimodels.ManpowerConvert(*rec), nil
}

func (i impl) List(workSiteID string, actor models.Actor, from, to *time.Time) (list []manpowerapimodels.ManpowerView, err error) {
	err = i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return nil, err
	}
	role, err := i.permissions.RoleOf(workSiteID, actor)
	if err != nil {
		return nil, err
	}
	var recList []dbmodels.Manpower
	if role == models.RoleSubContractor {
		recList, err = i.store.ListBySubContractor(workSiteID, actor.ID, from, to)
	} else {
		recList, err = i.store.List(workSiteID, from, to)
	}
	if err != nil {
		return nil, err
	}
	result := make([]manpowerapimodels.ManpowerView, 0, len(recList))
	for _, rec := range recList {
		if role == models.RoleClient && rec.VerificationStatus != models.ManpowerVerified {
			continue
		}
		result = append(result, manpowerapimodels.ManpowerConvert(rec))
	}
	return result, nil
}

// ExportXLSX - реестр отчётов за период с учётом видимости роли
func (i impl) ExportXLSX(workSiteID string, actor models.Actor, from, to *time.Time) ([]byte, error) {
	list, err := i.List(workSiteID, actor, from, to)
	if err != nil {
		return nil, err
	}
	return xlsexport.ExportManpowerRegister(list)
}

func (i impl) Delete(workSiteID, id string, actor models.Actor) error {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("rec_id", id)
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	if err := i.requireOwnership(workSiteID, actor, rec); err != nil {
		return err
	}
	if rec.VerificationStatus == models.ManpowerVerified {
		return apperrors.InvalidTransition()
	}
	if err := i.store.Delete(workSiteID, id); err != nil {
		return err
	}
	logger.Info("удалён отчёт по персоналу")
	return nil
}
