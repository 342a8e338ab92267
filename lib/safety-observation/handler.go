package safetyobservation

import (
	"time"

	log "github.com/sirupsen/logrus"

	"site-qhse-backend/db"
	"site-qhse-backend/lib/permissions"
	safetyobservationstore "site-qhse-backend/lib/safety-observation/store"
	usersstore "site-qhse-backend/lib/users/store"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	initchecker "site-qhse-backend/lib/utils/init-checker"
	worksiterolesstore "site-qhse-backend/lib/worksite/roles/store"
	worksitestore "site-qhse-backend/lib/worksite/store"
	"site-qhse-backend/models"
	safetyapimodels "site-qhse-backend/models/api/safety"
	dbmodels "site-qhse-backend/models/db"
)

// Ключи фильтра списка наблюдений
const (
	FilterOpen                     = "open"
	FilterClosed                   = "closed"
	FilterCorrectiveActionRequired = "corrective-action-required"
	FilterVerificationRequired     = "verification-required"
)

type Provider interface {
	Create(workSiteID string, actor models.Actor, request safetyapimodels.ObservationData) (id string, err error)
	SubmitCorrectiveAction(workSiteID, id string, actor models.Actor, request safetyapimodels.CorrectiveActionData) error
	VerifyCorrectiveAction(workSiteID, id string, actor models.Actor) error
	RejectCorrectiveAction(workSiteID, id string, actor models.Actor) error
	Get(workSiteID, id string, actor models.Actor) (item safetyapimodels.ObservationView, err error)
	List(workSiteID string, actor models.Actor, filter string) (list []safetyapimodels.ObservationView, err error)
	Delete(workSiteID, id string, actor models.Actor) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         safetyobservationstore.NewInstance(db.DB),
		workSiteStore: worksitestore.NewInstance(db.DB),
		roleStore:     worksiterolesstore.NewInstance(db.DB),
		userStore:     usersstore.NewInstance(db.DB),
		permissions:   permissions.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"workSiteStore", instance.workSiteStore,
		"roleStore", instance.roleStore,
		"userStore", instance.userStore,
		"permissions", instance.permissions,
	)
	Instance = instance
}

type impl struct {
	store         safetyobservationstore.Provider
	workSiteStore worksitestore.Provider
	roleStore     worksiterolesstore.Provider
	userStore     usersstore.Provider
	permissions   permissions.Provider
}

func (i impl) Create(workSiteID string, actor models.Actor, request safetyapimodels.ObservationData) (id string, err error) {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("user_id", actor.ID)
	err = i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return "", err
	}
	if err = request.Validate(); err != nil {
		return "", apperrors.Validation(err.Error())
	}
	if request.CorrectiveActionAssignedToID == actor.ID {
		return "", apperrors.Validation("исполнитель корректирующих действий не может совпадать с автором")
	}
	isCAUser, err := i.workSiteStore.IsCorrectiveActionUser(workSiteID, request.CorrectiveActionAssignedToID)
	if err != nil {
		return "", err
	}
	if !isCAUser {
		return "", apperrors.Validation("пользователь не входит в список исполнителей корректирующих действий")
	}
	if request.DepartmentID != "" {
		reporter, err := i.userStore.GetByID(actor.ID)
		if err != nil {
			return "", err
		}
		if reporter == nil || !reporter.InDepartment(request.DepartmentID) {
			return "", apperrors.Validation("подразделение не относится к автору наблюдения")
		}
	}
	if request.SubContractorID != "" {
		roleRec, err := i.roleStore.GetByUser(workSiteID, request.SubContractorID)
		if err != nil {
			return "", err
		}
		if roleRec == nil || roleRec.Role != models.RoleSubContractor {
			return "", apperrors.Validation("указанный пользователь не является субподрядчиком площадки")
		}
	}
	rec := dbmodels.SafetyObservation{
		BaseWorkSiteModel: dbmodels.BaseWorkSiteModel{
			WorkSiteID: workSiteID,
		},
		AuditModel: dbmodels.AuditModel{
			CreatedByID:     actor.ID,
			LastUpdatedByID: actor.ID,
		},
		ReportedByID:                 actor.ID,
		ObservationDate:              request.ObservationDate,
		ObservationTime:              request.ObservationTime,
		WorkLocation:                 request.WorkLocation,
		DepartmentID:                 request.DepartmentID,
		ActivityPerformed:            request.ActivityPerformed,
		SubContractorID:              request.SubContractorID,
		ObservationFound:             request.ObservationFound,
		ObservationType:              request.ObservationType,
		Classification:               request.Classification,
		RiskRated:                    request.RiskRated,
		CorrectiveActionRequired:     request.CorrectiveActionRequired,
		CorrectiveActionAssignedToID: request.CorrectiveActionAssignedToID,
		ObservationStatus:            models.ObservationStatusOpen,
		BeforeImage:                  request.BeforeImage,
		Remarks:                      request.Remarks,
		Status:                       models.CAStatusOpen,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.WithField("rec_id", id).Info("создано наблюдение по безопасности")
	return id, nil
}

// SubmitCorrectiveAction - отчёт исполнителя об устранении.
// Доступен только назначенному исполнителю, флаг администратора не действует.
func (i impl) SubmitCorrectiveAction(workSiteID, id string, actor models.Actor, request safetyapimodels.CorrectiveActionData) error {
	logger := transitionLogger(workSiteID, id, actor)
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	if rec.CorrectiveActionAssignedToID != actor.ID {
		return apperrors.NotAllowed("")
	}
	if err = request.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	updated, err := i.store.UpdateWhereStatus(workSiteID, id, models.CAStatusOpen, map[string]interface{}{
		"status":                  models.CAStatusVerificationRequired,
		"corrective_action_taken": request.ActionTaken,
		"after_image":             request.AfterImage,
		"last_updated_by_id":      actor.ID,
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.InvalidTransition()
	}
	logger.Info("корректирующие действия отправлены на проверку")
	return nil
}

// VerifyCorrectiveAction - подтверждение устранения автором наблюдения
func (i impl) VerifyCorrectiveAction(workSiteID, id string, actor models.Actor) error {
	logger := transitionLogger(workSiteID, id, actor)
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	if rec.ReportedByID != actor.ID {
		return apperrors.NotAllowed("")
	}
	now := time.Now()
	updated, err := i.store.UpdateWhereStatus(workSiteID, id, models.CAStatusVerificationRequired, map[string]interface{}{
		"status":             models.CAStatusClosed,
		"observation_status": models.ObservationStatusClosed,
		"closed_on":          now,
		"last_updated_by_id": actor.ID,
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.InvalidTransition()
	}
	logger.Info("наблюдение закрыто")
	return nil
}

// RejectCorrectiveAction - возврат на доработку: статус снова open,
// отчёт исполнителя и фото после устранения очищаются
func (i impl) RejectCorrectiveAction(workSiteID, id string, actor models.Actor) error {
	logger := transitionLogger(workSiteID, id, actor)
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	if rec.ReportedByID != actor.ID {
		return apperrors.NotAllowed("")
	}
	updated, err := i.store.UpdateWhereStatus(workSiteID, id, models.CAStatusVerificationRequired, map[string]interface{}{
		"status":                  models.CAStatusOpen,
		"corrective_action_taken": "",
		"after_image":             "",
		"last_updated_by_id":      actor.ID,
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.InvalidTransition()
	}
	logger.Info("корректирующие действия возвращены на доработку")
	return nil
}

func (i impl) Get(workSiteID, id string, actor models.Actor) (safetyapimodels.ObservationView, error) {
	err := i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return safetyapimodels.ObservationView{}, err
	}
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return safetyapimodels.ObservationView{}, err
	}
	if rec == nil {
		return safetyapimodels.ObservationView{}, apperrors.NotFound("")
	}
	return safetyapimodels.ObservationConvert(*rec), nil
}

// List - выборка по ключу фильтра. Персональные ключи считаются
// относительно пользователя запроса.
func (i impl) List(workSiteID string, actor models.Actor, filter string) (list []safetyapimodels.ObservationView, err error) {
	err = i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return nil, err
	}
	var recList []dbmodels.SafetyObservation
	switch filter {
	case FilterCorrectiveActionRequired:
		recList, err = i.store.ListByAssignee(workSiteID, actor.ID)
		if err != nil {
			return nil, err
		}
		recList = filterRecords(recList, func(rec dbmodels.SafetyObservation) bool {
			return rec.Status == models.CAStatusOpen
		})
	case FilterVerificationRequired:
		recList, err = i.store.List(workSiteID)
		if err != nil {
			return nil, err
		}
		recList = filterRecords(recList, func(rec dbmodels.SafetyObservation) bool {
			return rec.Status == models.CAStatusVerificationRequired && rec.ReportedByID == actor.ID
		})
	case FilterClosed:
		recList, err = i.store.List(workSiteID)
		if err != nil {
			return nil, err
		}
		recList = filterRecords(recList, func(rec dbmodels.SafetyObservation) bool {
			return rec.ObservationStatus == models.ObservationStatusClosed
		})
	default:
		recList, err = i.store.List(workSiteID)
		if err != nil {
			return nil, err
		}
		recList = filterRecords(recList, func(rec dbmodels.SafetyObservation) bool {
			return rec.ObservationStatus == models.ObservationStatusOpen
		})
	}
	result := make([]safetyapimodels.ObservationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, safetyapimodels.ObservationConvert(rec))
	}
	return result, nil
}

func filterRecords(recList []dbmodels.SafetyObservation, keep func(dbmodels.SafetyObservation) bool) []dbmodels.SafetyObservation {
	result := make([]dbmodels.SafetyObservation, 0, len(recList))
	for _, rec := range recList {
		if keep(rec) {
			result = append(result, rec)
		}
	}
	return result
}

func (i impl) Delete(workSiteID, id string, actor models.Actor) error {
	logger := transitionLogger(workSiteID, id, actor)
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	if rec.ObservationStatus != models.ObservationStatusOpen {
		return apperrors.InvalidTransition()
	}
	if rec.ReportedByID != actor.ID && !actor.GlobalAdmin {
		return apperrors.Permission("")
	}
	if err := i.store.Delete(workSiteID, id); err != nil {
		return err
	}
	logger.Info("удалено наблюдение по безопасности")
	return nil
}

func transitionLogger(workSiteID, id string, actor models.Actor) *log.Entry {
	return log.
		WithField("work_site_id", workSiteID).
		WithField("rec_id", id).
		WithField("user_id", actor.ID)
}
