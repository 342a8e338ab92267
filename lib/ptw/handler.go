package ptw

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"site-qhse-backend/db"
	"site-qhse-backend/lib/permissions"
	ptwstore "site-qhse-backend/lib/ptw/store"
	"site-qhse-backend/lib/smtp"
	usersstore "site-qhse-backend/lib/users/store"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	initchecker "site-qhse-backend/lib/utils/init-checker"
	"site-qhse-backend/models"
	ptwapimodels "site-qhse-backend/models/api/ptw"
	dbmodels "site-qhse-backend/models/db"
)

// Ключи фильтра списка нарядов
const (
	FilterOpen            = "open"
	FilterClosed          = "closed"
	FilterSubmitted       = "submitted"
	FilterPendingApproval = "pending-approval"
	FilterRejected        = "rejected"
	FilterExpired         = "expired"
)

type Provider interface {
	Submit(workSiteID string, actor models.Actor, request ptwapimodels.PTWData) (id string, err error)
	Verify(workSiteID, id string, actor models.Actor, request ptwapimodels.SignatureData) error
	ClientApprove(workSiteID, id string, actor models.Actor, request ptwapimodels.SignatureData) error
	ClientReject(workSiteID, id string, actor models.Actor, request ptwapimodels.RejectData) error
	RequestClosure(workSiteID, id string, actor models.Actor) error
	Close(workSiteID, id string, actor models.Actor) error
	Get(workSiteID, id string, actor models.Actor) (item ptwapimodels.PTWView, err error)
	List(workSiteID string, actor models.Actor, filter string) (list []ptwapimodels.PTWView, err error)
	Delete(workSiteID, id string, actor models.Actor) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       ptwstore.NewInstance(db.DB),
		userStore:   usersstore.NewInstance(db.DB),
		permissions: permissions.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"userStore", instance.userStore,
		"permissions", instance.permissions,
	)
	Instance = instance
}

type impl struct {
	store       ptwstore.Provider
	userStore   usersstore.Provider
	permissions permissions.Provider
}

func generatePermitNo() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("PTW-%s", strings.ToUpper(raw[:8]))
}

func (i impl) Submit(workSiteID string, actor models.Actor, request ptwapimodels.PTWData) (id string, err error) {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("user_id", actor.ID)
	err = i.permissions.Require(workSiteID, actor, permissions.StrictAnyOf(models.RoleSubContractor))
	if err != nil {
		return "", err
	}
	if err = request.Validate(); err != nil {
		return "", apperrors.Validation(err.Error())
	}
	if request.Signature == "" {
		return "", apperrors.Validation("не приложена подпись подающего")
	}
	rec := dbmodels.PermitToWork{
		BaseWorkSiteModel: dbmodels.BaseWorkSiteModel{
			WorkSiteID: workSiteID,
		},
		AuditModel: dbmodels.AuditModel{
			CreatedByID:     actor.ID,
			LastUpdatedByID: actor.ID,
		},
		PermitNo:             generatePermitNo(),
		Validity:             request.Validity,
		SubmittedByID:        actor.ID,
		SubmittedAt:          time.Now(),
		SubmittedBySignature: request.Signature,
		Status:               models.PTWStatusSubmitted,
		Payload:              request.Payload,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("permit_no", rec.PermitNo).
		WithField("rec_id", id).
		Info("подан наряд-допуск")
	return id, nil
}

func (i impl) Verify(workSiteID, id string, actor models.Actor, request ptwapimodels.SignatureData) error {
	logger := transitionLogger(workSiteID, id, actor)
	err := i.permissions.Require(workSiteID, actor, permissions.AnyOf(models.RoleEPC, models.RoleEPCAdmin))
	if err != nil {
		return err
	}
	if request.Signature == "" {
		return apperrors.Validation("не приложена подпись проверяющего")
	}
	if err := i.sweep(workSiteID); err != nil {
		return err
	}
	now := time.Now()
	updated, err := i.store.UpdateWhereStatus(workSiteID, id, models.PTWStatusSubmitted, map[string]interface{}{
		"status":                models.PTWStatusEPCApproved,
		"verified_by_id":        actor.ID,
		"verified_at":           now,
		"verified_by_signature": request.Signature,
		"last_updated_by_id":    actor.ID,
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.InvalidTransition()
	}
	logger.Info("наряд проверен EPC")
	return nil
}

func (i impl) ClientApprove(workSiteID, id string, actor models.Actor, request ptwapimodels.SignatureData) error {
	logger := transitionLogger(workSiteID, id, actor)
	err := i.permissions.Require(workSiteID, actor, permissions.AnyOf(models.RoleClient))
	if err != nil {
		return err
	}
	if request.Signature == "" {
		return apperrors.Validation("не приложена подпись утверждающего")
	}
	if err := i.sweep(workSiteID); err != nil {
		return err
	}
	now := time.Now()
	updated, err := i.store.UpdateWhereStatus(workSiteID, id, models.PTWStatusEPCApproved, map[string]interface{}{
		"status":                models.PTWStatusClientApproved,
		"issued_date":           now,
		"approved_by_id":        actor.ID,
		"approved_at":           now,
		"approved_by_signature": request.Signature,
		"last_updated_by_id":    actor.ID,
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.InvalidTransition()
	}
	logger.Info("наряд утверждён заказчиком")
	i.notifySubmitter(workSiteID, id, "Наряд-допуск утверждён",
		"Наряд-допуск %s утверждён заказчиком.")
	return nil
}

func (i impl) ClientReject(workSiteID, id string, actor models.Actor, request ptwapimodels.RejectData) error {
	logger := transitionLogger(workSiteID, id, actor)
	err := i.permissions.Require(workSiteID, actor, permissions.AnyOf(models.RoleClient))
	if err != nil {
		return err
	}
	if err = request.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	if err := i.sweep(workSiteID); err != nil {
		return err
	}
	updated, err := i.store.UpdateWhereStatus(workSiteID, id, models.PTWStatusEPCApproved, map[string]interface{}{
		"status":             models.PTWStatusClientRejected,
		"rejected_by_id":     actor.ID,
		"rejected_remark":    request.Remark,
		"last_updated_by_id": actor.ID,
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.InvalidTransition()
	}
	logger.Info("наряд отклонён заказчиком")
	i.notifySubmitter(workSiteID, id, "Наряд-допуск отклонён",
		"Наряд-допуск %s отклонён заказчиком. Причина: "+request.Remark)
	return nil
}

func (i impl) RequestClosure(workSiteID, id string, actor models.Actor) error {
	logger := transitionLogger(workSiteID, id, actor)
	err := i.permissions.Require(workSiteID, actor, permissions.AnyOf(models.RoleEPC, models.RoleEPCAdmin))
	if err != nil {
		return err
	}
	if err := i.sweep(workSiteID); err != nil {
		return err
	}
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	if rec.Status != models.PTWStatusClientApproved || rec.ClosureRequested() {
		return apperrors.InvalidTransition()
	}
	now := time.Now()
	updated, err := i.store.UpdateWhereStatus(workSiteID, id, models.PTWStatusClientApproved, map[string]interface{}{
		"closure_requested_by_id": actor.ID,
		"closure_requested_at":    now,
		"last_updated_by_id":      actor.ID,
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.InvalidTransition()
	}
	logger.Info("запрошено закрытие наряда")
	return nil
}

func (i impl) Close(workSiteID, id string, actor models.Actor) error {
	logger := transitionLogger(workSiteID, id, actor)
	err := i.permissions.Require(workSiteID, actor, permissions.AnyOf(models.RoleClient))
	if err != nil {
		return err
	}
	if err := i.sweep(workSiteID); err != nil {
		return err
	}
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	if rec.Status != models.PTWStatusClientApproved || !rec.ClosureRequested() {
		return apperrors.InvalidTransition()
	}
	now := time.Now()
	updated, err := i.store.UpdateWhereStatus(workSiteID, id, models.PTWStatusClientApproved, map[string]interface{}{
		"status":                 models.PTWStatusClosed,
		"closure_accepted_by_id": actor.ID,
		"closed_at":              now,
		"last_updated_by_id":     actor.ID,
	})
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.InvalidTransition()
	}
	logger.Info("наряд закрыт")
	return nil
}

func (i impl) Get(workSiteID, id string, actor models.Actor) (ptwapimodels.PTWView, error) {
	err := i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return ptwapimodels.PTWView{}, err
	}
	if err := i.sweep(workSiteID); err != nil {
		return ptwapimodels.PTWView{}, err
	}
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return ptwapimodels.PTWView{}, err
	}
	if rec == nil {
		return ptwapimodels.PTWView{}, apperrors.NotFound("")
	}
	if !isPublished(rec.Status) && rec.SubmittedByID != actor.ID && !actor.GlobalAdmin {
		role, err := i.permissions.RoleOf(workSiteID, actor)
		if err != nil {
			return ptwapimodels.PTWView{}, err
		}
		if !role.IsEPCTier() && role != models.RoleClient {
			return ptwapimodels.PTWView{}, apperrors.Permission("")
		}
	}
	return ptwapimodels.PTWConvert(*rec), nil
}

// опубликованные наряды открыты всем ролям площадки
func isPublished(status models.PTWStatus) bool {
	switch status {
	case models.PTWStatusClientApproved, models.PTWStatusClosed, models.PTWStatusAutoClosed:
		return true
	}
	return false
}

// filterStatuses - статусы по ключу фильтра и роли, допущенные этой роли.
// Пустой результат означает, что ключ роли недоступен.
func filterStatuses(filter string, role models.Role, isAdmin bool) []models.PTWStatus {
	epcTier := isAdmin || role.IsEPCTier()
	switch filter {
	case FilterOpen:
		return []models.PTWStatus{models.PTWStatusClientApproved}
	case FilterClosed:
		return []models.PTWStatus{models.PTWStatusClosed, models.PTWStatusAutoClosed}
	case FilterExpired:
		if epcTier || role == models.RoleClient || role == models.RoleSubContractor {
			return []models.PTWStatus{models.PTWStatusExpired}
		}
	case FilterSubmitted:
		if epcTier || role == models.RoleSubContractor {
			return []models.PTWStatus{models.PTWStatusSubmitted}
		}
	case FilterPendingApproval:
		if epcTier || role == models.RoleClient || role == models.RoleSubContractor {
			return []models.PTWStatus{models.PTWStatusEPCApproved}
		}
	case FilterRejected:
		if epcTier || role == models.RoleClient || role == models.RoleSubContractor {
			return []models.PTWStatus{models.PTWStatusClientRejected}
		}
	}
	return nil
}

// List - выборка по ключу фильтра. Ключ, не положенный роли, даёт
// пустой список, а не ошибку. Субподрядчик ограничен своими нарядами
// только до публикации; открытые и закрытые видны ему целиком.
func (i impl) List(workSiteID string, actor models.Actor, filter string) (list []ptwapimodels.PTWView, err error) {
	err = i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return nil, err
	}
	if err := i.sweep(workSiteID); err != nil {
		return nil, err
	}
	role, err := i.permissions.RoleOf(workSiteID, actor)
	if err != nil {
		return nil, err
	}
	statuses := filterStatuses(filter, role, actor.GlobalAdmin)
	if statuses == nil {
		return []ptwapimodels.PTWView{}, nil
	}
	ownOnly := role == models.RoleSubContractor &&
		(filter == FilterSubmitted || filter == FilterPendingApproval || filter == FilterRejected)
	var recList []dbmodels.PermitToWork
	if ownOnly {
		recList, err = i.store.ListBySubmitter(workSiteID, actor.ID, statuses)
	} else {
		recList, err = i.store.List(workSiteID, statuses)
	}
	if err != nil {
		return nil, err
	}
	result := make([]ptwapimodels.PTWView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, ptwapimodels.PTWConvert(rec))
	}
	return result, nil
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
	if rec.Status != models.PTWStatusSubmitted && rec.Status != models.PTWStatusEPCApproved {
		return apperrors.InvalidTransition()
	}
	if rec.SubmittedByID != actor.ID && !actor.GlobalAdmin {
		role, err := i.permissions.RoleOf(workSiteID, actor)
		if err != nil {
			return err
		}
		if !role.IsEPCTier() {
			return apperrors.Permission("")
		}
	}
	if err := i.store.Delete(workSiteID, id); err != nil {
		return err
	}
	logger.Info("удалён наряд-допуск")
	return nil
}

func (i impl) sweep(workSiteID string) error {
	return i.store.ExpireSweep(workSiteID, time.Now())
}

// notifySubmitter - письмо подавшему наряд; при ненастроенном smtp
// уведомление молча пропускается
func (i impl) notifySubmitter(workSiteID, id, subject, messageFmt string) {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("rec_id", id)
	if smtp.Instance == nil {
		return
	}
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil || rec == nil {
		logger.WithError(err).Error("ошибка отправки уведомления по наряду")
		return
	}
	submitter, err := i.userStore.GetByID(rec.SubmittedByID)
	if err != nil || submitter == nil {
		logger.WithError(err).Error("ошибка отправки уведомления по наряду")
		return
	}
	message := fmt.Sprintf(messageFmt, rec.PermitNo)
	if err := smtp.Instance.SendEMail(submitter.Email, subject, message); err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления по наряду")
	}
}

func transitionLogger(workSiteID, id string, actor models.Actor) *log.Entry {
	return log.
		WithField("work_site_id", workSiteID).
		WithField("rec_id", id).
		WithField("user_id", actor.ID)
}
