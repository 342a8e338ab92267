package inspection

import (
	"time"

	log "github.com/sirupsen/logrus"

	"site-qhse-backend/db"
	pdfexport "site-qhse-backend/lib/export/pdf"
	inspectionstore "site-qhse-backend/lib/inspection/store"
	"site-qhse-backend/lib/permissions"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	initchecker "site-qhse-backend/lib/utils/init-checker"
	worksiterolesstore "site-qhse-backend/lib/worksite/roles/store"
	"site-qhse-backend/models"
	inspectionapimodels "site-qhse-backend/models/api/inspection"
	dbmodels "site-qhse-backend/models/db"
)

// Ключи фильтра списка инспекций
const (
	FilterActionRequired = "action-required"
	FilterInitiated      = "initiated"
	FilterInProgress     = "in-progress"
)

type Provider interface {
	Create(workSiteID string, actor models.Actor, request inspectionapimodels.InspectionData) (id string, err error)
	RecordWitnessApproval(workSiteID, id string, actor models.Actor, request inspectionapimodels.WitnessApprovalData) error
	Get(workSiteID, id string, actor models.Actor) (item inspectionapimodels.InspectionView, err error)
	List(workSiteID string, actor models.Actor, filter, category string) (list []inspectionapimodels.InspectionView, err error)
	Delete(workSiteID, id string, actor models.Actor) error
	ExportPDF(workSiteID, id string, actor models.Actor) (pdfFile []byte, err error)
	ListCategories() []inspectionapimodels.CategoryView
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       inspectionstore.NewInstance(db.DB),
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
	store       inspectionstore.Provider
	roleStore   worksiterolesstore.Provider
	permissions permissions.Provider
}

func (i impl) Create(workSiteID string, actor models.Actor, request inspectionapimodels.InspectionData) (id string, err error) {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("category", request.Category)
	err = i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return "", err
	}
	// проверяющий - участник чек-листа, флаг администратора роль не заменяет
	creatorRole, err := i.permissions.RoleOf(workSiteID, actor)
	if err != nil {
		return "", err
	}
	if creatorRole == "" {
		return "", apperrors.Configuration("у проверяющего нет роли на площадке")
	}
	if err = request.Validate(); err != nil {
		return "", apperrors.Validation(err.Error())
	}
	for _, witnessID := range request.WitnessIDs() {
		if witnessID == actor.ID {
			return "", apperrors.Validation("проверяющий не может быть свидетелем")
		}
		roleRec, err := i.roleStore.GetByUser(workSiteID, witnessID)
		if err != nil {
			return "", err
		}
		if roleRec == nil {
			return "", apperrors.Validation("у свидетеля нет роли на площадке")
		}
	}
	rec := dbmodels.ChecklistInspection{
		BaseWorkSiteModel: dbmodels.BaseWorkSiteModel{
			WorkSiteID: workSiteID,
		},
		AuditModel: dbmodels.AuditModel{
			CreatedByID:     actor.ID,
			LastUpdatedByID: actor.ID,
		},
		Category:       request.Category,
		CheckedByID:    actor.ID,
		CheckedByDate:  request.CheckedByDate,
		Witness1ID:     request.Witness1ID,
		Witness2ID:     request.Witness2ID,
		Witness3ID:     request.Witness3ID,
		ApprovalStatus: models.ApprovalStatusInitiated,
		Payload:        request.Payload,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.WithField("rec_id", id).Info("создан чек-лист инспекции")
	return id, nil
}

// RecordWitnessApproval - подтверждение свидетеля. Слот должен быть
// назначен на пользователя и ещё не закрыт; повторное подтверждение и
// чужие пользователи получают одинаковый отказ. Гонку одновременных
// подтверждений одного слота разрешает условное обновление в store.
func (i impl) RecordWitnessApproval(workSiteID, id string, actor models.Actor, request inspectionapimodels.WitnessApprovalData) error {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("rec_id", id).
		WithField("user_id", actor.ID)
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	slot := rec.WitnessSlot(actor.ID)
	if slot == 0 {
		return apperrors.NotAllowed("")
	}
	now := time.Now()
	updMap := witnessUpdMap(slot, now, request.Signature)
	updMap["last_updated_by_id"] = actor.ID
	updated, err := i.store.ApproveWitnessSlot(workSiteID, id, slot, updMap)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NotAllowed("")
	}
	rec, err = i.store.GetByID(workSiteID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("")
	}
	status := models.ApprovalStatusInProgress
	if rec.AllWitnessesApproved() {
		status = models.ApprovalStatusApproved
	}
	if rec.ApprovalStatus != status {
		if err := i.store.UpdateStatus(workSiteID, id, status); err != nil {
			return err
		}
	}
	logger.
		WithField("slot", slot).
		WithField("status", status).
		Info("зафиксировано подтверждение свидетеля")
	return nil
}

func witnessUpdMap(slot int, date time.Time, signature string) map[string]interface{} {
	switch slot {
	case 1:
		return map[string]interface{}{
			"witness1_approved":  true,
			"witness1_date":      date,
			"witness1_signature": signature,
		}
	case 2:
		return map[string]interface{}{
			"witness2_approved":  true,
			"witness2_date":      date,
			"witness2_signature": signature,
		}
	default:
		return map[string]interface{}{
			"witness3_approved":  true,
			"witness3_date":      date,
			"witness3_signature": signature,
		}
	}
}

func (i impl) Get(workSiteID, id string, actor models.Actor) (inspectionapimodels.InspectionView, error) {
	err := i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return inspectionapimodels.InspectionView{}, err
	}
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return inspectionapimodels.InspectionView{}, err
	}
	if rec == nil {
		return inspectionapimodels.InspectionView{}, apperrors.NotFound("")
	}
	// до согласования чек-лист виден только участникам, EPC и админу
	if !rec.IsApproved() && !rec.IsParticipant(actor.ID) && !actor.GlobalAdmin {
		role, err := i.permissions.RoleOf(workSiteID, actor)
		if err != nil {
			return inspectionapimodels.InspectionView{}, err
		}
		if !role.IsEPCTier() {
			return inspectionapimodels.InspectionView{}, apperrors.Permission("")
		}
	}
	return inspectionapimodels.InspectionConvert(*rec), nil
}

// List - выборка по ключу фильтра. Несовпадение роли с ключом даёт
// пустой список, а не ошибку.
func (i impl) List(workSiteID string, actor models.Actor, filter, category string) (list []inspectionapimodels.InspectionView, err error) {
	err = i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return nil, err
	}
	var recList []dbmodels.ChecklistInspection
	switch filter {
	case FilterActionRequired:
		recList, err = i.store.ListByParticipant(workSiteID, category, actor.ID)
		if err != nil {
			return nil, err
		}
		recList = filterRecords(recList, func(rec dbmodels.ChecklistInspection) bool {
			return !rec.IsApproved() && rec.WitnessSlot(actor.ID) != 0
		})
	case FilterInitiated, FilterInProgress:
		status := models.ApprovalStatusInitiated
		if filter == FilterInProgress {
			status = models.ApprovalStatusInProgress
		}
		if actor.GlobalAdmin {
			recList, err = i.store.List(workSiteID, category)
		} else {
			recList, err = i.store.ListByParticipant(workSiteID, category, actor.ID)
		}
		if err != nil {
			return nil, err
		}
		recList = filterRecords(recList, func(rec dbmodels.ChecklistInspection) bool {
			return rec.ApprovalStatus == status
		})
	default:
		// согласованные чек-листы открыты всем ролям площадки
		recList, err = i.store.List(workSiteID, category)
		if err != nil {
			return nil, err
		}
		recList = filterRecords(recList, func(rec dbmodels.ChecklistInspection) bool {
			return rec.IsApproved()
		})
	}
	result := make([]inspectionapimodels.InspectionView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, inspectionapimodels.InspectionConvert(rec))
	}
	return result, nil
}

func filterRecords(recList []dbmodels.ChecklistInspection, keep func(dbmodels.ChecklistInspection) bool) []dbmodels.ChecklistInspection {
	result := make([]dbmodels.ChecklistInspection, 0, len(recList))
	for _, rec := range recList {
		if keep(rec) {
			result = append(result, rec)
		}
	}
	return result
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
	if rec.IsApproved() {
		return apperrors.InvalidTransition()
	}
	if rec.CheckedByID != actor.ID && !actor.GlobalAdmin {
		return apperrors.Permission("")
	}
	if err := i.store.Delete(workSiteID, id); err != nil {
		return err
	}
	logger.Info("удалён чек-лист инспекции")
	return nil
}

// ExportPDF - печатная форма чек-листа; доступна только после согласования
func (i impl) ExportPDF(workSiteID, id string, actor models.Actor) ([]byte, error) {
	view, err := i.Get(workSiteID, id, actor)
	if err != nil {
		return nil, err
	}
	if view.ApprovalStatus != models.ApprovalStatusApproved {
		return nil, apperrors.InvalidTransition()
	}
	return pdfexport.GenerateInspectionReport(view)
}

func (i impl) ListCategories() []inspectionapimodels.CategoryView {
	categories := models.ListInspectionCategories()
	result := make([]inspectionapimodels.CategoryView, 0, len(categories))
	for _, category := range categories {
		result = append(result, inspectionapimodels.CategoryConvert(category))
	}
	return result
}
