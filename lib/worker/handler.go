package worker

import (
	log "github.com/sirupsen/logrus"

	"site-qhse-backend/db"
	"site-qhse-backend/lib/permissions"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	initchecker "site-qhse-backend/lib/utils/init-checker"
	workerstore "site-qhse-backend/lib/worker/store"
	worksiterolesstore "site-qhse-backend/lib/worksite/roles/store"
	"site-qhse-backend/models"
	workerapimodels "site-qhse-backend/models/api/worker"
	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(workSiteID string, actor models.Actor, request workerapimodels.WorkerData) (id string, err error)
	Update(workSiteID, id string, actor models.Actor, request workerapimodels.WorkerData) error
	Get(workSiteID, id string, actor models.Actor) (item workerapimodels.WorkerView, err error)
	List(workSiteID string, actor models.Actor) (list []workerapimodels.WorkerView, err error)
	Delete(workSiteID, id string, actor models.Actor) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       workerstore.NewInstance(db.DB),
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
	store       workerstore.Provider
	roleStore   worksiterolesstore.Provider
	permissions permissions.Provider
}

func (i impl) Create(workSiteID string, actor models.Actor, request workerapimodels.WorkerData) (id string, err error) {
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
	role, err := i.permissions.RoleOf(workSiteID, actor)
	if err != nil {
		return "", err
	}
	// субподрядчик регистрирует рабочих только за собой
	if role == models.RoleSubContractor {
		request.CreatedUnderID = actor.ID
	}
	ownerRole, err := i.roleStore.GetByUser(workSiteID, request.CreatedUnderID)
	if err != nil {
		return "", err
	}
	if ownerRole == nil {
		return "", apperrors.Validation("у ответственного пользователя нет роли на площадке")
	}
	rec := dbmodels.Worker{
		BaseWorkSiteModel: dbmodels.BaseWorkSiteModel{
			WorkSiteID: workSiteID,
		},
		AuditModel: dbmodels.AuditModel{
			CreatedByID:     actor.ID,
			LastUpdatedByID: actor.ID,
		},
		CreatedUnderID:         request.CreatedUnderID,
		InductionDate:          request.InductionDate,
		Name:                   request.Name,
		ProfilePic:             request.ProfilePic,
		FatherName:             request.FatherName,
		Gender:                 request.Gender,
		DateOfBirth:            request.DateOfBirth,
		BloodGroup:             request.BloodGroup,
		Designation:            request.Designation,
		MobileNumber:           request.MobileNumber,
		EmergencyContactNumber: request.EmergencyContactNumber,
		IdentityMarks:          request.IdentityMarks,
		Address:                request.Address,
		City:                   request.City,
		State:                  request.State,
		Country:                request.Country,
		Pincode:                request.Pincode,
		MedicalFitness:         request.MedicalFitness,
		IdentityProof:          request.IdentityProof,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.WithField("rec_id", id).Info("зарегистрирован рабочий")
	return id, nil
}

// canAct - объектный доступ к записи рабочего. Администратору недоступны
// записи, числящиеся за пользователем с ролью заказчика; субподрядчик
// работает только со своими записями.
func (i impl) canAct(workSiteID string, actor models.Actor, rec *dbmodels.Worker) error {
	ownerRole, err := i.roleStore.GetByUser(workSiteID, rec.CreatedUnderID)
	if err != nil {
		return err
	}
	if actor.GlobalAdmin {
		if ownerRole != nil && ownerRole.Role == models.RoleClient && rec.CreatedUnderID != actor.ID {
			return apperrors.Permission("")
		}
		return nil
	}
	role, err := i.permissions.RoleOf(workSiteID, actor)
	if err != nil {
		return err
	}
	switch role {
	case models.RoleEPC:
		return nil
	case models.RoleSubContractor, models.RoleClient:
		if rec.CreatedUnderID == actor.ID {
			return nil
		}
	}
	return apperrors.Permission("")
}

func (i impl) Update(workSiteID, id string, actor models.Actor, request workerapimodels.WorkerData) error {
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
	if err := i.canAct(workSiteID, actor, rec); err != nil {
		return err
	}
	if err = request.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	updMap := map[string]interface{}{
		"induction_date":           request.InductionDate,
		"name":                     request.Name,
		"profile_pic":              request.ProfilePic,
		"father_name":              request.FatherName,
		"gender":                   request.Gender,
		"date_of_birth":            request.DateOfBirth,
		"blood_group":              request.BloodGroup,
		"designation":              request.Designation,
		"mobile_number":            request.MobileNumber,
		"emergency_contact_number": request.EmergencyContactNumber,
		"identity_marks":           request.IdentityMarks,
		"address":                  request.Address,
		"city":                     request.City,
		"state":                    request.State,
		"country":                  request.Country,
		"pincode":                  request.Pincode,
		"medical_fitness":          request.MedicalFitness,
		"identity_proof":           request.IdentityProof,
		"last_updated_by_id":       actor.ID,
	}
	if err := i.store.Update(workSiteID, id, updMap); err != nil {
		return err
	}
	logger.Info("обновлена запись рабочего")
	return nil
}

func (i impl) Get(workSiteID, id string, actor models.Actor) (workerapimodels.WorkerView, error) {
	err := i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return workerapimodels.WorkerView{}, err
	}
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return workerapimodels.WorkerView{}, err
	}
	if rec == nil {
		return workerapimodels.WorkerView{}, apperrors.NotFound("")
	}
	if err := i.canAct(workSiteID, actor, rec); err != nil {
		return workerapimodels.WorkerView{}, err
	}
	return workerapimodels.WorkerConvert(*rec), nil
}

func (i impl) List(workSiteID string, actor models.Actor) (list []workerapimodels.WorkerView, err error) {
	err = i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return nil, err
	}
	role, err := i.permissions.RoleOf(workSiteID, actor)
	if err != nil {
		return nil, err
	}
	var recList []dbmodels.Worker
	if role == models.RoleSubContractor || role == models.RoleClient {
		recList, err = i.store.ListByCreatedUnder(workSiteID, actor.ID)
	} else {
		recList, err = i.store.List(workSiteID)
	}
	if err != nil {
		return nil, err
	}
	result := make([]workerapimodels.WorkerView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, workerapimodels.WorkerConvert(rec))
	}
	return result, nil
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
	if err := i.canAct(workSiteID, actor, rec); err != nil {
		return err
	}
	if err := i.store.Delete(workSiteID, id); err != nil {
		return err
	}
	logger.Info("удалена запись рабочего")
	return nil
}
