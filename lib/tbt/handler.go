package tbt

import (
	"time"

	log "github.com/sirupsen/logrus"

	"site-qhse-backend/db"
	"site-qhse-backend/lib/permissions"
	tbtstore "site-qhse-backend/lib/tbt/store"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	initchecker "site-qhse-backend/lib/utils/init-checker"
	"site-qhse-backend/models"
	tbtapimodels "site-qhse-backend/models/api/tbt"
	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(workSiteID string, actor models.Actor, request tbtapimodels.ToolBoxTalkData) (id string, err error)
	Update(workSiteID, id string, actor models.Actor, request tbtapimodels.ToolBoxTalkData) error
	Get(workSiteID, id string, actor models.Actor) (item tbtapimodels.ToolBoxTalkView, err error)
	List(workSiteID string, actor models.Actor, from, to *time.Time) (list []tbtapimodels.ToolBoxTalkView, err error)
	Delete(workSiteID, id string, actor models.Actor) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       tbtstore.NewInstance(db.DB),
		permissions: permissions.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"permissions", instance.permissions,
	)
	Instance = instance
}

type impl struct {
	store       tbtstore.Provider
	permissions permissions.Provider
}

func (i impl) Create(workSiteID string, actor models.Actor, request tbtapimodels.ToolBoxTalkData) (id string, err error) {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("user_id", actor.ID)
	err = i.permissions.Require(workSiteID, actor, permissions.AnyOf(models.RoleEPC, models.RoleEPCAdmin))
	if err != nil {
		return "", err
	}
	if err = request.Validate(); err != nil {
		return "", apperrors.Validation(err.Error())
	}
	rec := dbmodels.ToolBoxTalk{
		BaseWorkSiteModel: dbmodels.BaseWorkSiteModel{
			WorkSiteID: workSiteID,
		},
		AuditModel: dbmodels.AuditModel{
			CreatedByID:     actor.ID,
			LastUpdatedByID: actor.ID,
		},
		Topic:                request.Topic,
		Date:                 request.Date,
		NumberOfParticipants: request.NumberOfParticipants,
		AgencyName:           request.AgencyName,
		Evidence:             request.Evidence,
		Attendance:           request.Attendance,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.WithField("rec_id", id).Info("создана запись об инструктаже")
	return id, nil
}

func (i impl) Update(workSiteID, id string, actor models.Actor, request tbtapimodels.ToolBoxTalkData) error {
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
		"topic":                  request.Topic,
		"date":                   request.Date,
		"number_of_participants": request.NumberOfParticipants,
		"agency_name":            request.AgencyName,
		"evidence":               request.Evidence,
		"attendance":             request.Attendance,
		"last_updated_by_id":     actor.ID,
	}
	if err := i.store.Update(workSiteID, id, updMap); err != nil {
		return err
	}
	logger.Info("обновлена запись об инструктаже")
	return nil
}

func (i impl) Get(workSiteID, id string, actor models.Actor) (tbtapimodels.ToolBoxTalkView, error) {
	err := i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return tbtapimodels.ToolBoxTalkView{}, err
	}
	rec, err := i.store.GetByID(workSiteID, id)
	if err != nil {
		return tbtapimodels.ToolBoxTalkView{}, err
	}
	if rec == nil {
		return tbtapimodels.ToolBoxTalkView{}, apperrors.NotFound("")
	}
	return tbtapimodels.ToolBoxTalkConvert(*rec), nil
}

func (i impl) List(workSiteID string, actor models.Actor, from, to *time.Time) (list []tbtapimodels.ToolBoxTalkView, err error) {
	err = i.permissions.RequireConfigured(workSiteID, actor)
	if err != nil {
		return nil, err
	}
	recList, err := i.store.List(workSiteID, from, to)
	if err != nil {
		return nil, err
	}
	result := make([]tbtapimodels.ToolBoxTalkView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, tbtapimodels.ToolBoxTalkConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(workSiteID, id string, actor models.Actor) error {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("rec_id", id)
	err := i.permissions.Require(workSiteID, actor, permissions.AnyOf(models.RoleEPC, models.RoleEPCAdmin))
	if err != nil {
		return err
	}
	if err := i.store.Delete(workSiteID, id); err != nil {
		return err
	}
	logger.Info("удалена запись об инструктаже")
	return nil
}
