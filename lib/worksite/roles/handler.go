package worksiteroles

import (
	log "github.com/sirupsen/logrus"

	"site-qhse-backend/db"
	usersstore "site-qhse-backend/lib/users/store"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	initchecker "site-qhse-backend/lib/utils/init-checker"
	worksiterolesstore "site-qhse-backend/lib/worksite/roles/store"
	"site-qhse-backend/models"
	worksiteapimodels "site-qhse-backend/models/api/worksite"
	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Assign(workSiteID string, request worksiteapimodels.RoleAssignData) (id string, err error)
	RoleOf(workSiteID, userID string) (role models.Role, err error)
	List(workSiteID string) (list []worksiteapimodels.RoleView, err error)
	UsersInRole(workSiteID string, role models.Role) (list []worksiteapimodels.RoleView, err error)
	WitnessCandidates(workSiteID, requesterID string) (list []worksiteapimodels.RoleView, err error)
	Revoke(workSiteID, id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:     worksiterolesstore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"userStore", instance.userStore,
	)
	Instance = instance
}

type impl struct {
	store     worksiterolesstore.Provider
	userStore usersstore.Provider
}

func (i impl) Assign(workSiteID string, request worksiteapimodels.RoleAssignData) (id string, err error) {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("user_id", request.UserID)
	user, err := i.userStore.GetByID(request.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.NotFound("пользователь не найден")
	}
	existed, err := i.store.GetByUser(workSiteID, request.UserID)
	if err != nil {
		return "", err
	}
	if existed != nil {
		return "", apperrors.Conflict("у пользователя уже есть роль на площадке")
	}
	rec := dbmodels.WorkSiteRole{
		UserID:     request.UserID,
		WorkSiteID: workSiteID,
		Role:       request.Role,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("role", request.Role).
		WithField("rec_id", id).
		Info("назначена роль на площадке")
	return id, nil
}

func (i impl) RoleOf(workSiteID, userID string) (models.Role, error) {
	rec, err := i.store.GetByUser(workSiteID, userID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", nil
	}
	return rec.Role, nil
}

func (i impl) List(workSiteID string) (list []worksiteapimodels.RoleView, err error) {
	recList, err := i.store.ListByWorkSite(workSiteID)
	if err != nil {
		return nil, err
	}
	result := make([]worksiteapimodels.RoleView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, worksiteapimodels.RoleConvert(rec))
	}
	return result, nil
}

func (i impl) UsersInRole(workSiteID string, role models.Role) (list []worksiteapimodels.RoleView, err error) {
	recList, err := i.store.ListByRole(workSiteID, role)
	if err != nil {
		return nil, err
	}
	result := make([]worksiteapimodels.RoleView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, worksiteapimodels.RoleConvert(rec))
	}
	return result, nil
}

// WitnessCandidates - участники площадки, доступные как свидетели проверки.
// Сам запрашивающий исключается: проверяющий не бывает свидетелем.
func (i impl) WitnessCandidates(workSiteID, requesterID string) (list []worksiteapimodels.RoleView, err error) {
	recList, err := i.store.ListByWorkSite(workSiteID)
	if err != nil {
		return nil, err
	}
	result := make([]worksiteapimodels.RoleView, 0, len(recList))
	for _, rec := range recList {
		if rec.UserID == requesterID {
			continue
		}
		result = append(result, worksiteapimodels.RoleConvert(rec))
	}
	return result, nil
}

func (i impl) Revoke(workSiteID, id string) error {
	logger := log.
		WithField("work_site_id", workSiteID).
		WithField("rec_id", id)
	err := i.store.Delete(workSiteID, id)
	if err != nil {
		return err
	}
	logger.Info("отозвана роль на площадке")
	return nil
}
