package worksite

import (
	"context"

	"github.com/gosimple/slug"
	log "github.com/sirupsen/logrus"

	"site-qhse-backend/db"
	filestorage "site-qhse-backend/lib/file-storage"
	usersstore "site-qhse-backend/lib/users/store"
	apperrors "site-qhse-backend/lib/utils/app-errors"
	initchecker "site-qhse-backend/lib/utils/init-checker"
	worksiterolesstore "site-qhse-backend/lib/worksite/roles/store"
	worksitestore "site-qhse-backend/lib/worksite/store"
	worksiteapimodels "site-qhse-backend/models/api/worksite"
	dbmodels "site-qhse-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, request worksiteapimodels.WorkSiteData) (id string, err error)
	Get(id string) (item worksiteapimodels.WorkSiteView, err error)
	List() (list []worksiteapimodels.WorkSiteView, err error)
	SetCorrectiveActionUsers(workSiteID string, request worksiteapimodels.CorrectiveActionUsersData) error
	ListCorrectiveActionUsers(workSiteID string) (list []worksiteapimodels.RoleView, err error)
	IsCorrectiveActionUser(workSiteID, userID string) (bool, error)
	ListClassifications() (list []worksiteapimodels.ClassificationView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:     worksitestore.NewInstance(db.DB),
		roleStore: worksiterolesstore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"roleStore", instance.roleStore,
		"userStore", instance.userStore,
	)
	Instance = instance
}

type impl struct {
	store     worksitestore.Provider
	roleStore worksiterolesstore.Provider
	userStore usersstore.Provider
}

func (i impl) Create(ctx context.Context, request worksiteapimodels.WorkSiteData) (id string, err error) {
	siteID := slug.Make(request.Name)
	logger := log.WithField("work_site_id", siteID)
	existed, err := i.store.GetByID(siteID)
	if err != nil {
		return "", err
	}
	if existed != nil {
		return "", apperrors.Conflict("площадка с таким названием уже существует")
	}
	rec := dbmodels.WorkSite{
		ID:   siteID,
		Name: request.Name,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	if filestorage.Instance != nil {
		if err := filestorage.Instance.MakeWorkSiteBucket(ctx, siteID); err != nil {
			logger.WithError(err).Error("ошибка создания бакета площадки")
		}
	}
	logger.Info("создана площадка")
	return id, nil
}

func (i impl) Get(id string) (worksiteapimodels.WorkSiteView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return worksiteapimodels.WorkSiteView{}, err
	}
	if rec == nil {
		return worksiteapimodels.WorkSiteView{}, apperrors.NotFound("площадка не найдена")
	}
	return worksiteapimodels.WorkSiteConvert(*rec), nil
}

func (i impl) List() (list []worksiteapimodels.WorkSiteView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]worksiteapimodels.WorkSiteView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, worksiteapimodels.WorkSiteConvert(rec))
	}
	return result, nil
}

// SetCorrectiveActionUsers - замена списка исполнителей корректирующих
// действий. Каждый назначаемый пользователь должен иметь роль на площадке.
func (i impl) SetCorrectiveActionUsers(workSiteID string, request worksiteapimodels.CorrectiveActionUsersData) error {
	logger := log.WithField("work_site_id", workSiteID)
	for _, userID := range request.UserIDs {
		roleRec, err := i.roleStore.GetByUser(workSiteID, userID)
		if err != nil {
			return err
		}
		if roleRec == nil {
			return apperrors.Validation("у пользователя нет роли на площадке")
		}
	}
	err := i.store.RemoveCorrectiveActionUsers(workSiteID)
	if err != nil {
		return err
	}
	for _, userID := range request.UserIDs {
		if err := i.store.AddCorrectiveActionUser(workSiteID, userID); err != nil {
			return err
		}
	}
	logger.
		WithField("count", len(request.UserIDs)).
		Info("обновлён список исполнителей корректирующих действий")
	return nil
}

func (i impl) ListCorrectiveActionUsers(workSiteID string) (list []worksiteapimodels.RoleView, err error) {
	recList, err := i.store.ListCorrectiveActionUsers(workSiteID)
	if err != nil {
		return nil, err
	}
	result := make([]worksiteapimodels.RoleView, 0, len(recList))
	for _, rec := range recList {
		view := worksiteapimodels.RoleView{
			ID:       rec.ID,
			UserID:   rec.UserID,
			WorkSite: rec.WorkSiteID,
		}
		if rec.User != nil {
			view.UserName = rec.User.GetFullName()
			view.Email = rec.User.Email
		}
		result = append(result, view)
	}
	return result, nil
}

func (i impl) IsCorrectiveActionUser(workSiteID, userID string) (bool, error) {
	return i.store.IsCorrectiveActionUser(workSiteID, userID)
}

func (i impl) ListClassifications() (list []worksiteapimodels.ClassificationView, err error) {
	recList, err := i.store.ListClassifications()
	if err != nil {
		return nil, err
	}
	result := make([]worksiteapimodels.ClassificationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, worksiteapimodels.ClassificationConvert(rec))
	}
	return result, nil
}
