package worksiteapimodels

import (
	"github.com/pkg/errors"

	"site-qhse-backend/models"
	dbmodels "site-qhse-backend/models/db"
)

type WorkSiteData struct {
	Name string `json:"name"`
}

func (r WorkSiteData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название площадки")
	}
	if len(r.Name) > 45 {
		return errors.New("название площадки длиннее 45 символов")
	}
	return nil
}

type WorkSiteView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func WorkSiteConvert(rec dbmodels.WorkSite) WorkSiteView {
	return WorkSiteView{
		ID:   rec.ID,
		Name: rec.Name,
	}
}

type RoleAssignData struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
}

func (r RoleAssignData) Validate() error {
	if r.UserID == "" {
		return errors.New("не указан пользователь")
	}
	return r.Role.Validate()
}

type RoleView struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	UserName  string      `json:"user_name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	RoleName  string      `json:"role_name"`
	WorkSite  string      `json:"work_site_id"`
}

func RoleConvert(rec dbmodels.WorkSiteRole) RoleView {
	view := RoleView{
		ID:       rec.ID,
		UserID:   rec.UserID,
		Role:     rec.Role,
		RoleName: rec.Role.ToHuman(),
		WorkSite: rec.WorkSiteID,
	}
	if rec.User != nil {
		view.UserName = rec.User.GetFullName()
		view.Email = rec.User.Email
	}
	return view
}

type CorrectiveActionUsersData struct {
	UserIDs []string `json:"user_ids"`
}

func (r CorrectiveActionUsersData) Validate() error {
	if len(r.UserIDs) == 0 {
		return errors.New("не указаны пользователи")
	}
	return nil
}

type ClassificationView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ClassificationConvert(rec dbmodels.ObservationClassification) ClassificationView {
	return ClassificationView{
		ID:   rec.ID,
		Name: rec.Name,
	}
}
