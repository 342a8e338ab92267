package safetyapimodels

import (
	"time"

	"github.com/pkg/errors"

	"site-qhse-backend/models"
	dbmodels "site-qhse-backend/models/db"
)

type ObservationData struct {
	ObservationDate time.Time `json:"observation_date"`
	ObservationTime string    `json:"observation_time"`
	WorkLocation    string    `json:"work_location"`
	DepartmentID    string    `json:"department_id"`

	ActivityPerformed string `json:"activity_performed"`
	SubContractorID   string `json:"sub_contractor_id"`

	ObservationFound string                 `json:"observation_found"`
	ObservationType  models.ObservationType `json:"observation_type"`
	Classification   string                 `json:"classification"`
	RiskRated        models.RiskRating      `json:"risk_rated"`

	CorrectiveActionRequired     string `json:"corrective_action_required"`
	CorrectiveActionAssignedToID string `json:"corrective_action_assigned_to_id"`

	BeforeImage string `json:"before_image"`
	Remarks     string `json:"remarks"`
}

func (r ObservationData) Validate() error {
	if r.ObservationDate.IsZero() {
		return errors.New("не указана дата наблюдения")
	}
	if r.ObservationFound == "" {
		return errors.New("не указано содержание наблюдения")
	}
	if err := r.ObservationType.Validate(); err != nil {
		return err
	}
	if err := r.RiskRated.Validate(); err != nil {
		return err
	}
	if r.CorrectiveActionAssignedToID == "" {
		return errors.New("не указан исполнитель корректирующих действий")
	}
	return nil
}

type CorrectiveActionData struct {
	ActionTaken string `json:"action_taken"`
	AfterImage  string `json:"after_image"`
}

func (r CorrectiveActionData) Validate() error {
	if r.ActionTaken == "" {
		return errors.New("не указаны принятые меры")
	}
	if r.AfterImage == "" {
		return errors.New("не приложено фото после устранения")
	}
	return nil
}

type ObservationView struct {
	ID         string `json:"id"`
	WorkSiteID string `json:"work_site_id"`

	ReportedByID   string `json:"reported_by_id"`
	ReportedByName string `json:"reported_by_name,omitempty"`

	ObservationDate time.Time `json:"observation_date"`
	ObservationTime string    `json:"observation_time"`
	WorkLocation    string    `json:"work_location"`
	DepartmentID    string    `json:"department_id,omitempty"`

	ActivityPerformed string `json:"activity_performed,omitempty"`
	SubContractorID   string `json:"sub_contractor_id,omitempty"`

	ObservationFound string                 `json:"observation_found"`
	ObservationType  models.ObservationType `json:"observation_type"`
	Classification   string                 `json:"classification,omitempty"`
	RiskRated        models.RiskRating      `json:"risk_rated"`

	CorrectiveActionRequired     string `json:"corrective_action_required,omitempty"`
	CorrectiveActionTaken        string `json:"corrective_action_taken,omitempty"`
	CorrectiveActionAssignedToID string `json:"corrective_action_assigned_to_id,omitempty"`
	AssignedToName               string `json:"assigned_to_name,omitempty"`

	ObservationStatus models.ObservationStatus      `json:"observation_status"`
	Status            models.CorrectiveActionStatus `json:"status"`
	ClosedOn          *time.Time                    `json:"closed_on,omitempty"`

	BeforeImage string `json:"before_image,omitempty"`
	AfterImage  string `json:"after_image,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
}

func ObservationConvert(rec dbmodels.SafetyObservation) ObservationView {
	view := ObservationView{
		ID:                           rec.ID,
		WorkSiteID:                   rec.WorkSiteID,
		ReportedByID:                 rec.ReportedByID,
		ObservationDate:              rec.ObservationDate,
		ObservationTime:              rec.ObservationTime,
		WorkLocation:                 rec.WorkLocation,
		DepartmentID:                 rec.DepartmentID,
		ActivityPerformed:            rec.ActivityPerformed,
		SubContractorID:              rec.SubContractorID,
		ObservationFound:             rec.ObservationFound,
		ObservationType:              rec.ObservationType,
		Classification:               rec.Classification,
		RiskRated:                    rec.RiskRated,
		CorrectiveActionRequired:     rec.CorrectiveActionRequired,
		CorrectiveActionTaken:        rec.CorrectiveActionTaken,
		CorrectiveActionAssignedToID: rec.CorrectiveActionAssignedToID,
		ObservationStatus:            rec.ObservationStatus,
		Status:                       rec.Status,
		ClosedOn:                     rec.ClosedOn,
		BeforeImage:                  rec.BeforeImage,
		AfterImage:                   rec.AfterImage,
		Remarks:                      rec.Remarks,
	}
	if rec.ReportedBy != nil {
		view.ReportedByName = rec.ReportedBy.GetFullName()
	}
	if rec.CorrectiveActionAssignedTo != nil {
		view.AssignedToName = rec.CorrectiveActionAssignedTo.GetFullName()
	}
	return view
}
