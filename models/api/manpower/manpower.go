package manpowerapimodels

import (
	"time"

	"github.com/pkg/errors"

	"site-qhse-backend/models"
	dbmodels "site-qhse-backend/models/db"
)

type ManpowerData struct {
	Date            time.Time `json:"date"`
	NumberOfWorkers int       `json:"number_of_workers"`
	SubContractorID string    `json:"sub_contractor_id"`
}

func (r ManpowerData) Validate() error {
	if r.Date.IsZero() {
		return errors.New("не указана дата отчёта")
	}
	if r.NumberOfWorkers <= 0 {
		return errors.New("число рабочих должно быть положительным")
	}
	return nil
}

type VerifyData struct {
	Status models.ManpowerVerificationStatus `json:"status"`
}

func (r VerifyData) Validate() error {
	if err := r.Status.Validate(); err != nil {
		return err
	}
	if r.Status == models.ManpowerNotVerified {
		return errors.New("недопустимый статус проверки")
	}
	return nil
}

type ManpowerView struct {
	ID                string                            `json:"id"`
	WorkSiteID        string                            `json:"work_site_id"`
	Date              time.Time                         `json:"date"`
	NumberOfWorkers   int                               `json:"number_of_workers"`
	SubContractorID   string                            `json:"sub_contractor_id"`
	SubContractorName string                            `json:"sub_contractor_name,omitempty"`
	Status            models.ManpowerVerificationStatus `json:"verification_status"`
	VerifiedByID      string                            `json:"verified_by_id,omitempty"`
}

func ManpowerConvert(rec dbmodels.Manpower) ManpowerView {
	view := ManpowerView{
		ID:              rec.ID,
		WorkSiteID:      rec.WorkSiteID,
		Date:            rec.Date,
		NumberOfWorkers: rec.NumberOfWorkers,
		SubContractorID: rec.SubContractorID,
		Status:          rec.VerificationStatus,
		VerifiedByID:    rec.VerifiedByID,
	}
	if rec.SubContractor != nil {
		view.SubContractorName = rec.SubContractor.GetFullName()
	}
	return view
}
