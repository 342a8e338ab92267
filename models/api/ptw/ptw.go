package ptwapimodels

import (
	"time"

	"github.com/pkg/errors"

	"site-qhse-backend/models"
	dbmodels "site-qhse-backend/models/db"
)

type PTWData struct {
	Validity  time.Time              `json:"validity"`
	Signature string                 `json:"signature"`
	Payload   map[string]interface{} `json:"payload"`
}

func (r PTWData) Validate() error {
	if r.Validity.IsZero() {
		return errors.New("не указан срок действия наряда")
	}
	if !r.Validity.After(time.Now()) {
		return errors.New("срок действия наряда должен быть в будущем")
	}
	return nil
}

type SignatureData struct {
	Signature string `json:"signature"`
}

type RejectData struct {
	Remark string `json:"remark"`
}

func (r RejectData) Validate() error {
	if r.Remark == "" {
		return errors.New("не указана причина отклонения")
	}
	return nil
}

type PTWView struct {
	ID         string           `json:"id"`
	WorkSiteID string           `json:"work_site_id"`
	PermitNo   string           `json:"permit_no"`
	IssuedDate *time.Time       `json:"issued_date,omitempty"`
	Validity   time.Time        `json:"validity"`
	Status     models.PTWStatus `json:"status"`
	StatusName string           `json:"status_name"`

	SubmittedByID   string     `json:"submitted_by_id"`
	SubmittedByName string     `json:"submitted_by_name,omitempty"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	VerifiedByID    string     `json:"verified_by_id,omitempty"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	ApprovedByID    string     `json:"approved_by_id,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`

	RejectedByID   string `json:"rejected_by_id,omitempty"`
	RejectedRemark string `json:"rejected_remark,omitempty"`

	ClosureRequestedByID string     `json:"closure_requested_by_id,omitempty"`
	ClosureRequestedAt   *time.Time `json:"closure_requested_at,omitempty"`
	ClosedAt             *time.Time `json:"closed_at,omitempty"`

	Payload map[string]interface{} `json:"payload,omitempty"`
}

func PTWConvert(rec dbmodels.PermitToWork) PTWView {
	view := PTWView{
		ID:                   rec.ID,
		WorkSiteID:           rec.WorkSiteID,
		PermitNo:             rec.PermitNo,
		IssuedDate:           rec.IssuedDate,
		Validity:             rec.Validity,
		Status:               rec.Status,
		StatusName:           rec.Status.ToHuman(),
		SubmittedByID:        rec.SubmittedByID,
		SubmittedAt:          rec.SubmittedAt,
		VerifiedByID:         rec.VerifiedByID,
		VerifiedAt:           rec.VerifiedAt,
		ApprovedByID:         rec.ApprovedByID,
		ApprovedAt:           rec.ApprovedAt,
		RejectedByID:         rec.RejectedByID,
		RejectedRemark:       rec.RejectedRemark,
		ClosureRequestedByID: rec.ClosureRequestedByID,
		ClosureRequestedAt:   rec.ClosureRequestedAt,
		ClosedAt:             rec.ClosedAt,
		Payload:              rec.Payload,
	}
	if rec.SubmittedBy != nil {
		view.SubmittedByName = rec.SubmittedBy.GetFullName()
	}
	return view
}
