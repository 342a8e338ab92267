package inspectionapimodels

import (
	"time"

	"github.com/pkg/errors"

	"site-qhse-backend/models"
	dbmodels "site-qhse-backend/models/db"
)

type InspectionData struct {
	Category      string                 `json:"category"`
	CheckedByDate time.Time              `json:"checked_by_date"`
	Witness1ID    string                 `json:"witness_1_id"`
	Witness2ID    string                 `json:"witness_2_id"`
	Witness3ID    string                 `json:"witness_3_id,omitempty"`
	Payload       map[string]interface{} `json:"payload"`
}

func (r InspectionData) WitnessIDs() []string {
	ids := []string{r.Witness1ID, r.Witness2ID}
	if r.Witness3ID != "" {
		ids = append(ids, r.Witness3ID)
	}
	return ids
}

func (r InspectionData) Validate() error {
	category, err := models.GetInspectionCategory(r.Category)
	if err != nil {
		return err
	}
	ids := r.WitnessIDs()
	for _, id := range ids {
		if id == "" {
			return errors.New("не указан свидетель")
		}
	}
	if len(ids) != category.Witnesses {
		return errors.Errorf("для категории %v требуется свидетелей: %v", category.Name, category.Witnesses)
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			return errors.New("свидетели должны быть разными пользователями")
		}
		seen[id] = true
	}
	return nil
}

type WitnessApprovalData struct {
	Signature string `json:"signature"`
}

type WitnessView struct {
	UserID    string     `json:"user_id"`
	UserName  string     `json:"user_name,omitempty"`
	Approved  bool       `json:"approved"`
	Date      *time.Time `json:"date,omitempty"`
	Signature string     `json:"signature,omitempty"`
}

type InspectionView struct {
	ID             string                 `json:"id"`
	WorkSiteID     string                 `json:"work_site_id"`
	Category       string                 `json:"category"`
	CategoryName   string                 `json:"category_name"`
	CheckedByID    string                 `json:"checked_by_id"`
	CheckedByName  string                 `json:"checked_by_name,omitempty"`
	CheckedByDate  time.Time              `json:"checked_by_date"`
	Witnesses      []WitnessView          `json:"witnesses"`
	ApprovalStatus models.ApprovalStatus  `json:"approval_status"`
	StatusName     string                 `json:"status_name"`
	Payload        map[string]interface{} `json:"payload,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

func InspectionConvert(rec dbmodels.ChecklistInspection) InspectionView {
	view := InspectionView{
		ID:             rec.ID,
		WorkSiteID:     rec.WorkSiteID,
		Category:       rec.Category,
		CheckedByID:    rec.CheckedByID,
		CheckedByDate:  rec.CheckedByDate,
		ApprovalStatus: rec.ApprovalStatus,
		StatusName:     rec.ApprovalStatus.ToHuman(),
		Payload:        rec.Payload,
		CreatedAt:      rec.CreatedAt,
	}
	if category, err := models.GetInspectionCategory(rec.Category); err == nil {
		view.CategoryName = category.Name
	}
	if rec.CheckedBy != nil {
		view.CheckedByName = rec.CheckedBy.GetFullName()
	}
	view.Witnesses = append(view.Witnesses, witnessConvert(rec.Witness1ID, rec.Witness1, rec.Witness1Approved, rec.Witness1Date, rec.Witness1Signature))
	view.Witnesses = append(view.Witnesses, witnessConvert(rec.Witness2ID, rec.Witness2, rec.Witness2Approved, rec.Witness2Date, rec.Witness2Signature))
	if rec.Witness3ID != "" {
		view.Witnesses = append(view.Witnesses, witnessConvert(rec.Witness3ID, rec.Witness3, rec.Witness3Approved, rec.Witness3Date, rec.Witness3Signature))
	}
	return view
}

func witnessConvert(userID string, user *dbmodels.User, approved bool, date *time.Time, signature string) WitnessView {
	view := WitnessView{
		UserID:    userID,
		Approved:  approved,
		Date:      date,
		Signature: signature,
	}
	if user != nil {
		view.UserName = user.GetFullName()
	}
	return view
}

type CategoryView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Witnesses int    `json:"witnesses"`
}

func CategoryConvert(rec models.InspectionCategory) CategoryView {
	return CategoryView{
		ID:        rec.ID,
		Name:      rec.Name,
		Witnesses: rec.Witnesses,
	}
}
