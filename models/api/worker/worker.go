package workerapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "site-qhse-backend/models/db"
)

type WorkerData struct {
	CreatedUnderID string    `json:"created_under_id"`
	InductionDate  time.Time `json:"induction_date"`
	Name           string    `json:"name"`
	ProfilePic     string    `json:"profile_pic"`
	FatherName     string    `json:"father_name"`
	Gender         string    `json:"gender"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	BloodGroup     string    `json:"blood_group"`
	Designation    string    `json:"designation"`

	MobileNumber           string `json:"mobile_number"`
	EmergencyContactNumber string `json:"emergency_contact_number"`
	IdentityMarks          string `json:"identity_marks"`
	Address                string `json:"address"`
	City                   string `json:"city"`
	State                  string `json:"state"`
	Country                string `json:"country"`
	Pincode                string `json:"pincode"`

	MedicalFitness string `json:"medical_fitness"`
	IdentityProof  string `json:"identity_proof"`
}

func (r WorkerData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано имя рабочего")
	}
	if r.CreatedUnderID == "" {
		return errors.New("не указан ответственный пользователь")
	}
	if r.InductionDate.IsZero() {
		return errors.New("не указана дата инструктажа при допуске")
	}
	return nil
}

type WorkerView struct {
	WorkerData
	ID         string `json:"id"`
	WorkSiteID string `json:"work_site_id"`
}

func WorkerConvert(rec dbmodels.Worker) WorkerView {
	return WorkerView{
		WorkerData: WorkerData{
			CreatedUnderID:         rec.CreatedUnderID,
			InductionDate:          rec.InductionDate,
			Name:                   rec.Name,
			ProfilePic:             rec.ProfilePic,
			FatherName:             rec.FatherName,
			Gender:                 rec.Gender,
			DateOfBirth:            rec.DateOfBirth,
			BloodGroup:             rec.BloodGroup,
			Designation:            rec.Designation,
			MobileNumber:           rec.MobileNumber,
			EmergencyContactNumber: rec.EmergencyContactNumber,
			IdentityMarks:          rec.IdentityMarks,
			Address:                rec.Address,
			City:                   rec.City,
			State:                  rec.State,
			Country:                rec.Country,
			Pincode:                rec.Pincode,
			MedicalFitness:         rec.MedicalFitness,
			IdentityProof:          rec.IdentityProof,
		},
		ID:         rec.ID,
		WorkSiteID: rec.WorkSiteID,
	}
}
