package tbtapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "site-qhse-backend/models/db"
)

type ToolBoxTalkData struct {
	Topic                string    `json:"topic"`
	Date                 time.Time `json:"date"`
	NumberOfParticipants int       `json:"number_of_participants"`
	AgencyName           string    `json:"agency_name"`
	Evidence             string    `json:"evidence"`
	Attendance           string    `json:"attendance"`
}

func (r ToolBoxTalkData) Validate() error {
	if r.Topic == "" {
		return errors.New("не указана тема инструктажа")
	}
	if r.Date.IsZero() {
		return errors.New("не указана дата инструктажа")
	}
	if r.NumberOfParticipants <= 0 {
		return errors.New("число участников должно быть положительным")
	}
	return nil
}

type ToolBoxTalkView struct {
	ToolBoxTalkData
	ID         string `json:"id"`
	WorkSiteID string `json:"work_site_id"`
}

func ToolBoxTalkConvert(rec dbmodels.ToolBoxTalk) ToolBoxTalkView {
	return ToolBoxTalkView{
		ToolBoxTalkData: ToolBoxTalkData{
			Topic:                rec.Topic,
			Date:                 rec.Date,
			NumberOfParticipants: rec.NumberOfParticipants,
			AgencyName:           rec.AgencyName,
			Evidence:             rec.Evidence,
			Attendance:           rec.Attendance,
		},
		ID:         rec.ID,
		WorkSiteID: rec.WorkSiteID,
	}
}
