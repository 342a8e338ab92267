package models

import "github.com/pkg/errors"

// ApprovalStatus - статус согласования чек-листа инспекции
type ApprovalStatus string

const (
	ApprovalStatusInitiated  ApprovalStatus = "initiated"
	ApprovalStatusInProgress ApprovalStatus = "in_progress"
	ApprovalStatusApproved   ApprovalStatus = "approved"
)

var approvalStatusHumanName = map[ApprovalStatus]string{
	ApprovalStatusInitiated:  "Создан",
	ApprovalStatusInProgress: "На согласовании",
	ApprovalStatusApproved:   "Согласован",
}

func (s ApprovalStatus) ToHuman() string {
	if human, exist := approvalStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// PTWStatus - статус наряда-допуска
type PTWStatus string

const (
	PTWStatusSubmitted      PTWStatus = "submitted"
	PTWStatusEPCApproved    PTWStatus = "epc_approved"
	PTWStatusClientApproved PTWStatus = "client_approved" // открытый наряд
	PTWStatusClientRejected PTWStatus = "client_rejected"
	PTWStatusClosed         PTWStatus = "closed"
	PTWStatusAutoClosed     PTWStatus = "auto_closed"
	PTWStatusExpired        PTWStatus = "expired"
)

var ptwStatusHumanName = map[PTWStatus]string{
	PTWStatusSubmitted:      "Подан",
	PTWStatusEPCApproved:    "Проверен EPC",
	PTWStatusClientApproved: "Утверждён заказчиком",
	PTWStatusClientRejected: "Отклонён заказчиком",
	PTWStatusClosed:         "Закрыт",
	PTWStatusAutoClosed:     "Закрыт автоматически",
	PTWStatusExpired:        "Просрочен",
}

func (s PTWStatus) ToHuman() string {
	if human, exist := ptwStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// ObservationStatus - состояние наблюдения по безопасности
type ObservationStatus string

const (
	ObservationStatusOpen    ObservationStatus = "open"
	ObservationStatusClosed  ObservationStatus = "closed"
	ObservationStatusExpired ObservationStatus = "expired"
)

func (s ObservationStatus) Validate() error {
	switch s {
	case ObservationStatusOpen, ObservationStatusClosed, ObservationStatusExpired:
		return nil
	}
	return errors.Errorf("неизвестный статус наблюдения (%v)", string(s))
}

// CorrectiveActionStatus - статус цикла корректирующих действий по наблюдению
type CorrectiveActionStatus string

const (
	CAStatusOpen                 CorrectiveActionStatus = "open"
	CAStatusVerificationRequired CorrectiveActionStatus = "verification_required"
	CAStatusClosed               CorrectiveActionStatus = "closed"
)

// ObservationType - тип наблюдения
type ObservationType string

const (
	ObservationUnsafeAct       ObservationType = "unsafe_act"
	ObservationUnsafeCondition ObservationType = "unsafe_condition"
)

func (t ObservationType) Validate() error {
	switch t {
	case ObservationUnsafeAct, ObservationUnsafeCondition:
		return nil
	}
	return errors.Errorf("неизвестный тип наблюдения (%v)", string(t))
}

// RiskRating - оценка риска наблюдения
type RiskRating string

const (
	RiskHigh        RiskRating = "high"
	RiskSignificant RiskRating = "significant"
	RiskMedium      RiskRating = "medium"
	RiskLow         RiskRating = "low"
)

func (r RiskRating) Validate() error {
	switch r {
	case RiskHigh, RiskSignificant, RiskMedium, RiskLow:
		return nil
	}
	return errors.Errorf("неизвестная оценка риска (%v)", string(r))
}

// ManpowerVerificationStatus - статус проверки суточного отчёта по персоналу
type ManpowerVerificationStatus string

const (
	ManpowerNotVerified ManpowerVerificationStatus = "Not Verified"
	ManpowerVerified    ManpowerVerificationStatus = "Verified"
	ManpowerRevise      ManpowerVerificationStatus = "Revise"
)

func (s ManpowerVerificationStatus) Validate() error {
	switch s {
	case ManpowerNotVerified, ManpowerVerified, ManpowerRevise:
		return nil
	}
	return errors.Errorf("неизвестный статус проверки (%v)", string(s))
}
