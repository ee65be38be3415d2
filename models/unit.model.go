package models

import "gorm.io/gorm"

// Unit operational phases
const (
	UnitPhaseImplantacao = "IMPLANTACAO"
	UnitPhaseOperacao    = "OPERACAO"
	UnitPhaseSuspensa    = "SUSPENSA"
	UnitPhaseCancelada   = "CANCELADA"
)

// Unit is a franchise/organizational location. Units are imported from the
// matriz (headquarters) feed or created by administrators.
type Unit struct {
	gorm.Model
	Code      string `json:"code" gorm:"unique;not null"` // unique unit code from the matriz
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	State     string `json:"state"`
	CEP       string `json:"cep"`
	Phase     string `json:"phase" gorm:"default:'IMPLANTACAO'"` // IMPLANTACAO, OPERACAO, SUSPENSA, CANCELADA
	IsDeleted bool   `gorm:"default:false"`
}
