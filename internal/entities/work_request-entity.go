package entities

import (
	"maintenance-system/pkg/types"
)

// WorkRequest — заявка клиента на обслуживание оборудования.
// Status: 0 Pending, 1 InProgress, 2 Done, 3 Cancelled (см. pkg/constants).
type WorkRequest struct {
	ID          uint64 `json:"id"`
	UserID      uint64 `json:"user_id"`
	EquipmentID uint64 `json:"equipment_id"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      int16  `json:"status"`
	Date        string `json:"date"`
	Hour        string `json:"hour"`

	Requester *User      `json:"requester,omitempty"`
	Equipment *Equipment `json:"equipment,omitempty"`

	types.BaseEntity
}
