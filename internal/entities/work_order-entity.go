package entities

import (
	"github.com/aarondl/null/v8"

	"maintenance-system/pkg/types"
)

// WorkOrder — ордер на работы. Может быть порождён заявкой (WorkRequestID)
// или создан администратором отдельно. В момент создания ордером владеет
// ровно один из двух: назначенный техник либо администратор.
type WorkOrder struct {
	ID                      uint64      `json:"id"`
	WorkRequestID           null.Uint64 `json:"work_request_id,omitempty"`
	MaintenanceTechnicianID null.Uint64 `json:"maintenance_technician_id,omitempty"`
	AdminID                 null.Uint64 `json:"admin_id,omitempty"`
	Type                    string      `json:"type"`
	Description             string      `json:"description"`
	Date                    string      `json:"date"`
	Hour                    string      `json:"hour"`

	Technician *MaintenanceTechnician `json:"technician,omitempty"`

	types.BaseEntity
}
