package entities

import (
	"github.com/aarondl/null/v8"

	"maintenance-system/pkg/types"
)

type Equipment struct {
	ID           uint64      `json:"id"`
	Name         string      `json:"name"`
	Code         string      `json:"code"`
	ZoneID       null.Uint64 `json:"zone_id,omitempty"`
	DepartmentID null.Uint64 `json:"department_id,omitempty"`

	types.BaseEntity
}
