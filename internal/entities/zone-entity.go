package entities

import "maintenance-system/pkg/types"

// Zone — помещение, группирующее оборудование. Room и RoomCode уникальны.
type Zone struct {
	ID           uint64 `json:"id"`
	Room         string `json:"room"`
	RoomCode     string `json:"room_code"`
	DepartmentID uint64 `json:"department_id"`

	types.BaseEntity
}
