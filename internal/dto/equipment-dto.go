package dto

type CreateEquipmentDTO struct {
	Name         string  `json:"name" validate:"required,min=2,max=255"`
	Code         string  `json:"code" validate:"required,min=2,max=64"`
	ZoneID       *uint64 `json:"zone_id,omitempty" validate:"omitempty,gt=0"`
	DepartmentID *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateEquipmentDTO struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Code         *string `json:"code,omitempty" validate:"omitempty,min=2,max=64"`
	ZoneID       *uint64 `json:"zone_id,omitempty" validate:"omitempty,gt=0"`
	DepartmentID *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
}

type EquipmentDTO struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	ZoneID       *uint64 `json:"zone_id,omitempty"`
	ZoneRoom     string  `json:"zone_room,omitempty"`
	DepartmentID *uint64 `json:"department_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ImportReportDTO — итог пакетного импорта оборудования из .xlsx.
type ImportReportDTO struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}
