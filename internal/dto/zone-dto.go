package dto

type CreateZoneDTO struct {
	Room         string `json:"room" validate:"required,min=1,max=255"`
	RoomCode     string `json:"room_code" validate:"required,room_code,max=64"`
	DepartmentID uint64 `json:"department_id" validate:"required,gt=0"`
}

type ZoneDTO struct {
	ID           uint64 `json:"id"`
	Room         string `json:"room"`
	RoomCode     string `json:"room_code"`
	DepartmentID uint64 `json:"department_id"`
	CreatedAt    string `json:"created_at"`
}
