package dto

type TechnicianDTO struct {
	ID          uint64 `json:"id"`
	UserID      uint64 `json:"user_id"`
	Fio         string `json:"fio"`
	Status      int16  `json:"status"`
	OrdersCount uint64 `json:"orders_count"`
}

type UpdateTechnicianStatusDTO struct {
	Status *int16 `json:"status" validate:"required,oneof=0 1"`
}
