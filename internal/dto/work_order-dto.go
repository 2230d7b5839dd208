package dto

// CreateWorkOrderDTO — ручное создание ордера администратором.
// Техник опционален: ордер может вести сам администратор.
type CreateWorkOrderDTO struct {
	WorkRequestID *uint64 `json:"work_request_id,omitempty" validate:"omitempty,gt=0"`
	TechnicianID  *uint64 `json:"technician_id,omitempty" validate:"omitempty,gt=0"`
	Type          string  `json:"type" validate:"required,order_type"`
	Description   string  `json:"description" validate:"required,min=5,max=1000"`
}

type WorkOrderDTO struct {
	ID            uint64              `json:"id"`
	WorkRequestID *uint64             `json:"work_request_id,omitempty"`
	Technician    *ShortTechnicianDTO `json:"technician,omitempty"`
	Admin         *ShortUserDTO       `json:"admin,omitempty"`
	Type          string              `json:"type"`
	Description   string              `json:"description"`
	Date          string              `json:"date"`
	Hour          string              `json:"hour"`
	CreatedAt     string              `json:"created_at"`
}

type WorkOrderLogDTO struct {
	ID          uint64 `json:"id"`
	WorkOrderID uint64 `json:"work_order_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}
