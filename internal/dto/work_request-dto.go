package dto

type CreateWorkRequestDTO struct {
	EquipmentID uint64 `json:"equipment_id" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,min=5,max=1000"`
	Priority    string `json:"priority" validate:"required,priority"`
}

// UpdateWorkRequestDTO — частичное обновление изменяемых полей.
// Статус заявки этим путём не меняется.
type UpdateWorkRequestDTO struct {
	EquipmentID *uint64 `json:"equipment_id,omitempty" validate:"omitempty,gt=0"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=5,max=1000"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,priority"`
}

type WorkRequestDTO struct {
	ID          uint64            `json:"id"`
	Requester   ShortUserDTO      `json:"requester"`
	Equipment   ShortEquipmentDTO `json:"equipment"`
	Description string            `json:"description"`
	Priority    string            `json:"priority"`
	Status      int16             `json:"status"`
	StatusName  string            `json:"status_name"`
	Date        string            `json:"date"`
	Hour        string            `json:"hour"`
	CreatedAt   string            `json:"created_at"`
}

// WorkRequestViewDTO — view-модель для форм просмотра/редактирования:
// сама заявка плюс фиксированные справочники.
type WorkRequestViewDTO struct {
	WorkRequest WorkRequestDTO       `json:"work_request"`
	Priorities  []string             `json:"priorities"`
	Types       []string             `json:"types"`
	Natures     []string             `json:"natures"`
	Technicians []ShortTechnicianDTO `json:"technicians"`
	Equipments  []ShortEquipmentDTO  `json:"equipments,omitempty"`
}

// DispatchResultDTO — результат создания заявки: сама заявка,
// авто-сгенерированный ордер (если был) и режим решения.
type DispatchResultDTO struct {
	WorkRequest WorkRequestDTO `json:"work_request"`
	WorkOrder   *WorkOrderDTO  `json:"work_order,omitempty"`
	Mode        string         `json:"mode"`
}
