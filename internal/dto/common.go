package dto

type ShortUserDTO struct {
	ID  uint64 `json:"id"`
	Fio string `json:"fio"`
}

type ShortEquipmentDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type ShortTechnicianDTO struct {
	ID     uint64 `json:"id"`
	UserID uint64 `json:"user_id"`
	Fio    string `json:"fio"`
	Status int16  `json:"status"`
}
