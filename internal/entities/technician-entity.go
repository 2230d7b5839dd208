package entities

import "maintenance-system/pkg/types"

// MaintenanceTechnician — техник по обслуживанию. Status: 0 — неактивен, 1 — активен.
// OrdersCount не хранится в БД, а вычисляется запросом и используется
// только для выбора наименее загруженного техника.
type MaintenanceTechnician struct {
	ID          uint64 `json:"id"`
	UserID      uint64 `json:"user_id"`
	Status      int16  `json:"status"`
	OrdersCount uint64 `json:"orders_count"`
	User        *User  `json:"user,omitempty"`

	types.BaseEntity
}
