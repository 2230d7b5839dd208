package entities

import "time"

// WorkOrderLog — журнал ордера, только добавление.
type WorkOrderLog struct {
	ID          uint64    `json:"id"`
	WorkOrderID uint64    `json:"work_order_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
