// internal/authz/permissions.go
package authz

// --- СПИСОК ВСЕХ ПЕРМИШЕНОВ В СИСТЕМЕ ---

const (
	// Глобальные
	Superuser = "superuser"

	// Заявки на обслуживание (Work Requests)
	WorkRequestAccess = "work_request_access"
	WorkRequestCreate = "work_request_create"
	WorkRequestShow   = "work_request_show"
	WorkRequestEdit   = "work_request_edit"
	WorkRequestDelete = "work_request_delete"

	// Ордера на работы (Work Orders)
	WorkOrderAccess = "work_order_access"
	WorkOrderCreate = "work_order_create"
	WorkOrderShow   = "work_order_show"

	// Оборудование (Equipment)
	EquipmentAccess = "equipment_access"
	EquipmentCreate = "equipment_create"
	EquipmentImport = "equipment_import"

	// Зоны (Zones)
	ZoneAccess = "zone_access"
	ZoneCreate = "zone_create"

	// Техники (Technicians)
	TechnicianAccess = "technician_access"
	TechnicianEdit   = "technician_edit"
)

// All перечисляет все пермишены — используется сидером.
var All = []string{
	Superuser,
	WorkRequestAccess, WorkRequestCreate, WorkRequestShow, WorkRequestEdit, WorkRequestDelete,
	WorkOrderAccess, WorkOrderCreate, WorkOrderShow,
	EquipmentAccess, EquipmentCreate, EquipmentImport,
	ZoneAccess, ZoneCreate,
	TechnicianAccess, TechnicianEdit,
}
