package seeders

import (
	"maintenance-system/internal/authz"
	"maintenance-system/pkg/constants"
)

type permissionData struct {
	Name        string
	Description string
}

var permissionsData = []permissionData{
	{authz.Superuser, "Полный доступ ко всем операциям"},
	{authz.WorkRequestAccess, "Просмотр всех заявок на обслуживание"},
	{authz.WorkRequestCreate, "Создание заявки на обслуживание"},
	{authz.WorkRequestShow, "Просмотр чужой заявки"},
	{authz.WorkRequestEdit, "Редактирование и отмена заявки"},
	{authz.WorkRequestDelete, "Удаление заявки"},
	{authz.WorkOrderAccess, "Просмотр всех ордеров"},
	{authz.WorkOrderCreate, "Создание ордера вручную"},
	{authz.WorkOrderShow, "Просмотр ордера и его журнала"},
	{authz.EquipmentAccess, "Просмотр оборудования"},
	{authz.EquipmentCreate, "Создание и изменение оборудования"},
	{authz.EquipmentImport, "Пакетный импорт оборудования из .xlsx"},
	{authz.ZoneAccess, "Просмотр зон"},
	{authz.ZoneCreate, "Создание зоны"},
	{authz.TechnicianAccess, "Просмотр техников и их загрузки"},
	{authz.TechnicianEdit, "Изменение статуса любого техника"},
}

// Какие права получает каждая роль.
var rolePermissionsData = map[string][]string{
	constants.RoleSuperuser: {authz.Superuser},
	constants.RoleAdmin: {
		authz.WorkRequestAccess, authz.WorkRequestCreate, authz.WorkRequestShow,
		authz.WorkRequestEdit, authz.WorkRequestDelete,
		authz.WorkOrderAccess, authz.WorkOrderCreate, authz.WorkOrderShow,
		authz.EquipmentAccess, authz.EquipmentCreate, authz.EquipmentImport,
		authz.ZoneAccess, authz.ZoneCreate,
		authz.TechnicianAccess, authz.TechnicianEdit,
	},
	constants.RoleTechnician: {
		authz.WorkRequestAccess, authz.WorkRequestShow,
		authz.WorkOrderShow,
		authz.EquipmentAccess,
		authz.ZoneAccess,
		authz.TechnicianAccess,
	},
	constants.RoleClient: {
		authz.WorkRequestCreate, authz.WorkRequestEdit,
		authz.EquipmentAccess,
	},
}

var rolesData = []string{
	constants.RoleSuperuser,
	constants.RoleAdmin,
	constants.RoleTechnician,
	constants.RoleClient,
}

type demoUserData struct {
	Fio        string
	Email      string
	Phone      string
	Role       string
	Department string
}

var demoDepartmentsData = []string{"Production", "Qualité", "Logistique"}

var demoZonesData = []struct {
	Room       string
	RoomCode   string
	Department string
}{
	{"Atelier A", "AT-A", "Production"},
	{"Atelier B", "AT-B", "Production"},
	{"Laboratoire", "LAB-1", "Qualité"},
}

var demoEquipmentsData = []struct {
	Name     string
	Code     string
	RoomCode string
}{
	{"Compresseur GA-75", "CMP-001", "AT-A"},
	{"Tour CNC Haas ST-20", "CNC-010", "AT-A"},
	{"Convoyeur principal", "CNV-002", "AT-B"},
	{"Spectromètre", "SPM-001", "LAB-1"},
}

var demoUsersData = []demoUserData{
	{"Иванов Пётр Сергеевич", "admin@maintenance.local", "+992900000001", constants.RoleAdmin, ""},
	{"Каримов Фаррух Давлатович", "tech1@maintenance.local", "+992900000002", constants.RoleTechnician, ""},
	{"Рахимов Сухроб Акбарович", "tech2@maintenance.local", "+992900000003", constants.RoleTechnician, ""},
	{"Назарова Мадина Искандаровна", "client1@maintenance.local", "+992900000004", constants.RoleClient, "Production"},
}
