package constants

// Фиксированные справочники. Значения совпадают с тем, что исторически
// лежит в БД, поэтому они на французском — не переводить.

// Приоритеты заявок.
const (
	PriorityHigh   = "Haute"
	PriorityMedium = "Moyenne"
	PriorityLow    = "Basse"
)

var Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

func IsValidPriority(p string) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

// Типы ордеров на работы.
const (
	OrderTypeCurative   = "Curatif"
	OrderTypePreventive = "Préventif"
)

var OrderTypes = []string{OrderTypeCurative, OrderTypePreventive}

// Характер работ (используется только в view-модели форм).
var OrderNatures = []string{"Eléctrique", "Mécanique", "Pneumatique", "Hydraulique"}

// Текст, который система подставляет в авто-сгенерированный ордер.
const AutoOrderDescription = "This order is auto generated by the system"

// Статус в журнале ордера при его создании.
const OrderLogCreated = "created"

// --- РОЛИ ---
const (
	RoleSuperuser  = "Superuser"
	RoleAdmin      = "Admin"
	RoleTechnician = "Technician"
	RoleClient     = "Client"
)
