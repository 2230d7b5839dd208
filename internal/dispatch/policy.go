// Package dispatch — движок распределения заявок на обслуживание.
//
// Здесь только чистая логика принятия решения: никакого I/O, никаких
// транзакций. Сервис заявок собирает снимок данных (админы, техники и их
// загрузка), вызывает Decide и затем применяет результат в одной транзакции.
// Одинаковый вход всегда даёт одинаковый результат.
package dispatch

import (
	"time"

	"maintenance-system/pkg/constants"
)

// Mode — исход решения по новой заявке.
type Mode int

const (
	// ModeAdminReview — рабочие часы: заявку разбирают администраторы вручную.
	ModeAdminReview Mode = iota
	// ModeAutoAssign — вне рабочих часов найден активный техник, ордер создаётся автоматически.
	ModeAutoAssign
	// ModeNoTechnician — вне рабочих часов, но активных техников нет.
	ModeNoTechnician
)

func (m Mode) String() string {
	switch m {
	case ModeAdminReview:
		return "admin_review"
	case ModeAutoAssign:
		return "auto_assign"
	case ModeNoTechnician:
		return "no_technician"
	}
	return "unknown"
}

// Window — окно рабочего дня, смещения от локальной полуночи.
type Window struct {
	Start time.Duration
	End   time.Duration
}

// Contains проверяет, попадает ли now в [Start, End) текущего календарного дня.
// Предикат вычисляется один раз на входе в Decide и не пересматривается.
func (w Window) Contains(now time.Time) bool {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.Add(w.Start)
	end := midnight.Add(w.End)
	return !now.Before(start) && now.Before(end)
}

// TechnicianLoad — снимок одного техника на момент решения.
type TechnicianLoad struct {
	TechnicianID uint64
	UserID       uint64
	DeviceToken  string
	Status       int16
	OrdersCount  uint64
}

func (t TechnicianLoad) Active() bool {
	return t.Status == constants.TechnicianActive
}

// Input — данные новой заявки, существенные для решения.
type Input struct {
	RequesterID       uint64
	RequesterIsClient bool
	EquipmentID       uint64
	Description       string
	Priority          string
}

// Snapshot — состояние системы, прочитанное внутри критической секции.
type Snapshot struct {
	AdminUserIDs []uint64
	Technicians  []TechnicianLoad
}

// Notification — одно запланированное уведомление.
type Notification struct {
	UserID   uint64
	Text     string
	Category string
	Delay    time.Duration
}

// Push — запланированное push-уведомление на устройство.
type Push struct {
	Title       string
	Body        string
	Category    string
	DeviceToken string
}

// Order — ордер, который должен быть создан при ModeAutoAssign.
type Order struct {
	TechnicianID uint64
	Type         string
	Description  string
}

// Outcome — полный план действий по заявке.
type Outcome struct {
	Mode          Mode
	RequestStatus int16
	Technician    *TechnicianLoad
	Order         *Order
	Notifications []Notification
	Pushes        []Push
}

// Заголовок и категория push-уведомлений об ордерах; значения исторические.
const (
	pushTitle    = "Ordre de Travail"
	pushCategory = "order"
)

// Тексты уведомлений.
const (
	msgAdminNewRequest     = "Создана новая заявка на обслуживание"
	msgTechnicianAutoOrder = "Новый ордер на работы сгенерирован автоматически"
	msgRequesterInProgress = "Ваша заявка принята в обработку"
	msgAdminAutoOrder      = "Ордер на работы сгенерирован системой автоматически"
	msgRequesterNoTech     = "Ваша заявка создана, но сейчас нет доступных техников"
	msgAdminTechsOffline   = "Создана новая заявка, техники не в сети, требуется вмешательство"
	msgTechnicianGetOnline = "Создана новая заявка, подключитесь к системе"
	categoryWorkRequest    = "work_request"
	categoryWorkOrder      = "work_order"
)

// Policy — параметры движка.
type Policy struct {
	Window      Window
	NotifyDelay time.Duration
}

// Decide принимает решение по новой заявке. Чистая функция от
// {входных данных заявки, now, снимка техников/админов}.
func (p Policy) Decide(in Input, now time.Time, snap Snapshot) Outcome {
	if p.Window.Contains(now) {
		return p.adminReview(snap)
	}

	if tech, ok := leastLoadedActive(snap.Technicians); ok {
		return p.autoAssign(in, tech, snap)
	}

	return p.noTechnician(in, snap)
}

// leastLoadedActive выбирает активного техника с минимальным числом ордеров.
// При равенстве побеждает первый в исходном порядке.
func leastLoadedActive(technicians []TechnicianLoad) (TechnicianLoad, bool) {
	var best TechnicianLoad
	found := false
	for _, t := range technicians {
		if !t.Active() {
			continue
		}
		if !found || t.OrdersCount < best.OrdersCount {
			best = t
			found = true
		}
	}
	return best, found
}

func (p Policy) adminReview(snap Snapshot) Outcome {
	out := Outcome{
		Mode:          ModeAdminReview,
		RequestStatus: constants.RequestStatusPending,
	}
	for _, adminID := range snap.AdminUserIDs {
		out.Notifications = append(out.Notifications, Notification{
			UserID:   adminID,
			Text:     msgAdminNewRequest,
			Category: categoryWorkRequest,
			Delay:    p.NotifyDelay,
		})
	}
	return out
}

func (p Policy) autoAssign(in Input, tech TechnicianLoad, snap Snapshot) Outcome {
	chosen := tech
	out := Outcome{
		Mode:          ModeAutoAssign,
		RequestStatus: constants.RequestStatusInProgress,
		Technician:    &chosen,
		Order: &Order{
			TechnicianID: tech.TechnicianID,
			Type:         constants.OrderTypeCurative,
			Description:  constants.AutoOrderDescription,
		},
	}

	out.Notifications = append(out.Notifications, Notification{
		UserID:   tech.UserID,
		Text:     msgTechnicianAutoOrder,
		Category: categoryWorkOrder,
		Delay:    p.NotifyDelay,
	})
	out.Notifications = append(out.Notifications, Notification{
		UserID:   in.RequesterID,
		Text:     msgRequesterInProgress,
		Category: categoryWorkRequest,
		Delay:    p.NotifyDelay,
	})
	for _, adminID := range snap.AdminUserIDs {
		out.Notifications = append(out.Notifications, Notification{
			UserID:   adminID,
			Text:     msgAdminAutoOrder,
			Category: categoryWorkOrder,
			Delay:    p.NotifyDelay,
		})
	}

	out.Pushes = append(out.Pushes, Push{
		Title:       pushTitle,
		Body:        constants.AutoOrderDescription,
		Category:    pushCategory,
		DeviceToken: tech.DeviceToken,
	})

	return out
}

func (p Policy) noTechnician(in Input, snap Snapshot) Outcome {
	out := Outcome{
		Mode:          ModeNoTechnician,
		RequestStatus: constants.RequestStatusPending,
	}

	// Заявителю сообщаем только если он клиент: для внутренних ролей
	// это уведомление не имеет смысла.
	if in.RequesterIsClient {
		out.Notifications = append(out.Notifications, Notification{
			UserID:   in.RequesterID,
			Text:     msgRequesterNoTech,
			Category: categoryWorkRequest,
			Delay:    p.NotifyDelay,
		})
	}

	for _, adminID := range snap.AdminUserIDs {
		out.Notifications = append(out.Notifications, Notification{
			UserID:   adminID,
			Text:     msgAdminTechsOffline,
			Category: categoryWorkRequest,
			Delay:    p.NotifyDelay,
		})
	}

	// Зовём всех техников независимо от их статуса активности.
	for _, t := range snap.Technicians {
		out.Notifications = append(out.Notifications, Notification{
			UserID:   t.UserID,
			Text:     msgTechnicianGetOnline,
			Category: categoryWorkRequest,
			Delay:    p.NotifyDelay,
		})
		out.Pushes = append(out.Pushes, Push{
			Title:       pushTitle,
			Body:        in.Description,
			Category:    pushCategory,
			DeviceToken: t.DeviceToken,
		})
	}

	return out
}
