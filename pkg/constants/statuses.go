package constants

// --- СТАТУСЫ ЗАЯВОК НА ОБСЛУЖИВАНИЕ (числовые коды хранятся в БД как есть) ---
const (
	RequestStatusPending    int16 = 0
	RequestStatusInProgress int16 = 1
	RequestStatusDone       int16 = 2
	RequestStatusCancelled  int16 = 3
)

// --- СТАТУСЫ ТЕХНИКОВ ---
const (
	TechnicianInactive int16 = 0
	TechnicianActive   int16 = 1
)

// RequestStatusName возвращает человекочитаемое имя статуса для логов и журнала.
func RequestStatusName(status int16) string {
	switch status {
	case RequestStatusPending:
		return "pending"
	case RequestStatusInProgress:
		return "in_progress"
	case RequestStatusDone:
		return "done"
	case RequestStatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// allowedRequestTransitions описывает жизненный цикл заявки:
// статус двигается только вперёд, отмена возможна из Pending и InProgress.
// Из Cancelled и Done переходов нет.
var allowedRequestTransitions = map[int16][]int16{
	RequestStatusPending:    {RequestStatusInProgress, RequestStatusDone, RequestStatusCancelled},
	RequestStatusInProgress: {RequestStatusDone, RequestStatusCancelled},
	RequestStatusDone:       {},
	RequestStatusCancelled:  {},
}

func CanTransitionRequest(from, to int16) bool {
	allowed, ok := allowedRequestTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsFinalRequestStatus — терминальные статусы, из которых заявка уже не выходит.
func IsFinalRequestStatus(status int16) bool {
	return status == RequestStatusDone || status == RequestStatusCancelled
}
