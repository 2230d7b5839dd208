package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-system/pkg/constants"
)

var testPolicy = Policy{
	Window: Window{
		Start: 7*time.Hour + 30*time.Minute,
		End:   17*time.Hour + 30*time.Minute,
	},
	NotifyDelay: 10 * time.Second,
}

func at(hour, minute, second int) time.Time {
	return time.Date(2026, time.March, 9, hour, minute, second, 0, time.Local)
}

func testInput() Input {
	return Input{
		RequesterID:       42,
		RequesterIsClient: true,
		EquipmentID:       7,
		Description:       "Пресс не держит давление",
		Priority:          constants.PriorityHigh,
	}
}

func TestWindow_Boundaries(t *testing.T) {
	w := testPolicy.Window

	assert.False(t, w.Contains(at(7, 29, 59)), "за секунду до открытия окна")
	assert.True(t, w.Contains(at(7, 30, 0)), "начало окна включительно")
	assert.True(t, w.Contains(at(12, 0, 0)))
	assert.True(t, w.Contains(at(17, 29, 59)), "последняя секунда окна")
	assert.False(t, w.Contains(at(17, 30, 0)), "конец окна исключительно")
	assert.False(t, w.Contains(at(23, 59, 59)))
	assert.False(t, w.Contains(at(0, 0, 0)), "полночь — вне окна")
}

func TestDecide_BusinessHours_AdminReview(t *testing.T) {
	snap := Snapshot{
		AdminUserIDs: []uint64{1, 2},
		Technicians: []TechnicianLoad{
			{TechnicianID: 10, UserID: 100, Status: constants.TechnicianActive, OrdersCount: 0},
		},
	}

	out := testPolicy.Decide(testInput(), at(9, 0, 0), snap)

	assert.Equal(t, ModeAdminReview, out.Mode)
	assert.Equal(t, constants.RequestStatusPending, out.RequestStatus)
	assert.Nil(t, out.Order, "в рабочие часы ордер не создаётся, даже при свободных техниках")
	assert.Nil(t, out.Technician)
	assert.Empty(t, out.Pushes)

	require.Len(t, out.Notifications, 2)
	for _, n := range out.Notifications {
		assert.Contains(t, []uint64{1, 2}, n.UserID)
		assert.Equal(t, 10*time.Second, n.Delay)
	}
}

func TestDecide_OutsideHours_AutoAssignLeastLoaded(t *testing.T) {
	snap := Snapshot{
		AdminUserIDs: []uint64{1},
		Technicians: []TechnicianLoad{
			{TechnicianID: 10, UserID: 100, Status: constants.TechnicianActive, OrdersCount: 3},
			{TechnicianID: 11, UserID: 101, Status: constants.TechnicianActive, OrdersCount: 1, DeviceToken: "tok-11"},
			{TechnicianID: 12, UserID: 102, Status: constants.TechnicianInactive, OrdersCount: 0},
		},
	}

	out := testPolicy.Decide(testInput(), at(21, 0, 0), snap)

	assert.Equal(t, ModeAutoAssign, out.Mode)
	assert.Equal(t, constants.RequestStatusInProgress, out.RequestStatus)

	require.NotNil(t, out.Order)
	assert.Equal(t, uint64(11), out.Order.TechnicianID, "неактивный техник с нулевой загрузкой не должен побеждать")
	assert.Equal(t, constants.OrderTypeCurative, out.Order.Type)
	assert.Equal(t, constants.AutoOrderDescription, out.Order.Description)

	// Техник, заявитель и каждый админ.
	require.Len(t, out.Notifications, 3)
	recipients := make(map[uint64]bool)
	for _, n := range out.Notifications {
		recipients[n.UserID] = true
		assert.Equal(t, 10*time.Second, n.Delay)
	}
	assert.True(t, recipients[101], "уведомление технику")
	assert.True(t, recipients[42], "уведомление заявителю")
	assert.True(t, recipients[1], "уведомление админу")

	require.Len(t, out.Pushes, 1)
	assert.Equal(t, "tok-11", out.Pushes[0].DeviceToken)
	assert.Equal(t, "Ordre de Travail", out.Pushes[0].Title)
	assert.Equal(t, "order", out.Pushes[0].Category)
}

func TestDecide_TieBreak_FirstInStableOrder(t *testing.T) {
	snap := Snapshot{
		Technicians: []TechnicianLoad{
			{TechnicianID: 20, UserID: 200, Status: constants.TechnicianActive, OrdersCount: 2},
			{TechnicianID: 21, UserID: 201, Status: constants.TechnicianActive, OrdersCount: 2},
		},
	}

	out := testPolicy.Decide(testInput(), at(6, 0, 0), snap)

	require.NotNil(t, out.Order)
	assert.Equal(t, uint64(20), out.Order.TechnicianID, "при равной загрузке побеждает первый по порядку")
}

func TestDecide_OutsideHours_NoActiveTechnicians(t *testing.T) {
	snap := Snapshot{
		AdminUserIDs: []uint64{1, 2},
		Technicians: []TechnicianLoad{
			{TechnicianID: 10, UserID: 100, Status: constants.TechnicianInactive, DeviceToken: "tok-10"},
			{TechnicianID: 11, UserID: 101, Status: constants.TechnicianInactive},
		},
	}

	out := testPolicy.Decide(testInput(), at(3, 0, 0), snap)

	assert.Equal(t, ModeNoTechnician, out.Mode)
	assert.Equal(t, constants.RequestStatusPending, out.RequestStatus)
	assert.Nil(t, out.Order)

	// Заявитель-клиент + 2 админа + 2 техника (независимо от активности).
	require.Len(t, out.Notifications, 5)

	// Push уходит каждому технику; пустой токен отфильтрует уже отправитель.
	require.Len(t, out.Pushes, 2)
	assert.Equal(t, "tok-10", out.Pushes[0].DeviceToken)
	assert.Equal(t, "", out.Pushes[1].DeviceToken)
	assert.Equal(t, "Пресс не держит давление", out.Pushes[0].Body)
}

func TestDecide_NonClientRequester_NotNotifiedWhenNoTechnicians(t *testing.T) {
	in := testInput()
	in.RequesterIsClient = false

	snap := Snapshot{AdminUserIDs: []uint64{1}}

	out := testPolicy.Decide(in, at(3, 0, 0), snap)

	require.Len(t, out.Notifications, 1)
	assert.Equal(t, uint64(1), out.Notifications[0].UserID)
}

func TestDecide_Deterministic(t *testing.T) {
	snap := Snapshot{
		AdminUserIDs: []uint64{1, 2, 3},
		Technicians: []TechnicianLoad{
			{TechnicianID: 10, UserID: 100, Status: constants.TechnicianActive, OrdersCount: 5},
			{TechnicianID: 11, UserID: 101, Status: constants.TechnicianActive, OrdersCount: 2},
		},
	}
	now := at(22, 15, 0)

	first := testPolicy.Decide(testInput(), now, snap)
	second := testPolicy.Decide(testInput(), now, snap)

	assert.Equal(t, first, second, "решение должно быть чистой функцией от входа")
}

func TestDecide_LoadGrowsAfterAssignment(t *testing.T) {
	// Сценарий из постановки: техники с загрузкой 3 и 1, вне рабочих часов.
	// Ордер достаётся технику с одним ордером; при следующем решении его
	// загрузка равна 2 и выбор не меняется, при загрузке 4 — меняется.
	snap := Snapshot{
		Technicians: []TechnicianLoad{
			{TechnicianID: 10, UserID: 100, Status: constants.TechnicianActive, OrdersCount: 3},
			{TechnicianID: 11, UserID: 101, Status: constants.TechnicianActive, OrdersCount: 1},
		},
	}

	out := testPolicy.Decide(testInput(), at(21, 0, 0), snap)
	require.NotNil(t, out.Order)
	assert.Equal(t, uint64(11), out.Order.TechnicianID)

	snap.Technicians[1].OrdersCount = 2
	out = testPolicy.Decide(testInput(), at(21, 5, 0), snap)
	require.NotNil(t, out.Order)
	assert.Equal(t, uint64(11), out.Order.TechnicianID, "2 < 3 — выбор прежний")

	snap.Technicians[1].OrdersCount = 4
	out = testPolicy.Decide(testInput(), at(21, 10, 0), snap)
	require.NotNil(t, out.Order)
	assert.Equal(t, uint64(10), out.Order.TechnicianID, "после роста загрузки выигрывает другой техник")
}
