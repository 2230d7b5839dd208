package entities

import (
	"github.com/aarondl/null/v8"

	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/types"
)

type User struct {
	ID           uint64      `json:"id"`
	Fio          string      `json:"fio"`
	Email        string      `json:"email"`
	PhoneNumber  string      `json:"phone_number"`
	Password     string      `json:"-"`
	RoleID       uint64      `json:"role_id"`
	RoleName     string      `json:"role_name,omitempty"`
	DepartmentID null.Uint64 `json:"department_id,omitempty"`
	DeviceToken  null.String `json:"-"`

	types.BaseEntity
}

// IsClient — у клиентов область видимости оборудования ограничена их департаментом.
func (u *User) IsClient() bool {
	return u.RoleName == constants.RoleClient
}
