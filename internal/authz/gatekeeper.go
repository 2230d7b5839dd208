package authz

import (
	"context"

	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

// Gatekeeper — единая точка проверки прав. Каждая мутирующая операция
// объявляет требуемый пермишен и проверяет его ДО любых побочных эффектов.
type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// Allows — базовая проверка: есть ли у актора пермишен.
// Superuser проходит любую проверку.
func (g *Gatekeeper) Allows(perms map[string]bool, permission string) bool {
	if perms == nil {
		return false
	}
	if perms[Superuser] {
		return true
	}
	return perms[permission]
}

// Denies — зеркальная форма для читаемости в контроллерах.
func (g *Gatekeeper) Denies(perms map[string]bool, permission string) bool {
	return !g.Allows(perms, permission)
}

// Require достаёт карту прав из контекста запроса и возвращает ErrForbidden,
// если пермишена нет. Удобна в сервисах, куда права приходят через context.
func (g *Gatekeeper) Require(ctx context.Context, permission string) error {
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return err
	}
	if g.Denies(perms, permission) {
		return apperrors.ErrForbidden
	}
	return nil
}
