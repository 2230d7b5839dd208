package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"maintenance-system/internal/repositories"
)

// AuthPermissionService отдаёт имена прав роли, кешируя их в Redis.
// Реализует middleware.PermissionResolver.
type AuthPermissionServiceInterface interface {
	PermissionsForRole(ctx context.Context, roleID uint64) (map[string]bool, error)
	InvalidateRoleCache(ctx context.Context, roleID uint64) error
}

type AuthPermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
	cacheTTL       time.Duration
}

func NewAuthPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) AuthPermissionServiceInterface {
	return &AuthPermissionService{
		permissionRepo: permissionRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
		cacheTTL:       cacheTTL,
	}
}

func (s *AuthPermissionService) PermissionsForRole(ctx context.Context, roleID uint64) (map[string]bool, error) {
	cacheKey := fmt.Sprintf("auth:permissions:role:%d", roleID)

	var names []string
	cached, errGet := s.cacheRepo.Get(ctx, cacheKey)
	if errGet == nil {
		if err := json.Unmarshal([]byte(cached), &names); err == nil {
			return permissionsToMap(names), nil
		}
		s.logger.Warn("повреждённые права в кеше, перечитываем из БД",
			zap.String("key", cacheKey), zap.Uint64("roleID", roleID))
	}

	names, err := s.permissionRepo.PermissionNamesByRoleID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(names); err == nil {
		if err := s.cacheRepo.Set(ctx, cacheKey, payload, s.cacheTTL); err != nil {
			// Кеш — ускорение, не источник истины.
			s.logger.Warn("не удалось закешировать права роли", zap.Error(err), zap.Uint64("roleID", roleID))
		}
	}
	return permissionsToMap(names), nil
}

// InvalidateRoleCache сбрасывает кеш после изменения прав роли.
func (s *AuthPermissionService) InvalidateRoleCache(ctx context.Context, roleID uint64) error {
	cacheKey := fmt.Sprintf("auth:permissions:role:%d", roleID)
	return s.cacheRepo.Del(ctx, cacheKey)
}

func permissionsToMap(names []string) map[string]bool {
	perms := make(map[string]bool, len(names))
	for _, name := range names {
		perms[name] = true
	}
	return perms
}
