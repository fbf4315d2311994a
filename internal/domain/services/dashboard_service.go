package services

import (
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"
)

// InterfaceDashboardService 按角色分发看板请求
type InterfaceDashboardService interface {
	GetDashboard(identity *Identity, view string) (interface{}, error)
}

// dashboardProvider 为某个账户生成一种角色的看板
type dashboardProvider func(userID uint) (interface{}, error)

// DashboardService 持有每个角色对应的看板提供者
type DashboardService struct {
	providers  map[models.Role]dashboardProvider
	strictRole bool
}

// NewDashboardService 创建看板分发服务
func NewDashboardService(
	cfg *config.Config,
	parents InterfaceParentService,
	delivery InterfaceDeliveryService,
	schools InterfaceSchoolService,
	caterers InterfaceCatererService,
	admins InterfaceAdminService,
) InterfaceDashboardService {
	return &DashboardService{
		providers: map[models.Role]dashboardProvider{
			models.RoleParent: func(id uint) (interface{}, error) {
				return parents.GetDashboard(id)
			},
			models.RoleDeliveryStaff: func(id uint) (interface{}, error) {
				return delivery.GetDashboard(id)
			},
			models.RoleSchoolAdmin: func(id uint) (interface{}, error) {
				return schools.GetDashboard(id)
			},
			models.RoleCaterer: func(id uint) (interface{}, error) {
				return caterers.GetDashboard(id)
			},
			models.RoleAdmin: func(id uint) (interface{}, error) {
				return admins.GetDashboard(id)
			},
		},
		strictRole: cfg != nil && cfg.DashboardStrictRole,
	}
}

// Supports 判断某个角色是否有对应的看板
func (s *DashboardService) Supports(role models.Role) bool {
	_, ok := s.providers[role]
	return ok
}

// 1 GetDashboard 校验角色后返回请求者自己的看板
func (s *DashboardService) GetDashboard(identity *Identity, view string) (interface{}, error) {
	if identity == nil {
		return nil, ErrTokenMissing
	}

	role, ok := models.ParseRole(view)
	if !ok {
		return nil, ErrInvalidRole
	}
	if s.strictRole && role != identity.Role {
		return nil, ErrRoleMismatch
	}

	provider, ok := s.providers[role]
	if !ok {
		return nil, ErrInvalidRole
	}
	return provider(identity.UserID)
}
