package services

import "errors"

// 服务层返回的业务错误，控制器通过 errors.Is 映射为错误码
var (
	ErrInvalidCredentials   = errors.New("用户名或密码错误")
	ErrTokenMissing         = errors.New("缺少认证令牌")
	ErrTokenInvalid         = errors.New("无效或已过期的认证令牌")
	ErrDuplicateIdentity    = errors.New("用户名或邮箱已存在")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrProfileNotFound      = errors.New("角色资料不存在")
	ErrOrderNotFound        = errors.New("订单不存在")
	ErrNotificationNotFound = errors.New("通知不存在")
	ErrSchoolNotFound       = errors.New("学校不存在")
	ErrInvalidRole          = errors.New("无效的角色")
	ErrRoleMismatch         = errors.New("无权访问该角色的看板")
	ErrInvalidArgument      = errors.New("无效的参数")
)
