package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusCreated - 201: 已创建.
	StatusCreated = 201
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 403: 令牌无效或已过期.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
	// ErrTokenMissing - 401: 缺少令牌.
	ErrTokenMissing
	// ErrInvalidRole - 400: 无效的角色.
	ErrInvalidRole
	// ErrRoleMismatch - 403: 角色不匹配.
	ErrRoleMismatch
)

// 账户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户名或邮箱已存在.
	ErrUserAlreadyExist
	// ErrInvalidCredentials - 401: 用户名或密码错误.
	ErrInvalidCredentials
)

// 订单相关错误码 (102xxx).
const (
	// ErrOrderNotFound - 404: 订单不存在.
	ErrOrderNotFound int = iota + 102000
	// ErrOrderStatusInvalid - 400: 无效的订单状态.
	ErrOrderStatusInvalid
)

// 角色资料相关错误码 (103xxx).
const (
	// ErrProfileNotFound - 404: 角色资料不存在.
	ErrProfileNotFound int = iota + 103000
	// ErrAvailabilityInvalid - 400: 无效的配送状态.
	ErrAvailabilityInvalid
	// ErrSchoolNotFound - 400: 学校不存在.
	ErrSchoolNotFound
)

// 通知相关错误码 (104xxx).
const (
	// ErrNotificationNotFound - 404: 通知不存在.
	ErrNotificationNotFound int = iota + 104000
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
