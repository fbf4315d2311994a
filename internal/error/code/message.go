package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效或已过期的认证令牌",
	ErrTooManyRequests: "请求频率过高",
	ErrTokenMissing:    "缺少认证令牌",
	ErrInvalidRole:     "无效的角色",
	ErrRoleMismatch:    "无权访问该角色的看板",

	// 账户相关错误码
	ErrUserNotFound:       "用户不存在",
	ErrUserAlreadyExist:   "用户名或邮箱已存在",
	ErrInvalidCredentials: "用户名或密码错误",

	// 订单相关错误码
	ErrOrderNotFound:      "订单不存在",
	ErrOrderStatusInvalid: "无效的订单状态",

	// 角色资料相关错误码
	ErrProfileNotFound:     "角色资料不存在",
	ErrAvailabilityInvalid: "无效的配送状态",
	ErrSchoolNotFound:      "学校不存在",

	// 通知相关错误码
	ErrNotificationNotFound: "通知不存在",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusForbidden,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrTokenMissing:    StatusUnauthorized,
	ErrInvalidRole:     StatusBadRequest,
	ErrRoleMismatch:    StatusForbidden,

	// 账户相关错误码
	ErrUserNotFound:       StatusNotFound,
	ErrUserAlreadyExist:   StatusBadRequest,
	ErrInvalidCredentials: StatusUnauthorized,

	// 订单相关错误码
	ErrOrderNotFound:      StatusNotFound,
	ErrOrderStatusInvalid: StatusBadRequest,

	// 角色资料相关错误码
	ErrProfileNotFound:     StatusNotFound,
	ErrAvailabilityInvalid: StatusBadRequest,
	ErrSchoolNotFound:      StatusBadRequest,

	// 通知相关错误码
	ErrNotificationNotFound: StatusNotFound,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
