package controllers

import (
	"errors"
	"strconv"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/app/middleware"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"
	"github.com/Samanvis-dev/LunchBoxExpress/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"101002"`
	Message string      `json:"message" example:"用户名或密码错误"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 表示成功响应
type SuccessResponse struct {
	Code    int         `json:"code" example:"100000"`
	Message string      `json:"message" example:"成功"`
	Data    interface{} `json:"data"`
}

// 业务错误到错误码的映射
var errorCodes = []struct {
	err  error
	code int
}{
	{services.ErrInvalidCredentials, code.ErrInvalidCredentials},
	{services.ErrTokenMissing, code.ErrTokenMissing},
	{services.ErrTokenInvalid, code.ErrTokenInvalid},
	{services.ErrDuplicateIdentity, code.ErrUserAlreadyExist},
	{services.ErrUserNotFound, code.ErrUserNotFound},
	{services.ErrProfileNotFound, code.ErrProfileNotFound},
	{services.ErrOrderNotFound, code.ErrOrderNotFound},
	{services.ErrNotificationNotFound, code.ErrNotificationNotFound},
	{services.ErrSchoolNotFound, code.ErrSchoolNotFound},
	{services.ErrInvalidRole, code.ErrInvalidRole},
	{services.ErrRoleMismatch, code.ErrRoleMismatch},
	{services.ErrInvalidArgument, code.ErrValidation},
	{gorm.ErrRecordNotFound, code.ErrRecordNotFound},
}

// respondError 把服务层错误写成统一响应，未知错误记录日志后返回500
func respondError(ctx *gin.Context, err error) {
	for _, m := range errorCodes {
		if errors.Is(err, m.err) {
			response.Fail(ctx, m.code, nil)
			return
		}
	}
	logger.Error("%s %s 处理失败: %v", ctx.Request.Method, ctx.FullPath(), err)
	response.ServerError(ctx)
}

// requireIdentity 读取当前身份，缺失时直接返回401
func requireIdentity(ctx *gin.Context) (*services.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		response.Fail(ctx, code.ErrTokenMissing, nil)
		return nil, false
	}
	return identity, true
}

// parseID 解析路径中的数字ID
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ParamError(ctx, "无效的ID")
		return 0, false
	}
	return uint(id), true
}
