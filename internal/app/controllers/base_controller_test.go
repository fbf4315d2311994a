package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"记录不存在", fmt.Errorf("查询菜单: %w", gorm.ErrRecordNotFound), http.StatusNotFound, code.ErrRecordNotFound},
		{"订单不存在", services.ErrOrderNotFound, http.StatusNotFound, code.ErrOrderNotFound},
		{"参数错误", fmt.Errorf("%w: 无效的状态", services.ErrInvalidArgument), http.StatusBadRequest, code.ErrValidation},
		{"未知错误", errors.New("连接断开"), http.StatusInternalServerError, code.ErrUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)

			respondError(c, tt.err)

			var body response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, code.GetMessage(tt.code), body.Message)
		})
	}
}
