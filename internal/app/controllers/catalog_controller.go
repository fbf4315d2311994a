package controllers

import (
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"

	"github.com/gin-gonic/gin"
)

// CatalogController 公开的学校和供应商列表
type CatalogController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCatalogController 创建公开列表控制器
func NewCatalogController(ctx *gin.Context, container *container.ServiceContainer) *CatalogController {
	return &CatalogController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleCatalogFunc 返回一个处理公开列表请求的Gin处理函数
func HandleCatalogFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCatalogController(ctx, container)

		switch method {
		case "listSchools":
			controller.ListSchools()
		case "listCaterers":
			controller.ListCaterers()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// ListSchools 学校列表
// @Summary      List schools
// @Description  Schools ordered by name, used by the registration form
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  SuccessResponse{data=[]services.SchoolOption}
// @Router       /schools [get]
func (c *CatalogController) ListSchools() {
	schoolService := c.Container.GetService("school").(services.InterfaceSchoolService)
	schools, err := schoolService.ListSchools()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, schools)
}

// ListCaterers 供应商列表
// @Summary      List caterers
// @Description  Active caterers by rating, each with its available menu items
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  SuccessResponse{data=[]services.CatererListing}
// @Router       /caterers [get]
func (c *CatalogController) ListCaterers() {
	catererService := c.Container.GetService("caterer").(services.InterfaceCatererService)
	caterers, err := catererService.ListCaterers()
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, caterers)
}
