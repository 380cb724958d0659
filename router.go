package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartSheet/contracts"
)

const ApiVersion = "v1"

const subscribePath = "subscribe"

func SetupRouter(controller contracts.ApiController) *gin.Engine {
	router := gin.New()

	sheetRouterGroup := router.Group("/api/" + ApiVersion + "/sheets/:sheet_id")
	sheetRouterGroup.GET("", controller.GetSheetAction)
	sheetRouterGroup.GET("/chart", controller.ChartAction)
	sheetRouterGroup.POST("/analyze", controller.AnalyzeAction)
	sheetRouterGroup.POST("/template", controller.LoadTemplateAction)
	sheetRouterGroup.GET("/export/:format", controller.ExportAction)

	cellRouterGroup := sheetRouterGroup.Group("/cells/:cell_id")
	cellRouterGroup.POST("", controller.SetCellAction)
	cellRouterGroup.GET("", controller.GetCellAction)
	cellRouterGroup.POST("/"+subscribePath, controller.SubscribeAction)
	cellRouterGroup.GET("/dependants", controller.GetDependantsAction)
	cellRouterGroup.POST("/autosum", controller.AutoSumAction)
	cellRouterGroup.POST("/suggest", controller.SuggestFormulaAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
