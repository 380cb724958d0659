package contracts

import "github.com/gin-gonic/gin"

type ApiController interface {
	SetCellAction(c *gin.Context)
	GetCellAction(c *gin.Context)
	GetSheetAction(c *gin.Context)
	SubscribeAction(c *gin.Context)
	GetDependantsAction(c *gin.Context)
	AutoSumAction(c *gin.Context)
	SuggestFormulaAction(c *gin.Context)
	AnalyzeAction(c *gin.Context)
	ChartAction(c *gin.Context)
	ExportAction(c *gin.Context)
	LoadTemplateAction(c *gin.Context)
}
