package main

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.alis.build/alog"

	"smartSheet/contracts"
)

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApiController struct {
	SheetRepository   contracts.SheetRepository
	WebhookDispatcher contracts.WebhookDispatcher
	Canonicalizer     contracts.Canonicalizer
	Codec             contracts.AddressCodec
	Assistant         contracts.FormulaAssistant
	Exporter          contracts.SheetExporter
	ChartExtractor    *ChartDataExtractor
	GridRows          int
	GridCols          int
}

type CellEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
	CellId  string `uri:"cell_id" binding:"required"`
}

type SheetEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
}

type ExportEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
	Format  string `uri:"format" binding:"required,oneof=xlsx csv"`
}

// Value is a pointer so an explicit "" (clear the cell) passes `required`
type SetCellRequest struct {
	Value *string `json:"value" binding:"required"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url" binding:"required,url"`
}

type SuggestFormulaRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type SuggestFormulaResponse struct {
	Formula string          `json:"formula"`
	Cell    *contracts.Cell `json:"cell"`
}

func NewApiController(
	sheetRepository contracts.SheetRepository, webhookDispatcher contracts.WebhookDispatcher,
	codec contracts.AddressCodec, assistant contracts.FormulaAssistant, exporter contracts.SheetExporter,
) *ApiController {
	return &ApiController{
		SheetRepository:   sheetRepository,
		WebhookDispatcher: webhookDispatcher,
		Canonicalizer:     NewCanonicalizer(codec),
		Codec:             codec,
		Assistant:         assistant,
		Exporter:          exporter,
		ChartExtractor:    NewChartDataExtractor(codec),
		GridRows:          DefaultGridRows,
		GridCols:          DefaultGridCols,
	}
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetCell(params.SheetId, params.CellId)
	}

	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	api.setCell(c, params.SheetId, params.CellId, *request.Value)
}

func (api *ApiController) GetSheetAction(c *gin.Context) {
	sheet, err := api.getSheet(c)

	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, sheet)
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SubscribeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	address, err := api.Canonicalizer.CanonicalizeCellId(params.CellId)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	api.WebhookDispatcher.SetWebhookUrl(api.Canonicalizer.CanonicalizeSheetId(params.SheetId), address, request.WebhookUrl)

	c.JSON(http.StatusCreated, gin.H{"webhook_url": request.WebhookUrl})
}

func (api *ApiController) GetDependantsAction(c *gin.Context) {
	params := CellEndpointParams{}
	var dependants []string

	err := c.ShouldBindUri(&params)
	if err == nil {
		dependants, err = api.SheetRepository.GetDependants(params.SheetId, params.CellId)
	}

	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, gin.H{"dependants": dependants})
	}
}

func (api *ApiController) AutoSumAction(c *gin.Context) {
	params := CellEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	address, err := api.Canonicalizer.CanonicalizeCellId(params.CellId)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	formula, err := AutoSumFormula(api.Codec, address)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	api.setCell(c, params.SheetId, address, formula)
}

func (api *ApiController) SuggestFormulaAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SuggestFormulaRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	address, err := api.Canonicalizer.CanonicalizeCellId(params.CellId)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	sheet, err := api.SheetRepository.GetSheet(params.SheetId)
	if errors.Is(err, contracts.SheetNotFoundError) {
		sheet, err = contracts.Sheet{}, nil
	}
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	response := SuggestFormulaResponse{}
	response.Formula, err = api.Assistant.SuggestFormula(c.Request.Context(), request.Prompt, sheet, address)
	if err != nil {
		alog.Warnf(c.Request.Context(), "formula suggestion for %s!%s: %v", params.SheetId, address, err)
		response.Formula = ""
	}

	if response.Formula != "" {
		response.Cell, err = api.SheetRepository.SetCell(params.SheetId, address, response.Formula)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, response)
}

func (api *ApiController) AnalyzeAction(c *gin.Context) {
	sheet, err := api.getSheet(c)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	analysis, err := api.Assistant.AnalyzeData(c.Request.Context(), sheet)
	if err != nil {
		alog.Warnf(c.Request.Context(), "sheet analysis: %v", err)
		analysis = FallbackAnalysis()
	}

	c.JSON(http.StatusOK, analysis)
}

func (api *ApiController) ChartAction(c *gin.Context) {
	sheet, err := api.getSheet(c)

	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, api.ChartExtractor.Extract(sheet))
	}
}

func (api *ApiController) ExportAction(c *gin.Context) {
	params := ExportEndpointParams{}
	var sheet contracts.Sheet

	err := c.ShouldBindUri(&params)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	sheet, err = api.SheetRepository.GetSheet(params.SheetId)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	buffer := &bytes.Buffer{}
	contentType := xlsxContentType
	if params.Format == ExportFormatCSV {
		contentType = "text/csv"
		err = api.Exporter.ExportCSV(buffer, sheet, api.GridRows, api.GridCols)
	} else {
		err = api.Exporter.ExportXLSX(buffer, sheet, api.GridRows, api.GridCols)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fileName := api.Canonicalizer.CanonicalizeSheetId(params.SheetId) + "." + params.Format
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, contentType, buffer.Bytes())
}

func (api *ApiController) LoadTemplateAction(c *gin.Context) {
	params := SheetEndpointParams{}
	var sheet contracts.Sheet

	err := c.ShouldBindUri(&params)
	if err == nil {
		sheet, err = api.SheetRepository.LoadSheet(params.SheetId, SalaryTemplate())
	}

	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusCreated, sheet)
	}
}

func (api *ApiController) setCell(c *gin.Context, sheetId string, cellId string, rawValue string) {
	response, err := api.SheetRepository.SetCell(sheetId, cellId, rawValue)

	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

func (api *ApiController) getSheet(c *gin.Context) (contracts.Sheet, error) {
	params := SheetEndpointParams{}

	if err := c.ShouldBindUri(&params); err != nil {
		return nil, err
	}

	return api.SheetRepository.GetSheet(params.SheetId)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, contracts.CellNotFoundError), errors.Is(err, contracts.SheetNotFoundError):
		return http.StatusNotFound
	case errors.Is(err, contracts.InvalidAddressError), errors.Is(err, contracts.InvalidSheetIdError):
		return http.StatusBadRequest
	case errors.Is(err, contracts.AutoSumRangeError):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
