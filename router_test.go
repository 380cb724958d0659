package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartSheet/mocks"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	expectedApiRoutes := [][3]string{
		{http.MethodPost, "/sheets/sheet1/cells/A1", "SetCellAction"},
		{http.MethodGet, "/sheets/sheet1/cells/A1", "GetCellAction"},
		{http.MethodPost, "/sheets/sheet1/cells/A1/subscribe", "SubscribeAction"},
		{http.MethodGet, "/sheets/sheet1/cells/A1/dependants", "GetDependantsAction"},
		{http.MethodPost, "/sheets/sheet1/cells/A6/autosum", "AutoSumAction"},
		{http.MethodPost, "/sheets/sheet1/cells/A1/suggest", "SuggestFormulaAction"},
		{http.MethodGet, "/sheets/sheet1", "GetSheetAction"},
		{http.MethodGet, "/sheets/sheet1/chart", "ChartAction"},
		{http.MethodPost, "/sheets/sheet1/analyze", "AnalyzeAction"},
		{http.MethodPost, "/sheets/sheet1/template", "LoadTemplateAction"},
		{http.MethodGet, "/sheets/sheet1/export/xlsx", "ExportAction"},
	}

	for _, expectedRoute := range expectedApiRoutes {
		t.Run("Route "+expectedRoute[2], func(t *testing.T) {
			apiController := mocks.NewApiController(t)
			router := SetupRouter(apiController)

			apiController.On(expectedRoute[2], mock.Anything).Return()

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(expectedRoute[0], "/api/"+ApiVersion+expectedRoute[1], nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			apiController.AssertNumberOfCalls(t, expectedRoute[2], 1)
		})
	}

	t.Run("unknown route", func(t *testing.T) {
		apiController := mocks.NewApiController(t)
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/"+ApiVersion+"/sheet1/A1", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("healthcheck", func(t *testing.T) {
		apiController := mocks.NewApiController(t)
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/healthcheck", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "health", w.Body.String())
	})
}
