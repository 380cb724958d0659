package main

import (
	"github.com/gin-gonic/gin"
	"go.etcd.io/bbolt"

	"smartSheet/contracts"
)

type ServiceContainer struct {
	Database          *bbolt.DB
	Codec             contracts.AddressCodec
	FormulaEngine     contracts.FormulaEngine
	GridRecalculator  contracts.GridRecalculator
	WebhookDispatcher contracts.WebhookDispatcher
	SheetRepository   contracts.SheetRepository
	Assistant         contracts.FormulaAssistant
	Exporter          contracts.SheetExporter
	ApiController     contracts.ApiController
	Router            *gin.Engine
}

func BuildServiceContainer(config Config) (container ServiceContainer, err error) {
	container.Database, err = bbolt.Open(config.DatabaseFilepath, 0600, nil)
	if err != nil {
		return
	}

	container.Codec = NewAddressCodec()
	serializer := NewCellBinarySerializer()
	canonicalizer := NewCanonicalizer(container.Codec)

	container.FormulaEngine = NewFormulaEngine(container.Codec, NewReferenceResolver(container.Codec), NewExpressionEvaluator())
	container.GridRecalculator = NewGridRecalculator(container.FormulaEngine)
	container.WebhookDispatcher = NewWebhookDispatcher()
	container.SheetRepository = NewSheetRepository(
		container.Database, container.FormulaEngine, container.GridRecalculator,
		serializer, canonicalizer, container.WebhookDispatcher,
	)

	if config.GeminiApiKey == "" {
		container.Assistant = &NoopAssistant{}
	} else {
		container.Assistant = NewGeminiAssistant(config.GeminiApiKey, config.GeminiModel, config.GeminiEndpoint, container.Codec)
	}

	container.Exporter = NewSheetExporter(container.Codec)

	apiController := NewApiController(
		container.SheetRepository, container.WebhookDispatcher,
		container.Codec, container.Assistant, container.Exporter,
	)
	apiController.GridRows, apiController.GridCols = config.GridRows, config.GridCols
	container.ApiController = apiController

	container.Router = SetupRouter(container.ApiController)

	return
}
