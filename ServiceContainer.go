package main

import (
	"github.com/gin-gonic/gin"
	"go.etcd.io/bbolt"

	"campaignSheets/contracts"
)

type ServiceContainer struct {
	Database          *bbolt.DB
	FormulaEngine     contracts.FormulaEngine
	SheetRepository   contracts.SheetRepository
	WebhookDispatcher contracts.WebhookDispatcher
	ApiController     contracts.ApiController
	Router            *gin.Engine
}

func BuildServiceContainer(configDbPath string) (container ServiceContainer, err error) {
	container.Database, err = bbolt.Open(configDbPath, 0600, nil)
	if err != nil {
		return
	}

	serializer := NewCellBinarySerializer()
	container.FormulaEngine = NewFormulaEngine()
	container.WebhookDispatcher = NewWebhookDispatcher()
	container.SheetRepository = NewSheetRepository(container.Database, container.FormulaEngine, serializer)
	container.ApiController = NewApiController(container.SheetRepository, container.WebhookDispatcher)

	container.Router = SetupRouter(container.ApiController)

	return
}
