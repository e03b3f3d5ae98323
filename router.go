package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campaignSheets/contracts"
)

const ApiVersion = "v1"

const subscribePath = "subscribe"
const dependentsPath = "dependents"

func SetupRouter(controller contracts.ApiController) *gin.Engine {
	router := gin.New()

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+subscribePath, controller.SubscribeAction)
	apiRouterGroup.GET("/:sheet_id/:cell_id/"+dependentsPath, controller.GetDependentsAction)

	apiRouterGroup.POST("/:sheet_id/:cell_id", controller.SetCellAction)
	apiRouterGroup.GET("/:sheet_id/:cell_id", controller.GetCellAction)

	apiRouterGroup.POST("/:sheet_id", controller.BatchUpdateAction)
	apiRouterGroup.GET("/:sheet_id", controller.GetSheetAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
