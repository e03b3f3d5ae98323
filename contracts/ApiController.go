package contracts

import "github.com/gin-gonic/gin"

type ApiController interface {
	BatchUpdateAction(c *gin.Context)
	SetCellAction(c *gin.Context)
	GetCellAction(c *gin.Context)
	GetSheetAction(c *gin.Context)
	GetDependentsAction(c *gin.Context)
	SubscribeAction(c *gin.Context)
}
