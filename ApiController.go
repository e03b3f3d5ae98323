package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campaignSheets/contracts"
)

type ApiController struct {
	SheetRepository   contracts.SheetRepository
	WebhookDispatcher contracts.WebhookDispatcher
}

type SheetEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
}

type CellEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
	CellId  string `uri:"cell_id" binding:"required"`
}

type BatchUpdateRequest struct {
	AutoExpand bool                     `json:"auto_expand"`
	Operations []contracts.SetOperation `json:"operations" binding:"required"`
}

type SetCellRequest struct {
	RawInput   string `json:"raw_input" binding:"required"`
	AutoExpand bool   `json:"auto_expand"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url" binding:"required"`
}

func NewApiController(sheetRepository contracts.SheetRepository, webhookDispatcher contracts.WebhookDispatcher) *ApiController {
	return &ApiController{
		SheetRepository:   sheetRepository,
		WebhookDispatcher: webhookDispatcher,
	}
}

func (api *ApiController) BatchUpdateAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := BatchUpdateRequest{}
	var cells []*contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err == nil {
		cells, err = api.SheetRepository.BatchSetCells(params.SheetId, request.Operations, request.AutoExpand)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	api.notify(params.SheetId, cells)
	c.JSON(http.StatusCreated, gin.H{"cells": cells})
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}
	var cells []*contracts.Cell
	var row, column int

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err == nil {
		row, column, err = ParseCellId(params.CellId)
	}

	if err == nil {
		cells, err = api.SheetRepository.BatchSetCells(params.SheetId, []contracts.SetOperation{
			{Operation: contracts.OperationSet, Row: row, Column: column, RawInput: request.RawInput},
		}, request.AutoExpand)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	api.notify(params.SheetId, cells)

	cellId := CellName(row, column)
	for _, cell := range cells {
		if cell.CellId == cellId {
			c.JSON(http.StatusCreated, cell)
			return
		}
	}
	c.JSON(http.StatusCreated, gin.H{"cells": cells})
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetCell(params.SheetId, params.CellId)
	}

	if errors.Is(err, contracts.CellNotFoundError) || errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, contracts.InvalidCellIdError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) GetSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	response := &contracts.CellList{}

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetCellList(params.SheetId)
	}

	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) GetDependentsAction(c *gin.Context) {
	params := CellEndpointParams{}
	var dependents []string

	err := c.ShouldBindUri(&params)

	if err == nil {
		dependents, err = api.SheetRepository.GetDependents(params.SheetId, params.CellId)
	}

	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, contracts.InvalidCellIdError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, gin.H{"dependents": dependents})
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SubscribeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	cellId := CanonicalizeCellId(params.CellId)
	if err == nil && !IsCellId(cellId) {
		err = contracts.InvalidCellIdError
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	api.WebhookDispatcher.SetWebhookUrl(strings.ToLower(params.SheetId), cellId, request.WebhookUrl)
	c.JSON(http.StatusOK, gin.H{"webhook_url": request.WebhookUrl})
}

func (api *ApiController) notify(sheetId string, cells []*contracts.Cell) {
	if api.WebhookDispatcher != nil {
		api.WebhookDispatcher.Notify(strings.ToLower(sheetId), cells)
	}
}
