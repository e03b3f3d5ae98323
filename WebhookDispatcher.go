package main

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	json "github.com/bytedance/sonic"

	"campaignSheets/contracts"
)

const WebhookWorkersCount = 5

type SheetWebhooks map[string]string

type WebhookSendCommand struct {
	Webhook string
	Cell    *contracts.Cell
}

// WebhookDispatcher posts the new computed state of subscribed cells after a
// batch recomputation. Delivery happens outside the batch transaction.
// Subscriptions are written from request handlers and read from delivery
// goroutines, so the registry is guarded.
type WebhookDispatcher struct {
	queue    chan WebhookSendCommand
	mutex    sync.RWMutex
	webhooks map[string]SheetWebhooks
}

func NewWebhookDispatcher() *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:    make(chan WebhookSendCommand, 20),
		webhooks: map[string]SheetWebhooks{},
	}
}

func (manager *WebhookDispatcher) SetWebhookUrl(sheetId string, cellId string, webhookUrl string) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	if _, ok := manager.webhooks[sheetId]; !ok {
		manager.webhooks[sheetId] = SheetWebhooks{}
	}

	if webhookUrl == "" {
		delete(manager.webhooks[sheetId], cellId)
	} else {
		manager.webhooks[sheetId][cellId] = webhookUrl
	}
}

func (manager *WebhookDispatcher) GetWebhookUrl(sheetId string, cellId string) string {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	if _, ok := manager.webhooks[sheetId]; !ok {
		return ""
	}

	return manager.webhooks[sheetId][cellId]
}

func (manager *WebhookDispatcher) Notify(sheetId string, cells []*contracts.Cell) {
	manager.mutex.RLock()
	_, subscribed := manager.webhooks[sheetId]
	manager.mutex.RUnlock()

	if !subscribed {
		return
	}

	go manager.addToQueue(sheetId, cells)
}

func (manager *WebhookDispatcher) addToQueue(sheetId string, cells []*contracts.Cell) {
	// snapshot the matching subscriptions, then enqueue without the lock held
	manager.mutex.RLock()
	sheetWebhooks := manager.webhooks[sheetId]

	commands := make([]WebhookSendCommand, 0, len(cells))
	for _, cell := range cells {
		if webhook, subscribed := sheetWebhooks[cell.CellId]; subscribed {
			commands = append(commands, WebhookSendCommand{
				Webhook: webhook,
				Cell:    cell,
			})
		}
	}
	manager.mutex.RUnlock()

	for _, command := range commands {
		manager.queue <- command
	}
}

func (manager *WebhookDispatcher) Start() {
	for i := 0; i < WebhookWorkersCount; i++ {
		go manager.runWebhookSenderWorker()
	}
}

func (manager *WebhookDispatcher) Close() {
	close(manager.queue)
}

func (manager *WebhookDispatcher) runWebhookSenderWorker() {
	client := &http.Client{
		Timeout: time.Second * 5,
	}

	for command := range manager.queue {
		payload, _ := json.Marshal(command.Cell)
		response, err := client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))

		if err != nil {
			fmt.Printf("Webhook send error: %s\n", err)
		} else if response.StatusCode >= 300 {
			fmt.Printf("Unexpected webhook response HTTP status: %s\n", response.Status)
		}
	}
}
