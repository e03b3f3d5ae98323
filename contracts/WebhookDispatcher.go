package contracts

// WebhookDispatcher notifies subscribers about recomputed cells. Cell ids are
// canonical A1 names, sheet ids are lowercased.
type WebhookDispatcher interface {
	SetWebhookUrl(sheetId string, cellId string, webhookUrl string)
	GetWebhookUrl(sheetId string, cellId string) string
	Notify(sheetId string, cells []*Cell)
	Start()
	Close()
}
