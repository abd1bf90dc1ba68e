package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskQuotePDFPrerender = "quotes.pdf.prerender"

const TaskQuotePDFCleanup = "quotes.pdf.cleanup"

type QuotePDFPrerenderPayload struct {
	QuoteID string `json:"quoteId"`
	OwnerID string `json:"ownerId"`
}

type QuotePDFCleanupPayload struct {
	QuoteID string `json:"quoteId"`
}

func NewQuotePDFPrerenderTask(payload QuotePDFPrerenderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuotePDFPrerender, data), nil
}

func ParseQuotePDFPrerenderPayload(task *asynq.Task) (QuotePDFPrerenderPayload, error) {
	var payload QuotePDFPrerenderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuotePDFPrerenderPayload{}, err
	}
	return payload, nil
}

func NewQuotePDFCleanupTask(payload QuotePDFCleanupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuotePDFCleanup, data), nil
}

func ParseQuotePDFCleanupPayload(task *asynq.Task) (QuotePDFCleanupPayload, error) {
	var payload QuotePDFCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuotePDFCleanupPayload{}, err
	}
	return payload, nil
}
