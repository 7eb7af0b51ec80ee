package models

import "context"

// HandlerResult is the semantic outcome of an ingest call. It travels inside
// the response body; the transport status is always 200.
type HandlerResult struct {
	StatusCode int
	Message    string
}

// Message is a queued payload. ReceiptHandle is only set on messages that
// were received from a queue and must be passed back to delete them.
type Message struct {
	ID            string
	ReceiptHandle string
	Body          string
}

type JobRequest struct {
	Batch  []Message
	JobCtx context.Context
	Result chan<- error // where the worker reports the outcome
}
