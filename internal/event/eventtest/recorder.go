// Package eventtest provides an in-memory EventPublisher for tests.
package eventtest

import (
	"context"
	"crm-admin/internal/event"
	"sync"
)

// Recorder keeps every published event. Err, when set, is returned from every publish call
// after the event has been recorded.
type Recorder struct {
	mu  sync.Mutex
	Err error

	Created        []event.CustomerCreatedEvent
	Updated        []event.CustomerUpdatedEvent
	OfferChanges   []event.OfferStatusChangedEvent
	LinksIssued    []event.FormLinkIssuedEvent
	LinksSubmitted []event.FormLinkSubmittedEvent
}

var _ event.EventPublisher = (*Recorder)(nil)

func (r *Recorder) PublishCustomerCreated(_ context.Context, e event.CustomerCreatedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Created = append(r.Created, e)
	return r.Err
}

func (r *Recorder) PublishCustomerUpdated(_ context.Context, e event.CustomerUpdatedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updated = append(r.Updated, e)
	return r.Err
}

func (r *Recorder) PublishOfferStatusChanged(_ context.Context, e event.OfferStatusChangedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.OfferChanges = append(r.OfferChanges, e)
	return r.Err
}

func (r *Recorder) PublishFormLinkIssued(_ context.Context, e event.FormLinkIssuedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LinksIssued = append(r.LinksIssued, e)
	return r.Err
}

func (r *Recorder) PublishFormLinkSubmitted(_ context.Context, e event.FormLinkSubmittedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LinksSubmitted = append(r.LinksSubmitted, e)
	return r.Err
}

// Total is the number of events recorded across all kinds.
func (r *Recorder) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Created) + len(r.Updated) + len(r.OfferChanges) + len(r.LinksIssued) + len(r.LinksSubmitted)
}
