package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fastgrab/admin-svc/internal/domain"
)

// Feed turns order events into dashboard refreshes. Every relevant event
// triggers a full re-query of the order table.
type Feed struct {
	Reader      MessageReader
	Monitor     Refresher
	Broadcaster Broadcaster
	Backoff     time.Duration
}

func NewFeed(reader MessageReader, monitor Refresher, broadcaster Broadcaster) *Feed {
	return &Feed{
		Reader:      reader,
		Monitor:     monitor,
		Broadcaster: broadcaster,
		Backoff:     time.Second,
	}
}

func (f *Feed) Start(ctx context.Context) {
	log.Println("Starting admin order feed...")
	f.refresh(ctx)

	for {
		message, err := f.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Admin order feed stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(f.Backoff):
			}
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}
		f.ProcessEvent(ctx, event)
	}
}

func (f *Feed) ProcessEvent(ctx context.Context, event domain.OrderEvent) {
	switch event.Type {
	case domain.EventOrderCreated, domain.EventOrderVerified:
	default:
		return
	}
	log.Printf("Processing %s for order %s", event.Type, event.OrderID)
	f.refresh(ctx)
}

func (f *Feed) refresh(ctx context.Context) {
	update, err := f.Monitor.Refresh(ctx)
	if err != nil {
		log.Printf("Error refreshing orders: %v", err)
		return
	}
	if f.Broadcaster != nil {
		f.Broadcaster.Broadcast(update)
	}
}
