package service

import (
	"context"

	"fastgrab/admin-svc/internal/domain"
	"fastgrab/admin-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type OrderReader interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

type PinStore interface {
	Pinned(ctx context.Context) (string, error)
	Pin(ctx context.Context, orderID string) error
	Unpin(ctx context.Context) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Broadcaster interface {
	Broadcast(update domain.Update)
}

type Refresher interface {
	Refresh(ctx context.Context) (domain.Update, error)
}

type MonitorInterface interface {
	Page(ctx context.Context, page, size int) (domain.Page, error)
	Stats(ctx context.Context) (domain.Stats, error)
	Pin(ctx context.Context, orderID string) error
	Unpin(ctx context.Context) error
	AllOrders(ctx context.Context) ([]domain.Order, error)
}

type FeedInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.OrderEvent)
}

var (
	_ OrderReader      = (*storage.PostgresRepository)(nil)
	_ PinStore         = (*storage.RedisPinStore)(nil)
	_ MessageReader    = (*kafka.Reader)(nil)
	_ MonitorInterface = (*Monitor)(nil)
	_ Refresher        = (*Monitor)(nil)
	_ FeedInterface    = (*Feed)(nil)
)
