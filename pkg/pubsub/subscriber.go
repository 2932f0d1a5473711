package pubsub

import (
	"context"
	"time"
)

type SubscribeHandler func(context.Context, *Pack, time.Time)

type Subscriber interface {
	// Subscribe blocks until the subscriber is ready to consume, handling runs
	// in background until ctx is done or Stop is called.
	Subscribe(ctx context.Context)
	Stop(ctx context.Context) error
}
