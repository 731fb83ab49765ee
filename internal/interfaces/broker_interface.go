package interfaces

import "context"

// Broker fans messages out to every instance listening on a channel.
type Broker interface {
	Publish(ctx context.Context, channel string, message []byte) error
	// Subscribe returns once the subscription is live; handler runs until ctx is done.
	Subscribe(ctx context.Context, channel string, handler func(message []byte)) error
}
