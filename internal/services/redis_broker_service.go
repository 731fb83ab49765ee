package services

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisBrokerService implements interfaces.Broker on redis pub/sub.
type RedisBrokerService struct {
	client *redis.Client
}

func NewRedisBrokerService(client *redis.Client) *RedisBrokerService {
	return &RedisBrokerService{client: client}
}

func (rb *RedisBrokerService) Publish(ctx context.Context, channel string, message []byte) error {
	return rb.client.Publish(ctx, channel, message).Err()
}

func (rb *RedisBrokerService) Subscribe(ctx context.Context, channel string, handler func(message []byte)) error {
	pubsub := rb.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return err
	}

	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					slog.Info("redis subscription closed", "channel", channel)
					return
				}
				handler([]byte(msg.Payload))
			}
		}
	}()
	return nil
}
