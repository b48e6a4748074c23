package event_publisher

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
)

// NewRedisPublisher builds the redis stream publisher every order event and
// confirmation command goes through. Callers wrap it with the correlation
// and tracing decorators before handing it to the buses.
func NewRedisPublisher(redisClient *redis.Client, watermillLogger watermill.LoggerAdapter) (message.Publisher, error) {
	return redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: redisClient,
	}, watermillLogger)
}
