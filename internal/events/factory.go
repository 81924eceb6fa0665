package events

import (
	"fmt"
	"strings"

	"github.com/bytebitgo/rackview/internal/config"
	"github.com/bytebitgo/rackview/internal/utils"
)

// NewBus creates a Bus from configuration. The default backend is the
// in-process memory bus; external brokers are opt-in.
func NewBus(cfg config.BusConfig) (Bus, error) {
	busType := utils.BusType(strings.ToLower(cfg.Type))

	if busType == "" {
		busType = utils.BusTypeMemory
	}

	switch busType {
	case utils.BusTypeMemory:
		return newMemoryBus(), nil

	case utils.BusTypeNATS:
		return newNATSBus(cfg.URL)

	case utils.BusTypeRedis:
		return newRedisBus(RedisConfig{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Stream:   cfg.RedisStream,
			Group:    cfg.RedisGroup,
			Consumer: cfg.RedisConsumer,
		})

	case utils.BusTypeKafka:
		return newKafkaBus(KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			GroupID: cfg.KafkaGroupID,
		})

	default:
		return nil, fmt.Errorf("unsupported bus type: %s (supported: memory, nats, redis, kafka)", cfg.Type)
	}
}
