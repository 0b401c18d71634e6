package kafka

import (
	"context"
	"fmt"
	"strings"

	"github.com/loyaltyhub/loyalty-points/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Topics lists every topic the service produces to or consumes from.
func Topics(instanceID string) []string {
	topics := make([]string, 0, 2*len(RequestTopics)+1)
	for _, t := range RequestTopics {
		topics = append(topics, t, t+TopicDLQSuffix)
	}
	return append(topics, ReplyTopic(instanceID))
}

func EnsureTopics(ctx context.Context, client *kgo.Client, cfg *config.Config) error {
	adm := kadm.NewClient(client)

	partitions := cfg.TopicPartitions()
	dlqPartitions := cfg.DLQPartitions()
	replicationFactor := cfg.ReplicationFactor()

	for _, topic := range Topics(cfg.KafkaInstanceID) {
		p := partitions
		if strings.HasSuffix(topic, TopicDLQSuffix) {
			p = dlqPartitions
		}

		resp, err := adm.CreateTopics(ctx, int32(p), replicationFactor, nil, topic)
		if err != nil {
			return fmt.Errorf("failed to create topic %s: %w", topic, err)
		}
		for _, detail := range resp {
			if detail.Err != nil && !strings.Contains(detail.Err.Error(), "already exists") {
				return fmt.Errorf("failed to create topic %s: %w", detail.Topic, detail.Err)
			}
		}
	}

	log.Info().Int("partitions", partitions).Msg("kafka topics ensured")
	return nil
}
