package kafka

import (
	"context"
	"encoding/json"

	"github.com/loyaltyhub/loyalty-points/internal/usecase"
	"github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is the part of *kgo.Client used to publish replies and requests.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Consumer serves write requests from the request topics. Failures are
// answered on the reply topic and never redelivered; payloads that cannot be
// decoded are also copied to the topic's DLQ.
type Consumer struct {
	client   *kgo.Client
	producer Producer
	service  usecase.LoyaltyGateway
	ready    chan struct{}
}

func NewConsumer(client *kgo.Client, service usecase.LoyaltyGateway) *Consumer {
	return &Consumer{
		client:   client,
		producer: client,
		service:  service,
		ready:    make(chan struct{}),
	}
}

func (c *Consumer) Start(ctx context.Context) {
	close(c.ready)
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			log.Error().Err(err).Str("topic", topic).Int32("partition", partition).Msg("consumer poll error")
		})

		iter := fetches.RecordIter()
		for !iter.Done() {
			c.processRecord(ctx, iter.Next())
		}

		if err := c.client.CommitRecords(ctx, fetches.Records()...); err != nil {
			log.Error().Err(err).Msg("failed to commit records")
		}
	}
}

func (c *Consumer) Ready() <-chan struct{} {
	return c.ready
}

func (c *Consumer) processRecord(ctx context.Context, record *kgo.Record) {
	logger := log.With().
		Str("topic", record.Topic).
		Int32("partition", record.Partition).
		Int64("offset", record.Offset).
		Logger()
	ctx = logger.WithContext(ctx)

	var req RequestPayload
	if err := json.Unmarshal(record.Value, &req); err != nil {
		logger.Warn().Err(err).Msg("undecodable request")
		c.deadLetter(ctx, record, "invalid request payload")
		return
	}
	if req.SchemaVersion != SchemaVersion {
		c.reject(ctx, record, req, "unsupported schema version")
		return
	}

	var resp *ResponsePayload
	switch record.Topic {
	case TopicRegisterCustomerRequest:
		resp = c.handleRegisterCustomer(ctx, req)
	case TopicRegisterBusinessRequest:
		resp = c.handleRegisterBusiness(ctx, req)
	case TopicCheckInRequest:
		resp = c.handleCheckIn(ctx, req)
	default:
		logger.Warn().Msg("record from unexpected topic")
		return
	}

	c.sendResponse(ctx, req.ReplyTo, resp)
}

func (c *Consumer) handleRegisterCustomer(ctx context.Context, req RequestPayload) *ResponsePayload {
	customer, err := c.service.RegisterCustomer(ctx, req.Phone, req.Name)
	if err != nil {
		return errorResponse(req.CorrelationID, err)
	}
	resp := successResponse(req.CorrelationID)
	resp.Customer = customer
	return resp
}

func (c *Consumer) handleRegisterBusiness(ctx context.Context, req RequestPayload) *ResponsePayload {
	business, err := c.service.RegisterBusiness(ctx, req.Phone, req.Name, req.Category, req.PointsPerVisit)
	if err != nil {
		return errorResponse(req.CorrelationID, err)
	}
	resp := successResponse(req.CorrelationID)
	resp.Business = business
	return resp
}

func (c *Consumer) handleCheckIn(ctx context.Context, req RequestPayload) *ResponsePayload {
	visit, err := c.service.CheckIn(ctx, req.Phone, req.BusinessID, req.Points)
	if err != nil {
		return errorResponse(req.CorrelationID, err)
	}
	resp := successResponse(req.CorrelationID)
	resp.Visit = visit
	return resp
}

func (c *Consumer) sendResponse(ctx context.Context, topic string, resp *ResponsePayload) {
	if topic == "" {
		log.Ctx(ctx).Warn().Str("correlation_id", resp.CorrelationID).Msg("request has no reply topic")
		return
	}
	payload, _ := json.Marshal(resp)
	record := &kgo.Record{
		Topic: topic,
		Value: payload,
	}
	if err := c.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("reply_to", topic).Msg("failed to send response")
	}
}

// reject answers a decodable but unusable request and parks it in the DLQ.
func (c *Consumer) reject(ctx context.Context, record *kgo.Record, req RequestPayload, message string) {
	c.sendResponse(ctx, req.ReplyTo, invalidRequestResponse(req.CorrelationID, message))
	c.produceDLQ(ctx, record, message)
}

func (c *Consumer) deadLetter(ctx context.Context, record *kgo.Record, message string) {
	var req RequestPayload
	_ = json.Unmarshal(record.Value, &req)
	if req.ReplyTo != "" {
		c.sendResponse(ctx, req.ReplyTo, invalidRequestResponse(req.CorrelationID, message))
	}
	c.produceDLQ(ctx, record, message)
}

func (c *Consumer) produceDLQ(ctx context.Context, record *kgo.Record, message string) {
	dlqRecord := &kgo.Record{
		Topic: record.Topic + TopicDLQSuffix,
		Key:   record.Key,
		Value: record.Value,
		Headers: []kgo.RecordHeader{
			{Key: ErrorHeaderKey, Value: []byte(message)},
		},
	}
	if err := c.producer.ProduceSync(ctx, dlqRecord).FirstErr(); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("dlq", dlqRecord.Topic).Msg("failed to dead-letter record")
	}
}

func successResponse(correlationID string) *ResponsePayload {
	return &ResponsePayload{
		SchemaVersion: SchemaVersion,
		CorrelationID: correlationID,
		Status:        StatusSuccess,
	}
}
