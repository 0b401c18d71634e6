package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"github.com/loyaltyhub/loyalty-points/internal/usecase"
	"github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kgo"
)

var ErrReplyTimeout = errors.New("timeout waiting for response")

// Gateway publishes write requests and waits for the matching reply on this
// instance's reply topic. Replies are delivered through HandleResponse.
type Gateway struct {
	producer    Producer
	replyTo     string
	timeout     time.Duration
	pendingResp sync.Map
}

func NewGateway(producer Producer, instanceID string) *Gateway {
	return &Gateway{
		producer: producer,
		replyTo:  ReplyTopic(instanceID),
		timeout:  RequestTimeout,
	}
}

func (g *Gateway) RegisterCustomer(ctx context.Context, phone, name string) (*domain.Customer, error) {
	req := g.newRequest()
	req.Phone = phone
	req.Name = name

	resp, err := g.requestReply(ctx, TopicRegisterCustomerRequest, []byte(phone), req)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Customer, nil
}

func (g *Gateway) RegisterBusiness(ctx context.Context, phone, name, category string, pointsPerVisit int) (*domain.Business, error) {
	req := g.newRequest()
	req.Phone = phone
	req.Name = name
	req.Category = category
	req.PointsPerVisit = pointsPerVisit

	resp, err := g.requestReply(ctx, TopicRegisterBusinessRequest, []byte(phone), req)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Business, nil
}

// CheckIn keys the request by business and phone so check-ins for one pair
// are handled in order on a single partition.
func (g *Gateway) CheckIn(ctx context.Context, customerPhone string, businessID uuid.UUID, points int) (*domain.Visit, error) {
	req := g.newRequest()
	req.Phone = customerPhone
	req.BusinessID = businessID
	req.Points = points

	key := fmt.Sprintf("%s:%s", businessID, customerPhone)
	resp, err := g.requestReply(ctx, TopicCheckInRequest, []byte(key), req)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Visit, nil
}

func (g *Gateway) newRequest() RequestPayload {
	return RequestPayload{
		SchemaVersion: SchemaVersion,
		CorrelationID: uuid.New().String(),
		ReplyTo:       g.replyTo,
	}
}

func (g *Gateway) requestReply(ctx context.Context, topic string, key []byte, req RequestPayload) (*ResponsePayload, error) {
	respChan := make(chan *ResponsePayload, 1)
	g.pendingResp.Store(req.CorrelationID, respChan)
	defer g.pendingResp.Delete(req.CorrelationID)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	record := newRecord(topic, key, payload)

	if err := g.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return nil, fmt.Errorf("%w: produce %s: %w", domain.ErrPersistence, topic, err)
	}

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case resp := <-respChan:
		return resp, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrPersistence, topic, ctx.Err())
	case <-timer.C:
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrPersistence, topic, ErrReplyTimeout)
	}
}

func (g *Gateway) HandleResponse(payload []byte) {
	var resp ResponsePayload
	if err := json.Unmarshal(payload, &resp); err != nil {
		log.Warn().Err(err).Msg("failed to decode response payload")
		return
	}

	if ch, ok := g.pendingResp.Load(resp.CorrelationID); ok {
		select {
		case ch.(chan *ResponsePayload) <- &resp:
		default:
		}
		return
	}

	log.Debug().Str("correlation_id", resp.CorrelationID).Msg("no pending request for response")
}

func newRecord(topic string, key, value []byte) *kgo.Record {
	return &kgo.Record{
		Topic: topic,
		Key:   key,
		Value: value,
	}
}

var _ usecase.LoyaltyGateway = (*Gateway)(nil)
