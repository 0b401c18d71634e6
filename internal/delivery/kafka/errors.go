package kafka

import (
	"errors"
	"fmt"

	"github.com/loyaltyhub/loyalty-points/internal/domain"
)

// errorResponse encodes a service error so the gateway can rebuild an error
// that matches the same domain sentinel.
func errorResponse(correlationID string, err error) *ResponsePayload {
	resp := &ResponsePayload{
		SchemaVersion: SchemaVersion,
		CorrelationID: correlationID,
		Status:        StatusError,
		ErrorMessage:  err.Error(),
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		resp.ErrorCode = ErrCodeValidation
		resp.ErrorField = verr.Field
		resp.ErrorMessage = verr.Reason
	case errors.Is(err, domain.ErrDuplicateKey):
		resp.ErrorCode = ErrCodeDuplicateKey
	case errors.Is(err, domain.ErrCustomerNotFound):
		resp.ErrorCode = ErrCodeCustomerNotFound
	case errors.Is(err, domain.ErrBusinessNotFound):
		resp.ErrorCode = ErrCodeBusinessNotFound
	case errors.Is(err, domain.ErrPersistence):
		resp.ErrorCode = ErrCodePersistence
	default:
		resp.ErrorCode = ErrCodeInternalError
	}
	return resp
}

func invalidRequestResponse(correlationID, message string) *ResponsePayload {
	return &ResponsePayload{
		SchemaVersion: SchemaVersion,
		CorrelationID: correlationID,
		Status:        StatusError,
		ErrorCode:     ErrCodeInvalidRequest,
		ErrorMessage:  message,
	}
}

func (r *ResponsePayload) Err() error {
	if r.Status != StatusError {
		return nil
	}
	switch r.ErrorCode {
	case ErrCodeValidation:
		return &domain.ValidationError{Field: r.ErrorField, Reason: r.ErrorMessage}
	case ErrCodeDuplicateKey:
		return domain.ErrDuplicateKey
	case ErrCodeCustomerNotFound:
		return domain.ErrCustomerNotFound
	case ErrCodeBusinessNotFound:
		return domain.ErrBusinessNotFound
	case ErrCodePersistence:
		return fmt.Errorf("%w: %s", domain.ErrPersistence, r.ErrorMessage)
	case ErrCodeInvalidRequest:
		return &domain.ValidationError{Field: "payload", Reason: r.ErrorMessage}
	default:
		return errors.New(r.ErrorMessage)
	}
}
