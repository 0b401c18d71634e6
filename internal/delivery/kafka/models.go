package kafka

import (
	"github.com/google/uuid"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
)

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

const (
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeDuplicateKey     = "DUPLICATE_KEY"
	ErrCodeCustomerNotFound = "CUSTOMER_NOT_FOUND"
	ErrCodeBusinessNotFound = "BUSINESS_NOT_FOUND"
	ErrCodePersistence      = "PERSISTENCE_FAILURE"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

type RequestPayload struct {
	SchemaVersion  int       `json:"schema_version"`
	CorrelationID  string    `json:"correlation_id"`
	ReplyTo        string    `json:"reply_to"`
	Phone          string    `json:"phone_number,omitempty"`
	Name           string    `json:"name,omitempty"`
	Category       string    `json:"type,omitempty"`
	PointsPerVisit int       `json:"points_per_visit,omitempty"`
	BusinessID     uuid.UUID `json:"business_id,omitempty"`
	Points         int       `json:"points,omitempty"`
}

type ResponsePayload struct {
	SchemaVersion int              `json:"schema_version"`
	CorrelationID string           `json:"correlation_id"`
	Status        string           `json:"status"`
	ErrorCode     string           `json:"error_code,omitempty"`
	ErrorField    string           `json:"error_field,omitempty"`
	ErrorMessage  string           `json:"error_message,omitempty"`
	Customer      *domain.Customer `json:"customer,omitempty"`
	Business      *domain.Business `json:"business,omitempty"`
	Visit         *domain.Visit    `json:"visit,omitempty"`
}
