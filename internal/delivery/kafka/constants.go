package kafka

import "time"

const (
	TopicRegisterCustomerRequest = "loyalty.customer.register.req"
	TopicRegisterBusinessRequest = "loyalty.business.register.req"
	TopicCheckInRequest          = "loyalty.checkin.req"
	TopicReplyPrefix             = "loyalty.reply."
	TopicDLQSuffix               = ".dlq"

	SchemaVersion  = 1
	RequestTimeout = 3 * time.Second

	ErrorHeaderKey = "x-error"
)

// RequestTopics are consumed by the loyalty consumer group.
var RequestTopics = []string{
	TopicRegisterCustomerRequest,
	TopicRegisterBusinessRequest,
	TopicCheckInRequest,
}

func ReplyTopic(instanceID string) string {
	return TopicReplyPrefix + instanceID
}
