package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/domain"
)

type MessageType string

const (
	MessageTypeDomainEvent   MessageType = "DOMAIN_EVENT"
	MessageTypeHistoryExport MessageType = "HISTORY_EXPORT"
)

type Message struct {
	Type      MessageType         `json:"type"`
	Event     *domain.DomainEvent `json:"event,omitempty"`
	Timestamp time.Time           `json:"timestamp"`

	// Fields for history export
	AggregateType string `json:"aggregateType,omitempty"`
	AggregateID   string `json:"aggregateId,omitempty"`
	BusinessID    string `json:"businessId,omitempty"`
	RequestedBy   string `json:"requestedBy,omitempty"`
}

type ReceivedMessage struct {
	Message       Message
	ReceiptHandle *string
	// DecodeErr is set when the body could not be decoded
	DecodeErr error
}

// Client is the subset of the SQS API the service uses
type Client interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type SQSService struct {
	client          Client
	eventQueueURL   string
	historyQueueURL string
}

func NewSQSService(client Client, config *config.SQSConfig) *SQSService {
	return &SQSService{
		client:          client,
		eventQueueURL:   config.EventQueueURL,
		historyQueueURL: config.HistoryQueueURL,
	}
}

func (s *SQSService) EventQueueURL() string {
	return s.eventQueueURL
}

func (s *SQSService) HistoryQueueURL() string {
	return s.historyQueueURL
}

// SendEvent delivers an appended event to the projector. On a FIFO queue the
// events of one aggregate share a message group.
func (s *SQSService) SendEvent(ctx context.Context, event *domain.DomainEvent) error {
	msg := Message{
		Type:      MessageTypeDomainEvent,
		Event:     event,
		Timestamp: event.Timestamp,
	}

	return s.sendMessage(ctx, msg, s.eventQueueURL, event.AggregateID, event.ID)
}

func (s *SQSService) SendHistoryExport(ctx context.Context, aggregateID, businessID, requestedBy string) error {
	now := time.Now().UTC()
	msg := Message{
		Type:          MessageTypeHistoryExport,
		AggregateType: domain.AggregateTypeUser,
		AggregateID:   aggregateID,
		BusinessID:    businessID,
		RequestedBy:   requestedBy,
		Timestamp:     now,
	}

	return s.sendMessage(ctx, msg, s.historyQueueURL, aggregateID, fmt.Sprintf("%s-%d", aggregateID, now.UnixNano()))
}

func (s *SQSService) sendMessage(ctx context.Context, msg Message, queueURL, groupID, deduplicationID string) error {
	msgBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	input := &sqs.SendMessageInput{
		MessageBody: aws.String(string(msgBody)),
		QueueUrl:    aws.String(queueURL),
	}
	if config.IsFIFO(queueURL) {
		input.MessageGroupId = aws.String(groupID)
		input.MessageDeduplicationId = aws.String(deduplicationID)
	}

	_, err = s.client.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (s *SQSService) ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]ReceivedMessage, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(queueURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     waitTimeSeconds,
	}

	output, err := s.client.ReceiveMessage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	messages := make([]ReceivedMessage, 0, len(output.Messages))
	for _, msg := range output.Messages {
		received := ReceivedMessage{ReceiptHandle: msg.ReceiptHandle}
		if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &received.Message); err != nil {
			received.DecodeErr = fmt.Errorf("failed to unmarshal message: %w", err)
		}
		messages = append(messages, received)
	}

	return messages, nil
}

func (s *SQSService) DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error {
	input := &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: receiptHandle,
	}

	_, err := s.client.DeleteMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}
