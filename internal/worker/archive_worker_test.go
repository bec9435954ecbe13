package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/mocks"
	"github.com/kingrain94/user-management-api/internal/service/queue"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

const testHistoryQueueURL = "http://localhost:4566/000000000000/user-management-history-queue"

type ArchiveWorkerTestSuite struct {
	suite.Suite
	queue    *mocks.MessageQueue
	events   *mocks.EventRepository
	uploader *mocks.ObjectUploader
	worker   *ArchiveWorker
	ctx      context.Context
	now      time.Time
}

func (s *ArchiveWorkerTestSuite) SetupTest() {
	s.queue = mocks.NewMessageQueue(s.T())
	s.events = mocks.NewEventRepository(s.T())
	s.uploader = mocks.NewObjectUploader(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	s.worker = NewArchiveWorker(s.queue, testHistoryQueueURL, s.events, logger.NewNop(), 1, time.Second, s.uploader,
		&config.S3Config{BucketName: "history", KeyPrefix: "user-events"})
	s.worker.now = func() time.Time { return s.now }
}

func TestArchiveWorkerTestSuite(t *testing.T) {
	suite.Run(t, new(ArchiveWorkerTestSuite))
}

func historyRequest() queue.Message {
	return queue.Message{
		Type:          queue.MessageTypeHistoryExport,
		AggregateType: domain.AggregateTypeUser,
		AggregateID:   "u-1",
		BusinessID:    "biz-1",
		RequestedBy:   "owner.ana",
	}
}

func (s *ArchiveWorkerTestSuite) TestExportHistory_UploadsArchive() {
	// Arrange
	events := []domain.DomainEvent{event("e-1", domain.EventUserCreated), event("e-2", domain.EventUserActivated)}
	s.events.On("ListByAggregate", s.ctx, domain.AggregateTypeUser, "u-1").Return(events, nil)

	var uploaded HistoryArchive
	s.uploader.On("PutObject", s.ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "history" &&
			aws.ToString(in.Key) == "user-events/biz-1/u-1/history_2026-03-14_09-30-00.json"
	})).Run(func(args mock.Arguments) {
		body, err := io.ReadAll(args.Get(1).(*s3.PutObjectInput).Body)
		s.Require().NoError(err)
		s.Require().NoError(json.Unmarshal(body, &uploaded))
	}).Return(&s3.PutObjectOutput{}, nil)

	// Act
	key, err := s.worker.exportHistory(s.ctx, historyRequest())

	// Assert
	s.NoError(err)
	s.Equal("user-events/biz-1/u-1/history_2026-03-14_09-30-00.json", key)
	s.Equal(2, uploaded.EventCount)
	s.Equal("owner.ana", uploaded.RequestedBy)
	s.Equal([]string{"e-1", "e-2"}, []string{uploaded.Events[0].ID, uploaded.Events[1].ID})
}

func (s *ArchiveWorkerTestSuite) TestProcessMessages_DeletesAfterExport() {
	// Arrange
	s.queue.On("ReceiveMessages", s.ctx, testHistoryQueueURL, int32(10), int32(20)).
		Return([]queue.ReceivedMessage{{Message: historyRequest(), ReceiptHandle: aws.String("r-1")}}, nil)
	s.events.On("ListByAggregate", s.ctx, domain.AggregateTypeUser, "u-1").Return([]domain.DomainEvent{}, nil)
	s.uploader.On("PutObject", s.ctx, mock.Anything).Return(&s3.PutObjectOutput{}, nil)
	s.queue.On("DeleteMessage", s.ctx, testHistoryQueueURL, aws.String("r-1")).Return(nil)

	// Act
	err := s.worker.processMessages(s.ctx)

	// Assert
	s.NoError(err)
}

func (s *ArchiveWorkerTestSuite) TestProcessMessages_KeepsMessageWhenUploadFails() {
	// Arrange
	s.queue.On("ReceiveMessages", s.ctx, testHistoryQueueURL, int32(10), int32(20)).
		Return([]queue.ReceivedMessage{{Message: historyRequest(), ReceiptHandle: aws.String("r-1")}}, nil)
	s.events.On("ListByAggregate", s.ctx, domain.AggregateTypeUser, "u-1").Return([]domain.DomainEvent{}, nil)
	s.uploader.On("PutObject", s.ctx, mock.Anything).Return(nil, errors.New("access denied"))

	// Act
	err := s.worker.processMessages(s.ctx)

	// Assert
	s.NoError(err)
	s.queue.AssertNotCalled(s.T(), "DeleteMessage", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ArchiveWorkerTestSuite) TestHistoryKey_WithoutBusiness() {
	s.Equal("user-events/no-business/u-9/history_2026-03-14_09-30-00.json", historyKey("user-events", "", "u-9", s.now))
}
