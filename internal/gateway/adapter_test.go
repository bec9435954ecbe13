package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/gateway"
	"github.com/kingrain94/user-management-api/internal/mocks"
	"github.com/kingrain94/user-management-api/internal/service/pubsub"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

type echoArgs struct {
	UserID string `json:"userId"`
}

type AdapterTestSuite struct {
	suite.Suite
	broker   *mocks.Broker
	verifier *mocks.TokenVerifier
	adapter  *gateway.Adapter
	token    *domain.AuthToken
}

func (s *AdapterTestSuite) SetupTest() {
	s.broker = mocks.NewBroker(s.T())
	s.verifier = mocks.NewTokenVerifier(s.T())
	s.adapter = gateway.NewAdapter("emigateway", s.broker, s.verifier, time.Second, logger.NewNop())
	s.token = &domain.AuthToken{RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"}}

	s.adapter.Handle(gateway.KindQuery, "getUser", gateway.Bind(func(_ context.Context, token *domain.AuthToken, args echoArgs) (string, error) {
		if args.UserID == "missing" {
			return "", domain.ErrUserNotFound
		}
		return token.UserID() + ":" + args.UserID, nil
	}))
	s.adapter.Handle(gateway.KindMutation, "explode", gateway.Bind(func(context.Context, *domain.AuthToken, dto.NoArgs) (string, error) {
		panic("boom")
	}))
	s.adapter.Handle(gateway.KindMutation, "fail", gateway.Bind(func(context.Context, *domain.AuthToken, dto.NoArgs) (string, error) {
		return "", errors.New("database is gone")
	}))
	s.adapter.HandlePublic(gateway.KindQuery, "getToken", gateway.Bind(func(_ context.Context, token *domain.AuthToken, _ dto.NoArgs) (bool, error) {
		return token == nil, nil
	}))
}

func TestAdapterTestSuite(t *testing.T) {
	suite.Run(t, new(AdapterTestSuite))
}

func (s *AdapterTestSuite) TestTopic() {
	s.Equal("emigateway.graphql.query.getUsers", gateway.Topic("emigateway", gateway.KindQuery, "getUsers"))
	s.Equal("salesgateway.graphql.mutation.getToken", gateway.Topic("salesgateway", gateway.KindMutation, "getToken"))
}

func (s *AdapterTestSuite) TestTopics_Sorted() {
	s.Equal([]string{
		"emigateway.graphql.mutation.explode",
		"emigateway.graphql.mutation.fail",
		"emigateway.graphql.query.getToken",
		"emigateway.graphql.query.getUser",
	}, s.adapter.Topics())
}

func (s *AdapterTestSuite) TestDispatch_Success() {
	// Arrange
	s.verifier.On("Verify", "raw-jwt").Return(s.token, nil)

	// Act
	resp, ok := s.adapter.Dispatch(context.Background(), gateway.KindQuery, "getUser", dto.GraphQLRequest{
		Args: json.RawMessage(`{"userId":"u-2"}`),
		JWT:  "raw-jwt",
	})

	// Assert
	s.True(ok)
	s.Equal(200, resp.Result.Code)
	s.Nil(resp.Result.Error)
	s.Equal("u-1:u-2", resp.Data)
}

func (s *AdapterTestSuite) TestDispatch_UnknownOperation() {
	_, ok := s.adapter.Dispatch(context.Background(), gateway.KindQuery, "getEverything", dto.GraphQLRequest{})

	s.False(ok)
}

func (s *AdapterTestSuite) TestDispatch_InvalidToken() {
	// Arrange
	s.verifier.On("Verify", "expired").Return(nil, errors.New("token is expired"))

	// Act
	resp, _ := s.adapter.Dispatch(context.Background(), gateway.KindQuery, "getUser", dto.GraphQLRequest{JWT: "expired"})

	// Assert
	s.Require().NotNil(resp.Result.Error)
	s.Equal(16017, resp.Result.Code)
	s.Equal("getUser", resp.Result.Error.Method)
	s.Nil(resp.Data)
}

func (s *AdapterTestSuite) TestDispatch_DomainErrorTaggedWithOperation() {
	// Arrange
	s.verifier.On("Verify", "raw-jwt").Return(s.token, nil)

	// Act
	resp, _ := s.adapter.Dispatch(context.Background(), gateway.KindQuery, "getUser", dto.GraphQLRequest{
		Args: json.RawMessage(`{"userId":"missing"}`),
		JWT:  "raw-jwt",
	})

	// Assert
	s.Require().NotNil(resp.Result.Error)
	s.Equal(16019, resp.Result.Error.Code)
	s.Equal("getUser", resp.Result.Error.Method)
	s.Equal("UserManagement", resp.Result.Error.Name)
}

func (s *AdapterTestSuite) TestDispatch_MalformedArgs() {
	// Arrange
	s.verifier.On("Verify", "raw-jwt").Return(s.token, nil)

	// Act
	resp, _ := s.adapter.Dispatch(context.Background(), gateway.KindQuery, "getUser", dto.GraphQLRequest{
		Args: json.RawMessage(`{"userId":42}`),
		JWT:  "raw-jwt",
	})

	// Assert
	s.Equal(16010, resp.Result.Code)
}

func (s *AdapterTestSuite) TestDispatch_UnknownErrorBecomesInternal() {
	s.verifier.On("Verify", "raw-jwt").Return(s.token, nil)

	resp, _ := s.adapter.Dispatch(context.Background(), gateway.KindMutation, "fail", dto.GraphQLRequest{JWT: "raw-jwt"})

	s.Equal(16001, resp.Result.Code)
	s.Equal("fail", resp.Result.Error.Method)
}

func (s *AdapterTestSuite) TestDispatch_PanicRecovered() {
	s.verifier.On("Verify", "raw-jwt").Return(s.token, nil)

	resp, _ := s.adapter.Dispatch(context.Background(), gateway.KindMutation, "explode", dto.GraphQLRequest{JWT: "raw-jwt"})

	s.Equal(16001, resp.Result.Code)
}

func (s *AdapterTestSuite) TestDispatch_PublicSkipsVerification() {
	resp, ok := s.adapter.Dispatch(context.Background(), gateway.KindQuery, "getToken", dto.GraphQLRequest{})

	s.True(ok)
	s.Equal(true, resp.Data)
	s.verifier.AssertNotCalled(s.T(), "Verify", mock.Anything)
}

func (s *AdapterTestSuite) TestListen_RepliesWithCorrelationID() {
	// Arrange
	s.verifier.On("Verify", "raw-jwt").Return(s.token, nil)

	replies := make(chan *pubsub.Message, 1)
	s.broker.On("Publish", mock.Anything, "emigateway.replies.42", mock.AnythingOfType("*pubsub.Message")).
		Run(func(args mock.Arguments) { replies <- args.Get(2).(*pubsub.Message) }).
		Return(nil)

	request, err := pubsub.NewMessage("query", dto.GraphQLRequest{Args: json.RawMessage(`{"userId":"u-9"}`), JWT: "raw-jwt"})
	s.Require().NoError(err)
	request.ReplyTo = "emigateway.replies.42"

	s.broker.On("Listen", mock.Anything, "emigateway", s.adapter.Topics(), mock.Anything).
		Run(func(args mock.Arguments) {
			callback := args.Get(3).(func(string, *pubsub.Message))
			callback("emigateway.graphql.query.getUser", request)
		}).
		Return(nil)

	// Act
	err = s.adapter.Listen(context.Background())

	// Assert
	s.NoError(err)
	select {
	case reply := <-replies:
		s.Equal(request.ID, reply.CorrelationID)
		var resp struct {
			Data   string     `json:"data"`
			Result dto.Result `json:"result"`
		}
		s.Require().NoError(json.Unmarshal(reply.Data, &resp))
		s.Equal("u-1:u-9", resp.Data)
		s.Equal(200, resp.Result.Code)
	case <-time.After(2 * time.Second):
		s.Fail("no reply published")
	}
}

func (s *AdapterTestSuite) TestListen_SubscriptionLost() {
	s.broker.On("Listen", mock.Anything, "emigateway", mock.Anything, mock.Anything).Return(pubsub.ErrSubscriptionClosed)

	err := s.adapter.Listen(context.Background())

	s.ErrorIs(err, pubsub.ErrSubscriptionClosed)
}

func (s *AdapterTestSuite) TestListen_NoOperations() {
	empty := gateway.NewAdapter("salesgateway", s.broker, s.verifier, time.Second, logger.NewNop())

	s.Error(empty.Listen(context.Background()))
}
