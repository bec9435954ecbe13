// Package gateway serves GraphQL operations forwarded by the API gateways over
// the Redis broker. Every operation listens on <gateway>.graphql.<kind>.<name>
// and answers on the replyTo topic of the request, tagged with its id.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/service/pubsub"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

//go:generate mockery --name Broker --output ../mocks
type Broker interface {
	Publish(ctx context.Context, topic string, msg *pubsub.Message) error
	Listen(ctx context.Context, key string, topics []string, callback func(topic string, msg *pubsub.Message)) error
}

//go:generate mockery --name TokenVerifier --output ../mocks
type TokenVerifier interface {
	Verify(raw string) (*domain.AuthToken, error)
}

// Handler runs one operation. token is nil on routes without authentication.
type Handler func(ctx context.Context, token *domain.AuthToken, args json.RawMessage) (any, error)

type route struct {
	name         string
	handler      Handler
	authRequired bool
}

type Adapter struct {
	name     string
	broker   Broker
	verifier TokenVerifier
	timeout  time.Duration
	logger   *logger.Logger
	routes   map[string]route
}

func NewAdapter(name string, broker Broker, verifier TokenVerifier, timeout time.Duration, logger *logger.Logger) *Adapter {
	return &Adapter{
		name:     name,
		broker:   broker,
		verifier: verifier,
		timeout:  timeout,
		logger:   logger.Named("gateway").With(zap.String("gateway", name)),
		routes:   make(map[string]route),
	}
}

// Topic is the broker topic of an operation
func Topic(gateway string, kind Kind, name string) string {
	return fmt.Sprintf("%s.graphql.%s.%s", gateway, kind, name)
}

func (a *Adapter) Name() string {
	return a.name
}

// Handle registers an operation that requires a verified token
func (a *Adapter) Handle(kind Kind, name string, handler Handler) {
	a.routes[Topic(a.name, kind, name)] = route{name: name, handler: handler, authRequired: true}
}

// HandlePublic registers an operation callable without a token
func (a *Adapter) HandlePublic(kind Kind, name string, handler Handler) {
	a.routes[Topic(a.name, kind, name)] = route{name: name, handler: handler}
}

func (a *Adapter) Topics() []string {
	topics := make([]string, 0, len(a.routes))
	for topic := range a.routes {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Dispatch runs the operation and always answers with an envelope. The second
// result is false when no such operation is registered.
func (a *Adapter) Dispatch(ctx context.Context, kind Kind, name string, req dto.GraphQLRequest) (dto.Response, bool) {
	r, ok := a.routes[Topic(a.name, kind, name)]
	if !ok {
		return dto.Response{}, false
	}
	return a.dispatch(ctx, r, req), true
}

func (a *Adapter) dispatch(ctx context.Context, r route, req dto.GraphQLRequest) (resp dto.Response) {
	var token *domain.AuthToken
	if r.authRequired {
		var err error
		token, err = a.verifier.Verify(req.JWT)
		if err != nil {
			a.logger.Debug("Rejected token", zap.String("operation", r.name), zap.Error(err))
			return dto.Failure(domain.ErrInvalidCredentialsOrToken.In(r.name))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			a.logger.Error("Operation panicked", fmt.Errorf("%v", p), zap.String("operation", r.name))
			resp = dto.Failure(domain.ErrInternal.In(r.name))
		}
	}()

	result, err := r.handler(ctx, token, req.Args)
	if err != nil {
		domainErr := domain.AsError(err)
		if domainErr.Method == "" {
			domainErr = domainErr.In(r.name)
		}
		if domainErr.Is(domain.ErrInternal) {
			a.logger.Error("Operation failed", err, zap.String("operation", r.name))
		}
		return dto.Failure(domainErr)
	}
	return dto.Success(result)
}

// Listen serves every registered operation until ctx is done. A non-nil error
// means the broker subscription was lost.
func (a *Adapter) Listen(ctx context.Context) error {
	topics := a.Topics()
	if len(topics) == 0 {
		return fmt.Errorf("gateway %s has no operations", a.name)
	}

	return a.broker.Listen(ctx, a.name, topics, func(topic string, msg *pubsub.Message) {
		go a.serve(ctx, topic, msg)
	})
}

func (a *Adapter) serve(ctx context.Context, topic string, msg *pubsub.Message) {
	r, ok := a.routes[topic]
	if !ok {
		a.logger.Warn("Message on unknown topic", zap.String("topic", topic))
		return
	}
	if msg.ReplyTo == "" {
		a.logger.Warn("Dropping request without replyTo", zap.String("topic", topic), zap.String("message_id", msg.ID))
		return
	}

	var req dto.GraphQLRequest
	var resp dto.Response
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		a.logger.Warn("Malformed request", zap.String("topic", topic), zap.Error(err))
		resp = dto.Failure(domain.ErrMissingData.In(r.name))
	} else {
		resp = a.dispatch(ctx, r, req)
	}

	reply, err := pubsub.NewMessage(msg.Type, resp)
	if err != nil {
		a.logger.Error("Failed to build reply", err, zap.String("topic", topic))
		return
	}
	reply.CorrelationID = msg.ID

	if err := a.broker.Publish(ctx, msg.ReplyTo, reply); err != nil {
		a.logger.Error("Failed to publish reply", err,
			zap.String("topic", topic),
			zap.String("reply_to", msg.ReplyTo))
	}
}
