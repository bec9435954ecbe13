package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/service"
	"github.com/kingrain94/user-management-api/internal/service/pubsub"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

const (
	websocketReadBufferSize        = 1024
	websocketWriteBufferSize       = 1024
	websocketSendChannelBufferSize = 256

	subscriptionKey = "subscriptions:user-updated"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  websocketReadBufferSize,
	WriteBufferSize: websocketWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

//go:generate mockery --name ViewSource --output ../mocks
type ViewSource interface {
	Subscribe(ctx context.Context, key string, callback func(msg *pubsub.Message))
}

type Subscriber struct {
	conn  *websocket.Conn
	token *domain.AuthToken
	send  chan []byte
}

// UserUpdate is the frame pushed to subscribers
type UserUpdate struct {
	Type string          `json:"type" example:"UserUpdatedSubscription"`
	Data json.RawMessage `json:"data" swaggertype:"object"`
}

// SubscriptionHandler pushes UserUpdatedSubscription views to websocket
// clients. Platform admins receive every user, other callers only the users
// of their own business.
type SubscriptionHandler struct {
	*BaseHandler
	views      ViewSource
	clients    map[*Subscriber]bool
	register   chan *Subscriber
	unregister chan *Subscriber
	mutex      sync.Mutex
	logger     *logger.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewSubscriptionHandler(views ViewSource, logger *logger.Logger) *SubscriptionHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &SubscriptionHandler{
		views:      views,
		clients:    make(map[*Subscriber]bool),
		register:   make(chan *Subscriber),
		unregister: make(chan *Subscriber),
		logger:     logger.Named("subscriptions"),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// UserUpdated godoc
// @Summary Subscribe to user updates
// @Description Upgrades to a websocket that receives every projected user change visible to the caller. Browsers may pass the token as a query parameter.
// @Tags subscriptions
// @Param token query string false "Bearer token when the Authorization header cannot be set"
// @Success 101 {object} UserUpdate
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Security BearerAuth
// @Router /subscriptions/user-updated [get]
func (h *SubscriptionHandler) UserUpdated(c *gin.Context) {
	token, ok := h.AuthToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Error: "No authentication found"})
		return
	}
	if !token.IsPlatformAdmin() && token.BusinessID == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Error{Error: "No businessId found in token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", zap.Error(err))
		return
	}

	client := &Subscriber{
		conn:  conn,
		token: token,
		send:  make(chan []byte, websocketSendChannelBufferSize),
	}
	select {
	case h.register <- client:
	case <-h.ctx.Done():
		conn.Close()
		return
	}

	go h.writePump(client)
	go h.readPump(client)
}

// Start subscribes to the view channel and serves (un)registrations until Stop
func (h *SubscriptionHandler) Start() {
	h.views.Subscribe(h.ctx, subscriptionKey, h.handleView)

	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			h.remove(client)
			h.mutex.Unlock()

		case <-h.ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				h.remove(client)
			}
			h.mutex.Unlock()
			return
		}
	}
}

func (h *SubscriptionHandler) Stop() {
	h.cancel()
}

// remove must be called with mutex held
func (h *SubscriptionHandler) remove(client *Subscriber) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *SubscriptionHandler) handleView(msg *pubsub.Message) {
	if msg.Type != service.UserUpdatedSubscription {
		return
	}

	var user struct {
		BusinessID string `json:"businessId"`
	}
	if err := json.Unmarshal(msg.Data, &user); err != nil {
		h.logger.Warn("Malformed user view", zap.String("message_id", msg.ID), zap.Error(err))
		return
	}

	frame, err := json.Marshal(UserUpdate{Type: msg.Type, Data: msg.Data})
	if err != nil {
		h.logger.Error("Failed to marshal user update", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if !client.token.IsPlatformAdmin() && client.token.BusinessID != user.BusinessID {
			continue
		}
		select {
		case client.send <- frame:
		default: // slow client
			h.logger.Warn("Dropping slow subscriber", zap.String("user_id", client.token.UserID()))
			h.remove(client)
		}
	}
}

func (h *SubscriptionHandler) writePump(client *Subscriber) {
	defer client.conn.Close()

	for message := range client.send {
		w, err := client.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}

	client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *SubscriptionHandler) readPump(client *Subscriber) {
	defer func() {
		select {
		case h.unregister <- client:
		case <-h.ctx.Done():
		}
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Unexpected close error", zap.String("user_id", client.token.UserID()), zap.Error(err))
			}
			return
		}
	}
}
