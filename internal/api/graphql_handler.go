package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/gateway"
)

//go:generate mockery --name Dispatcher --output ./mocks
type Dispatcher interface {
	Name() string
	Dispatch(ctx context.Context, kind gateway.Kind, name string, req dto.GraphQLRequest) (dto.Response, bool)
}

// GraphQLHandler exposes the gateway operations over HTTP for gateways and
// tools that do not speak the broker protocol.
type GraphQLHandler struct {
	*BaseHandler
	gateways map[string]Dispatcher
}

func NewGraphQLHandler(gateways ...Dispatcher) *GraphQLHandler {
	h := &GraphQLHandler{gateways: make(map[string]Dispatcher, len(gateways))}
	for _, g := range gateways {
		h.gateways[g.Name()] = g
	}
	return h
}

// Execute godoc
// @Summary Run a gateway operation
// @Description Runs a GraphQL query or mutation the way the gateway forwards it over the broker. The token is read from the jwt field or the Authorization header.
// @Tags graphql
// @Accept json
// @Produce json
// @Param gateway path string true "Gateway name" Enums(emigateway, salesgateway)
// @Param kind path string true "Operation kind" Enums(query, mutation)
// @Param name path string true "Operation name" example(getUsers)
// @Param body body dto.GraphQLRequest true "Operation arguments"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Security BearerAuth
// @Router /graphql/{gateway}/{kind}/{name} [post]
func (h *GraphQLHandler) Execute(c *gin.Context) {
	d, ok := h.gateways[c.Param("gateway")]
	kind := gateway.Kind(c.Param("kind"))
	if !ok || (kind != gateway.KindQuery && kind != gateway.KindMutation) {
		c.JSON(http.StatusNotFound, dto.Error{Error: "Unknown operation"})
		return
	}

	var req dto.GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}
	if req.JWT == "" {
		req.JWT = c.GetHeader("Authorization")
	}

	resp, found := d.Dispatch(h.RequestCtx(c), kind, c.Param("name"), req)
	if !found {
		c.JSON(http.StatusNotFound, dto.Error{Error: "Unknown operation"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
