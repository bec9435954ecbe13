package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/utils"
)

type BaseHandler struct{}

// RequestCtx carries the verified caller set by the auth middleware
func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	return ginCtx.Request.Context()
}

func (h *BaseHandler) AuthToken(ginCtx *gin.Context) (*domain.AuthToken, bool) {
	token, err := utils.GetAuthTokenFromContext(h.RequestCtx(ginCtx))
	return token, err == nil
}
