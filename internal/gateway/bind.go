package gateway

import (
	"context"
	"encoding/json"

	"github.com/kingrain94/user-management-api/internal/domain"
)

// Bind adapts a typed operation to a Handler by decoding its arguments
func Bind[A any, R any](fn func(ctx context.Context, token *domain.AuthToken, args A) (R, error)) Handler {
	return func(ctx context.Context, token *domain.AuthToken, raw json.RawMessage) (any, error) {
		var args A
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, domain.ErrMissingData.Wrap(err)
			}
		}
		return fn(ctx, token, args)
	}
}
