package services

import (
	"context"

	"github.com/dmitrijs2005/authservice/internal/common"
	"github.com/dmitrijs2005/authservice/internal/dbx"
	"github.com/dmitrijs2005/authservice/internal/server/models"
)

// UserResolver is the part of UserService the gate relies on.
type UserResolver interface {
	ResolveFromAccessToken(ctx context.Context, tx dbx.DBTX, token string) (*models.User, error)
}

// Gate guards protected operations: token to user, then user to active user.
type Gate struct {
	resolver UserResolver
}

func NewGate(r UserResolver) *Gate {
	return &Gate{resolver: r}
}

func (g *Gate) CurrentUser(ctx context.Context, tx dbx.DBTX, token string) (*models.User, error) {
	return g.resolver.ResolveFromAccessToken(ctx, tx, token)
}

// RequireActive rejects deactivated accounts with KindBadRequest.
func (g *Gate) RequireActive(user *models.User) (*models.User, error) {
	if !user.Active {
		return nil, common.BadRequest("Inactive user")
	}
	return user, nil
}

func (g *Gate) CurrentActiveUser(ctx context.Context, tx dbx.DBTX, token string) (*models.User, error) {
	user, err := g.CurrentUser(ctx, tx, token)
	if err != nil {
		return nil, err
	}
	return g.RequireActive(user)
}
