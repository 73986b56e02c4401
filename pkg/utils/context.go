package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	TechnicianIDKey contextKey = "technician_id"
	TokenKey        contextKey = "token"
)

func GetTechnicianIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	idVal := ctx.Value(TechnicianIDKey)
	if idVal == nil {
		return uuid.Nil, false
	}

	idStr, ok := idVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	technicianID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}

	return technicianID, true
}

func SetTechnicianContext(ctx context.Context, technicianID uuid.UUID) context.Context {
	return context.WithValue(ctx, TechnicianIDKey, technicianID.String())
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
