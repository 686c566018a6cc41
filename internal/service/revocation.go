package service

import (
	"context"

	"taskboard/internal/cache"
)

const revokedKeyPrefix = "revoked:"

// RevokeToken denylists the token's jti until its natural expiry, so a
// logged-out token stops working server-side. Already-expired tokens
// need no entry.
func RevokeToken(ctx context.Context, cch cache.Cache, claims *CustomClaims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(timeNow())
	if ttl <= 0 {
		return nil
	}
	return cch.Set(ctx, revokedKeyPrefix+claims.ID, "1", ttl).Err()
}

// IsTokenRevoked reports whether the jti is on the denylist. Cache
// errors fail open: an unreachable cache must not lock every user out.
func IsTokenRevoked(ctx context.Context, cch cache.Cache, tokenID string) bool {
	if tokenID == "" {
		return false
	}
	return cch.Get(ctx, revokedKeyPrefix+tokenID).Err() == nil
}
