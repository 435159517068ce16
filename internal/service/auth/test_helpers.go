package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable clock for
// deterministic tests. Not for production use; NewJWTService enforces the
// configuration invariants this constructor skips.
func NewTestJWTService(
	secret string,
	tokenLifetime time.Duration,
	refreshGrace time.Duration,
	timeFunc func() time.Time,
) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: tokenLifetime,
		refreshGrace:  refreshGrace,
		timeFunc:      timeFunc,
		clockSkew:     2 * time.Minute,
	}
}
