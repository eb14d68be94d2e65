package services

import (
	"context"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"campus-canteen/store"
)

// Token numbers are called out at the counter, so they stay small and
// human-readable. The pool is 1..200.
const (
	TokenMin = 1
	TokenMax = 200
)

// TokenService hands out counter tokens for preorders. Dine-in orders use
// the table number directly and never come here.
type TokenService struct {
	store store.Store
	log   *logrus.Logger
}

func NewTokenService(s store.Store, log *logrus.Logger) *TokenService {
	return &TokenService{store: s, log: log}
}

// UniqueToken picks a random token not held by any active order. Delivered
// orders release their token, so the pool recycles. If the active set
// cannot be read, or every token is taken, collision avoidance is
// abandoned and a plain random token is returned — a duplicate call-out is
// preferable to refusing the order.
func (ts *TokenService) UniqueToken(ctx context.Context) int {
	taken, err := ts.store.ActiveTokenNumbers(ctx)
	if err != nil {
		ts.log.Errorf("read active tokens, degrading to plain random: %v", err)
		return randomToken()
	}
	if len(taken) >= TokenMax-TokenMin+1 {
		ts.log.Warn("token pool exhausted, reusing a live token")
		return randomToken()
	}
	for {
		t := randomToken()
		if _, live := taken[t]; !live {
			return t
		}
	}
}

func randomToken() int {
	return rand.IntN(TokenMax-TokenMin+1) + TokenMin
}
