package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-canteen/models"
)

func TestUniqueTokenRange(t *testing.T) {
	s := openTestStore(t, "token_range")
	ts := NewTokenService(s, testLogger())

	for i := 0; i < 100; i++ {
		token := ts.UniqueToken(context.Background())
		assert.GreaterOrEqual(t, token, TokenMin)
		assert.LessOrEqual(t, token, TokenMax)
	}
}

func TestUniqueTokenAvoidsActiveOrders(t *testing.T) {
	s := openTestStore(t, "token_active")
	ts := NewTokenService(s, testLogger())
	ctx := context.Background()

	// Occupy everything except token 7.
	for n := TokenMin; n <= TokenMax; n++ {
		if n == 7 {
			continue
		}
		order := sampleOrder("#order-" + strconv.Itoa(n))
		order.TokenNumber = n
		order.Status = models.StatusPending
		require.NoError(t, s.InsertOrder(ctx, order))
	}

	assert.Equal(t, 7, ts.UniqueToken(ctx))
}

func TestUniqueTokenIgnoresDelivered(t *testing.T) {
	s := openTestStore(t, "token_delivered")
	ts := NewTokenService(s, testLogger())
	ctx := context.Background()

	for n := TokenMin; n <= TokenMax; n++ {
		order := sampleOrder("#done-" + strconv.Itoa(n))
		order.TokenNumber = n
		order.Status = models.StatusDelivered
		require.NoError(t, s.InsertOrder(ctx, order))
	}

	// Every token is held by a delivered order, so the whole pool is free.
	token := ts.UniqueToken(ctx)
	assert.GreaterOrEqual(t, token, TokenMin)
	assert.LessOrEqual(t, token, TokenMax)
}
