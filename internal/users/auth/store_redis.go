// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ndelaeva/kritika/internal/platform/constants"
)

// RedisCooldownRepository implements [CooldownRepository] on Redis TTL keys.
type RedisCooldownRepository struct {
	client *redis.Client
}

// NewRedisCooldownRepository creates the Redis-backed signup cooldown store.
func NewRedisCooldownRepository(client *redis.Client) *RedisCooldownRepository {
	return &RedisCooldownRepository{client: client}
}

/*
Acquire claims the cooldown slot for an email address via SET NX.

Description: The key expires on its own; no cleanup pass is needed. SET NX is
atomic, so two concurrent signups for the same email admit exactly one
dispatch per window.

Parameters:
  - context: context.Context
  - email: string (case-folded into the key)
  - ttl: time.Duration

Returns:
  - bool: false while a previous claim is still live
  - error: storage failures
*/
func (repository *RedisCooldownRepository) Acquire(context context.Context, email string, ttl time.Duration) (bool, error) {
	key := constants.RedisPrefixSignupCooldown + strings.ToLower(email)

	acquired, err := repository.client.SetNX(context, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_cooldown_acquire_failed: %w", err)
	}

	return acquired, nil
}
