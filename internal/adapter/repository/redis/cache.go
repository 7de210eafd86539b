package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/walletd/internal/domain"
)

const walletKeyPrefix = "wallet:"

// WalletCache keeps JSON snapshots of wallets in Redis so hot read paths
// skip Postgres. Entries are dropped on every wallet write; reads may
// briefly see a stale balance, never an uncommitted one.
type WalletCache struct {
	client *redis.Client
}

// NewWalletCache creates a WalletCache on the given client.
func NewWalletCache(client *redis.Client) *WalletCache {
	return &WalletCache{client: client}
}

// Get returns the cached wallet, or nil when the id is not cached.
func (c *WalletCache) Get(ctx context.Context, id string) (*domain.Wallet, error) {
	data, err := c.client.Get(ctx, walletKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var wallet domain.Wallet
	if err := json.Unmarshal(data, &wallet); err != nil {
		return nil, fmt.Errorf("decoding cached wallet: %w", err)
	}

	return &wallet, nil
}

// Set stores a wallet snapshot with the given TTL.
func (c *WalletCache) Set(ctx context.Context, wallet *domain.Wallet, ttl time.Duration) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("encoding wallet: %w", err)
	}

	return c.client.Set(ctx, walletKeyPrefix+wallet.ID, data, ttl).Err()
}

// Delete drops the cached snapshot for a wallet.
func (c *WalletCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, walletKeyPrefix+id).Err()
}
