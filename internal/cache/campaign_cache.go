package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const closingKey = "campaigns:closing"

// クロージング一覧のTTL。再計算が走ったら明示的に消すので短めで十分。
const closingTTL = 30 * time.Second

// redisが落ちていてもAPIは落とさない（キャッシュミス扱い）。
type CampaignCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCampaignCache(client *redis.Client, logger *zap.Logger) *CampaignCache {
	return &CampaignCache{client: client, logger: logger}
}

func (c *CampaignCache) GetClosing(ctx context.Context) ([]byte, bool) {
	payload, err := c.client.Get(ctx, closingKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("redis get failed", zap.String("key", closingKey), zap.Error(err))
		return nil, false
	}
	return payload, true
}

func (c *CampaignCache) SetClosing(ctx context.Context, payload []byte) {
	if err := c.client.Set(ctx, closingKey, payload, closingTTL).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.String("key", closingKey), zap.Error(err))
	}
}

func (c *CampaignCache) InvalidateClosing(ctx context.Context) {
	if err := c.client.Del(ctx, closingKey).Err(); err != nil {
		c.logger.Warn("redis del failed", zap.String("key", closingKey), zap.Error(err))
	}
}
