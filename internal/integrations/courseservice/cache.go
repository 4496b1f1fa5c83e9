package courseservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "tutor-booking:course:"

// Getter источник курсов
type Getter interface {
	GetCourse(ctx context.Context, courseID string) (*Course, error)
}

// Cache подмножество команд Redis (*redis.Client)
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedClient read-through кэш каталога курсов в Redis
// Ошибки Redis не ломают запрос: при них курс берется напрямую из каталога
type CachedClient struct {
	next  Getter
	cache Cache
	ttl   time.Duration
	log   Logger
}

// NewCachedClient создает клиент с кэшированием
func NewCachedClient(next Getter, cache Cache, ttl time.Duration, log Logger) *CachedClient {
	return &CachedClient{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// GetCourse возвращает курс из кэша или из каталога
func (c *CachedClient) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	key := cacheKeyPrefix + courseID

	raw, err := c.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var course Course
		if jsonErr := json.Unmarshal(raw, &course); jsonErr == nil {
			return &course, nil
		}
		c.log.Warn("CourseCache: corrupted entry for course=%s, refetching", courseID)
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("CourseCache: get course=%s failed: %v", courseID, err)
	}

	course, err := c.next.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(course); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("CourseCache: set course=%s failed: %v", courseID, err)
		}
	}

	return course, nil
}
