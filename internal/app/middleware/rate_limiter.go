package middleware

import (
	"sync"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"

	"github.com/gin-gonic/gin"
)

// TokenBucket 令牌桶限流器
type TokenBucket struct {
	rate       float64    // 每秒填充的令牌数
	capacity   int        // 桶的容量
	tokens     float64    // 当前令牌数
	lastRefill time.Time  // 上次填充时间
	mu         sync.Mutex // 互斥锁
}

// NewTokenBucket 创建令牌桶，初始为满
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow 尝试获取一个令牌
func (tb *TokenBucket) Allow() bool {
	return tb.allowAt(time.Now())
}

func (tb *TokenBucket) allowAt(now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed > 0 {
		tb.tokens += elapsed * tb.rate
		tb.lastRefill = now
	}
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// limiterStore 每个键一个令牌桶，长时间未使用的会被清理
type limiterStore struct {
	mu       sync.Mutex
	rate     float64
	burst    int
	buckets  map[string]*TokenBucket
	lastSeen map[string]time.Time
}

// 所有限流中间件创建的存储，用于统一清理
var (
	stores   []*limiterStore
	storesMu sync.Mutex
)

func newLimiterStore(rate float64, burst int) *limiterStore {
	s := &limiterStore{
		rate:     rate,
		burst:    burst,
		buckets:  make(map[string]*TokenBucket),
		lastSeen: make(map[string]time.Time),
	}
	storesMu.Lock()
	stores = append(stores, s)
	storesMu.Unlock()
	return s
}

func (s *limiterStore) get(key string, now time.Time) *TokenBucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[key]
	if !ok {
		bucket = NewTokenBucket(s.rate, s.burst)
		s.buckets[key] = bucket
	}
	s.lastSeen[key] = now
	return bucket
}

func (s *limiterStore) evictIdle(before time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, seen := range s.lastSeen {
		if seen.Before(before) {
			delete(s.buckets, key)
			delete(s.lastSeen, key)
		}
	}
}

// RateLimiterConfig 限流器配置
type RateLimiterConfig struct {
	Rate    float64                   // 每秒允许的请求数
	Burst   int                       // 允许的突发请求数
	KeyFunc func(*gin.Context) string // 限流键，默认按客户端IP
}

// RateLimiter 创建限流中间件
func RateLimiter(cfg RateLimiterConfig) gin.HandlerFunc {
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	store := newLimiterStore(cfg.Rate, cfg.Burst)

	return func(c *gin.Context) {
		if !store.get(cfg.KeyFunc(c), time.Now()).Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "请求频率过高，请稍后再试", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IPRateLimiter 按IP限流
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{Rate: rate, Burst: burst})
}

// PathRateLimiter 按IP和路径组合限流
func PathRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:  rate,
		Burst: burst,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP() + ":" + c.FullPath()
		},
	})
}

// 定期清理一小时未使用的限流器
func init() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for now := range ticker.C {
			cleanIdleLimiters(now.Add(-time.Hour))
		}
	}()
}

func cleanIdleLimiters(before time.Time) {
	storesMu.Lock()
	defer storesMu.Unlock()

	for _, s := range stores {
		s.evictIdle(before)
	}
}
