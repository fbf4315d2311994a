package middleware

import (
	"bytes"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// 缓存条目
type cacheEntry struct {
	Content    []byte
	Expiration time.Time
}

// 内存缓存
type memoryCache struct {
	sync.RWMutex
	items map[string]cacheEntry
}

// UserCacheNamespace 认证接口缓存键的公共前缀
const UserCacheNamespace = "user:"

// 全局缓存实例
var cache = &memoryCache{
	items: make(map[string]cacheEntry),
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Expiration time.Duration             // 缓存过期时间
	KeyFunc    func(*gin.Context) string // 自定义缓存键生成函数
}

// DefaultCacheConfig 默认缓存配置
var DefaultCacheConfig = CacheConfig{
	Expiration: 30 * time.Second,
	KeyFunc:    publicKeyFunc,
}

// publicKeyFunc 公开接口按路径和排序后的查询参数缓存
func publicKeyFunc(c *gin.Context) string {
	return "public:" + c.Request.URL.Path + "?" + sortedQuery(c)
}

// userKeyFunc 认证接口按账户区分缓存，键以 "user:{id}:" 开头
func userKeyFunc(c *gin.Context) string {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return ""
	}
	return UserCachePrefix(identity.UserID) + c.Request.URL.Path + "?" + sortedQuery(c)
}

// UserCachePrefix 某个账户的缓存键前缀
func UserCachePrefix(userID uint) string {
	return UserCacheNamespace + strconv.FormatUint(uint64(userID), 10) + ":"
}

func sortedQuery(c *gin.Context) string {
	params := c.Request.URL.Query()
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		values := params[key]
		sort.Strings(values)
		for _, value := range values {
			b.WriteString(key + "=" + value + "&")
		}
	}
	return b.String()
}

// Cache 创建缓存中间件，只缓存 GET 请求的200响应
func Cache(config ...CacheConfig) gin.HandlerFunc {
	cfg := DefaultCacheConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = DefaultCacheConfig.Expiration
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultCacheConfig.KeyFunc
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cfg.KeyFunc(c)
		if key == "" {
			c.Next()
			return
		}

		cache.RLock()
		entry, found := cache.items[key]
		cache.RUnlock()

		if found && entry.Expiration.After(time.Now()) {
			c.Data(http.StatusOK, "application/json; charset=utf-8", entry.Content)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			cache.Lock()
			cache.items[key] = cacheEntry{
				Content:    writer.body.Bytes(),
				Expiration: time.Now().Add(cfg.Expiration),
			}
			cache.Unlock()
		}
	}
}

// CachePerUser 按账户缓存，必须放在认证中间件之后
func CachePerUser(expiration time.Duration) gin.HandlerFunc {
	return Cache(CacheConfig{
		Expiration: expiration,
		KeyFunc:    userKeyFunc,
	})
}

// PurgeCache 清除所有缓存
func PurgeCache() {
	cache.Lock()
	cache.items = make(map[string]cacheEntry)
	cache.Unlock()
}

// PurgeCacheByPrefix 根据前缀清除缓存
func PurgeCacheByPrefix(prefix string) {
	cache.Lock()
	defer cache.Unlock()

	for key := range cache.items {
		if strings.HasPrefix(key, prefix) {
			delete(cache.items, key)
		}
	}
}

// PurgeOnSuccess 写操作成功后清除缓存，看板内容可能跨账户变化
// 不传前缀时清除全部缓存，否则只清除匹配前缀的条目
func PurgeOnSuccess(prefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if status := c.Writer.Status(); status < 200 || status >= 300 {
			return
		}
		if len(prefixes) == 0 {
			PurgeCache()
			return
		}
		for _, prefix := range prefixes {
			PurgeCacheByPrefix(prefix)
		}
	}
}

// 自定义响应写入器，用于捕获响应内容
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 同时写入原始响应和缓冲区
func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// WriteString 同时写入原始响应和缓冲区
func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheStats 获取缓存统计信息
func CacheStats() map[string]interface{} {
	cache.RLock()
	defer cache.RUnlock()

	now := time.Now()
	expired := 0
	size := 0
	for _, entry := range cache.items {
		size += len(entry.Content)
		if entry.Expiration.Before(now) {
			expired++
		}
	}

	return map[string]interface{}{
		"total_items":   len(cache.items),
		"expired_items": expired,
		"total_bytes":   size,
	}
}

// 定期清理过期缓存
func init() {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			cleanExpiredCache(time.Now())
		}
	}()
}

// cleanExpiredCache 清理过期缓存
func cleanExpiredCache(now time.Time) {
	cache.Lock()
	defer cache.Unlock()

	for key, entry := range cache.items {
		if entry.Expiration.Before(now) {
			delete(cache.items, key)
		}
	}
}
