package services

import (
	"context"
	"encoding/json"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"
	"github.com/Samanvis-dev/LunchBoxExpress/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RealtimeRedisChannel 所有实例共用的 Redis 发布订阅频道
const RealtimeRedisChannel = "lunchbox:realtime"

// busMessage Redis 中传递的消息
type busMessage struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
}

// RedisBus 通过 Redis 发布订阅把事件分发到每个实例的本地 Hub
type RedisBus struct {
	Client *redis.Client
	Ctx    context.Context
	hub    *Hub
}

// NewRedisBus 创建 Redis 总线
func NewRedisBus(cfg *config.Config, hub *Hub) *RedisBus {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	return &RedisBus{
		Client: client,
		Ctx:    context.Background(),
		hub:    hub,
	}
}

// 1 Ping 检查 Redis 连接
func (b *RedisBus) Ping() error {
	return b.Client.Ping(b.Ctx).Err()
}

// 2 Publish 把事件发布到 Redis
func (b *RedisBus) Publish(channel string, event Event) error {
	payload, err := json.Marshal(busMessage{Channel: channel, Event: event})
	if err != nil {
		return err
	}
	return b.Client.Publish(b.Ctx, RealtimeRedisChannel, payload).Err()
}

// 3 Run 订阅 Redis 并把收到的事件交给本地 Hub，ctx 取消后返回
func (b *RedisBus) Run(ctx context.Context) error {
	sub := b.Client.Subscribe(ctx, RealtimeRedisChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	logger.Info("[Redis] 已订阅实时频道 %s", RealtimeRedisChannel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.deliver([]byte(msg.Payload))
		}
	}
}

// deliver 解析消息并推送到本地 Hub
func (b *RedisBus) deliver(payload []byte) int {
	var msg busMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logger.Warning("[Redis] 无法解析实时消息: %v", err)
		return 0
	}
	return b.hub.Publish(msg.Channel, msg.Event)
}

// 4 Close 关闭 Redis 连接
func (b *RedisBus) Close() error {
	return b.Client.Close()
}
