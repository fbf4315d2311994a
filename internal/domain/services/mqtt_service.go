package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"
	"github.com/Samanvis-dev/LunchBoxExpress/pkg/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// UserOrderTopic 账户订单事件的 MQTT 主题
func UserOrderTopic(userID uint) string {
	return fmt.Sprintf("lunchbox/users/%d/orders", userID)
}

// MQTTMessage 发布到 MQTT 的消息
type MQTTMessage struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MQTTBridge 把订单事件转发给订阅 MQTT 的设备和移动端
type MQTTBridge struct {
	Config         *config.Config
	Client         mqtt.Client
	isConnected    bool
	connectedMutex sync.RWMutex
	publishMutex   sync.Mutex
	now            func() time.Time
}

// NewMQTTBridge 创建 MQTT 桥，需要调用 Connect 后才能发布
func NewMQTTBridge(cfg *config.Config) *MQTTBridge {
	b := &MQTTBridge{Config: cfg, now: time.Now}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBrokerURL)
	// 多实例部署时客户端ID不能重复
	opts.SetClientID(fmt.Sprintf("%s-%s", cfg.MQTTClientID, uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetCleanSession(true)

	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Warning("[MQTT] 连接丢失: %v", err)
		b.setConnected(false)
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("[MQTT] 成功连接到 %s", cfg.MQTTBrokerURL)
		b.setConnected(true)
	})

	b.Client = mqtt.NewClient(opts)
	return b
}

func (b *MQTTBridge) setConnected(v bool) {
	b.connectedMutex.Lock()
	b.isConnected = v
	b.connectedMutex.Unlock()
}

// IsConnected 当前是否已连接
func (b *MQTTBridge) IsConnected() bool {
	b.connectedMutex.RLock()
	defer b.connectedMutex.RUnlock()
	return b.isConnected && b.Client != nil && b.Client.IsConnected()
}

// 1 Connect 连接 MQTT 服务器，失败时按指数退避重试
func (b *MQTTBridge) Connect() error {
	if b.IsConnected() {
		return nil
	}

	maxRetries := 3
	var err error
	for i := 0; i < maxRetries; i++ {
		token := b.Client.Connect()
		if token.WaitTimeout(5*time.Second) && token.Error() == nil {
			b.setConnected(true)
			return nil
		}

		err = token.Error()
		backoff := time.Duration(1<<uint(i)) * time.Second
		logger.Warning("[MQTT] 连接尝试 %d/%d 失败: %v, 将在 %v 后重试", i+1, maxRetries, err, backoff)
		time.Sleep(backoff)
	}
	return fmt.Errorf("[MQTT] 连接失败，已尝试 %d 次: %v", maxRetries, err)
}

// 2 Disconnect 断开连接
func (b *MQTTBridge) Disconnect() {
	if b.Client != nil && b.Client.IsConnected() {
		b.Client.Disconnect(250)
	}
	b.setConnected(false)
}

// 3 PublishUserEvent 把事件发布到账户的订单主题
func (b *MQTTBridge) PublishUserEvent(userID uint, event Event) error {
	if !b.IsConnected() {
		return fmt.Errorf("[MQTT] 未连接")
	}

	payload, err := json.Marshal(MQTTMessage{
		Type:      event.Event,
		Timestamp: b.now().UnixMilli(),
		Payload:   event.Data,
	})
	if err != nil {
		return err
	}

	b.publishMutex.Lock()
	defer b.publishMutex.Unlock()

	token := b.Client.Publish(UserOrderTopic(userID), byte(b.Config.MQTTQoS), false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("[MQTT] 发布超时: %s", UserOrderTopic(userID))
	}
	return token.Error()
}
