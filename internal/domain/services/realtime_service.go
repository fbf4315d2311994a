package services

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/pkg/logger"

	"github.com/google/uuid"
)

// 实时事件名称
const (
	EventOrderStatusUpdated = "order_status_updated"
	EventOrderUpdate        = "order_update"
	EventJoinRoom           = "join_room"
	EventOrderStatusUpdate  = "order_status_update"
	EventError              = "error"
	EventServerShutdown     = "server_shutdown"
)

const defaultClientBuffer = 16

// Event 推送给客户端的事件
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// OrderStatusEvent 订单状态变化事件的内容
type OrderStatusEvent struct {
	OrderID    uint               `json:"orderId"`
	Status     models.OrderStatus `json:"status"`
	TrackingID string             `json:"trackingId"`
}

// UserChannel 每个账户对应一个频道
func UserChannel(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

// Client 一个实时连接，事件写入带缓冲的发送队列
type Client struct {
	ID     string
	UserID uint
	Role   models.Role
	send   chan []byte
}

// NewClient 创建连接，buffer 为发送队列长度
func NewClient(userID uint, role models.Role, buffer int) *Client {
	if buffer <= 0 {
		buffer = defaultClientBuffer
	}
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Role:   role,
		send:   make(chan []byte, buffer),
	}
}

// Send 发送队列，连接注销后关闭
func (c *Client) Send() <-chan []byte {
	return c.send
}

// Reply 把事件放入该连接自己的发送队列，队列已满时丢弃
func (c *Client) Reply(event Event) bool {
	payload, err := json.Marshal(event)
	if err != nil {
		return false
	}
	return offer(c, payload)
}

// CanJoin 普通账户只能加入自己的频道，管理员可以加入任意频道
func (c *Client) CanJoin(channel string) bool {
	return c.Role == models.RoleAdmin || channel == UserChannel(c.UserID)
}

// Hub 本实例内的频道订阅表
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]struct{}
	clients  map[*Client]map[string]struct{}
}

// NewHub 创建频道订阅表
func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[*Client]struct{}),
		clients:  make(map[*Client]map[string]struct{}),
	}
}

// 1 Subscribe 把连接加入频道
func (h *Hub) Subscribe(channel string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.channels[channel]
	if !ok {
		members = make(map[*Client]struct{})
		h.channels[channel] = members
	}
	members[client] = struct{}{}

	joined, ok := h.clients[client]
	if !ok {
		joined = make(map[string]struct{})
		h.clients[client] = joined
	}
	joined[channel] = struct{}{}
}

// 2 Unsubscribe 把连接从所有频道移除并关闭发送队列
func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	joined, ok := h.clients[client]
	if !ok {
		return
	}
	for channel := range joined {
		members := h.channels[channel]
		delete(members, client)
		if len(members) == 0 {
			delete(h.channels, channel)
		}
	}
	delete(h.clients, client)
	close(client.send)
}

// 3 Publish 向频道内的连接推送事件，返回送达的连接数
func (h *Hub) Publish(channel string, event Event) int {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("序列化实时事件失败: %v", err)
		return 0
	}
	return h.publishRaw(channel, payload)
}

// 4 PublishGlobal 向所有连接推送事件
func (h *Hub) PublishGlobal(event Event) int {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("序列化实时事件失败: %v", err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.clients {
		if offer(client, payload) {
			delivered++
		}
	}
	return delivered
}

func (h *Hub) publishRaw(channel string, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.channels[channel] {
		if offer(client, payload) {
			delivered++
		}
	}
	return delivered
}

// Subscribers 频道内的连接数
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// offer 非阻塞写入，队列已满时丢弃
func offer(client *Client, payload []byte) bool {
	select {
	case client.send <- payload:
		return true
	default:
		logger.Warning("连接 %s 发送队列已满，丢弃事件", client.ID)
		return false
	}
}

// InterfaceRealtimeService 实时事件分发接口
type InterfaceRealtimeService interface {
	Hub() *Hub
	NotifyUsers(userIDs []uint, event Event)
	HandleClientFrame(client *Client, raw []byte) error
}

// eventBus 跨实例分发事件
type eventBus interface {
	Publish(channel string, event Event) error
}

// userEventBridge 把账户事件转发到其他通道
type userEventBridge interface {
	PublishUserEvent(userID uint, event Event) error
}

// RealtimeService 组合本地 Hub、可选的 Redis 总线和 MQTT 桥
type RealtimeService struct {
	hub    *Hub
	bus    eventBus
	bridge userEventBridge
}

// NewRealtimeService 创建实时服务，bus 和 bridge 可以为 nil
func NewRealtimeService(hub *Hub, bus *RedisBus, bridge *MQTTBridge) InterfaceRealtimeService {
	s := &RealtimeService{hub: hub}
	if bus != nil {
		s.bus = bus
	}
	if bridge != nil {
		s.bridge = bridge
	}
	return s
}

// Hub 返回本地 Hub
func (s *RealtimeService) Hub() *Hub {
	return s.hub
}

// 5 NotifyUsers 向多个账户的频道推送事件，重复的账户只推送一次
// MQTT 转发在后台进行，不阻塞调用方
func (s *RealtimeService) NotifyUsers(userIDs []uint, event Event) {
	seen := make(map[uint]struct{}, len(userIDs))
	recipients := make([]uint, 0, len(userIDs))
	for _, id := range userIDs {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)

		s.publish(UserChannel(id), event)
	}

	if s.bridge != nil && len(recipients) > 0 {
		go s.forward(recipients, event)
	}
}

// forward 依次把事件转发到 MQTT，失败只记录日志
func (s *RealtimeService) forward(userIDs []uint, event Event) {
	for _, id := range userIDs {
		if err := s.bridge.PublishUserEvent(id, event); err != nil {
			logger.Warning("MQTT 转发事件失败: user_id=%d err=%v", id, err)
		}
	}
}

// publish Redis 不可用时退回本地推送
func (s *RealtimeService) publish(channel string, event Event) {
	if s.bus != nil {
		err := s.bus.Publish(channel, event)
		if err == nil {
			return
		}
		logger.Warning("Redis 发布失败，改为本地推送: %v", err)
	}
	s.hub.Publish(channel, event)
}
