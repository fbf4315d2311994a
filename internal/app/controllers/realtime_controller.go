package controllers

import (
	"net/http"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"
	"github.com/Samanvis-dev/LunchBoxExpress/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域由 CORS 中间件控制
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RealtimeController 实时推送控制器
type RealtimeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRealtimeController 创建实时推送控制器
func NewRealtimeController(ctx *gin.Context, container *container.ServiceContainer) *RealtimeController {
	return &RealtimeController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleRealtimeFunc 返回一个处理实时连接的Gin处理函数
func HandleRealtimeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRealtimeController(ctx, container)

		switch method {
		case "connect":
			controller.Connect()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Connect 建立 websocket 连接，自动加入自己账户的频道
// @Summary      Realtime channel
// @Description  WebSocket upgrade. Frames are JSON {event, data}; clients may send join_room and order_status_update, the server pushes order_status_updated and order_update
// @Tags         Realtime
// @Param        token  query  string  true  "Bearer token"
// @Success      101
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /ws [get]
func (c *RealtimeController) Connect() {
	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	identity, err := jwtService.ParseToken(c.Ctx.Query("token"))
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Ctx.Writer, c.Ctx.Request, nil)
	if err != nil {
		logger.Warning("websocket 升级失败: %v", err)
		return
	}

	realtime := c.Container.GetService("realtime").(services.InterfaceRealtimeService)
	client := services.NewClient(identity.UserID, identity.Role, 0)
	realtime.Hub().Subscribe(services.UserChannel(identity.UserID), client)
	logger.Info("实时连接建立: client=%s user_id=%d", client.ID, identity.UserID)

	go writePump(conn, client)
	readPump(conn, client, realtime)

	realtime.Hub().Unsubscribe(client)
	logger.Info("实时连接断开: client=%s user_id=%d", client.ID, identity.UserID)
}

// readPump 读取客户端消息直到连接关闭
func readPump(conn *websocket.Conn, client *services.Client, realtime services.InterfaceRealtimeService) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warning("websocket 读取失败: %v", err)
			}
			return
		}

		// 写操作只在 writePump 中进行
		if err := realtime.HandleClientFrame(client, message); err != nil {
			client.Reply(services.ErrorEvent(err))
		}
	}
}

// writePump 把发送队列中的事件写到连接，队列关闭后结束
func writePump(conn *websocket.Conn, client *services.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.Send():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
