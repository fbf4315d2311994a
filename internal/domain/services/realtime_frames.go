package services

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var (
	errUnknownEvent    = errors.New("未知的事件")
	errJoinNotAllowed  = errors.New("无权加入该频道")
	errInvalidChannel  = errors.New("无效的频道")
	errMalformedFrame  = errors.New("无法解析的消息")
	errMissingReceiver = errors.New("缺少接收方")
)

// clientFrame 客户端发来的消息
type clientFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// orderUpdateFrame order_status_update 的内容，原样转发给 userId 对应的账户
type orderUpdateFrame struct {
	UserID json.RawMessage `json:"userId"`
}

// 7 HandleClientFrame 处理客户端消息：join_room 加入频道，order_status_update 转发给目标账户
func (s *RealtimeService) HandleClientFrame(client *Client, raw []byte) error {
	var frame clientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return errMalformedFrame
	}

	switch frame.Event {
	case EventJoinRoom:
		channel, err := channelFromJSON(frame.Data)
		if err != nil {
			return err
		}
		if !client.CanJoin(channel) {
			return errJoinNotAllowed
		}
		s.hub.Subscribe(channel, client)
		return nil

	case EventOrderStatusUpdate:
		var update orderUpdateFrame
		if err := json.Unmarshal(frame.Data, &update); err != nil {
			return errMalformedFrame
		}
		if len(update.UserID) == 0 {
			return errMissingReceiver
		}
		channel, err := channelFromJSON(update.UserID)
		if err != nil {
			return err
		}
		s.publish(channel, Event{Event: EventOrderUpdate, Data: frame.Data})
		return nil
	}

	return errUnknownEvent
}

// channelFromJSON 频道可以是数字或字符串形式的账户ID
func channelFromJSON(data json.RawMessage) (string, error) {
	var id uint64
	if err := json.Unmarshal(data, &id); err == nil && id > 0 {
		return strconv.FormatUint(id, 10), nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return "", errInvalidChannel
	}
	text = strings.TrimSpace(text)
	if id, err := strconv.ParseUint(text, 10, 64); err == nil && id > 0 {
		return strconv.FormatUint(id, 10), nil
	}
	return "", errInvalidChannel
}

// ErrorEvent 返回给客户端的错误事件
func ErrorEvent(err error) Event {
	return Event{Event: EventError, Data: map[string]string{"message": err.Error()}}
}
