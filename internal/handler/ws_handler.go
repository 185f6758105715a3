package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jason-czar/Sportstreams/internal/config"
	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/internal/hub"
	"github.com/jason-czar/Sportstreams/internal/viewers"
	"github.com/jason-czar/Sportstreams/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades connections and dispatches the inbound control messages
// recognized by the fan-out registry.
type WSHandler struct {
	hub     *hub.Hub
	tracker *viewers.Tracker
	wsCfg   config.WebSocketConfig
}

func NewWSHandler(h *hub.Hub, tracker *viewers.Tracker, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:     h,
		tracker: tracker,
		wsCfg:   wsCfg,
	}
}

func (h *WSHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", h.HandleWebSocket)
}

// wsSession is the per-connection state. eventID mirrors the channel this
// connection joined so presence cleanup does not depend on the hub still
// holding the subscription: a stalled client evicted by the hub has already
// lost its side-table entry by the time the read loop unwinds. All access is
// from the read goroutine.
type wsSession struct {
	handler *WSHandler
	client  *hub.Client
	eventID string
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.L().Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)
	h.hub.Register(client)

	sess := &wsSession{handler: h, client: client}

	go client.WritePump()
	go func() {
		client.ReadPump(sess.handleMessage)
		sess.leaveCurrent(context.Background())
		h.hub.Unregister(client)
	}()
}

// leaveCurrent reports the viewer's departure from whichever event this
// connection last joined, if any.
func (s *wsSession) leaveCurrent(ctx context.Context) {
	if s.eventID == "" {
		return
	}
	s.handler.tracker.ViewerLeft(ctx, s.eventID, s.client.ID)
	s.eventID = ""
}

// handleMessage dispatches one inbound frame over the closed message set.
// Unrecognized types are logged and ignored; they never terminate the
// connection.
func (s *wsSession) handleMessage(client *hub.Client, message []byte) {
	h := s.handler

	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		log.L().Debug().Str(log.FieldClientID, client.ID).Msg("unparseable client message ignored")
		return
	}

	ctx := context.Background()

	switch base.Type {
	case domain.MsgTypeJoinEvent:
		var msg domain.JoinEventMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.EventID == "" {
			log.L().Debug().Str(log.FieldClientID, client.ID).Msg("malformed join_event ignored")
			return
		}

		if s.eventID != "" && s.eventID != msg.EventID {
			h.tracker.ViewerLeft(ctx, s.eventID, client.ID)
		}
		s.eventID = msg.EventID
		h.hub.Subscribe(client, msg.EventID)
		h.tracker.ViewerJoined(ctx, msg.EventID, client.ID)
		client.SendMessage(&domain.EventJoinedMessage{
			Type:    domain.MsgTypeEventJoined,
			EventID: msg.EventID,
		})

	case domain.MsgTypeLeaveEvent:
		var msg domain.LeaveEventMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.EventID == "" {
			log.L().Debug().Str(log.FieldClientID, client.ID).Msg("malformed leave_event ignored")
			return
		}

		h.hub.Unsubscribe(client, msg.EventID)
		if s.eventID == msg.EventID {
			s.eventID = ""
			h.tracker.ViewerLeft(ctx, msg.EventID, client.ID)
		}
		client.SendMessage(&domain.EventLeftMessage{
			Type:    domain.MsgTypeEventLeft,
			EventID: msg.EventID,
		})

	case domain.MsgTypePing:
		client.SendMessage(map[string]string{"type": domain.MsgTypePong})

	default:
		log.L().Debug().
			Str(log.FieldClientID, client.ID).
			Str("message_type", base.Type).
			Msg("unknown message type ignored")
	}
}
