package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/engine"
	"github.com/todo-knk/xibalba/pkg/api"
	"github.com/todo-knk/xibalba/pkg/logger"
	"github.com/todo-knk/xibalba/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	commandTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client — посредник между Websocket и GameService.
// Управляет игрой только контроллер, остальные смотрят.
type Client struct {
	srv       *Server
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	SessionID string
}

func NewClient(srv *Server, conn *websocket.Conn) *Client {
	return &Client{
		srv:       srv,
		Conn:      conn,
		Send:      make(chan api.ServerResponse, 256),
		SessionID: utils.GenerateID(),
	}
}

func (c *Client) log() *logrus.Entry {
	return logger.Component("ws").WithField("session", c.SessionID)
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	svc := c.srv.Service
	updates := svc.Hub.Register(c.SessionID)
	controller := c.srv.claim(c.SessionID)

	defer func() {
		svc.Hub.Unregister(c.SessionID)
		c.srv.release(c.SessionID)
		if err := c.Conn.Close(); err != nil {
			c.log().WithError(err).Debug("failed to close websocket connection")
		}
		c.log().Info("client disconnected")
	}()

	// Пересылка обновлений из Hub в writePump
	go func() {
		for msg := range updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	c.log().WithField("controller", controller).Info("client connected")

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log().WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Первый снимок: контроллер проходит через INIT, зритель просто получает состояние
	if controller {
		c.submit(api.ClientCommand{Action: "INIT"})
	} else {
		c.sendSnapshot()
	}

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log().WithError(err).Warn("websocket read error")
			}
			return
		}
		if !c.srv.isController(c.SessionID) {
			c.replyError("spectators cannot send commands")
			continue
		}
		c.submit(cmd)
	}
}

func (c *Client) submit(cmd api.ClientCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if _, err := c.srv.Service.ProcessCommand(ctx, cmd); err != nil {
		c.log().WithError(err).WithField("action", cmd.Action).Debug("command rejected")
		c.replyError(err.Error())
	}
}

func (c *Client) sendSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	snap, err := c.srv.Service.Snapshot(ctx)
	if err != nil {
		c.replyError(err.Error())
		return
	}
	snap.Type = engine.ResponseInit
	c.srv.Service.Hub.SendTo(c.SessionID, snap)
}

func (c *Client) replyError(text string) {
	c.srv.Service.Hub.SendTo(c.SessionID, api.ServerResponse{Type: engine.ResponseError, Error: text})
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log().WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log().WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log().WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log().WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
