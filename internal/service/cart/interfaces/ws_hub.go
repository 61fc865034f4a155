package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"artisan/internal/pkg/logger"
	"artisan/internal/service/cart/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool { // 简化处理，允许所有跨域
		return true
	},
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Hub 维护所有活跃的连接，并把每次购物车变更后的快照广播出去，
// 多个客户端看到的购物车因此保持一致。
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan domain.State
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan domain.State, 8),
	}
}

// Run 驱动 Hub 的事件循环，ctx 结束时关闭所有连接。
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case state := <-h.broadcast:
			payload, err := json.Marshal(toResponse(state))
			if err != nil {
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// 写不进去说明客户端已经跟不上了，直接断开
					delete(h.clients, client)
					close(client.send)
				}
			}
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

// Publish 把快照交给事件循环广播，满了就丢弃（订阅者只关心最新状态）。
func (h *Hub) Publish(state domain.State) {
	select {
	case h.broadcast <- state:
	default:
	}
}

// Client 是一个 WebSocket 连接的代表。
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// 客户端不会发业务消息，读循环只负责发现断连
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ServeWS 把 HTTP 连接升级为 WebSocket 并挂到 Hub 上。
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 16)}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
