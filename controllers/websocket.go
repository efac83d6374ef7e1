package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"warbler/auth"
	"warbler/middleware"
	"warbler/models"
	"warbler/templates"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || strings.HasSuffix(origin, "://"+r.Host)
	},
}

type Client struct {
	conn   *websocket.Conn
	userID int
	mutex  sync.Mutex
}

func (cl *Client) write(payload string) error {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return cl.conn.WriteMessage(websocket.TextMessage, []byte(payload))
}

type delivery struct {
	userID int
	html   string
}

// Hub fans timeline fragments out to the sockets of the users they concern.
type Hub struct {
	clients   map[int]map[*Client]bool
	broadcast chan delivery
	mutex     sync.Mutex
}

func NewHub(buffer int) *Hub {
	return &Hub{
		clients:   make(map[int]map[*Client]bool),
		broadcast: make(chan delivery, buffer),
	}
}

// Publish queues html for userID without blocking. It reports false when
// the queue is full and the fragment was dropped.
func (h *Hub) Publish(userID int, html string) bool {
	select {
	case h.broadcast <- delivery{userID: userID, html: html}:
		return true
	default:
		log.Printf("Live update for user %d dropped: queue full", userID)
		return false
	}
}

func (h *Hub) Connected(userID int) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients[userID])
}

func (h *Hub) register(cl *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.clients[cl.userID] == nil {
		h.clients[cl.userID] = make(map[*Client]bool)
	}
	h.clients[cl.userID][cl] = true
}

func (h *Hub) unregister(cl *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if set, ok := h.clients[cl.userID]; ok {
		delete(set, cl)
		if len(set) == 0 {
			delete(h.clients, cl.userID)
		}
	}
	cl.conn.Close()
}

func (h *Hub) RunSocket(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-h.broadcast:
			h.mutex.Lock()
			targets := make([]*Client, 0, len(h.clients[d.userID]))
			for cl := range h.clients[d.userID] {
				targets = append(targets, cl)
			}
			h.mutex.Unlock()

			for _, cl := range targets {
				if err := cl.write(d.html); err != nil {
					h.unregister(cl)
				}
			}
		}
	}
}

func (a *App) WebSocket(c *gin.Context) {
	session := middleware.CurrentSession(c)
	userID, decision := auth.RequireAuthenticated(session)
	if decision == auth.Denied {
		a.Unauthorized(c)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	client := &Client{conn: conn, userID: userID}
	a.Hub.register(client)
	defer a.Hub.unregister(client)

	sessionID := session.ID
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		current, valid := a.Sessions.Get(sessionID)
		if !valid || current.UserID != userID {
			client.write(`<div hx-swap-oob="innerHTML:#error-container"><div class="alert alert-danger">Your session has expired. Please <a href="/login">log in</a> again.</div></div>`)
			return
		}
	}
}

// publishMessage pushes a new message to its author and the author's followers.
func (a *App) publishMessage(c *gin.Context, msg models.Message) {
	if a.Hub == nil {
		return
	}

	ctx := c.Request.Context()
	followers, err := a.Follows.Followers(ctx, msg.UserID)
	if err != nil {
		log.Printf("Live update for message %d skipped followers: %v", msg.ID, err)
	}

	// Only the author's copy carries the delete button.
	own, err := liveFragment(ctx, msg, msg.UserID)
	if err != nil {
		log.Println("Render error:", err)
		return
	}
	other, err := liveFragment(ctx, msg, 0)
	if err != nil {
		log.Println("Render error:", err)
		return
	}

	if a.Hub.Connected(msg.UserID) > 0 {
		a.Hub.Publish(msg.UserID, own)
	}
	for _, f := range followers {
		if f.ID != msg.UserID && a.Hub.Connected(f.ID) > 0 {
			a.Hub.Publish(f.ID, other)
		}
	}
}

func liveFragment(ctx context.Context, msg models.Message, viewerID int) (string, error) {
	var buf strings.Builder
	if err := templates.MessageItem(msg, viewerID).Render(ctx, &buf); err != nil {
		return "", err
	}
	return `<div hx-swap-oob="afterbegin:#messages">` + buf.String() + `</div>`, nil
}

func (a *App) publishDeletion(c *gin.Context, messageID int) {
	if a.Hub == nil {
		return
	}
	fragment := fmt.Sprintf(`<li id="message-%d" hx-swap-oob="delete"></li>`, messageID)

	userID := middleware.CurrentSession(c).UserID
	targets := []int{userID}
	followers, err := a.Follows.Followers(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Live delete of message %d skipped followers: %v", messageID, err)
	}
	for _, f := range followers {
		targets = append(targets, f.ID)
	}
	for _, id := range targets {
		if a.Hub.Connected(id) > 0 {
			a.Hub.Publish(id, fragment)
		}
	}
}
