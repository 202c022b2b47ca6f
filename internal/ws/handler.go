package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"video-poker-service/internal/game/strategy"
	"video-poker-service/internal/service/videopoker"
	"video-poker-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message types sent to the client.
const (
	TypeProgress  = "progress"
	TypeResult    = "result"
	TypeError     = "error"
	TypeCancelled = "cancelled"
)

type Handler struct {
	videoPoker *videopoker.Service
}

func NewHandler(videoPoker *videopoker.Service) *Handler {
	return &Handler{videoPoker: videoPoker}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// OutgoingMessage is one frame to the client. Seq numbers the search the
// frame belongs to.
type OutgoingMessage struct {
	Type string `json:"type"`
	Seq  int    `json:"seq"`
	Data any    `json:"data"`
}

type progressData struct {
	Done    int              `json:"done"`
	Total   int              `json:"total"`
	Outcome strategy.Outcome `json:"outcome"`
}

// StrategyRequest starts a search. Sending {"type":"cancel"} stops the
// running one.
type StrategyRequest struct {
	Variant   string `json:"variant"`
	Wager     int    `json:"wager"`
	Hand      string `json:"hand"`
	Remaining string `json:"remaining"`
}

// HandleStrategyWS streams strategy searches. Each request produces one
// progress frame per hold pattern and a final result frame. A new request
// replaces the running search; closing the socket cancels it.
func (h *Handler) HandleStrategyWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}
	logger.Log.Info("New strategy stream", zap.String("remote", c.ClientIP()))

	cl := newClient(conn, h.videoPoker)
	cl.run(c.Request.Context())
}

type client struct {
	conn      *websocket.Conn
	svc       *videopoker.Service
	outbound  chan OutgoingMessage
	done      chan struct{}
	pingEvery time.Duration

	mu     sync.Mutex
	seq    int
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newClient(conn *websocket.Conn, svc *videopoker.Service) *client {
	conn.SetReadLimit(1 << 16)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	return &client{
		conn:      conn,
		svc:       svc,
		outbound:  make(chan OutgoingMessage, strategy.Patterns+8),
		done:      make(chan struct{}),
		pingEvery: 25 * time.Second,
	}
}

func (c *client) run(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	go c.writePump()
	c.readPump(ctx)
}

func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.stopSearch()
		close(c.done)
		c.wg.Wait()
		c.conn.Close()
	}()

	for {
		mt, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Log.Info("WS read error", zap.Error(err))
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		var incoming struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(message, &incoming); err != nil {
			c.send(OutgoingMessage{Type: TypeError, Data: gin.H{"message": "invalid payload"}})
			continue
		}

		switch incoming.Type {
		case "strategy":
			var req StrategyRequest
			if err := json.Unmarshal(incoming.Data, &req); err != nil {
				c.send(OutgoingMessage{Type: TypeError, Data: gin.H{"message": "invalid strategy request"}})
				continue
			}
			c.startSearch(ctx, req)
		case "cancel":
			c.stopSearch()
		case "":
		default:
			c.send(OutgoingMessage{Type: TypeError, Data: gin.H{"message": "unknown message type " + incoming.Type}})
		}
	}
}

func (c *client) startSearch(parent context.Context, req StrategyRequest) {
	in, err := videopoker.ParseStrategyInput(req.Variant, req.Wager, req.Hand, req.Remaining)
	if err != nil {
		c.send(OutgoingMessage{Type: TypeError, Data: gin.H{"message": err.Error()}})
		return
	}

	c.stopSearch()
	c.mu.Lock()
	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		start := time.Now()
		res, err := c.svc.StreamStrategy(ctx, in, func(o strategy.Outcome, done int) {
			c.send(OutgoingMessage{Type: TypeProgress, Seq: seq, Data: progressData{
				Done:    done,
				Total:   strategy.Patterns,
				Outcome: o,
			}})
		})
		switch {
		case errors.Is(err, context.Canceled):
			c.send(OutgoingMessage{Type: TypeCancelled, Seq: seq, Data: gin.H{}})
		case err != nil:
			c.send(OutgoingMessage{Type: TypeError, Seq: seq, Data: gin.H{"message": err.Error()}})
		default:
			c.send(OutgoingMessage{Type: TypeResult, Seq: seq, Data: res})
			logger.Log.Debug("WS strategy finished", zap.Int("seq", seq), zap.Duration("elapsed", time.Since(start)))
		}
	}()
}

func (c *client) stopSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *client) send(msg OutgoingMessage) {
	select {
	case c.outbound <- msg:
	case <-c.done:
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.outbound:
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Log.Info("WS write error", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
