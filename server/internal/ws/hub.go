package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wingcheck/wingcheck/server/internal/store"
)

// Connection tuning. pingEvery must stay below idleTimeout.
const (
	writeWait    = 10 * time.Second
	idleTimeout  = time.Minute
	pingEvery    = 54 * time.Second
	queueDepth   = 16
	maxFeedItems = 50
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// CORS belongs to the reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the JSON envelope of every feed frame.
type Message struct {
	Event string `json:"event"`
	Data  Feed   `json:"data"`
}

// Feed is the recent-assessment payload, newest first.
type Feed struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Total       int                `json:"total"`
	Assessments []store.Assessment `json:"assessments"`
}

// Hub pushes the recent-assessment feed to every subscribed workshop screen.
type Hub struct {
	store    *store.Store
	interval time.Duration
	log      *zap.Logger

	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

// subscriber is one open feed connection. queue is closed by the hub only.
type subscriber struct {
	conn   *websocket.Conn
	queue  chan []byte
	remote string
}

// New creates a Hub that publishes st every interval.
func New(st *store.Store, interval time.Duration, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		store:    st,
		interval: interval,
		log:      log,
		subs:     make(map[*subscriber]struct{}),
	}
}

// Run publishes the feed on every tick until ctx is cancelled, then drops
// all subscribers.
func (h *Hub) Run(ctx context.Context) {
	tick := time.NewTicker(h.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			h.dropAll()
			return
		case <-tick.C:
			h.publish()
		}
	}
}

// ServeHTTP upgrades the request, queues the current feed for the new
// subscriber and serves it until the connection ends.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already answered with an HTTP error.
		return
	}

	sub := &subscriber{conn: conn, queue: make(chan []byte, queueDepth), remote: r.RemoteAddr}
	h.add(sub)
	defer h.drop(sub)

	if frame, err := h.frame(); err == nil {
		h.offer(sub, frame)
	}

	go sub.writeLoop()
	sub.readLoop()
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	h.log.Debug("ws: subscriber joined", zap.String("remote", sub.remote))
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	if ok {
		delete(h.subs, sub)
		close(sub.queue)
	}
	h.mu.Unlock()
	if ok {
		h.log.Debug("ws: subscriber left", zap.String("remote", sub.remote))
	}
}

func (h *Hub) dropAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.queue)
	}
}

// offer queues frame for sub without blocking and reports whether it fit.
// Holding the read lock keeps drop from closing the queue mid-send.
func (h *Hub) offer(sub *subscriber, frame []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.subs[sub]; !ok {
		return true
	}
	select {
	case sub.queue <- frame:
		return true
	default:
		return false
	}
}

func (h *Hub) publish() {
	frame, err := h.frame()
	if err != nil {
		h.log.Warn("ws: encode feed", zap.Error(err))
		return
	}

	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if !h.offer(sub, frame) {
			h.log.Debug("ws: subscriber too slow, dropping", zap.String("remote", sub.remote))
			h.drop(sub)
		}
	}
}

// frame encodes the current feed, capped at maxFeedItems assessments.
func (h *Hub) frame() ([]byte, error) {
	list := h.store.List()
	feed := Feed{GeneratedAt: time.Now().UTC(), Total: len(list), Assessments: list}
	if len(list) > maxFeedItems {
		feed.Assessments = list[:maxFeedItems]
	}
	if feed.Assessments == nil {
		feed.Assessments = []store.Assessment{}
	}
	return json.Marshal(Message{Event: "assessments", Data: feed})
}

// writeLoop sends queued frames and keepalive pings. A closed queue ends the
// connection with a close frame.
func (s *subscriber) writeLoop() {
	ping := time.NewTicker(pingEvery)
	defer func() {
		ping.Stop()
		s.conn.Close()
	}()

	for {
		var (
			kind = websocket.TextMessage
			data []byte
		)
		select {
		case frame, open := <-s.queue:
			if !open {
				kind = websocket.CloseMessage
			}
			data = frame
		case <-ping.C:
			kind = websocket.PingMessage
		}

		s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
		if err := s.conn.WriteMessage(kind, data); err != nil || kind == websocket.CloseMessage {
			return
		}
	}
}

// readLoop discards client frames, extending the idle deadline on every pong,
// and returns once the connection fails.
func (s *subscriber) readLoop() {
	defer s.conn.Close()
	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(idleTimeout)) //nolint:errcheck
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}
