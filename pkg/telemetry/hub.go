package telemetry

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// commandBuffer 等待渲染线程处理的命令上限，超出的命令被丢弃
const commandBuffer = 16

// writeTimeout 单个客户端写超时
const writeTimeout = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 检查器只监听本地地址
	},
}

// Hub 管理检查器客户端并广播快照
type Hub struct {
	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	// latest 容量为 1 的邮箱：新快照覆盖未发送的旧快照
	latest   chan Snapshot
	commands chan Command
}

// NewHub 创建 Hub，调用 Run 开始广播
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[*websocket.Conn]*sync.Mutex),
		latest:   make(chan Snapshot, 1),
		commands: make(chan Command, commandBuffer),
	}
}

// Publish 投递最新快照，不阻塞
func (h *Hub) Publish(s Snapshot) {
	for {
		select {
		case h.latest <- s:
			return
		default:
		}
		// 邮箱已满：取出旧快照再重试
		select {
		case <-h.latest:
		default:
		}
	}
}

// Commands 返回客户端命令通道
func (h *Hub) Commands() <-chan Command {
	return h.commands
}

// ClientCount 返回当前连接数
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Run 广播快照直到 ctx 取消，退出时关闭所有连接
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case s := <-h.latest:
			h.broadcast(s)
		}
	}
}

func (h *Hub) broadcast(s Snapshot) {
	h.clientsMu.RLock()
	failed := []*websocket.Conn{}
	for conn, mu := range h.clients {
		mu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := conn.WriteJSON(s)
		mu.Unlock()
		if err != nil {
			log.Printf("[Telemetry] write error: %v", err)
			failed = append(failed, conn)
		}
	}
	h.clientsMu.RUnlock()

	if len(failed) > 0 {
		h.clientsMu.Lock()
		for _, conn := range failed {
			conn.Close()
			delete(h.clients, conn)
		}
		h.clientsMu.Unlock()
	}
}

func (h *Hub) closeAll() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

// ServeHTTP 升级连接并读取客户端命令
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Telemetry] upgrade error: %v", err)
		return
	}

	h.clientsMu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.clientsMu.Unlock()
	log.Printf("[Telemetry] client connected: %s", conn.RemoteAddr())

	defer func() {
		h.clientsMu.Lock()
		delete(h.clients, conn)
		h.clientsMu.Unlock()
		conn.Close()
	}()

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[Telemetry] read error: %v", err)
			}
			return
		}
		select {
		case h.commands <- cmd:
		default:
			log.Printf("[Telemetry] command dropped: queue full")
		}
	}
}

// ListenAndServe 在 addr 上提供 /ws，直到 ctx 取消
func ListenAndServe(ctx context.Context, addr string, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("[Telemetry] inspector listening on ws://%s/ws", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
