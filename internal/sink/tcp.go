package sink

import (
	"net"
	"sync"
	"time"
)

// TCPConfig configures a TCPSink, per spec.md §4.8's TCP sink.
type TCPConfig struct {
	Addr           string
	MaxClients     int
	ClientTimeout  time.Duration
	SendTimeout    time.Duration
	QueueSize      int
}

// TCPSink listens on Addr and broadcasts every sent sentence to all
// currently connected clients, each served by its own writer task
// with its own queue, per spec.md §5's "one task per sink...
// additionally spawns one task per client and one acceptor."
type TCPSink struct {
	counters
	name     string
	cfg      TCPConfig
	listener net.Listener

	mu      sync.Mutex
	clients map[*tcpClient]struct{}

	closeOnce sync.Once
	done      chan struct{}
}

type tcpClient struct {
	conn  net.Conn
	queue *boundedQueue
	done  chan struct{}
}

// NewTCPSink binds cfg.Addr and starts the accept loop.
func NewTCPSink(name string, cfg TCPConfig) (*TCPSink, error) {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	ts := &TCPSink{
		name:     name,
		cfg:      cfg,
		listener: ln,
		clients:  make(map[*tcpClient]struct{}),
		done:     make(chan struct{}),
	}
	go ts.acceptLoop()
	return ts, nil
}

func (ts *TCPSink) acceptLoop() {
	defer close(ts.done)
	for {
		conn, err := ts.listener.Accept()
		if err != nil {
			return
		}

		ts.mu.Lock()
		if ts.cfg.MaxClients > 0 && len(ts.clients) >= ts.cfg.MaxClients {
			ts.mu.Unlock()
			conn.Close()
			continue
		}
		client := &tcpClient{conn: conn, queue: newBoundedQueue(ts.cfg.QueueSize), done: make(chan struct{})}
		ts.clients[client] = struct{}{}
		ts.mu.Unlock()

		go ts.serveClient(client)
	}
}

func (ts *TCPSink) serveClient(c *tcpClient) {
	defer func() {
		c.conn.Close()
		ts.mu.Lock()
		delete(ts.clients, c)
		ts.mu.Unlock()
		close(c.done)
	}()

	for sentence := range c.queue.ch {
		if ts.cfg.ClientTimeout > 0 {
			c.conn.SetReadDeadline(time.Now().Add(ts.cfg.ClientTimeout))
		}
		if ts.cfg.SendTimeout > 0 {
			c.conn.SetWriteDeadline(time.Now().Add(ts.cfg.SendTimeout))
		}
		if _, err := c.conn.Write([]byte(sentence)); err != nil {
			return
		}
		ts.recordSent()
	}
}

func (ts *TCPSink) Name() string { return ts.name }

// Send broadcasts sentence to every connected client's queue.
func (ts *TCPSink) Send(sentence string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for c := range ts.clients {
		if c.queue.push(sentence) {
			ts.recordDropped()
		}
	}
}

func (ts *TCPSink) Stats() Stats { return ts.stats() }

func (ts *TCPSink) Close() error {
	var err error
	ts.closeOnce.Do(func() {
		err = ts.listener.Close()
		<-ts.done

		ts.mu.Lock()
		clients := make([]*tcpClient, 0, len(ts.clients))
		for c := range ts.clients {
			clients = append(clients, c)
		}
		ts.mu.Unlock()

		for _, c := range clients {
			close(c.queue.ch)
			<-c.done
		}
	})
	return err
}
