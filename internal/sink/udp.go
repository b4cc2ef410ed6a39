package sink

import (
	"net"
	"sync"
)

// UDPConfig configures a UDPSink. Each sent sentence is written as one
// datagram; sentences that don't fit a single datagram are the
// caller's problem, per spec.md §4.8 ("no fragmentation at this
// layer").
type UDPConfig struct {
	Addr      string // destination host:port
	Broadcast bool
	QueueSize int
}

// UDPSink writes every sentence as a single UDP datagram to a fixed
// destination.
type UDPSink struct {
	counters
	name      string
	conn      *net.UDPConn
	queue     *boundedQueue
	done      chan struct{}
	closeOnce sync.Once
}

// NewUDPSink resolves cfg.Addr and opens the socket used to send
// datagrams. When cfg.Broadcast is set the caller is expected to have
// passed a broadcast address (e.g. 255.255.255.255:port); Go's net
// package requires no special socket option for sending to one.
func NewUDPSink(name string, cfg UDPConfig) (*UDPSink, error) {
	raddr, err := net.ResolveUDPAddr("udp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, err
	}
	us := &UDPSink{
		name:  name,
		conn:  conn,
		queue: newBoundedQueue(cfg.QueueSize),
		done:  make(chan struct{}),
	}
	go us.run()
	return us, nil
}

func (us *UDPSink) run() {
	defer close(us.done)
	for sentence := range us.queue.ch {
		if _, err := us.conn.Write([]byte(sentence)); err != nil {
			continue
		}
		us.recordSent()
	}
}

func (us *UDPSink) Name() string { return us.name }

func (us *UDPSink) Send(sentence string) {
	if us.queue.push(sentence) {
		us.recordDropped()
	}
}

func (us *UDPSink) Stats() Stats { return us.stats() }

func (us *UDPSink) Close() error {
	var err error
	us.closeOnce.Do(func() {
		close(us.queue.ch)
		<-us.done
		err = us.conn.Close()
	})
	return err
}
