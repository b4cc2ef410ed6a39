package sink

import (
	"sync"
	"time"

	"go.bug.st/serial"
)

// SerialConfig configures a SerialSink, per spec.md §4.8's serial
// sink and the teacher's own serial.Mode setup in main.go.
type SerialConfig struct {
	Port                string
	BaudRate            int
	ReconnectDelay      time.Duration
	MaxReconnectAttempts int // negative means retry indefinitely
	SendInterval        time.Duration
	QueueSize           int
}

// SerialSink writes sentences to a serial port, reconnecting on
// transient write failure.
type SerialSink struct {
	counters
	name string
	cfg  SerialConfig

	mu   sync.Mutex
	port serial.Port

	queue     *boundedQueue
	done      chan struct{}
	closeOnce sync.Once
}

// NewSerialSink opens cfg.Port at cfg.BaudRate and starts the sink's
// writer goroutine. An initial open failure is returned to the
// caller; failures encountered later while running are handled by the
// sink's own reconnect loop instead.
func NewSerialSink(name string, cfg SerialConfig) (*SerialSink, error) {
	port, err := openSerialPort(cfg)
	if err != nil {
		return nil, err
	}
	ss := &SerialSink{
		name:  name,
		cfg:   cfg,
		port:  port,
		queue: newBoundedQueue(cfg.QueueSize),
		done:  make(chan struct{}),
	}
	go ss.run()
	return ss, nil
}

func openSerialPort(cfg SerialConfig) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	return serial.Open(cfg.Port, mode)
}

func (ss *SerialSink) run() {
	defer close(ss.done)
	var lastSend time.Time
	for sentence := range ss.queue.ch {
		if ss.cfg.SendInterval > 0 {
			if wait := ss.cfg.SendInterval - time.Since(lastSend); wait > 0 {
				time.Sleep(wait)
			}
		}
		if err := ss.write(sentence); err != nil {
			if !ss.reconnect() {
				return
			}
			continue
		}
		lastSend = time.Now()
		ss.recordSent()
	}
}

func (ss *SerialSink) write(sentence string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	_, err := ss.port.Write([]byte(sentence))
	return err
}

// reconnect closes the current port and retries opening it, honoring
// cfg.ReconnectDelay between attempts and cfg.MaxReconnectAttempts (a
// negative value retries forever). It returns false once attempts are
// exhausted, at which point the writer goroutine exits.
func (ss *SerialSink) reconnect() bool {
	ss.mu.Lock()
	ss.port.Close()
	ss.mu.Unlock()

	attempts := 0
	for ss.cfg.MaxReconnectAttempts < 0 || attempts < ss.cfg.MaxReconnectAttempts {
		attempts++
		time.Sleep(ss.cfg.ReconnectDelay)
		port, err := openSerialPort(ss.cfg)
		if err != nil {
			continue
		}
		ss.mu.Lock()
		ss.port = port
		ss.mu.Unlock()
		return true
	}
	return false
}

func (ss *SerialSink) Name() string { return ss.name }

func (ss *SerialSink) Send(sentence string) {
	if ss.queue.push(sentence) {
		ss.recordDropped()
	}
}

func (ss *SerialSink) Stats() Stats { return ss.stats() }

func (ss *SerialSink) Close() error {
	var err error
	ss.closeOnce.Do(func() {
		close(ss.queue.ch)
		<-ss.done
		ss.mu.Lock()
		err = ss.port.Close()
		ss.mu.Unlock()
	})
	return err
}
