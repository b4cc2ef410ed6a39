package sink

import (
	"fmt"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures a FileSink, per spec.md §4.8's file sink.
type FileConfig struct {
	Path       string
	LineEnding string // defaults to "\r\n"
	MaxSizeMB  int    // rotate when the current file reaches this size
	MaxFiles   int    // retain at most this many rotated files
	QueueSize  int
}

// FileSink appends produced sentences to a rotating log file. Rotation
// itself is delegated to lumberjack.Logger, which implements the same
// rename-and-cap-oldest policy spec.md §4.8 describes.
type FileSink struct {
	counters
	name       string
	lineEnding string
	logger     *lumberjack.Logger
	queue      *boundedQueue
	done       chan struct{}
	closeOnce  sync.Once
}

// NewFileSink sets up rotation for cfg.Path and starts the sink's
// writer goroutine. The file is opened (and created if needed) on the
// first write.
func NewFileSink(name string, cfg FileConfig) *FileSink {
	lineEnding := cfg.LineEnding
	if lineEnding == "" {
		lineEnding = "\r\n"
	}
	fs := &FileSink{
		name:       name,
		lineEnding: lineEnding,
		logger: &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxFiles,
		},
		queue: newBoundedQueue(cfg.QueueSize),
		done:  make(chan struct{}),
	}
	go fs.run()
	return fs
}

func (fs *FileSink) run() {
	defer close(fs.done)
	for sentence := range fs.queue.ch {
		if _, err := fmt.Fprintf(fs.logger, "%s%s", sentence, fs.lineEnding); err != nil {
			continue
		}
		fs.recordSent()
	}
}

func (fs *FileSink) Name() string { return fs.name }

func (fs *FileSink) Send(sentence string) {
	if fs.queue.push(sentence) {
		fs.recordDropped()
	}
}

func (fs *FileSink) Stats() Stats { return fs.stats() }

func (fs *FileSink) Close() error {
	var err error
	fs.closeOnce.Do(func() {
		close(fs.queue.ch)
		<-fs.done
		err = fs.logger.Close()
	})
	return err
}
