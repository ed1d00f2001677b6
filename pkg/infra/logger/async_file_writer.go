package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const flushInterval = 2 * time.Second

// AsyncFileWriter queues log lines to a single goroutine that owns the
// buffered file handle, so request paths never wait on disk. Lines are
// dropped when the queue is full.
type AsyncFileWriter struct {
	file  *os.File
	queue chan []byte
	quit  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

func NewAsyncFileWriter(logFile string, bufferSize int) (*AsyncFileWriter, error) {
	file, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	w := &AsyncFileWriter{
		file:  file,
		queue: make(chan []byte, 1024),
		quit:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run(bufferSize)

	return w, nil
}

func (w *AsyncFileWriter) Write(p []byte) (int, error) {
	line := make([]byte, len(p))
	copy(line, p)

	select {
	case w.queue <- line:
	default:
	}
	return len(p), nil
}

func (w *AsyncFileWriter) run(bufferSize int) {
	defer w.wg.Done()

	buf := bufio.NewWriterSize(w.file, bufferSize)
	flush := time.NewTicker(flushInterval)
	defer flush.Stop()

	for {
		select {
		case line := <-w.queue:
			if _, err := buf.Write(line); err != nil {
				fmt.Fprintln(os.Stderr, "log write failed:", err)
			}

		case <-flush.C:
			_ = buf.Flush()

		case <-w.quit:
			w.drain(buf)
			return
		}
	}
}

// drain empties whatever is still queued before the final flush, so a
// clean shutdown does not lose the last burst of entries.
func (w *AsyncFileWriter) drain(buf *bufio.Writer) {
	for {
		select {
		case line := <-w.queue:
			_, _ = buf.Write(line)
		default:
			_ = buf.Flush()
			return
		}
	}
}

func (w *AsyncFileWriter) Close() {
	w.once.Do(func() {
		close(w.quit)
		w.wg.Wait()
		_ = w.file.Close()
	})
}
