package runner

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

type inputResult struct {
	text string
	err  error
}

// lineReader reads lines on a background goroutine so that a blocked read
// never outlives a cancelled context.
type lineReader struct {
	reader    *bufio.Reader
	inputChan chan inputResult
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		reader: bufio.NewReader(r),
		done:   make(chan struct{}),
	}
}

func (l *lineReader) initPump() {
	l.startOnce.Do(func() {
		l.inputChan = make(chan inputResult)
		go l.pump()
	})
}

func (l *lineReader) pump() {
	defer close(l.inputChan)
	for {
		text, err := l.reader.ReadString('\n')

		// A last line without a newline still counts.
		if text != "" && !l.send(inputResult{text: text}) {
			return
		}
		if err != nil {
			if err != io.EOF {
				l.send(inputResult{err: err})
			}
			return
		}
	}
}

// send hands res to ReadLine, giving up once the reader is closed.
func (l *lineReader) send(res inputResult) bool {
	select {
	case l.inputChan <- res:
		return true
	case <-l.done:
		return false
	}
}

// ReadLine returns the next line without its line ending.
func (l *lineReader) ReadLine(ctx context.Context) (string, error) {
	l.initPump()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-l.done:
		return "", io.EOF
	case res, ok := <-l.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimRight(res.text, "\r\n"), nil
	}
}

// Close releases the pump goroutine. A read already blocked on the
// underlying reader finishes first, then the goroutine exits without
// delivering its line.
func (l *lineReader) Close() error {
	l.closeOnce.Do(func() { close(l.done) })
	return nil
}
