//go:build !windows

// Package stderr captures output that native audio backends write straight
// to file descriptor 2. Left alone, those lines would tear the TUI layout, so
// they are forwarded to the application log instead.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start redirects fd 2 into a pipe and logs each non-empty line at warn
// level. Call it before the speaker is initialised. When it fails, output
// keeps going to the terminal.
func Start(log *zap.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if done != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr, pipeRead, pipeWrite = orig, r, w
	done = make(chan struct{})
	go forward(r, log, done)

	return nil
}

func forward(r *os.File, log *zap.Logger, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn("native stderr", zap.String("line", line))
		}
	}
}

// WriteOriginal writes to the terminal's stderr, bypassing capture.
// Used for fatal errors that must stay visible.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores the original stderr and waits for buffered lines to be logged.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if done == nil {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1

	pipeWrite.Close()
	<-done
	pipeRead.Close()
	done = nil
}
