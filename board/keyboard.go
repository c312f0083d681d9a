package board

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

const ctrlC = 0x03

// Keyboard turns key presses into button presses: 1, a or m press A and
// 2, b or q press B. A press stays latched until the loop samples it.
type Keyboard struct {
	a, b latch

	src       io.Reader
	restore   func() error
	stop      chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

type latch struct{ on atomic.Bool }

// Active reports a latched press and clears it.
func (l *latch) Active() bool { return l.on.Swap(false) }

// deadliner is implemented by readers whose blocked reads can be interrupted,
// such as *os.File on pollable descriptors and net.Conn.
type deadliner interface {
	SetReadDeadline(t time.Time) error
}

// NewKeyboard reads keys from r until it is exhausted or the keyboard is
// closed. Ctrl-C calls interrupt when it is not nil.
func NewKeyboard(r io.Reader, interrupt func()) *Keyboard {
	k := &Keyboard{src: r, stop: make(chan struct{}), done: make(chan struct{})}
	go k.read(bufio.NewReader(r), interrupt)
	return k
}

// OpenKeyboard switches stdin to raw mode and reads keys from it. Close
// restores the terminal.
func OpenKeyboard(interrupt func()) (*Keyboard, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	k := NewKeyboard(os.Stdin, interrupt)
	k.restore = func() error { return term.Restore(fd, old) }
	return k, nil
}

func (k *Keyboard) stopped() bool {
	select {
	case <-k.stop:
		return true
	default:
		return false
	}
}

func (k *Keyboard) read(br *bufio.Reader, interrupt func()) {
	defer close(k.done)
	for {
		c, err := br.ReadByte()
		if k.stopped() {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("keyboard read failed: %v", err)
			}
			return
		}
		switch c {
		case '1', 'a', 'A', 'm', 'M':
			k.a.on.Store(true)
		case '2', 'b', 'B', 'q', 'Q':
			k.b.on.Store(true)
		case ctrlC:
			if interrupt != nil {
				interrupt()
			}
		}
	}
}

// A is the Manhattan button.
func (k *Keyboard) A() Button { return &k.a }

// B is the Queens button.
func (k *Keyboard) B() Button { return &k.b }

// Done is closed when the reader has returned.
func (k *Keyboard) Done() <-chan struct{} { return k.done }

// Close stops the reader and restores the terminal mode, if it was changed.
// A read blocked on a source without deadline support (stdin on some
// platforms) returns at the next key, which is discarded; Done closes then.
func (k *Keyboard) Close() error {
	var err error
	k.closeOnce.Do(func() {
		close(k.stop)
		if d, ok := k.src.(deadliner); ok {
			_ = d.SetReadDeadline(time.Now())
		}
		if k.restore != nil {
			err = k.restore()
		}
	})
	return err
}
