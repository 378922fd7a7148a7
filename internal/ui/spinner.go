// Package ui holds small terminal feedback widgets shared by CLI
// commands, grounded on the teacher's internal/ui/spinner.go — trimmed
// to the spinner itself. The teacher's curve-fitted import progress
// bar (Progress) has no equivalent here: casvc has no long-running
// multi-item import to report progress on.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/caslab/casvc/internal/ui/styles"
)

// Spinner is a simple animated spinner for an operation of unknown
// duration, such as a gc pass against a remote postgres backend.
type Spinner struct {
	message string
	done    chan struct{}
	stopped bool
}

func NewSpinner(message string) *Spinner {
	return &Spinner{message: message, done: make(chan struct{})}
}

// Start begins the spinner animation in the background, or prints a
// static message once on a non-TTY.
func (s *Spinner) Start() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(s.message + "...")
		return
	}

	go func() {
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		style := lipgloss.NewStyle().Foreground(styles.Accent)
		i := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				fmt.Print("\r\033[K")
				return
			case <-ticker.C:
				frame := style.Render(frames[i%len(frames)])
				fmt.Printf("\r\033[K%s %s", frame, s.message)
				i++
			}
		}
	}()
}

func (s *Spinner) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.done)
	time.Sleep(20 * time.Millisecond)
}

func (s *Spinner) Success(msg string) {
	s.Stop()
	fmt.Println(styles.SuccessMsg(msg))
}

func (s *Spinner) Error(msg string) {
	s.Stop()
	fmt.Println(styles.ErrorMsg(msg))
}
