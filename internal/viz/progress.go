package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/basinsim/internal/basin"
)

// StatusLine formats "NN.NN% | remaining -> elapsed". The remaining time
// reads "?" until it can be estimated.
func StatusLine(p *basin.Progress, elapsed time.Duration) string {
	remaining := "?"
	if eta, ok := p.ETA(elapsed); ok {
		remaining = eta.Round(time.Second).String()
	}
	return fmt.Sprintf("%6.2f%% | %s -> %s", p.Fraction()*100, remaining, elapsed.Round(time.Second))
}

// Watch rewrites a single status line on w every interval until done is
// closed, then clears it.
func Watch(w io.Writer, p *basin.Progress, start time.Time, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := 0
	write := func(text string) {
		pad := ""
		if n := last - len(text); n > 0 {
			pad = strings.Repeat(" ", n)
		}
		fmt.Fprint(w, "\r"+text+pad)
		last = len(text)
	}

	for {
		write(StatusLine(p, time.Since(start)))
		select {
		case <-done:
			write("")
			fmt.Fprint(w, "\r")
			return
		case <-ticker.C:
		}
	}
}
