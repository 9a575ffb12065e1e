package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/services"
)

// keyActions maps single key presses to server actions
type keyActions struct {
	log     *logger.SlogLogger
	refresh func(ctx context.Context) (*services.Dashboard, error)
	quit    func()
	out     io.Writer
}

// handle runs the action bound to key. It returns false once quit is requested.
func (k *keyActions) handle(key byte) bool {
	switch strings.ToLower(string(key)) {
	case "r":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		d, err := k.refresh(ctx)
		switch {
		case err != nil:
			fmt.Fprintf(k.out, "%sRefresh failed: %v%s\n", red, err, reset)
		case d.ProgramID == 0:
			fmt.Fprintf(k.out, "%sNo program selected%s\n", yellow, reset)
		default:
			fmt.Fprintf(k.out, "%sProgram %d: %s, %d/%d scored%s\n",
				green, d.ProgramID, d.Progress.State, d.Progress.Scored, d.Progress.Total, reset)
		}
	case "h":
		if k.log.ToggleHTTPLogging() {
			fmt.Fprintf(k.out, "%sHTTP logging enabled%s\n", green, reset)
		} else {
			fmt.Fprintf(k.out, "%sHTTP logging disabled%s\n", yellow, reset)
		}
	case "l":
		level := k.log.CycleLevel()
		fmt.Fprintf(k.out, "%sLog level: %s%s%s\n", green, yellow, strings.ToLower(level.String()), reset)
	case "q", "\x03": // Ctrl+C
		fmt.Fprintf(k.out, "%sShutting down server...%s\n", yellow, reset)
		k.quit()
		return false
	case "?":
		printKeyboardHelp()
	}
	return true
}

// readKeys feeds bytes from r to k until quit or EOF
func readKeys(r io.Reader, k *keyActions) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		if !k.handle(buf[0]) {
			return
		}
	}
}

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp() {
	fmt.Printf("\n%s%s  Keyboard Shortcuts:%s\n", bold, green, reset)
	fmt.Printf("    %sr%s      - Refresh judging progress\n", cyan, reset)
	fmt.Printf("    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Printf("    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Printf("    %sq%s      - Quit server\n", cyan, reset)
	fmt.Printf("    %s?%s      - Show this help\n\n", cyan, reset)
}
