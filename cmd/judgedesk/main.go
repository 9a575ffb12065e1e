package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abrezinsky/judgedesk/internal/app"
	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/metrics"
	"github.com/abrezinsky/judgedesk/internal/rubric"
	"github.com/abrezinsky/judgedesk/pkg/eventapi"
)

// ANSI escape codes
const (
	reset  = "\033[0m"
	yellow = "\033[33m"
	red    = "\033[31m"
	green  = "\033[32m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

var (
	version = "dev"
)

// showBanner prints the JudgeDesk logo
func showBanner() {
	width := 62
	border := strings.Repeat("═", width)
	logo := []string{
		"        _           _            ____            _          ",
		"       | |_   _  __| | __ _  ___|  _ \\  ___  ___| | __      ",
		"    _  | | | | |/ _` |/ _` |/ _ \\ | | |/ _ \\/ __| |/ /      ",
		"   | |_| | |_| | (_| | (_| |  __/ |_| |  __/\\__ \\   <       ",
		"    \\___/ \\__,_|\\__,_|\\__, |\\___|____/ \\___||___/_|\\_\\      ",
		"                      |___/                                 ",
	}

	fmt.Printf("\n  %s╔%s╗%s\n", cyan, border, reset)
	for _, line := range logo {
		for len(line) < width {
			line += " "
		}
		fmt.Printf("  %s║%s%s%s║%s\n", cyan, yellow, line, cyan, reset)
	}
	fmt.Printf("  %s╚%s╝%s\n\n", cyan, border, reset)
}

func main() {
	port := flag.Int("port", 8082, "HTTP server port")
	dbPath := flag.String("db", "judgedesk.db", "SQLite database path")
	apiURL := flag.String("api", "", "Event API base URL (overrides stored setting)")
	apiToken := flag.String("token", os.Getenv("JUDGEDESK_API_TOKEN"), "Event API bearer token")
	judgeID := flag.Int("judge", 0, "Judge id used for score summaries")
	rubricPath := flag.String("rubric", "", "Rubric YAML file (built-in rubric if not set)")
	refresh := flag.Duration("refresh", 30*time.Second, "Judging progress auto-refresh interval (0 disables)")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	noKeyboard := flag.Bool("nokeyboard", false, "Disable keyboard shortcuts")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `JudgeDesk - Judging and event administration backend

Usage:
  judgedesk [options]

Options:
  -port int       HTTP server port (default 8082)
  -db string      SQLite database path (default "judgedesk.db")
  -api string     Event API base URL
  -token string   Event API bearer token (default $JUDGEDESK_API_TOKEN)
  -judge int      Judge id used for score summaries
  -rubric string  Rubric YAML file
  -refresh dur    Auto-refresh interval, 0 disables (default 30s)
  -loglevel str   Log level: debug, info, warn, error (default "info")
  -nokeyboard     Disable keyboard shortcuts
  -version        Show version and exit
  -help           Show this help message

Keyboard Shortcuts (when enabled):
  r               Refresh judging progress
  h               Toggle HTTP request logging
  l               Cycle log level (debug → info → warn → error)
  q               Quit server
  ?               Show keyboard help

Examples:
  judgedesk -api https://events.example.org/api -judge 7
  judgedesk -rubric rubric.yaml -refresh 1m
  judgedesk -port 80 -db prod.db -nokeyboard

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("judgedesk %s\n", version)
		os.Exit(0)
	}

	showBanner()

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	r := rubric.Default()
	if *rubricPath != "" {
		loaded, err := rubric.Load(*rubricPath)
		if err != nil {
			log.Fatal("Failed to load rubric: ", err)
		}
		r = loaded
	}

	m := metrics.New()
	// URL is set from flags or stored settings
	client := eventapi.NewHTTPClient("", appLog, m)

	cfg := app.Config{
		DBPath:          *dbPath,
		APIURL:          *apiURL,
		APIToken:        *apiToken,
		JudgeID:         *judgeID,
		Rubric:          r,
		RefreshInterval: *refresh,
	}
	a, err := app.New(appLog, cfg, client, m)
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", *port)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(ctx, addr)
	}()

	if !*noKeyboard {
		printKeyboardHelp()
		keys := &keyActions{
			log:     appLog,
			refresh: a.Refresh,
			quit:    stop,
			out:     os.Stdout,
		}
		go listenForKeyboard(keys)
	} else {
		fmt.Printf("\n%sKeyboard shortcuts disabled (use -nokeyboard=false to enable)%s\n\n", yellow, reset)
	}

	if err := <-serverErr; err != nil {
		log.Fatal(err)
	}
}
