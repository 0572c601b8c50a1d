package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"portfolio-backend-go/internal/config"
	"portfolio-backend-go/internal/db"
	httpapi "portfolio-backend-go/internal/http"
	"portfolio-backend-go/internal/migrations"
	"portfolio-backend-go/internal/notify"
	"portfolio-backend-go/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if sink, err := newLogSink(); err != nil {
		log.Printf("logger setup failed: %v", err)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, sink))
		defer sink.Close()
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := migrations.Apply(database, "migrations"); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.BrevoAPIKey != "" && cfg.AdminEmail != "" {
		notifier = notify.NewBrevo(cfg.BrevoAPIKey, cfg.AdminEmail,
			time.Duration(cfg.NotifyTimeoutSeconds)*time.Second)
	} else {
		log.Printf("notifier disabled: BREVO_API_KEY or ADMIN_EMAIL not set")
	}

	server := httpapi.NewServer(store.NewPG(database), cfg, notifier)

	addr := ":8080"
	if value := os.Getenv("PORT"); value != "" {
		addr = ":" + value
	}
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	go func() {
		log.Printf("listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
	log.Printf("shutdown complete")
}

// logSink writes to a per-day file under LOG_DIR, switching files when the
// date changes and pruning files older than the retention window.
type logSink struct {
	mu   sync.Mutex
	dir  string
	keep int
	date string
	file *os.File
}

func newLogSink() (*logSink, error) {
	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = "storage/logs"
	}
	keep := 7
	if value := os.Getenv("LOG_RETENTION_DAYS"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			keep = parsed
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	sink := &logSink{dir: dir, keep: keep}
	if err := sink.rotate(time.Now().Format("2006-01-02")); err != nil {
		return nil, err
	}
	return sink, nil
}

func (l *logSink) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if date := time.Now().Format("2006-01-02"); date != l.date {
		if err := l.rotate(date); err != nil {
			return 0, err
		}
	}
	return l.file.Write(p)
}

func (l *logSink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// rotate must be called with l.mu held (or before the sink is shared).
func (l *logSink) rotate(date string) error {
	file, err := os.OpenFile(filepath.Join(l.dir, "app-"+date+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = file
	l.date = date
	l.prune()
	return nil
}

func (l *logSink) prune() {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -(l.keep - 1))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		logDate, err := time.Parse("2006-01-02", strings.TrimSuffix(strings.TrimPrefix(name, "app-"), ".log"))
		if err != nil {
			continue
		}
		if logDate.Before(cutoff) {
			_ = os.Remove(filepath.Join(l.dir, name))
		}
	}
}
