// cmd/server/main.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/moreffnest/weblist-parsers/internal/config"
	weberrors "github.com/moreffnest/weblist-parsers/internal/errors"
	"github.com/moreffnest/weblist-parsers/internal/monitoring"
	"github.com/moreffnest/weblist-parsers/internal/security"
	"github.com/moreffnest/weblist-parsers/internal/utils"
	"github.com/moreffnest/weblist-parsers/pkg/api"
)

// Version information (set by build flags)
var version = "dev"

// server exposes list and history parsing over HTTP
type server struct {
	client    *api.Client
	metrics   *monitoring.Metrics
	health    *monitoring.HealthManager
	validator *security.URLValidator
	logger    utils.Logger
}

// newServer wires the handlers. validator should be the one the client checks
// next-page URLs with, so the start URL and every later page obey one policy.
func newServer(client *api.Client, metrics *monitoring.Metrics, validator *security.URLValidator, logger utils.Logger) *server {
	sources := make([]string, 0, len(api.Sources()))
	for _, lt := range api.Sources() {
		sources = append(sources, lt.String())
	}

	return &server{
		client:    client,
		metrics:   metrics,
		health:    monitoring.NewHealthManager(version, sources),
		validator: validator,
		logger:    logger,
	}
}

func (s *server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.Handle("/health", s.health.HealthHandler()).Methods("GET")
	r.Handle(s.client.Config().Server.MetricsPath, s.metrics.Handler()).Methods("GET")

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/lists", s.handleParseList).Methods("POST")
	v1.HandleFunc("/history", s.handleParseHistory).Methods("POST")
	v1.HandleFunc("/sources", s.handleSources).Methods("GET")

	return r
}

func (s *server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debugf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

type listRequest struct {
	URL string `json:"url"`
}

func (s *server) handleParseList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, errors.New("url is required"))
		return
	}
	if err := s.validator.Check(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && !api.IsStreamFormat(format) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported download format: %s", format))
		return
	}

	result, err := s.client.ParseList(r.Context(), req.URL)
	if err != nil {
		s.logger.WithField("url", req.URL).Warnf("list parsing failed: %v", err)
		writeError(w, statusFor(err), err)
		return
	}

	if format != "" {
		s.writeDownload(w, result.Entries, format)
		return
	}
	writeJSON(w, http.StatusOK, api.NewListResponse(result))
}

// writeDownload sends entries as a file in one of the stream formats
func (s *server) writeDownload(w http.ResponseWriter, entries api.EntrySet, format string) {
	var buf bytes.Buffer
	contentType, err := api.RenderEntries(&buf, entries, format)
	if err != nil {
		s.logger.Errorf("rendering %s failed: %v", format, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="titles%s"`, api.FileExtension(format)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *server) handleParseHistory(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}

	events, err := s.client.ParseHistoryReader(http.MaxBytesReader(w, r.Body, s.client.Config().Server.MaxUpload), format)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	if r.URL.Query().Get("as") == "titles" {
		entries := api.ToEntries(events).Slice()
		if entries == nil {
			entries = []api.Entry{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":   len(entries),
			"entries": entries,
		})
		return
	}

	list := events.Slice()
	if list == nil {
		list = []api.WatchEvent{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(list),
		"events": list,
	})
}

func (s *server) handleSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sources": api.Sources(),
	})
}

// statusFor maps an error kind to an HTTP status
func statusFor(err error) int {
	var (
		maxBytes  *http.MaxBytesError
		syntax    *json.SyntaxError
		typeError *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, api.ErrInvalidListType):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrInvalidFileExtension):
		return http.StatusUnprocessableEntity
	case errors.Is(err, api.ErrInvalidListPage):
		return http.StatusBadGateway
	case errors.As(err, &syntax), errors.As(err, &typeError), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	body := map[string]interface{}{"error": err.Error()}
	if code := weberrors.CodeOf(err); code != "" {
		body["code"] = code
	}
	writeJSON(w, status, body)
}

func main() {
	configFile := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	level, err := utils.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := utils.NewLoggerWithLevel(level).WithField("component", "server")

	metrics := monitoring.NewMetrics(monitoring.MetricsConfig{EnableGoMetrics: true})
	validator := security.NewURLValidator(nil)
	client, err := api.NewClient(cfg,
		api.WithLogger(logger),
		api.WithObserver(metrics),
		api.WithURLCheck(validator.Check),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      newServer(client, metrics, validator, logger).routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("listening on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown failed: %v", err)
	}
}
