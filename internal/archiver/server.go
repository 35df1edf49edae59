package archiver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/scribe-data/scribe/internal/csv"
)

// Server exposes streaming CSV validation over HTTP: clients POST a file
// body and get back shape and quoting diagnostics without storing
// anything.
type Server struct {
	logger *zap.Logger
}

// ValidationResult is the response body of the validate endpoint.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Columns []string `json:"columns,omitempty"`
	Records int      `json:"records"`
	Lines   int      `json:"lines"`
	Error   string   `json:"error,omitempty"`
}

func NewServer(logger *zap.Logger) *Server {
	return &Server{
		logger: logger,
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Post("/api/v1/validate", s.validate)

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptionsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := validateStream(r.Body, opts...)

	s.logger.Info("validate",
		zap.Bool("valid", result.Valid),
		zap.Int("records", result.Records),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)

	w.Header().Set("Content-Type", "application/json")
	if !result.Valid {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	json.NewEncoder(w).Encode(result)
}

// decodeOptionsFromQuery maps ?delimiter= and ?quote= onto decoder
// options. Values must be single characters.
func decodeOptionsFromQuery(r *http.Request) ([]csv.Option, error) {
	var opts []csv.Option

	if d := r.URL.Query().Get("delimiter"); d != "" {
		if len(d) != 1 {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", d)
		}
		opts = append(opts, csv.WithDelimiter(d[0]))
	}
	if q := r.URL.Query().Get("quote"); q != "" {
		if len(q) != 1 {
			return nil, fmt.Errorf("quote must be a single character, got %q", q)
		}
		opts = append(opts, csv.WithQuote(q[0]))
	}
	return opts, nil
}

func validateStream(body io.Reader, opts ...csv.Option) ValidationResult {
	var result ValidationResult

	dec, err := csv.NewDecoder(body, opts...)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	header, err := dec.ReadHeader()
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Columns = header.Columns()

	for {
		err := dec.ReadRow()
		if err == io.EOF {
			result.Valid = true
			result.Lines = dec.LineNumber()
			return result
		}
		if err != nil {
			result.Error = err.Error()
			result.Lines = dec.LineNumber()
			return result
		}
		result.Records++
	}
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}

	s.logger.Info("starting validation server", zap.String("addr", addr))

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down validation server")
		srv.Shutdown(context.Background())
	}()

	return srv.ListenAndServe()
}
