package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/leak-calc/internal/cockpit"
	"github.com/sells-group/leak-calc/internal/config"
	"github.com/sells-group/leak-calc/internal/exposure"
	"github.com/sells-group/leak-calc/internal/intake"
	"github.com/sells-group/leak-calc/internal/leak"
	"github.com/sells-group/leak-calc/internal/monitoring"
	"github.com/sells-group/leak-calc/internal/report"
)

const maxBodyBytes = 1 << 20

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP calculation API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a := &api{engine: newEngine(), metrics: monitoring.NewCollector()}
		return startServer(ctx, buildRouter(a, cfg.Server), resolvePort(servePort, cfg.Server.Port))
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// resolvePort prefers the flag value over the configured port.
func resolvePort(flag, configured int) int {
	if flag != 0 {
		return flag
	}
	return configured
}

// startServer serves h on port until ctx is cancelled.
func startServer(ctx context.Context, h http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

// api holds the dependencies shared by the HTTP handlers.
type api struct {
	engine  *leak.Engine
	metrics *monitoring.Collector
}

// buildRouter wires the API routes and middleware.
func buildRouter(a *api, sc config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(a.metrics.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: sc.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(rateLimit(sc.RateLimit, sc.RateBurst, a.metrics))
		r.Post("/exposure", a.handleExposure)
		r.Post("/cockpit", a.handleCockpit)
		r.Post("/leaks", a.handleLeaks)
	})

	return r
}

// rateLimit rejects requests beyond a shared token bucket with 429. A
// non-positive limit disables limiting.
func rateLimit(limit float64, burst int, metrics *monitoring.Collector) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(1/limit))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				metrics.RateLimited.Inc()
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *api) handleExposure(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	req, err := intake.DecodeExposure(data, intake.FormatJSON)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	res := exposure.Compute(req.InquiriesWeekly, req.MissedPer10, req.AvgTicket, req.CloseRate)
	a.metrics.ObserveExposure()
	writeJSON(w, http.StatusOK, res)
}

func (a *api) handleCockpit(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := intake.DecodeCockpit(data, intake.FormatJSON)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	res := cockpit.Calculate(*in)
	a.metrics.ObserveCockpit(res)
	writeJSON(w, http.StatusOK, res)
}

func (a *api) handleLeaks(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := intake.DecodeBusiness(data, intake.FormatJSON)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	rep := report.Report{
		EvaluationID: uuid.NewString(),
		Business:     in.BusinessName,
		Result:       a.engine.Calculate(*in),
	}
	a.metrics.ObserveLeaks(rep.Result)

	zap.L().Info("calculated leaks",
		zap.String("evaluation_id", rep.EvaluationID),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("leaks", len(rep.Result.Leaks)),
		zap.Float64("total_monthly_loss", rep.Result.TotalMonthlyLoss),
	)
	writeJSON(w, http.StatusOK, rep)
}

// readBody reads a bounded request body, writing 400 on failure.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return nil, false
	}
	return data, true
}

func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := intake.AsValidation(err); ok {
		writeError(w, http.StatusBadRequest, "invalid input", ve.Problems)
		return
	}
	zap.L().Error("decode request",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error", nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

type errorBody struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, problems []string) {
	writeJSON(w, status, errorBody{Error: msg, Problems: problems})
}
