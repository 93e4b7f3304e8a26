package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listings-api/internal/model"
)

var servePort int

// combinedSearcher is the slice of the listing service the HTTP layer
// needs; tests substitute a fake.
type combinedSearcher interface {
	Search(ctx context.Context, q model.SearchQuery) (*model.PageResult, error)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the combined listing HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		svc := initService(st)
		router := buildRouter(svc)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// apiResponse is the endpoint envelope. Partial source failures still
// produce status "success"; only a fully failed request reports "error".
type apiResponse struct {
	Status  string            `json:"status"`
	Data    *model.PageResult `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
}

func buildRouter(svc combinedSearcher) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/properties/combined", func(w http.ResponseWriter, req *http.Request) {
		requestID := uuid.NewString()
		q := parseSearchQuery(req)

		result, err := svc.Search(req.Context(), q)
		if err != nil {
			zap.L().Error("combined listing request failed",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, apiResponse{
				Status:  "error",
				Message: "failed to retrieve properties from any source",
			})
			return
		}

		writeJSON(w, http.StatusOK, apiResponse{Status: "success", Data: result})
	})

	return r
}

// parseSearchQuery reads the combined endpoint's query parameters.
// Unparsable or out-of-range values fall back to defaults and clamps
// rather than rejecting the request.
func parseSearchQuery(r *http.Request) model.SearchQuery {
	vals := r.URL.Query()

	q := model.SearchQuery{
		Page:         model.MinPage,
		Limit:        model.DefaultLimit,
		Search:       vals.Get("search"),
		PropertyType: vals.Get("property_type"),
		ZipCode:      vals.Get("zipcode"),
		City:         vals.Get("city"),
		State:        vals.Get("state"),
		IncludeRaw:   true,
	}

	if v, err := strconv.Atoi(vals.Get("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(vals.Get("limit")); err == nil {
		q.Limit = v
	}
	if v, err := strconv.ParseBool(vals.Get("include_raw")); err == nil {
		q.IncludeRaw = v
	}

	q.MinPrice = floatParam(vals.Get("min_price"))
	q.MaxPrice = floatParam(vals.Get("max_price"))
	q.Lat = floatParam(vals.Get("latitude"))
	q.Long = floatParam(vals.Get("longitude"))
	q.Radius = floatParam(vals.Get("radius"))

	q.Clamp()
	return q
}

func floatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
