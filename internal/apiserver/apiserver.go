// Package apiserver exposes a local, read-only JSON API over Search and
// Store list/queue queries (no export endpoint): a programmatic tooling surface,
// not the excluded hosted web UI.
// No endpoint mutates state; verify/assist/build-graph remain CLI-only.
package apiserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/obelus-labs/veritas-core/internal/search"
	"github.com/obelus-labs/veritas-core/internal/store"
)

// NewMux builds the read-only HTTP handler (SPEC_FULL.md §8's two-addition CLI
// surface, "veritas serve"): GET /health, /search, /sources, /claims/{id},
// /clusters/{id}, /queue.
func NewMux(st store.Store, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", healthHandler(st))
	r.Get("/search", searchHandler(st, log))
	r.Get("/sources", sourcesHandler(st, log))
	r.Get("/claims/{id}", claimHandler(st, log))
	r.Get("/clusters/{id}", clusterHandler(st, log))
	r.Get("/queue", queueHandler(st, log))

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func healthHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func searchHandler(st store.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			writeError(w, http.StatusBadRequest, eris.New("apiserver: q is required"))
			return
		}
		limit := parseIntOrDefault(r.URL.Query().Get("limit"), 0)

		ctx, cancel := requestContext(r)
		defer cancel()

		claims, err := search.Search(ctx, st, q, limit)
		if err != nil {
			log.Error("search failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, claims)
	}
}

func sourcesHandler(st store.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext(r)
		defer cancel()

		sources, err := st.ListSources(ctx)
		if err != nil {
			log.Error("list sources failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, sources)
	}
}

func claimHandler(st store.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		ctx, cancel := requestContext(r)
		defer cancel()

		claim, err := st.GetClaim(ctx, id)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, claim)
	}
}

func clusterHandler(st store.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		ctx, cancel := requestContext(r)
		defer cancel()

		cluster, err := st.GetCluster(ctx, id)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		members, err := st.ListClusterMembers(ctx, id)
		if err != nil {
			log.Error("list cluster members failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cluster": cluster, "members": members})
	}
}

func queueHandler(st store.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntOrDefault(r.URL.Query().Get("limit"), 50)
		ctx, cancel := requestContext(r)
		defer cancel()

		claims, err := st.ReviewQueue(ctx, limit)
		if err != nil {
			log.Error("review queue failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, claims)
	}
}

// requestTimeout bounds every read-only query behind this API; none of
// these handlers perform writes or long-running work.
const requestTimeout = 10 * time.Second

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

func parseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ListenAndServe starts the API server on addr, shutting down gracefully
// when ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("apiserver: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("apiserver: listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "apiserver: listen")
	}
	return nil
}
