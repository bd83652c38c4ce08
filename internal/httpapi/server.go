package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"modelexport/internal/common/fsutil"
	"modelexport/internal/exporter"
	"modelexport/internal/taxonomy"
	"modelexport/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Categories() []types.Category
	ListCandidateFiles(root string, c types.Category) ([]types.ModelFile, error)
	Export(req exporter.Request) exporter.Result
	LibraryRoot() string
	DefaultExportDir() string
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.CategoriesResponse{Categories: svc.Categories()})
	})

	r.Get("/settings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.SettingsResponse{
			LibraryRoot:      svc.LibraryRoot(),
			DefaultExportDir: svc.DefaultExportDir(),
		})
	})

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		c, err := taxonomy.ParseCategory(q.Get("category"))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		root := q.Get("root")
		files, err := svc.ListCandidateFiles(root, c)
		if err != nil {
			writeJSONError(w, statusForError(err), err.Error())
			return
		}
		if root == "" {
			root = svc.LibraryRoot()
		}
		writeJSON(w, http.StatusOK, types.ModelsResponse{Category: c, LibraryRoot: root, Models: files})
	})

	r.Post("/export", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.ExportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Category != "" {
			if _, err := taxonomy.ParseCategory(req.Category.String()); err != nil {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		res := svc.Export(exporter.Request{
			LibraryRoot: req.LibraryRoot,
			Category:    req.Category,
			FileName:    req.FileName,
			Destination: req.Destination,
		})
		writeJSON(w, statusForResult(res), types.ExportResponse{
			OK:          res.OK,
			Message:     res.Message(),
			Reason:      string(res.Reason),
			Destination: res.Destination,
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// ready once a library root is configured and present on disk
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		root, err := fsutil.ExpandHome(svc.LibraryRoot())
		if err == nil && root != "" && fsutil.IsDir(root) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("library root unavailable"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}
