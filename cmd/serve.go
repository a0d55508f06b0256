package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/richards-law/intake-cli/internal/extraction"
	"github.com/richards-law/intake-cli/internal/model"
	"github.com/richards-law/intake-cli/internal/pipeline"
	"github.com/richards-law/intake-cli/pkg/clio"
)

var servePort int

// approveRequest is the review UI's payload: the verified (possibly edited)
// extraction, plus an optional existing matter to update instead of
// creating one.
type approveRequest struct {
	Extraction *model.ExtractionResult `json:"extraction"`
	MatterID   int64                   `json:"matter_id,omitempty"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the intake API server for the review frontend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := initClio()
		extractor := initExtractor()
		p := initPipeline(client)

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/api", func(r chi.Router) {
			r.Post("/extract", handleExtract(extractor))
			r.Post("/approve", handleApprove(p))

			r.Route("/clio", func(r chi.Router) {
				r.Get("/auth", handleClioAuth(client))
				r.Get("/callback", handleClioCallback(client))
				r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
					writeJSON(w, http.StatusOK, client.TokenStatus())
				})
			})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			if err := gracefulShutdown(srv); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func handleExtract(extractor extraction.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		req.Body = http.MaxBytesReader(w, req.Body, cfg.Server.MaxUploadBytes)

		file, header, err := req.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing or oversized file upload")
			return
		}
		defer file.Close()

		if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
			writeError(w, http.StatusBadRequest, "only PDF files are accepted")
			return
		}
		if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/pdf" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid content type %q, expected application/pdf", ct))
			return
		}

		pdf, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read upload")
			return
		}
		if len(pdf) == 0 {
			writeError(w, http.StatusBadRequest, "uploaded file is empty")
			return
		}

		uploadID := uuid.NewString()
		zap.L().Info("received report upload",
			zap.String("upload_id", uploadID),
			zap.String("filename", header.Filename),
			zap.Int("bytes", len(pdf)),
		)

		result, err := extractor.ExtractReport(req.Context(), pdf)
		if err != nil {
			zap.L().Error("extraction failed",
				zap.String("upload_id", uploadID),
				zap.Error(err),
			)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handleApprove(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body approveRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Extraction == nil {
			writeError(w, http.StatusBadRequest, "extraction is required")
			return
		}

		zap.L().Info("approve request received",
			zap.String("report_number", body.Extraction.ReportNumber),
			zap.Int("parties", len(body.Extraction.Parties)),
			zap.Int64("matter_id", body.MatterID),
		)

		result := p.Run(req.Context(), body.Extraction, body.MatterID)
		if !result.Success {
			for _, s := range result.Steps {
				if s.Status == model.StepError {
					zap.L().Warn("pipeline step failed",
						zap.String("step", s.Name),
						zap.String("detail", s.Detail),
					)
				}
			}
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handleClioAuth(client clio.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if cfg.Clio.ClientID == "" {
			writeError(w, http.StatusInternalServerError, "clio client_id not configured")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"auth_url": client.AuthURL()})
	}
}

func handleClioCallback(client clio.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if oauthErr := q.Get("error"); oauthErr != "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("clio oauth error: %s", oauthErr))
			return
		}
		code := q.Get("code")
		if code == "" {
			writeError(w, http.StatusBadRequest, "missing authorization code")
			return
		}

		if err := client.ExchangeCode(req.Context(), code); err != nil {
			zap.L().Error("token exchange failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "token exchange failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "connected",
			"message": "Clio authorized. You can close this window.",
		})
	}
}

const shutdownTimeout = 10 * time.Second

// gracefulShutdown drains in-flight requests under its own deadline; the
// signal context that triggered it is already canceled.
func gracefulShutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
