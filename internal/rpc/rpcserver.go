package rpc

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/bridgescan/bridgenode/internal/rpc/handlers"
	"github.com/bridgescan/bridgenode/internal/syncer"
	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/bridgescan/bridgenode/pkg/symbol"
	"go.uber.org/zap"
)

// Services are the read-side dependencies of the API. Nil fields fall back
// to the built-in registry and formatter; without checkpoints /status only
// reports liveness.
type Services struct {
	Checkpoints syncer.CheckpointStore
	Registry    *chains.Registry
	Formatter   *symbol.Formatter
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func routes(db *sql.DB, services Services) handlers.MethodHandlers {
	registry := services.Registry
	if registry == nil {
		registry = chains.DefaultRegistry()
	}
	formatter := services.Formatter
	if formatter == nil {
		formatter = symbol.DefaultFormatter()
	}

	transfersHandler := map[handlers.Method]func(*http.Request) (any, error){
		handlers.HTTP_GET: func(r *http.Request) (any, error) {
			return handlers.CrossChainTransfersGetHandler(r, db, registry)
		},
	}

	return handlers.MethodHandlers{
		handlers.CreateApiPath(handlers.ApiV1, "status"): {
			handlers.HTTP_GET: func(r *http.Request) (any, error) {
				return handlers.StatusGetHandler(r, services.Checkpoints)
			},
		},
		handlers.CreateApiPath(handlers.ApiV1, "cross_chain_transfers"):  transfersHandler,
		handlers.CreateApiPath(handlers.ApiV1, "cross_chain_transfers/"): transfersHandler,
		handlers.CreateApiPath(handlers.ApiV1, "symbols/"): {
			handlers.HTTP_GET: func(r *http.Request) (any, error) {
				return handlers.SymbolGetHandler(r, formatter)
			},
		},
		handlers.CreateApiPath(handlers.ApiV1, "chains"): {
			handlers.HTTP_GET: func(r *http.Request) (any, error) {
				return handlers.ChainsGetHandler(r, registry)
			},
		},
	}
}

func StartRPCServer(port int, db *sql.DB, services Services, ctx context.Context) func() {
	zap.L().Info("Starting RPC server on port", zap.Int("port", port))
	mux := http.NewServeMux()

	handlers.SetupHandlers(mux, routes(db, services))

	addr := fmt.Sprintf(":%d", port)
	server := &http.Server{
		Addr:              addr,
		Handler:           loggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil {
			if err == http.ErrServerClosed {
				zap.L().Info("RPC server closed")
			} else {
				zap.L().Fatal("starting RPC server failed", zap.Error(err))
			}
		}
	}()
	closeFunc := func() {
		zap.L().Info("Closing RPC server...")
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("server shutdown failed", zap.Error(err))
		}
	}
	return closeFunc
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{w, http.StatusOK}
		next.ServeHTTP(rw, r)

		zap.L().Info("Request",
			zap.String("ip", r.RemoteAddr),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rw.statusCode),
		)
	})
}
