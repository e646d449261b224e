package main

import (
	"context"
	"log"

	"socialmetrics-backend/internal/shared/config"
	"socialmetrics-backend/internal/shared/server"
	"socialmetrics-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	r, cleanup := server.NewRouter(context.Background(), cfg)
	defer cleanup()
	defer telemetry.Sync()

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{"addr": addr, "env": cfg.Env})

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
