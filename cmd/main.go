package main

import (
	"context"
	"fmt"
	"log"

	"preptrack/config"
	"preptrack/routes"
	"preptrack/services"
)

func main() {
	cfg := config.Load()

	sink, err := buildSink(cfg)
	if err != nil {
		log.Fatalf("mirror setup failed: %v", err)
	}

	hub := services.NewRealtimeHub()
	services.InitEventDeps(hub)
	mgr := services.NewSessionManager(sink)

	r := routes.SetupRouter(mgr, hub)
	r.Run(":" + cfg.Port)
}

// buildSink picks the persistence mirror from config. The engine works the
// same with all of them; "none" keeps everything in memory.
func buildSink(cfg config.Config) (services.PersistenceSink, error) {
	switch cfg.MirrorDriver {
	case "", "none":
		return services.NopSink{}, nil
	case "postgres", "sqlite":
		db, err := config.OpenDB(cfg)
		if err != nil {
			return nil, err
		}
		return services.NewDBSink(db)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("MIRROR_DRIVER=s3 requires S3_BUCKET")
		}
		return services.NewS3Sink(context.Background(), cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix)
	}
	return nil, fmt.Errorf("unknown MIRROR_DRIVER %q", cfg.MirrorDriver)
}
