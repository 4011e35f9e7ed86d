package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"property-pricing-service/internal/config"
	"property-pricing-service/internal/domain"
	"property-pricing-service/internal/handler"
	"property-pricing-service/internal/middleware"
	"property-pricing-service/internal/pipeline"
	"property-pricing-service/internal/repository"
	"property-pricing-service/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	datasetRepo := repository.NewDatasetRepository()
	artifactRepo := repository.NewArtifactRepository()

	// Read-only shared state: loaded once here, never mutated afterward,
	// so handlers share it without locking.
	artifact, err := artifactRepo.Load(cfg.Data.ArtifactPath)
	if err != nil {
		log.Fatalf("load model artifact: %v", err)
	}
	log.WithFields(log.Fields{
		"artifact_id": artifact.ID,
		"model":       artifact.ModelName,
		"rmse":        artifact.Metrics.RMSE,
	}).Info("model artifact loaded")

	dataset, err := datasetRepo.Load(cfg.Data.DatasetPath)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	dataset, err = pipeline.DerivePricePerSqft(dataset, "price", "built_up_area")
	if err != nil {
		log.Fatalf("derive price_per_sqft: %v", err)
	}
	log.WithField("rows", dataset.NumRows()).Info("dataset loaded")

	var distances *domain.DistanceMatrix
	if cfg.Data.DistancePath != "" {
		distances, err = datasetRepo.LoadDistanceMatrix(cfg.Data.DistancePath)
		if err != nil {
			log.WithError(err).Warn("distance matrix unavailable, nearby search disabled")
			distances = nil
		}
	}

	frame, skipped := buildFrame(dataset, artifact)
	if skipped > 0 {
		log.WithField("rows", skipped).Warn("rows incompatible with the trained feature set were skipped")
	}

	predictionUC := usecase.NewPredictionUseCase(artifact)
	recommenderUC := usecase.NewRecommenderUseCase(frame, distances)
	statsUC := usecase.NewStatsUseCase(dataset)

	h := handler.New(predictionUC, recommenderUC, statsUC)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/pricing")
	h.RegisterRoutes(api)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"artifact_id": artifact.ID,
			"rows":        dataset.NumRows(),
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

// buildFrame replays the artifact's serving transform over the stored
// dataset so the recommender ranks in the same scaled space predictions
// run in. Rows the transform rejects are skipped, not fatal: the store
// may hold listings the model was not trained for.
func buildFrame(ds *domain.Dataset, artifact *domain.ModelArtifact) (*domain.FeatureFrame, int) {
	fs := artifact.FeatureSet
	frame := &domain.FeatureFrame{Columns: fs.Columns}
	idIdx := ds.ColumnIndex("property_id")

	skipped := 0
	for i, row := range ds.Rows {
		raw := make(map[string]string, len(ds.Columns))
		for j, col := range ds.Columns {
			raw[col] = row[j]
		}
		vec, err := fs.Transform(raw)
		if err != nil {
			skipped++
			continue
		}
		id := fmt.Sprintf("row-%d", i)
		if idIdx >= 0 {
			id = row[idIdx]
		}
		frame.IDs = append(frame.IDs, id)
		frame.X = append(frame.X, vec)
	}
	return frame, skipped
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
