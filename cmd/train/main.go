// Command train runs the offline batch pipeline: raw CSV through
// cleaning, outlier treatment, and feature selection into a trained model
// artifact plus a processed dataset snapshot for the serving layer.
package main

import (
	log "github.com/sirupsen/logrus"

	"property-pricing-service/internal/config"
	"property-pricing-service/internal/pipeline"
	"property-pricing-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	datasetRepo := repository.NewDatasetRepository()
	artifactRepo := repository.NewArtifactRepository()

	raw, err := datasetRepo.Load(cfg.Data.RawPath)
	if err != nil {
		log.Fatalf("load raw dataset: %v", err)
	}
	log.WithField("rows", raw.NumRows()).Info("raw dataset loaded")

	cleaned, err := pipeline.Clean(raw, pipeline.DefaultImputationPolicy())
	if err != nil {
		log.Fatalf("cleaning stage: %v", err)
	}
	log.WithField("rows", cleaned.NumRows()).Info("cleaning stage done")

	treated, err := pipeline.TreatOutliers(cleaned, pipeline.DefaultOutlierPolicy())
	if err != nil {
		log.Fatalf("outlier stage: %v", err)
	}
	log.WithField("rows", treated.NumRows()).Info("outlier stage done")

	featureCfg := pipeline.DefaultFeatureConfig()
	featureCfg.CorrThreshold = cfg.Pipeline.CorrThreshold
	frame, fs, err := pipeline.SelectFeatures(treated, featureCfg)
	if err != nil {
		log.Fatalf("feature selection stage: %v", err)
	}
	log.WithField("features", len(fs.Columns)).Info("feature selection done")

	trainCfg := pipeline.TrainConfig{
		ValidationRatio: cfg.Pipeline.ValidationRatio,
		Seed:            cfg.Pipeline.Seed,
		RidgeLambda:     cfg.Pipeline.RidgeLambda,
		Margin:          cfg.Pipeline.Margin,
	}
	artifact, err := pipeline.Train(frame, fs, trainCfg)
	if err != nil {
		log.Fatalf("training stage: %v", err)
	}
	log.WithFields(log.Fields{
		"artifact_id": artifact.ID,
		"model":       artifact.ModelName,
		"rmse":        artifact.Metrics.RMSE,
		"mae":         artifact.Metrics.MAE,
		"r2":          artifact.Metrics.R2,
	}).Info("training stage done")

	// The processed snapshot feeds the serving layer's stats and
	// recommendations; the artifact feeds predictions.
	snapshot, err := pipeline.DerivePricePerSqft(treated, "price", "built_up_area")
	if err != nil {
		log.Fatalf("derive price_per_sqft: %v", err)
	}
	if err := datasetRepo.Save(snapshot, cfg.Data.DatasetPath); err != nil {
		log.Fatalf("save processed dataset: %v", err)
	}
	if err := artifactRepo.Save(artifact, cfg.Data.ArtifactPath); err != nil {
		log.Fatalf("save artifact: %v", err)
	}

	log.WithFields(log.Fields{
		"dataset":  cfg.Data.DatasetPath,
		"artifact": cfg.Data.ArtifactPath,
	}).Info("pipeline complete")
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
