package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Pipeline PipelineConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// DataConfig points at the flat-file stores: the raw training snapshot,
// the processed snapshot the server loads, the optional location-distance
// matrix, and the model artifact.
type DataConfig struct {
	RawPath      string
	DatasetPath  string
	DistancePath string
	ArtifactPath string
}

type PipelineConfig struct {
	ValidationRatio float64
	Seed            int64
	RidgeLambda     float64
	CorrThreshold   float64
	Margin          float64
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DATA_RAW_PATH", "datasets/gurgaon_properties.csv")
	v.SetDefault("DATA_DATASET_PATH", "datasets/gurgaon_properties_processed.csv")
	v.SetDefault("DATA_DISTANCE_PATH", "datasets/location_distance.csv")
	v.SetDefault("DATA_ARTIFACT_PATH", "datasets/model_artifact.json")
	v.SetDefault("PIPELINE_VALIDATION_RATIO", 0.2)
	v.SetDefault("PIPELINE_SEED", 42)
	v.SetDefault("PIPELINE_RIDGE_LAMBDA", 1.0)
	v.SetDefault("PIPELINE_CORR_THRESHOLD", 0.05)
	v.SetDefault("PIPELINE_MARGIN", 0.22)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Data: DataConfig{
			RawPath:      v.GetString("DATA_RAW_PATH"),
			DatasetPath:  v.GetString("DATA_DATASET_PATH"),
			DistancePath: v.GetString("DATA_DISTANCE_PATH"),
			ArtifactPath: v.GetString("DATA_ARTIFACT_PATH"),
		},
		Pipeline: PipelineConfig{
			ValidationRatio: v.GetFloat64("PIPELINE_VALIDATION_RATIO"),
			Seed:            v.GetInt64("PIPELINE_SEED"),
			RidgeLambda:     v.GetFloat64("PIPELINE_RIDGE_LAMBDA"),
			CorrThreshold:   v.GetFloat64("PIPELINE_CORR_THRESHOLD"),
			Margin:          v.GetFloat64("PIPELINE_MARGIN"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}
