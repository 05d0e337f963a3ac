//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"video2md/internal/app/pipeline"
	"video2md/internal/config"
)

// InitializePipeline assembles the processing pipeline from the configured
// providers.
func InitializePipeline(settings *config.Settings, keys *config.APIKeys, log *zap.SugaredLogger) (*pipeline.Pipeline, error) {
	wire.Build(
		pipeline.New,
		provideDownloader,
		provideProber,
		provideLocalHandler,
		provideExtractor,
		provideTranscriber,
		provideFormatter,
		provideEnhancer,
		provideArchiver,
		provideHistory,
	)
	return nil, nil
}
