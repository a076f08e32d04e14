//go:build wireinject

package di

import (
	"github.com/google/wire"

	"noobie-agent/internal/app"
	"noobie-agent/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp(configPath string) (*app.App, error) {
	wire.Build(
		provideConfig,
		provideSlogLogger,
		provideLogger,
		provideLimiter,
		provideRetryPolicy,
		provideAggregator,
		provideWriter,
		providePublisher,
		provideUsecaseConfig,
		provideDailyPost,
		provideApp,
	)
	return nil, nil
}

// InitializeDailyPost wires just the daily post use case, for one-shot
// CLI commands.
func InitializeDailyPost(configPath string) (*usecase.DailyPost, error) {
	wire.Build(
		provideConfig,
		provideSlogLogger,
		provideLogger,
		provideLimiter,
		provideRetryPolicy,
		provideAggregator,
		provideWriter,
		providePublisher,
		provideUsecaseConfig,
		provideDailyPost,
	)
	return nil, nil
}
