package bootstrap

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/ultradoc/backend-go/internal/config"
	"github.com/ultradoc/backend-go/internal/di"
	"github.com/ultradoc/backend-go/internal/logger"
)

// App encapsulates lifecycle resources that need to be cleaned up on shutdown.
type App struct {
	container *dig.Container
}

// GetContainer returns the DI container instance.
func (a *App) GetContainer() *dig.Container {
	return a.container
}

// Shutdown flushes buffered resources before process exit.
func (a *App) Shutdown() {
	logger.Sync()
}

// Init bootstraps configuration, logger and the dependency injection
// container required by the Beego application.
func Init() (*App, error) {
	// Load environment variables from .env if present (non-fatal if missing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize structured logger.
	if err := logger.InitLogger(); err != nil {
		return nil, err
	}

	// Load dynamic configuration.
	if err := config.LoadConfig(); err != nil {
		return nil, err
	}
	config.StartWatching()

	// Assemble the DI container.
	container := di.InitContainer()
	if err := di.RegisterProviders(container); err != nil {
		return nil, err
	}

	return &App{container: container}, nil
}
