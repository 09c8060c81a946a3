package app

import (
	"context"
	"errors"
	"time"
)

// shutdownTimeout bounds how long Close waits for the metrics server.
const shutdownTimeout = 5 * time.Second

// Close releases every component in reverse initialization order. It
// must not be called while Run is active.
func (app *Application) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error

	// 1. Stop config reloads
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
		app.watcher = nil
	}

	// 2. Unmount features, then close their Lua states
	if app.editor != nil {
		app.editor.Close()
	}
	if app.plugins != nil {
		errs = append(errs, app.plugins.UnloadAll())
	}

	// 3. Stop metrics
	if app.server != nil {
		errs = append(errs, app.server.Shutdown(ctx))
		app.server = nil
	}

	// 4. Close the log last so the steps above can still log
	if app.logFile != nil {
		errs = append(errs, app.logFile.Close())
		app.logFile = nil
	}
	return errors.Join(errs...)
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}
