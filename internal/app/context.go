package app

import "context"

type contextKey struct{}

// FromContext retrieves the App stored by SetAppInContext.
func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(contextKey{}).(*App)
	if !ok || app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}

// SetAppInContext stores the App in context
func SetAppInContext(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, contextKey{}, app)
}
