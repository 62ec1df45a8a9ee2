package obs

import (
	"context"

	"github.com/rs/zerolog"
)

// AnnotateLogger adds a string field to the request-scoped logger, if any.
func AnnotateLogger(ctx context.Context, key, value string) {
	if ctx == nil || value == "" {
		return
	}
	l := zerolog.Ctx(ctx)
	if l == nil || l.GetLevel() == zerolog.Disabled {
		return
	}
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str(key, value)
	})
}
