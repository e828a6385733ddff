// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ammateam/callboard/internal/platform/ctxutil"
)

/*
TestRequestID verifies round-tripping the correlation ID through the context.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0195f0a2-1111-7abc-8def-0123456789ab")
	assert.Equal(t, "0195f0a2-1111-7abc-8def-0123456789ab", ctxutil.GetRequestID(ctx))
}

/*
TestLogger verifies that a stored logger is returned and that an empty context
falls back to the process-wide default instead of returning nil.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	custom := slog.Default().With(slog.String("component", "test"))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Equal(t, custom, ctxutil.GetLogger(ctx))
}
