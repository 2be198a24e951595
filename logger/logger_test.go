package logger_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-agrilab/logger"
)

func TestInit(t *testing.T) {
	require.NoError(t, logger.Init("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, logger.Init("loud"))

	require.NoError(t, logger.Init("info"))
}

func TestContextWithRequestID(t *testing.T) {
	ctx, rlog := logger.ContextWithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", rlog.Data["requestID"])
	assert.Equal(t, "abc", logger.RequestIDFromContext(ctx))
	assert.Same(t, rlog, logger.FromContext(ctx))

	// an existing logger is kept
	ctx2, rlog2 := logger.ContextWithRequestID(ctx, "def")
	assert.Same(t, rlog, rlog2)
	assert.Equal(t, "abc", logger.RequestIDFromContext(ctx2))
}

func TestFromContextWithoutLogger(t *testing.T) {
	assert.NotNil(t, logger.FromContext(context.Background()))
	assert.Equal(t, "", logger.RequestIDFromContext(context.Background()))
}
