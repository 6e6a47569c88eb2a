package observes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracerDisabled(t *testing.T) {
	shutdown, err := NewTracer(context.Background(), &TracerOption{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	shutdown, err = NewTracer(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewSentryDisabled(t *testing.T) {
	flush, err := NewSentry(&SentryOptions{})
	require.NoError(t, err)
	flush()
	CaptureError(errors.New("not sent"))
}
