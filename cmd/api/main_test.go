package main

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsStartupError(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("QDRANT_URL", "")
	t.Setenv("DATABASE_URL", "mongodb://%zz")
	t.Setenv("SCRATCH_DIR", t.TempDir())

	log := logrus.New()
	log.Out = &bytes.Buffer{}

	err := run(log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize database")
}
