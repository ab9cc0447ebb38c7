package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technohunter_bot/internal/infra/config"
)

func TestInit_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithOutput(&config.AppConfig{LogLevel: "warn", Environment: "production"}, &buf)
	buf.Reset()

	Component("intake").WithField("application_id", "TH-1-1").Warn("stored")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "intake", line["component"])
	assert.Equal(t, "TH-1-1", line["application_id"])
	assert.Equal(t, "stored", line["msg"])
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithOutput(&config.AppConfig{LogLevel: "loud", Environment: "development"}, &buf)

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")
}
