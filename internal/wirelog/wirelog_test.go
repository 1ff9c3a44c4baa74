package wirelog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	defer logrus.SetOutput(nil)

	New("h2").Info("frame decoded")

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	require.Equal(t, "h2", fields["component"])
	require.Equal(t, "frame decoded", fields["msg"])
}

func TestNewWithStreamTagsStreamID(t *testing.T) {
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	defer logrus.SetOutput(nil)

	NewWithStream("h2", 7).Warn("stream timed out")

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	require.Equal(t, "h2", fields["component"])
	require.Equal(t, float64(7), fields["stream"])
}
