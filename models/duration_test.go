package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationJSONRoundTrip(t *testing.T) {
	var procedure Procedure
	require.NoError(t, json.Unmarshal(
		[]byte(`{"name":"Cleaning","duration":{"hours":0,"minutes":30}}`), &procedure))

	assert.Equal(t, 30*time.Minute, procedure.Duration.ToDuration())

	out, err := json.Marshal(procedure.Duration)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hours":0,"minutes":30}`, string(out))
}

func TestDurationRejectsBareNumber(t *testing.T) {
	// A bare number must be rejected, not silently read as nanoseconds.
	var procedure Procedure
	err := json.Unmarshal([]byte(`{"name":"Cleaning","duration":30}`), &procedure)
	require.Error(t, err)
}

func TestDurationValueScanRoundTrip(t *testing.T) {
	in := Duration{Hours: 1, Minutes: 15}

	v, err := in.Value()
	require.NoError(t, err)

	var out Duration
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
	assert.Equal(t, 75*time.Minute, out.ToDuration())
}
