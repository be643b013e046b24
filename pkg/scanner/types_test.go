package scanner

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetString(t *testing.T) {
	assert.Equal(t, "example.com (93.184.216.34)", NewTarget("example.com", "93.184.216.34").String())
	assert.Equal(t, "127.0.0.1", NewTarget("127.0.0.1", "127.0.0.1").String())
	assert.Equal(t, "10.0.0.1", NewTarget("", "10.0.0.1").String())
}

func TestStatusMarshalJSON(t *testing.T) {
	b, err := json.Marshal(StatusFiltered)
	require.NoError(t, err)
	assert.Equal(t, `"filtered"`, string(b))
}

func TestResultJSON(t *testing.T) {
	result := &Result{
		Target: NewTarget("h", "127.0.0.1"),
		Outcomes: []*Outcome{
			{Port: 22, Status: StatusOpen},
			{Port: 23, Status: StatusFiltered, Reason: "connect timeout"},
		},
		Open:      1,
		Probed:    2,
		Total:     2,
		Complete:  true,
		StartedAt: time.Now(),
		EndedAt:   time.Now(),
	}

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.JSON()), &decoded))
	assert.Equal(t, true, decoded["complete"])
	outcomes := decoded["outcomes"].([]interface{})
	require.Len(t, outcomes, 2)
	first := outcomes[0].(map[string]interface{})
	assert.Equal(t, "open", first["status"])
	assert.Equal(t, float64(22), first["port"])
}

func TestSnapshotPercent(t *testing.T) {
	assert.Equal(t, 0.0, Snapshot{}.Percent())
	assert.Equal(t, 50.0, Snapshot{Completed: 5, Total: 10}.Percent())
	assert.Equal(t, 100.0, Snapshot{Completed: 10, Total: 10}.Percent())
}
