package conflict

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsync/internal/logging"
	"github.com/iudanet/gophsync/internal/models"
)

func updateConflict(ts int64, payload, remote models.Document) models.Conflict {
	return models.Conflict{
		LocalOperation: models.Operation{
			ID:         "op-1",
			Type:       models.OperationUpdate,
			Collection: "todos",
			DocID:      "1",
			Payload:    payload,
			Timestamp:  ts,
		},
		RemoteState: remote,
	}
}

func TestNew_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantKind models.ResolutionKind
		wantErr  error
	}{
		{name: "empty defaults to remote wins", cfg: Config{}, wantKind: models.ResolutionRemoteWins},
		{name: "remote wins", cfg: Config{Strategy: StrategyRemoteWins}, wantKind: models.ResolutionRemoteWins},
		{name: "local wins", cfg: Config{Strategy: StrategyLocalWins}, wantKind: models.ResolutionLocalWins},
		{name: "last write wins", cfg: Config{Strategy: StrategyLastWriteWins}, wantKind: models.ResolutionLocalWins},
		{name: "field merge", cfg: Config{Strategy: StrategyFieldMerge}, wantKind: models.ResolutionMerged},
		{name: "unknown", cfg: Config{Strategy: "coin-flip"}, wantErr: ErrUnknownStrategy},
	}

	c := updateConflict(100, models.Document{"title": "B"}, models.Document{"id": "1", "updatedAt": float64(90)})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.cfg, logging.Discard())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)

			res, err := r.Resolve(context.Background(), c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, res.Kind)
		})
	}
}

func TestNew_CustomTimestampField(t *testing.T) {
	r, err := New(Config{Strategy: StrategyLastWriteWins, TimestampField: "modified"}, logging.Discard())
	require.NoError(t, err)

	res, err := r.Resolve(context.Background(),
		updateConflict(100, models.Document{"x": 1}, models.Document{"id": "1", "updatedAt": float64(500), "modified": float64(50)}))
	require.NoError(t, err)
	assert.Equal(t, models.ResolutionLocalWins, res.Kind)
}

func TestResolverFunc(t *testing.T) {
	var called bool
	r := ResolverFunc(func(_ context.Context, c models.Conflict) (models.Resolution, error) {
		called = true
		return models.Merged(c.RemoteState), nil
	})

	res, err := r.Resolve(context.Background(), updateConflict(1, models.Document{}, models.Document{"id": "1"}))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, models.ResolutionMerged, res.Kind)
}

func TestLastWriteWins(t *testing.T) {
	t0 := time.UnixMilli(90).UTC()

	tests := []struct {
		remote   models.Document
		name     string
		local    int64
		wantKind models.ResolutionKind
	}{
		{name: "local newer than numeric remote", local: 100, remote: models.Document{"id": "1", "updatedAt": float64(90)}, wantKind: models.ResolutionLocalWins},
		{name: "remote newer", local: 100, remote: models.Document{"id": "1", "updatedAt": float64(150)}, wantKind: models.ResolutionRemoteWins},
		{name: "tie goes to remote", local: 100, remote: models.Document{"id": "1", "updatedAt": int64(100)}, wantKind: models.ResolutionRemoteWins},
		{name: "missing field", local: 100, remote: models.Document{"id": "1"}, wantKind: models.ResolutionRemoteWins},
		{name: "unparsable string", local: 100, remote: models.Document{"id": "1", "updatedAt": "yesterday"}, wantKind: models.ResolutionRemoteWins},
		{name: "unsupported type", local: 100, remote: models.Document{"id": "1", "updatedAt": true}, wantKind: models.ResolutionRemoteWins},
		{name: "rfc3339 older", local: 100, remote: models.Document{"id": "1", "updatedAt": t0.Format(time.RFC3339Nano)}, wantKind: models.ResolutionLocalWins},
		{name: "rfc3339 newer", local: 100, remote: models.Document{"id": "1", "updatedAt": time.UnixMilli(150).UTC().Format(time.RFC3339Nano)}, wantKind: models.ResolutionRemoteWins},
		{name: "json number", local: 100, remote: models.Document{"id": "1", "updatedAt": json.Number("90")}, wantKind: models.ResolutionLocalWins},
	}

	r := LastWriteWins(DefaultTimestampField, logging.Discard())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(context.Background(), updateConflict(tt.local, models.Document{"title": "B"}, tt.remote))
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, res.Kind)
			assert.Nil(t, res.Document)
		})
	}
}

func TestFieldLevelMerge(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)

	r := FieldLevelMerge(DefaultTimestampField)
	r.now = func() time.Time { return t1 }

	remote := models.Document{"id": "1", "title": "A", "body": "x", "updatedAt": t0.Format(time.RFC3339Nano)}
	res, err := r.Resolve(context.Background(), updateConflict(100, models.Document{"title": "B"}, remote))
	require.NoError(t, err)

	require.Equal(t, models.ResolutionMerged, res.Kind)
	assert.Equal(t, models.Document{
		"id":        "1",
		"title":     "B",
		"body":      "x",
		"updatedAt": t1.Format(time.RFC3339Nano),
	}, res.Document)

	stamped, err := time.Parse(time.RFC3339Nano, res.Document["updatedAt"].(string))
	require.NoError(t, err)
	assert.True(t, stamped.After(t0))

	// Remote state must not be modified
	assert.Equal(t, "A", remote["title"])
}

func TestFieldLevelMerge_ClockBehindRemote(t *testing.T) {
	r := FieldLevelMerge(DefaultTimestampField)
	r.now = func() time.Time { return time.UnixMilli(1000) }

	res, err := r.Resolve(context.Background(),
		updateConflict(100, models.Document{"title": "B"}, models.Document{"id": "1", "updatedAt": float64(5000)}))
	require.NoError(t, err)

	require.Equal(t, models.ResolutionMerged, res.Kind)
	// Числовое поле остаётся числом и строго больше предыдущего значения
	assert.Equal(t, float64(5001), res.Document["updatedAt"])
}

func TestFieldLevelMerge_KeepsRemoteID(t *testing.T) {
	r := FieldLevelMerge(DefaultTimestampField)

	res, err := r.Resolve(context.Background(),
		updateConflict(100, models.Document{"id": "other", "title": "B"}, models.Document{"id": "1"}))
	require.NoError(t, err)
	assert.Equal(t, "1", res.Document.ID())
}

func TestFieldLevelMerge_Degrades(t *testing.T) {
	r := FieldLevelMerge(DefaultTimestampField)
	remote := models.Document{"id": "1", "title": "A"}

	create := updateConflict(100, models.Document{"id": "1"}, remote)
	create.LocalOperation.Type = models.OperationCreate

	del := updateConflict(100, nil, remote)
	del.LocalOperation.Type = models.OperationDelete

	noPayload := updateConflict(100, nil, remote)

	for name, c := range map[string]models.Conflict{"create": create, "delete": del, "no payload": noPayload} {
		t.Run(name, func(t *testing.T) {
			res, err := r.Resolve(context.Background(), c)
			require.NoError(t, err)
			assert.Equal(t, models.ResolutionRemoteWins, res.Kind)
		})
	}
}

func TestNew_WithClock(t *testing.T) {
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	r, err := New(Config{Strategy: StrategyFieldMerge}, logging.Discard(), WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	res, err := r.Resolve(context.Background(),
		updateConflict(100, models.Document{"title": "B"}, models.Document{"id": "1", "updatedAt": float64(10)}))
	require.NoError(t, err)
	assert.Equal(t, float64(fixed.UnixMilli()), res.Document["updatedAt"])
}
