package conflict

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/iudanet/gophsync/internal/models"
)

var (
	_ Resolver = (*LastWriteWinsResolver)(nil)
	_ Resolver = (*FieldMergeResolver)(nil)
)

// RemoteWins always keeps the remote state
func RemoteWins() Resolver {
	return ResolverFunc(func(context.Context, models.Conflict) (models.Resolution, error) {
		return models.RemoteWins(), nil
	})
}

// LocalWins always keeps the local operation
func LocalWins() Resolver {
	return ResolverFunc(func(context.Context, models.Conflict) (models.Resolution, error) {
		return models.LocalWins(), nil
	})
}

// LastWriteWinsResolver compares the local operation timestamp against a
// timestamp field of the remote document.
type LastWriteWinsResolver struct {
	logger *slog.Logger
	field  string
}

// LastWriteWins creates a resolver reading the remote time from field
func LastWriteWins(field string, logger *slog.Logger) *LastWriteWinsResolver {
	return &LastWriteWinsResolver{field: field, logger: logger}
}

// Resolve returns LocalWins only when the local timestamp is strictly
// greater. Ties, a missing field and an unparsable field all go to the remote.
func (r *LastWriteWinsResolver) Resolve(ctx context.Context, c models.Conflict) (models.Resolution, error) {
	raw, ok := c.RemoteState[r.field]
	if !ok {
		r.logger.WarnContext(ctx, "Remote timestamp missing, falling back to remote wins",
			"op_id", c.LocalOperation.ID,
			"field", r.field)
		return models.RemoteWins(), nil
	}

	remote, _, ok := parseTimestamp(raw)
	if !ok {
		r.logger.WarnContext(ctx, "Remote timestamp unparsable, falling back to remote wins",
			"op_id", c.LocalOperation.ID,
			"field", r.field,
			"value", raw)
		return models.RemoteWins(), nil
	}

	if c.LocalOperation.Timestamp > remote {
		return models.LocalWins(), nil
	}
	return models.RemoteWins(), nil
}

// FieldMergeResolver overlays the fields of a local update on the remote
// document. It is a two-way merge: the local payload is treated as the full
// set of changed fields, there is no common ancestor.
type FieldMergeResolver struct {
	now   func() time.Time
	field string
}

// FieldLevelMerge creates a merging resolver stamping field with the
// resolution time
func FieldLevelMerge(field string) *FieldMergeResolver {
	return &FieldMergeResolver{field: field, now: time.Now}
}

// Resolve merges update conflicts and degrades to RemoteWins for everything else
func (r *FieldMergeResolver) Resolve(_ context.Context, c models.Conflict) (models.Resolution, error) {
	op := c.LocalOperation
	if op.Type != models.OperationUpdate || op.Payload == nil || c.RemoteState == nil {
		return models.RemoteWins(), nil
	}

	merged := c.RemoteState.Merge(op.Payload)
	merged[models.FieldID] = c.RemoteState[models.FieldID]

	stamp := r.now().UnixMilli()
	prev, numeric, ok := parseTimestamp(c.RemoteState[r.field])
	if ok && stamp <= prev {
		stamp = prev + 1
	}

	if numeric {
		merged[r.field] = sameNumberKind(c.RemoteState[r.field], stamp)
	} else {
		merged[r.field] = time.UnixMilli(stamp).UTC().Format(time.RFC3339Nano)
	}

	return models.Merged(merged), nil
}

// parseTimestamp reads v as Unix milliseconds. Strings are parsed as RFC 3339,
// numbers are taken as milliseconds. numeric reports which form v had.
func parseTimestamp(v any) (ms int64, numeric bool, ok bool) {
	switch val := v.(type) {
	case string:
		t, err := time.Parse(time.RFC3339Nano, val)
		if err != nil {
			return 0, false, false
		}
		return t.UnixMilli(), false, true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, true, false
		}
		return int64(val), true, true
	case float32:
		return int64(val), true, true
	case int:
		return int64(val), true, true
	case int64:
		return val, true, true
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			f, ferr := val.Float64()
			if ferr != nil {
				return 0, true, false
			}
			return int64(f), true, true
		}
		return n, true, true
	default:
		return 0, false, false
	}
}

func sameNumberKind(prev any, ms int64) any {
	switch prev.(type) {
	case int:
		return int(ms)
	case int64:
		return ms
	case json.Number:
		return json.Number(strconv.FormatInt(ms, 10))
	default:
		return float64(ms)
	}
}
