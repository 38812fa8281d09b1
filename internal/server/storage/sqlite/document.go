package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/server/storage"
)

// ApplyOperation applies op in a single transaction.
//
// Rules for operations without Forced:
//   - create conflicts when the document exists;
//   - update and delete conflict when the document was changed after op.Timestamp;
//   - update and delete of an unknown document fail with ErrDocumentNotFound.
//
// Forced operations skip the conflict checks: create and update overwrite or
// upsert, delete of an unknown document is a no-op.
func (s *Storage) ApplyOperation(ctx context.Context, clientID string, op *models.Operation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Повторная доставка уже принятой операции
	var seen int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM changes WHERE op_id = ?`, op.ID).Scan(&seen)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check operation: %w", err)
	}

	current, err := getDocument(ctx, tx, op.Collection, op.DocID)
	if err != nil && !errors.Is(err, storage.ErrDocumentNotFound) {
		return err
	}

	switch op.Type {
	case models.OperationCreate:
		err = applyCreate(ctx, tx, op, current)
	case models.OperationUpdate:
		err = applyUpdate(ctx, tx, op, current)
	case models.OperationDelete:
		if current == nil && op.Forced {
			return nil
		}
		err = applyDelete(ctx, tx, op, current)
	default:
		return fmt.Errorf("%w: unknown type %q", models.ErrInvalidOperation, op.Type)
	}
	if err != nil {
		return err
	}

	if err := appendChange(ctx, tx, clientID, op); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func applyCreate(ctx context.Context, tx *sql.Tx, op *models.Operation, current *storage.StoredDocument) error {
	if current != nil && !op.Forced {
		return &storage.ConflictError{Current: current.Data, Reason: "document already exists"}
	}
	return putDocument(ctx, tx, op.Collection, op.DocID, op.Payload, op.Timestamp, current)
}

func applyUpdate(ctx context.Context, tx *sql.Tx, op *models.Operation, current *storage.StoredDocument) error {
	if current == nil {
		if !op.Forced {
			return storage.ErrDocumentNotFound
		}
		doc := op.Payload.Merge(models.Document{models.FieldID: op.DocID})
		return putDocument(ctx, tx, op.Collection, op.DocID, doc, op.Timestamp, nil)
	}

	if !op.Forced && current.UpdatedAt > op.Timestamp {
		return &storage.ConflictError{Current: current.Data, Reason: "document changed after the operation"}
	}

	merged := current.Data.Merge(op.Payload).Merge(models.Document{models.FieldID: op.DocID})
	return putDocument(ctx, tx, op.Collection, op.DocID, merged, max(op.Timestamp, current.UpdatedAt), current)
}

func applyDelete(ctx context.Context, tx *sql.Tx, op *models.Operation, current *storage.StoredDocument) error {
	if current == nil {
		return storage.ErrDocumentNotFound
	}
	if !op.Forced && current.UpdatedAt > op.Timestamp {
		return &storage.ConflictError{Current: current.Data, Reason: "document changed after the operation"}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		op.Collection, op.DocID,
	); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func putDocument(
	ctx context.Context,
	tx *sql.Tx,
	collection, id string,
	doc models.Document,
	updatedAt int64,
	current *storage.StoredDocument,
) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if current == nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO documents (collection, id, data, updated_at, version)
			VALUES (?, ?, ?, ?, 1)
		`, collection, id, string(data), updatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert document: %w", err)
		}
		return nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE documents
		SET data = ?, updated_at = ?, version = version + 1
		WHERE collection = ? AND id = ?
	`, string(data), updatedAt, collection, id)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func appendChange(ctx context.Context, tx *sql.Tx, clientID string, op *models.Operation) error {
	var payload sql.NullString
	if op.Payload != nil {
		data, err := json.Marshal(op.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		payload = sql.NullString{String: string(data), Valid: true}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO changes (op_id, client_id, type, collection, doc_id, payload, timestamp, forced, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		op.ID,
		clientID,
		string(op.Type),
		op.Collection,
		op.DocID,
		payload,
		op.Timestamp,
		boolToInt(op.Forced),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append change: %w", err)
	}
	return nil
}

// GetDocument retrieves a single document
func (s *Storage) GetDocument(ctx context.Context, collection, id string) (*storage.StoredDocument, error) {
	return getDocument(ctx, s.db, collection, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getDocument(ctx context.Context, q queryRower, collection, id string) (*storage.StoredDocument, error) {
	query := `
		SELECT collection, id, data, updated_at, version
		FROM documents
		WHERE collection = ? AND id = ?
	`

	doc := &storage.StoredDocument{}
	var data string

	err := q.QueryRowContext(ctx, query, collection, id).Scan(
		&doc.Collection,
		&doc.ID,
		&data,
		&doc.UpdatedAt,
		&doc.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &doc.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return doc, nil
}

// ChangesSince returns accepted operations with seq greater than since
func (s *Storage) ChangesSince(ctx context.Context, since int64) ([]storage.Change, error) {
	query := `
		SELECT seq, op_id, client_id, type, collection, doc_id, payload, timestamp, forced
		FROM changes
		WHERE seq > ?
		ORDER BY seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query changes: %w", err)
	}
	defer rows.Close()

	changes := make([]storage.Change, 0)
	for rows.Next() {
		var (
			change  storage.Change
			opType  string
			payload sql.NullString
			forced  int
		)

		if err := rows.Scan(
			&change.Seq,
			&change.Operation.ID,
			&change.ClientID,
			&opType,
			&change.Operation.Collection,
			&change.Operation.DocID,
			&payload,
			&change.Operation.Timestamp,
			&forced,
		); err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}

		change.Operation.Type = models.OperationType(opType)
		change.Operation.Forced = forced != 0
		if payload.Valid {
			if err := json.Unmarshal([]byte(payload.String), &change.Operation.Payload); err != nil {
				return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		changes = append(changes, change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating changes: %w", err)
	}

	return changes, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
