package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// getRecord decodes the record at (ns, key) into v.
// It returns false when the record does not exist.
func getRecord(q querier, ns, key string, v any) (bool, error) {
	var raw string
	err := q.QueryRow(`SELECT value FROM kv WHERE namespace = ? AND key = ?`, ns, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s/%s: %w", ns, key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", ns, key, err)
	}
	return true, nil
}

// putRecord overwrites the record at (ns, key) with v.
func (m *Manager) putRecord(q querier, ns, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", ns, key, err)
	}
	_, err = q.Exec(`
		INSERT INTO kv (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, ns, key, string(raw), m.now().Unix())
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", ns, key, err)
	}
	return nil
}

func deleteRecord(q querier, ns, key string) error {
	if _, err := q.Exec(`DELETE FROM kv WHERE namespace = ? AND key = ?`, ns, key); err != nil {
		return fmt.Errorf("delete %s/%s: %w", ns, key, err)
	}
	return nil
}
