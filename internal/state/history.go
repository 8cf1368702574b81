package state

import "strings"

const (
	maxSearchHistory = 10
	minSearchTermLen = 2
)

const searchesKey = "searches"

// RecordSearch puts term at the front of the search history. Terms shorter
// than two characters are ignored; an existing entry that differs only in
// case is replaced.
func (m *Manager) RecordSearch(term string) error {
	history, err := m.SearchHistory()
	if err != nil {
		return err
	}
	updated, changed := pushHistory(history, term)
	if !changed {
		return nil
	}
	return m.putRecord(m.db, nsHistory, searchesKey, updated)
}

// SearchHistory returns past searches, most recent first.
func (m *Manager) SearchHistory() ([]string, error) {
	var history []string
	if _, err := getRecord(m.db, nsHistory, searchesKey, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ClearSearchHistory empties the search history.
func (m *Manager) ClearSearchHistory() error {
	return deleteRecord(m.db, nsHistory, searchesKey)
}

func pushHistory(history []string, term string) ([]string, bool) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < minSearchTermLen {
		return history, false
	}

	out := make([]string, 0, maxSearchHistory)
	out = append(out, term)
	for _, h := range history {
		if strings.EqualFold(h, term) {
			continue
		}
		if len(out) == maxSearchHistory {
			break
		}
		out = append(out, h)
	}
	return out, true
}
