// Package sessions provides a per-user, server-tracked state container that
// survives across requests until its store expires it. A Session is a flat
// mapping of named JSON values; each request owns its session exclusively for
// the duration of that request.
package sessions

import (
	"context"
	"encoding/json"
)

// Store loads and persists sessions by id. Load never fails on a missing id:
// it hands back a fresh empty session so first access always succeeds.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type Session struct {
	id       string
	values   map[string]json.RawMessage
	modified bool
}

func newSession(id string, values map[string]json.RawMessage) *Session {
	if values == nil {
		values = map[string]json.RawMessage{}
	}
	return &Session{id: id, values: values}
}

func (s *Session) ID() string { return s.id }

// Get unmarshals the value stored under key into dest. The boolean reports
// whether the key was present.
func (s *Session) Get(key string, dest interface{}) (bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key and marks the session dirty so the store
// persists it at the end of the request.
func (s *Session) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = raw
	s.modified = true
	return nil
}

// Delete removes the value stored under key. Deleting an absent key still
// marks the session dirty, matching Set/Delete symmetry.
func (s *Session) Delete(key string) {
	delete(s.values, key)
	s.modified = true
}

func (s *Session) Modified() bool { return s.modified }
