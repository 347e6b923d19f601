package session

import (
	"fmt"
	"sync"

	"pdf-agent/internal/domain/entity"
)

// Store is the in-memory session registry: per-session document sets and
// conversation history. It backs the destructive tool callbacks, so every
// mutation the agent makes lands here.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*state
}

type state struct {
	documents []entity.Document
	history   []entity.Message
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*state)}
}

func (s *Store) get(sessionID string) *state {
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &state{}
		s.sessions[sessionID] = st
	}
	return st
}

// Documents returns a copy of the session's document list.
func (s *Store) Documents(sessionID string) []entity.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]entity.Document, len(st.documents))
	copy(out, st.documents)
	return out
}

// AddDocuments appends documents, replacing any existing entry with the
// same id.
func (s *Store) AddDocuments(sessionID string, docs ...entity.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(sessionID)
	for _, doc := range docs {
		replaced := false
		for i, existing := range st.documents {
			if existing.ID == doc.ID {
				st.documents[i] = doc
				replaced = true
				break
			}
		}
		if !replaced {
			st.documents = append(st.documents, doc)
		}
	}
}

// History returns a copy of the session's conversation so far.
func (s *Store) History(sessionID string) []entity.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]entity.Message, len(st.history))
	copy(out, st.history)
	return out
}

func (s *Store) AppendHistory(sessionID string, msgs ...entity.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(sessionID)
	st.history = append(st.history, msgs...)
}

// ClearRevised removes every revised document from the session and
// reports how many were removed. Originals are untouched.
func (s *Store) ClearRevised(sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return 0, fmt.Errorf("unknown session %q", sessionID)
	}

	kept := st.documents[:0]
	removed := 0
	for _, doc := range st.documents {
		if doc.Kind == entity.DocumentRevised {
			removed++
			continue
		}
		kept = append(kept, doc)
	}
	st.documents = kept
	return removed, nil
}

// DeleteDocuments removes the requested revised documents. Ids naming
// originals are skipped and counted; unknown ids are ignored.
func (s *Store) DeleteDocuments(sessionID string, ids []string) (deleted, skippedOriginals int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return 0, 0, fmt.Errorf("unknown session %q", sessionID)
	}

	requested := make(map[string]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}

	kept := st.documents[:0]
	for _, doc := range st.documents {
		if requested[doc.ID] {
			if doc.Kind == entity.DocumentOriginal {
				skippedOriginals++
			} else {
				deleted++
				continue
			}
		}
		kept = append(kept, doc)
	}
	st.documents = kept
	return deleted, skippedOriginals, nil
}
