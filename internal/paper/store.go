package paper

import (
	"errors"
	"sort"
	"sync"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
	"github.com/mind-engage/mindengage-papergen/internal/qindex"
)

var ErrPaperNotFound = errors.New("paper not found")

type session struct {
	paper exam.Paper
	index *qindex.Index
}

// Store keeps generated papers with their question index for the life of
// the process. The index has no locks of its own, so every access to it goes
// through Store's mutex.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func NewStore() *Store {
	return &Store{sessions: map[string]*session{}}
}

func (s *Store) Put(p exam.Paper, ix *qindex.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[p.ID] = &session{paper: p, index: ix}
}

// clonePaper copies the slices and pointers of p so callers cannot edit the
// stored paper through the returned value.
func clonePaper(p exam.Paper) exam.Paper {
	qs := make([]exam.Question, len(p.Questions))
	for i, q := range p.Questions {
		q.Subtopics = append([]string(nil), q.Subtopics...)
		qs[i] = q
	}
	p.Questions = qs
	if p.Stats != nil {
		st := *p.Stats
		p.Stats = &st
	}
	if p.Config.Pattern != nil {
		pat := *p.Config.Pattern
		pat.Sections = make([]exam.Section, len(p.Config.Pattern.Sections))
		for i, sec := range p.Config.Pattern.Sections {
			sec.QuestionTypes = append([]exam.QuestionTypeSpec(nil), sec.QuestionTypes...)
			pat.Sections[i] = sec
		}
		p.Config.Pattern = &pat
	}
	return p
}

func (s *Store) Get(id string) (exam.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return exam.Paper{}, ErrPaperNotFound
	}
	return clonePaper(sess.paper), nil
}

// List returns papers newest first.
func (s *Store) List() []exam.Paper {
	s.mu.Lock()
	out := make([]exam.Paper, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, clonePaper(sess.paper))
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// WithIndex runs fn with exclusive access to the paper's index.
func (s *Store) WithIndex(id string, fn func(ix *qindex.Index)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrPaperNotFound
	}
	fn(sess.index)
	return nil
}
