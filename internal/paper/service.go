package paper

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
	"github.com/mind-engage/mindengage-papergen/internal/generation"
	"github.com/mind-engage/mindengage-papergen/internal/qindex"
	"github.com/mind-engage/mindengage-papergen/internal/stats"
	"github.com/mind-engage/mindengage-papergen/internal/storage"
)

var (
	ErrUnknownSubject = errors.New("unknown subject")
	ErrNoPattern      = errors.New("paper pattern has no sections")
	ErrNoBlobStore    = errors.New("no blob store configured")
)

type Option func(*Service)

func WithLogger(l *zap.SugaredLogger) Option   { return func(s *Service) { s.log = l } }
func WithBlobStore(b storage.BlobStore) Option { return func(s *Service) { s.blobs = b } }
func WithSeed(seed int64) Option               { return func(s *Service) { s.rng = rand.New(rand.NewSource(seed)) } }
func WithStore(st *Store) Option               { return func(s *Service) { s.store = st } }

// WithHistory shares the record of questions already handed out, e.g.
// between services or across a reset.
func WithHistory(h *qindex.History) Option { return func(s *Service) { s.history = h } }

// WithAccumulator sets the factory for per-paper statistics. A factory that
// returns nil disables statistics.
func WithAccumulator(fn func() stats.Accumulator) Option {
	return func(s *Service) { s.newAcc = fn }
}

// Service drives generation and assembly of question papers.
type Service struct {
	subjects storage.SubjectStore
	gen      generation.Generator
	blobs    storage.BlobStore
	store    *Store
	history  *qindex.History
	newAcc   func() stats.Accumulator
	log      *zap.SugaredLogger

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewService(subjects storage.SubjectStore, gen generation.Generator, opts ...Option) *Service {
	s := &Service{
		subjects: subjects,
		gen:      gen,
		store:    NewStore(),
		history:  qindex.NewHistory(0, 0),
		newAcc:   func() stats.Accumulator { return stats.NewEvaluator() },
		log:      zap.NewNop().Sugar(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

// Generate builds a paper for cfg. For every question type in the pattern it
// draws up to Count topics from the subject's syllabus without replacement,
// so a type with more slots than topics comes out short.
func (s *Service) Generate(ctx context.Context, cfg exam.PaperConfig) (exam.Paper, error) {
	subj, err := s.subjects.GetSubjectByName(ctx, cfg.Subject)
	if errors.Is(err, storage.ErrNotFound) {
		return exam.Paper{}, fmt.Errorf("%w: %s", ErrUnknownSubject, cfg.Subject)
	}
	if err != nil {
		return exam.Paper{}, fmt.Errorf("load subject: %w", err)
	}
	if cfg.Pattern == nil {
		p := exam.DefaultPattern()
		cfg.Pattern = &p
	}
	if len(cfg.Pattern.Sections) == 0 {
		return exam.Paper{}, ErrNoPattern
	}
	cfg.Difficulty = exam.ParseDifficulty(string(cfg.Difficulty))

	s.log.Infow("generating paper", "subject", subj.Name, "grade", cfg.Grade, "difficulty", cfg.Difficulty)

	ix := qindex.New()
	var acc stats.Accumulator
	if s.newAcc != nil {
		acc = s.newAcc()
	}
	rec := stats.NewRecorder(acc, s.log)
	questions := []exam.Question{}
	skipped, repeats := 0, 0

	for _, sec := range cfg.Pattern.Sections {
		for _, qt := range sec.QuestionTypes {
			avail := append([]exam.Syllabus(nil), subj.Syllabus...)
			for i := 0; i < qt.Count && len(avail) > 0; i++ {
				if err := ctx.Err(); err != nil {
					return exam.Paper{}, err
				}
				k := s.intn(len(avail))
				topic := avail[k]
				avail = append(avail[:k], avail[k+1:]...)

				req := generation.Request{
					Topic:      topic.Topic,
					Subtopics:  topic.Subtopics,
					Difficulty: string(cfg.Difficulty),
					Grade:      cfg.Grade,
					Type:       qt.Type,
					Marks:      qt.MarksEach,
				}
				text, err := s.gen.Generate(ctx, req)
				if err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return exam.Paper{}, ctxErr
					}
					s.log.Warnw("generator failed, using basic question", "topic", topic.Topic, "err", err)
					text = generation.BasicQuestion(req)
				}

				q := &exam.Question{
					ID:         fmt.Sprintf("%s-%d", cfg.Subject, len(questions)),
					Text:       strings.TrimSpace(text),
					Marks:      qt.MarksEach,
					Topic:      topic.Topic,
					Difficulty: cfg.Difficulty,
					Type:       qt.Type,
					Section:    sec.Name,
					Subtopics:  topic.Subtopics,
				}
				if !ix.Add(q) {
					skipped++
					s.log.Infow("duplicate question skipped", "topic", q.Topic, "section", sec.Name)
					continue
				}
				if s.history.Mark(q) {
					repeats++
				}
				questions = append(questions, *q)
				rec.Record(*q)
			}
		}
	}

	p := exam.Paper{
		ID:        uuid.NewString(),
		Config:    cfg,
		Questions: questions,
		Skipped:   skipped,
		Repeats:   repeats,
		CreatedAt: time.Now().UTC(),
	}
	if st, ok := rec.Snapshot(); ok {
		p.Stats = &st
	}
	s.store.Put(p, ix)
	s.log.Infow("paper generated", "id", p.ID, "questions", len(questions), "skipped", skipped, "repeats", repeats)
	return p, nil
}

func (s *Service) Get(id string) (exam.Paper, error) { return s.store.Get(id) }

func (s *Service) List() []exam.Paper { return s.store.List() }

func (s *Service) Delete(id string) bool { return s.store.Delete(id) }

func deref(qs []*exam.Question) []exam.Question {
	out := make([]exam.Question, len(qs))
	for i, q := range qs {
		out[i] = *q
	}
	return out
}

// Ordered lists the paper's questions easiest first.
func (s *Service) Ordered(id string) ([]exam.Question, error) {
	var out []exam.Question
	err := s.store.WithIndex(id, func(ix *qindex.Index) { out = deref(ix.EasyFirst()) })
	return out, err
}

// Search returns questions filed under topic and its direct sub-topics.
func (s *Service) Search(id, topic string) ([]exam.Question, error) {
	var out []exam.Question
	err := s.store.WithIndex(id, func(ix *qindex.Index) { out = deref(ix.Search(topic)) })
	return out, err
}

func (s *Service) Related(id, prefix string) ([]string, error) {
	var out []string
	err := s.store.WithIndex(id, func(ix *qindex.Index) { out = ix.RelatedTopics(prefix) })
	return out, err
}

// Export writes the rendered paper to the blob store and returns its key.
func (s *Service) Export(ctx context.Context, id string) (string, error) {
	if s.blobs == nil {
		return "", ErrNoBlobStore
	}
	p, err := s.store.Get(id)
	if err != nil {
		return "", err
	}
	key, err := s.blobs.Put(ctx, "papers/"+p.ID+"/"+FileName(p.Config), strings.NewReader(Render(p)))
	if err != nil {
		return "", fmt.Errorf("export paper %s: %w", id, err)
	}
	s.log.Infow("paper exported", "id", id, "key", key)
	return key, nil
}
