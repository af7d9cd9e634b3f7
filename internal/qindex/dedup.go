package qindex

import (
	"strings"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
)

// Signature is the dedup key: lower(trim(topic + "-" + text)) with each half
// trimmed first. The separator is literal, so some distinct pairs collide.
// Trimming the halves departs from the plain key ("a ", " b" gives "a-b",
// not "a - b"), so signatures are not comparable with ones stored by it.
func Signature(topic, text string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimSpace(topic) + "-" + strings.TrimSpace(text)))
}

func signatureOf(q *exam.Question) string { return Signature(q.Topic, q.Text) }

// DedupTable maps a question's signature to the last question stored under it.
type DedupTable struct {
	entries map[string]*exam.Question
}

func NewDedupTable() *DedupTable {
	return &DedupTable{entries: map[string]*exam.Question{}}
}

// Add stores q, replacing whatever shared its signature.
func (d *DedupTable) Add(q *exam.Question) {
	key := signatureOf(q)
	d.entries[key] = q
}

func (d *DedupTable) Has(q *exam.Question) bool {
	_, ok := d.entries[signatureOf(q)]
	return ok
}

// Get returns the stored question for q's signature, which may be a different
// value than q.
func (d *DedupTable) Get(q *exam.Question) (*exam.Question, bool) {
	stored, ok := d.entries[signatureOf(q)]
	return stored, ok
}

func (d *DedupTable) Clear() {
	if len(d.entries) == 0 {
		return
	}
	d.entries = map[string]*exam.Question{}
}

func (d *DedupTable) Len() int { return len(d.entries) }
