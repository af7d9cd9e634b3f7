package exam

import "time"

type Question struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Marks      int        `json:"marks"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Type       string     `json:"type,omitempty"`    // mcq|short|long
	Section    string     `json:"section,omitempty"` // e.g. "Section A"
	Subtopics  []string   `json:"subtopics,omitempty"`
}

type Syllabus struct {
	ID          string   `json:"id"`
	Topic       string   `json:"topic"`
	Subtopics   []string `json:"subtopics"`
	Description string   `json:"description,omitempty"`
}

// Subject is a named syllabus configuration kept in the subject store.
type Subject struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Syllabus []Syllabus `json:"syllabus"`
}

type QuestionTypeSpec struct {
	Type      string `json:"type"`
	Count     int    `json:"count"`
	MarksEach int    `json:"marks_each"`
}

type Section struct {
	Name          string             `json:"name"`
	QuestionTypes []QuestionTypeSpec `json:"question_types"`
}

type Pattern struct {
	Sections   []Section `json:"sections"`
	TotalMarks int       `json:"total_marks"`
}

type PaperConfig struct {
	Subject    string     `json:"subject"`
	Grade      int        `json:"grade"`
	Difficulty Difficulty `json:"difficulty"`
	TotalMarks int        `json:"total_marks"`
	Pattern    *Pattern   `json:"pattern,omitempty"`
}

// Stats is the aggregate reported by the statistics accumulator.
type Stats struct {
	TotalMarks        int `json:"total_marks"`
	AverageDifficulty int `json:"average_difficulty"`
	TopMarks          int `json:"top_marks"`
}

type Paper struct {
	ID        string      `json:"id"`
	Config    PaperConfig `json:"config"`
	Questions []Question  `json:"questions"`
	Stats     *Stats      `json:"stats,omitempty"` // nil when the accumulator failed
	Skipped   int         `json:"skipped,omitempty"`
	Repeats   int         `json:"repeats,omitempty"` // questions probably handed out by an earlier paper
	CreatedAt time.Time   `json:"created_at"`
}

// DefaultPattern mirrors the three-section layout offered when no pattern is supplied.
func DefaultPattern() Pattern {
	return Pattern{
		Sections: []Section{
			{Name: "Section A", QuestionTypes: []QuestionTypeSpec{{Type: "mcq", Count: 5, MarksEach: 1}}},
			{Name: "Section B", QuestionTypes: []QuestionTypeSpec{{Type: "short", Count: 5, MarksEach: 3}}},
			{Name: "Section C", QuestionTypes: []QuestionTypeSpec{{Type: "long", Count: 2, MarksEach: 5}}},
		},
		TotalMarks: 50,
	}
}

// DefaultConfig is the configuration a fresh session starts from.
func DefaultConfig() PaperConfig {
	p := DefaultPattern()
	return PaperConfig{
		Subject:    "Physics",
		Grade:      11,
		Difficulty: Medium,
		TotalMarks: 50,
		Pattern:    &p,
	}
}
