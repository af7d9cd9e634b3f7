package paper

import (
	"fmt"
	"strings"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
)

// Render produces the plain-text download of a paper.
func Render(p exam.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Question Paper\n", p.Config.Subject)
	fmt.Fprintf(&b, "Grade: %d\n", p.Config.Grade)
	fmt.Fprintf(&b, "Total Marks: %d\n", p.Config.TotalMarks)
	fmt.Fprintf(&b, "Difficulty: %s\n", p.Config.Difficulty)

	section := ""
	for i, q := range p.Questions {
		if q.Section != "" && q.Section != section {
			section = q.Section
			fmt.Fprintf(&b, "\n%s\n", section)
		}
		fmt.Fprintf(&b, "\nQ%d. [%d marks]\n%s\nTopic: %s\n", i+1, q.Marks, q.Text, q.Topic)
	}
	return b.String()
}

func FileName(cfg exam.PaperConfig) string {
	subject := strings.Join(strings.Fields(strings.ToLower(cfg.Subject)), "-")
	return fmt.Sprintf("question-paper-%s-grade%d.txt", subject, cfg.Grade)
}
