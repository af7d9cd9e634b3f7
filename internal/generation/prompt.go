package generation

import (
	"fmt"
	"math/rand"
	"strings"
)

var (
	highTemplates = []string{
		"Create a real-world case study question about {topic} that requires analyzing and applying concepts of {subtopics}. The solution should demonstrate practical implementation and problem-solving skills.",
		"Design a complex scenario-based question where students need to apply their knowledge of {topic} and {subtopics} to solve a real industry/practical problem.",
		"Generate a comprehensive application-based question that integrates multiple concepts from {topic}, particularly {subtopics}, requiring detailed analysis and solution.",
	}
	mediumTemplates = []string{
		"Create a practical situation where students need to apply {topic} concepts, focusing on {subtopics}.",
		"Design a problem-solving question that applies {topic} principles to a real-world scenario, covering {subtopics}.",
		"Generate a question that requires applying {topic} knowledge to solve a practical problem related to {subtopics}.",
	}
	lowTemplates = []string{
		"Create a simple application-based question about {topic} focusing on {subtopics}.",
		"Design a basic practical question testing understanding of {topic} and {subtopics}.",
		"Generate a straightforward problem-solving question about {topic} related to {subtopics}.",
	}
)

// templatesFor picks the band: 8+ marks high, 4-7 medium, otherwise low.
func templatesFor(marks int) []string {
	switch {
	case marks >= 8:
		return highTemplates
	case marks >= 4:
		return mediumTemplates
	default:
		return lowTemplates
	}
}

// BuildPrompt renders the instruction sent to the model. rng selects the
// opening template; nil uses the package source.
func BuildPrompt(req Request, rng *rand.Rand) string {
	ts := templatesFor(req.Marks)
	var i int
	if rng != nil {
		i = rng.Intn(len(ts))
	} else {
		i = rand.Intn(len(ts))
	}
	subs := strings.Join(req.Subtopics, ", ")
	opening := strings.NewReplacer("{topic}", req.Topic, "{subtopics}", subs).Replace(ts[i])

	var b strings.Builder
	b.WriteString(opening)
	fmt.Fprintf(&b, "\n\nQuestion Requirements:\n1. Marks: %d marks\n2. Difficulty Level: %s\n3. Grade Level: %d\n", req.Marks, req.Difficulty, req.Grade)
	if req.Type != "" {
		fmt.Fprintf(&b, "4. Question Type: %s\n", req.Type)
	}
	b.WriteString(`
Question Structure Guidelines:
1. Start with a realistic scenario or case study
2. Include relevant data or information needed to solve the problem
3. Break down the question into parts if it's a high-marks question
4. Clearly indicate the marks distribution for each part
5. Focus on application, analysis, and problem-solving skills
`)
	fmt.Fprintf(&b, "\nThe question should be appropriate for grade %d students and match the %s difficulty level.\n", req.Grade, req.Difficulty)
	fmt.Fprintf(&b, "Focus on practical applications of %s within %s.\n", subs, req.Topic)
	b.WriteString(`
Return the question in this format:
[Question Title/Context]

Scenario: [Detailed real-world scenario]

Questions:
a) [First part] [Marks]
b) [Second part] [Marks]
...
`)
	fmt.Fprintf(&b, "\nNote: Total marks should add up to %d\n", req.Marks)
	return b.String()
}
