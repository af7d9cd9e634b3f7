package exam

import "strings"

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Rank maps a difficulty onto {easy:1, medium:2, hard:3}.
// Anything unrecognised ranks as medium.
func Rank(d Difficulty) int {
	switch Difficulty(strings.ToLower(strings.TrimSpace(string(d)))) {
	case Easy:
		return 1
	case Hard:
		return 3
	default:
		return 2
	}
}

// ParseDifficulty normalises user input; unknown labels become Medium.
func ParseDifficulty(s string) Difficulty {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d
	default:
		return Medium
	}
}

func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}
