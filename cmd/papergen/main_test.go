package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const subjectsJSON = `[
  {"name":"Physics","syllabus":[
    {"topic":"Mechanics","subtopics":["Newton's laws"]},
    {"topic":"Optics","subtopics":["Refraction","Lenses"]},
    {"topic":"Thermodynamics","subtopics":["Entropy"]}
  ]}
]`

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	subjects := filepath.Join(dir, "subjects.json")
	require.NoError(t, os.WriteFile(subjects, []byte(subjectsJSON), 0o644))

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:TestGenerateCommand?mode=memory&cache=shared")
	t.Setenv("BLOB_BASE_PATH", filepath.Join(dir, "blobs"))
	t.Setenv("GEMINI_API_KEY", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"generate", "--offline", "--subjects", subjects, "--grade", "10", "--difficulty", "hard", "--export"})
	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Physics Question Paper\nGrade: 10\n"), text)
	assert.Contains(t, text, "Difficulty: hard")
	// three topics: 3 mcq + 3 short + 2 long
	assert.Equal(t, 8, strings.Count(text, "\nQ"))

	matches, err := filepath.Glob(filepath.Join(dir, "blobs", "papers", "*", "question-paper-physics-grade10.txt"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestGenerateUnknownSubject(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:TestGenerateUnknownSubject?mode=memory&cache=shared")
	t.Setenv("BLOB_BASE_PATH", t.TempDir())

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"generate", "--offline", "--subjects", "", "--subject", "Latin", "--export=false"})
	assert.Error(t, rootCmd.Execute())
}
