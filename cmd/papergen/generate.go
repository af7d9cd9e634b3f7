package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-papergen/internal/config"
	"github.com/mind-engage/mindengage-papergen/internal/exam"
	"github.com/mind-engage/mindengage-papergen/internal/paper"
)

var genOpts struct {
	subject    string
	grade      int
	difficulty string
	offline    bool
	subjects   string
	export     bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one paper and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, config.Load(vp), genOpts.offline)
		if err != nil {
			return err
		}
		defer a.Close()

		if genOpts.subjects != "" {
			if err := a.importSubjects(ctx, genOpts.subjects); err != nil {
				return err
			}
		}

		cfg := exam.DefaultConfig()
		cfg.Subject = genOpts.subject
		cfg.Grade = genOpts.grade
		cfg.Difficulty = exam.ParseDifficulty(genOpts.difficulty)

		p, err := a.papers.Generate(ctx, cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), paper.Render(p))
		if p.Stats != nil {
			a.log.Infow("paper statistics", "total_marks", p.Stats.TotalMarks,
				"average_difficulty", p.Stats.AverageDifficulty, "top_marks", p.Stats.TopMarks)
		}

		if genOpts.export {
			key, err := a.papers.Export(ctx, p.ID)
			if err != nil {
				return err
			}
			u, err := a.blobs.URL(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "saved", u)
		}
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genOpts.subject, "subject", "Physics", "subject name")
	f.IntVar(&genOpts.grade, "grade", 11, "grade level")
	f.StringVar(&genOpts.difficulty, "difficulty", "medium", "easy|medium|hard")
	f.BoolVar(&genOpts.offline, "offline", false, "do not call the text model")
	f.StringVar(&genOpts.subjects, "subjects", "", "JSON file of subjects to load first")
	f.BoolVar(&genOpts.export, "export", false, "also save the paper to the blob store")
}
