package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hrtools/hrscan/internal/history"
	"github.com/hrtools/hrscan/internal/jobs"
	"github.com/hrtools/hrscan/internal/logger"
	"github.com/hrtools/hrscan/internal/matching"
	"github.com/hrtools/hrscan/internal/resume"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against a stored job posting",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("resume", "r", "", "path to the resume file (pdf, docx or plain text)")
	matchCmd.Flags().StringP("model", "m", "", "scoring model to use; prompted interactively when unset")
	matchCmd.Flags().Int64("job", 0, "job posting id; prompted interactively when unset")

	matchCmd.MarkFlagRequired("resume")
}

func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	rt, err := newRuntime(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the runtime", zap.Error(err))
	}
	defer rt.Close()

	resumePath, _ := cmd.Flags().GetString("resume")
	data, err := os.ReadFile(resumePath)
	if err != nil {
		logger.Fatal("reading the resume file", zap.Error(err))
	}

	vocab, err := rt.jobs.Vocabulary(ctx)
	if err != nil {
		logger.Fatal("loading the skill vocabulary", zap.Error(err))
	}

	profile, err := resume.Parse(filepath.Base(resumePath), data, vocab)
	if err != nil {
		logger.Fatal("parsing the resume", zap.Error(err))
	}

	logger.Info("parsed the resume",
		zap.Int("skills", len(profile.Skills)),
		zap.Int("years of experience", profile.YearsExperience),
	)

	posting, err := selectPosting(ctx, cmd, rt.jobs)
	if err != nil {
		logger.Fatal("selecting a job posting", zap.Error(err))
	}

	choice, err := selectModel(cmd)
	if err != nil {
		logger.Fatal("selecting a model", zap.Error(err))
	}

	result := rt.dispatcher.Match(ctx,
		&matching.ResumeInput{
			RawText:         profile.RawText,
			Skills:          profile.Skills,
			YearsExperience: profile.YearsExperience,
		},
		&matching.JobInput{
			Title:           posting.Title,
			Company:         posting.Company,
			Description:     posting.Description,
			Location:        posting.Location,
			ExperienceLevel: posting.ExperienceLevel,
			SkillsRequired:  posting.SkillsRequired,
			Industry:        posting.Industry,
			EmploymentMode:  posting.EmploymentMode,
		},
		choice,
	)

	if err := rt.history.Append(ctx, &history.Record{
		Kind:    history.KindMatch,
		Subject: posting.Title,
		Model:   result.Model,
		Score:   float64(result.MatchScore),
	}); err != nil {
		logger.Warn("recording prediction history failed", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding the result", zap.Error(err))
	}

	fmt.Println(string(pretty))
}

func selectPosting(ctx context.Context, cmd *cobra.Command, store *jobs.Store) (*jobs.Posting, error) {
	postings, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if postings.Len() == 0 {
		return nil, fmt.Errorf("no job postings stored; add one via the API first")
	}

	if id, _ := cmd.Flags().GetInt64("job"); id != 0 {
		posting := postings.FindByID(id)
		if posting == nil {
			return nil, fmt.Errorf("job posting %d not found", id)
		}
		return posting, nil
	}

	prompt := promptui.Select{
		Label: "Select a job posting",
		Items: postings.Titles(),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	return postings.Items[idx], nil
}

func selectModel(cmd *cobra.Command) (matching.ModelChoice, error) {
	if name, _ := cmd.Flags().GetString("model"); name != "" {
		return matching.ParseModelChoice(name), nil
	}

	choices := matching.ModelChoices()
	items := make([]string, 0, len(choices))
	for _, choice := range choices {
		items = append(items, string(choice))
	}

	prompt := promptui.Select{
		Label: "Select a scoring model",
		Items: items,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return matching.ModelRuleBased, err
	}

	return choices[idx], nil
}
