package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/skillforge/internal/api"
	"github.com/zjrosen/skillforge/internal/insights"
	"github.com/zjrosen/skillforge/internal/log"
	"github.com/zjrosen/skillforge/internal/ui/styles"
)

// careerAgent answers the follow-up question about a profile.
const careerAgent = "analysis_agent"

var careerProfile = defaultCareerProfile()

func defaultCareerProfile() api.CareerProfile {
	return api.CareerProfile{
		City:               "Toronto",
		Industry:           "Technology",
		ExperienceLevel:    "mid",
		Education:          "bachelors",
		PythonSkill:        5,
		SQLSkill:           5,
		MLSkill:            5,
		CommunicationSkill: 5,
		PortfolioProjects:  3,
		GithubCommits:      100,
		YearsExperience:    3,
	}
}

var careerCmd = &cobra.Command{
	Use:   "career",
	Short: "Career intelligence for a skills profile",
}

var careerAnalyzeCmd = &cobra.Command{
	Use:     "analyze",
	Short:   "Predict salary, job match and next career step for a profile",
	Example: `  skillforge career analyze --city Vancouver --experience senior --python 8 --ml 6`,
	Args:    cobra.NoArgs,
	RunE:    runCareerAnalyze,
}

var careerAskCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask the analysis agent which projects would advance a profile",
	Args:  cobra.NoArgs,
	RunE:  runCareerAsk,
}

func init() {
	for _, c := range []*cobra.Command{careerAnalyzeCmd, careerAskCmd} {
		f := c.Flags()
		f.StringVar(&careerProfile.City, "city", careerProfile.City, "city you work in")
		f.StringVar(&careerProfile.Industry, "industry", careerProfile.Industry, "industry you work in")
		f.StringVar(&careerProfile.ExperienceLevel, "experience", careerProfile.ExperienceLevel, "experience level (entry, mid, senior)")
		f.StringVar(&careerProfile.Education, "education", careerProfile.Education, "highest education")
		f.Float64Var(&careerProfile.PythonSkill, "python", careerProfile.PythonSkill, "Python skill (0-10)")
		f.Float64Var(&careerProfile.SQLSkill, "sql", careerProfile.SQLSkill, "SQL skill (0-10)")
		f.Float64Var(&careerProfile.MLSkill, "ml", careerProfile.MLSkill, "machine learning skill (0-10)")
		f.Float64Var(&careerProfile.CommunicationSkill, "communication", careerProfile.CommunicationSkill, "communication skill (0-10)")
		f.IntVar(&careerProfile.PortfolioProjects, "projects", careerProfile.PortfolioProjects, "portfolio projects")
		f.IntVar(&careerProfile.GithubCommits, "commits", careerProfile.GithubCommits, "GitHub commits in the last year")
		f.Float64Var(&careerProfile.YearsExperience, "years", careerProfile.YearsExperience, "years of experience")
	}
	careerCmd.AddCommand(careerAnalyzeCmd, careerAskCmd)
	rootCmd.AddCommand(careerCmd)
}

func validateProfile(p api.CareerProfile) error {
	skills := []struct {
		flag  string
		value float64
	}{
		{"python", p.PythonSkill},
		{"sql", p.SQLSkill},
		{"ml", p.MLSkill},
		{"communication", p.CommunicationSkill},
	}
	for _, s := range skills {
		if s.value < 0 || s.value > 10 {
			return fmt.Errorf("--%s must be between 0 and 10", s.flag)
		}
	}
	if p.PortfolioProjects < 0 || p.GithubCommits < 0 || p.YearsExperience < 0 {
		return errors.New("--projects, --commits and --years cannot be negative")
	}
	if strings.TrimSpace(p.City) == "" || strings.TrimSpace(p.Industry) == "" {
		return errors.New("--city and --industry are required")
	}
	return nil
}

func runCareerAnalyze(cmd *cobra.Command, _ []string) error {
	if err := validateProfile(careerProfile); err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	analysis, err := newClient().AnalyzeCareer(ctx, careerProfile)
	if err != nil {
		log.ErrorErr(log.CatInsights, "Career analysis failed", err)
		return userError(err, "career analysis failed")
	}
	printSections(cmd.OutOrStdout(), insights.CareerAnalysisSections(analysis))
	return nil
}

func runCareerAsk(cmd *cobra.Command, _ []string) error {
	if err := validateProfile(careerProfile); err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	resp, err := newClient().Interact(ctx, api.InteractRequest{
		AgentType: careerAgent,
		Message:   insights.CareerAgentPrompt(careerProfile),
		Context:   map[string]any{"profile": careerProfile},
	})
	if err != nil {
		log.ErrorErr(log.CatAgent, "Career agent request failed", err)
		return userError(err, "career agent request failed")
	}
	if strings.TrimSpace(resp.Response) == "" {
		return errors.New("the career agent returned an empty reply")
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.Markdown(resp.Response, markdownWidth))
	return nil
}

func printSections(w io.Writer, sections []insights.Section) {
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.Title)
		for _, line := range s.Lines {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
