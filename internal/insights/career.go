package insights

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zjrosen/skillforge/internal/api"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

var numbers = message.NewPrinter(language.English)

// Money renders a whole-dollar amount with thousands separators.
func Money(d decimal.NullDecimal) string {
	if !d.Valid {
		return NotAvailable
	}
	return numbers.Sprintf("$%d", d.Decimal.Round(0).IntPart())
}

// CareerAnalysisSections formats a career analysis for display. Servers
// that only return the condensed summary get a single section.
func CareerAnalysisSections(a api.CareerAnalysis) []Section {
	if a.Predictions == nil && a.Data != nil {
		return []Section{careerSummarySection(a.Data.Analysis, a.Data.Timestamp)}
	}

	var p api.CareerPredictions
	if a.Predictions != nil {
		p = *a.Predictions
	}
	sections := []Section{
		{
			Title: "Career Predictions",
			Lines: []string{
				"Predicted Salary: " + withUnit(Money(p.SalaryCAD), " CAD"),
				"Salary Percentile: " + FormatDecimal(p.SalaryPercentile, 0),
				"Job Match Probability: " + withUnit(FormatDecimal(p.JobMatchProbability, 1), "%"),
				"Career Growth Index: " + withUnit(FormatDecimal(p.CareerGrowthIndex, 1), "/10"),
				"Skill Gap Score: " + withUnit(FormatDecimal(a.Scores.SkillGapScore, 1), "/10"),
			},
		},
	}

	path := a.CareerPathway
	pathLines := []string{
		"Next Level: " + orNA(string(path.NextLevel)),
		"Timeline: " + withUnit(FormatDecimal(path.TimelineMonths, 0), " months"),
	}
	pathLines = append(pathLines, bullets(path.Requirements)...)
	sections = append(sections, Section{Title: "Career Pathway", Lines: pathLines})

	city := a.MarketAnalysis.CityAnalysis
	industry := a.MarketAnalysis.IndustryAnalysis
	sections = append(sections, Section{
		Title: "Market Analysis",
		Lines: []string{
			"City Avg Salary: " + Money(city.AvgSalary),
			"Job Opportunities: " + orNA(string(city.JobOpportunities)),
			"Remote Work Rate: " + withUnit(FormatDecimal(city.RemoteWorkRate, 0), "%"),
			"Competition: " + orNA(string(city.CompetitionLevel)),
			"Industry Avg Salary: " + Money(industry.AvgSalary),
			"Growth Trend: " + orNA(string(industry.GrowthTrend)),
			"Hiring Rate: " + withUnit(FormatDecimal(industry.HiringRate, 0), "%"),
		},
	})

	if recs := bullets(a.MarketAnalysis.Recommendations); len(recs) > 0 {
		sections = append(sections, Section{Title: "Recommendations", Lines: recs})
	}
	if a.Timestamp != "" {
		sections[0].Lines = append(sections[0].Lines,
			"Analyzed: "+wfdomain.ParseTimestamp(a.Timestamp).Display())
	}
	return sections
}

func careerSummarySection(s api.CareerSummary, timestamp string) Section {
	lines := []string{
		"Predicted Salary: " + orNA(string(s.SalaryPrediction)),
		"Career Path: " + orNA(string(s.CareerPath)),
	}
	if len(s.JobMatches) > 0 {
		lines = append(lines, "Job Matches:")
		for _, m := range s.JobMatches {
			lines = append(lines, fmt.Sprintf("• %s (%s match)",
				orNA(string(m.Title)), Percent(m.MatchScore)))
		}
	}
	if recs := bullets(s.SkillRecommendations); len(recs) > 0 {
		lines = append(lines, "Skills to Build:")
		lines = append(lines, recs...)
	}
	if timestamp != "" {
		lines = append(lines, "Analyzed: "+wfdomain.ParseTimestamp(timestamp).Display())
	}
	return Section{Title: "Career Analysis", Lines: lines}
}

func bullets(items []api.Text) []string {
	var lines []string
	for _, item := range items {
		if text := collapse(string(item)); text != "" {
			lines = append(lines, "• "+text)
		}
	}
	return lines
}

// CareerAgentPrompt is the question sent to the analysis agent about a
// profile.
func CareerAgentPrompt(p api.CareerProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I'm a %s %s professional in %s with %s/10 Python skills, %s/10 SQL skills, and %s/10 ML skills. ",
		p.ExperienceLevel, p.Industry, p.City,
		skill(p.PythonSkill), skill(p.SQLSkill), skill(p.MLSkill))
	b.WriteString("Based on my analysis, what specific Python projects should I build to advance my career?")
	return b.String()
}

func skill(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
