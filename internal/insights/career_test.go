package insights

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/skillforge/internal/api"
)

func careerAnalysis(t *testing.T, body string) api.CareerAnalysis {
	t.Helper()
	var a api.CareerAnalysis
	require.NoError(t, json.Unmarshal([]byte(body), &a))
	return a
}

func TestCareerAnalysisSections_FullReport(t *testing.T) {
	a := careerAnalysis(t, `{
		"predictions": {"salary_cad": 85250.6, "salary_percentile": 62, "job_match_probability": 72.5, "career_growth_index": 7.25},
		"scores": {"skill_gap_score": 4},
		"career_pathway": {"next_level": "Senior Developer", "timeline_months": 18, "requirements": ["Lead a project", ""]},
		"market_analysis": {
			"city_analysis": {"avg_salary": 95000, "job_opportunities": 1200, "remote_work_rate": 35, "competition_level": "High"},
			"industry_analysis": {"avg_salary": 1250000, "growth_trend": "Growing"},
			"recommendations": ["Learn MLOps"]
		}
	}`)

	sections := CareerAnalysisSections(a)
	require.Len(t, sections, 4)

	require.Equal(t, "Career Predictions", sections[0].Title)
	require.Equal(t, []string{
		"Predicted Salary: $85,251 CAD",
		"Salary Percentile: 62",
		"Job Match Probability: 72.5%",
		"Career Growth Index: 7.3/10",
		"Skill Gap Score: 4.0/10",
	}, sections[0].Lines)

	require.Equal(t, []string{
		"Next Level: Senior Developer",
		"Timeline: 18 months",
		"• Lead a project",
	}, sections[1].Lines)

	require.Equal(t, []string{
		"City Avg Salary: $95,000",
		"Job Opportunities: 1200",
		"Remote Work Rate: 35%",
		"Competition: High",
		"Industry Avg Salary: $1,250,000",
		"Growth Trend: Growing",
		"Hiring Rate: N/A",
	}, sections[2].Lines)

	require.Equal(t, "Recommendations", sections[3].Title)
	require.Equal(t, []string{"• Learn MLOps"}, sections[3].Lines)
}

func TestCareerAnalysisSections_EmptyReport(t *testing.T) {
	sections := CareerAnalysisSections(api.CareerAnalysis{})

	require.Len(t, sections, 3)
	require.Contains(t, sections[0].Lines, "Predicted Salary: N/A")
	require.Contains(t, sections[1].Lines, "Next Level: N/A")
	require.Contains(t, sections[2].Lines, "Competition: N/A")
}

func TestCareerAnalysisSections_Summary(t *testing.T) {
	a := careerAnalysis(t, `{
		"status": "success",
		"data": {
			"analysis": {
				"salary_prediction": "$85,000 - $95,000",
				"job_matches": [{"title": "Data Analyst", "match_score": 0.85}, {"title": "ML Engineer"}],
				"skill_recommendations": ["Docker", "Kubernetes"],
				"career_path": "Senior Developer → Tech Lead"
			},
			"profile_summary": {}
		}
	}`)

	sections := CareerAnalysisSections(a)
	require.Len(t, sections, 1)
	require.Equal(t, "Career Analysis", sections[0].Title)
	require.Equal(t, []string{
		"Predicted Salary: $85,000 - $95,000",
		"Career Path: Senior Developer → Tech Lead",
		"Job Matches:",
		"• Data Analyst (85.0% match)",
		"• ML Engineer (N/A match)",
		"Skills to Build:",
		"• Docker",
		"• Kubernetes",
	}, sections[0].Lines)
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   decimal.NullDecimal
		want string
	}{
		{in: decimal.NullDecimal{}, want: "N/A"},
		{in: decimal.NewNullDecimal(decimal.RequireFromString("0")), want: "$0"},
		{in: decimal.NewNullDecimal(decimal.RequireFromString("999.4")), want: "$999"},
		{in: decimal.NewNullDecimal(decimal.RequireFromString("85000")), want: "$85,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, Money(tt.in))
		})
	}
}

func TestCareerAgentPrompt(t *testing.T) {
	prompt := CareerAgentPrompt(api.CareerProfile{
		City:            "Vancouver",
		Industry:        "Finance",
		ExperienceLevel: "senior",
		PythonSkill:     8,
		SQLSkill:        6.5,
		MLSkill:         4,
	})

	require.Equal(t, "I'm a senior Finance professional in Vancouver with 8/10 Python skills, "+
		"6.5/10 SQL skills, and 4/10 ML skills. Based on my analysis, what specific Python "+
		"projects should I build to advance my career?", prompt)
}
