package api

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// CareerProfile is the input of a career analysis. Skills are rated 0-10.
type CareerProfile struct {
	City               string  `json:"city"`
	Industry           string  `json:"industry"`
	ExperienceLevel    string  `json:"experience_level"`
	Education          string  `json:"education"`
	PythonSkill        float64 `json:"python_skill"`
	SQLSkill           float64 `json:"sql_skill"`
	MLSkill            float64 `json:"ml_skill"`
	CommunicationSkill float64 `json:"communication_skill"`
	PortfolioProjects  int     `json:"portfolio_projects"`
	GithubCommits      int     `json:"github_commits"`
	YearsExperience    float64 `json:"years_experience"`
}

// CareerPredictions are the model outputs of a career analysis.
type CareerPredictions struct {
	SalaryCAD           decimal.NullDecimal `json:"salary_cad"`
	SalaryPercentile    decimal.NullDecimal `json:"salary_percentile"`
	JobMatchProbability decimal.NullDecimal `json:"job_match_probability"`
	CareerGrowthIndex   decimal.NullDecimal `json:"career_growth_index"`
}

// CareerScores are the derived scores of a career analysis.
type CareerScores struct {
	SkillGapScore decimal.NullDecimal `json:"skill_gap_score"`
}

// CareerPathway is the suggested next step.
type CareerPathway struct {
	NextLevel      Text                `json:"next_level"`
	TimelineMonths decimal.NullDecimal `json:"timeline_months"`
	Requirements   []Text              `json:"requirements"`
}

// CityAnalysis is the job market of the profile's city.
type CityAnalysis struct {
	AvgSalary        decimal.NullDecimal `json:"avg_salary"`
	JobOpportunities Text                `json:"job_opportunities"`
	RemoteWorkRate   decimal.NullDecimal `json:"remote_work_rate"`
	CompetitionLevel Text                `json:"competition_level"`
}

// IndustryAnalysis is the job market of the profile's industry.
type IndustryAnalysis struct {
	AvgSalary   decimal.NullDecimal `json:"avg_salary"`
	GrowthTrend Text                `json:"growth_trend"`
	HiringRate  decimal.NullDecimal `json:"hiring_rate"`
}

// MarketAnalysis groups the market views of a career analysis.
type MarketAnalysis struct {
	CityAnalysis     CityAnalysis     `json:"city_analysis"`
	IndustryAnalysis IndustryAnalysis `json:"industry_analysis"`
	Recommendations  []Text           `json:"recommendations"`
}

// JobMatch is one matched role of the condensed analysis.
type JobMatch struct {
	Title      Text                `json:"title"`
	MatchScore decimal.NullDecimal `json:"match_score"`
}

// CareerSummary is the condensed analysis some server versions return
// under data.analysis instead of the full report.
type CareerSummary struct {
	SalaryPrediction     Text       `json:"salary_prediction"`
	JobMatches           []JobMatch `json:"job_matches"`
	SkillRecommendations []Text     `json:"skill_recommendations"`
	CareerPath           Text       `json:"career_path"`
}

// CareerAnalysis is the answer of the career analysis endpoint.
type CareerAnalysis struct {
	Predictions    *CareerPredictions `json:"predictions"`
	Scores         CareerScores       `json:"scores"`
	CareerPathway  CareerPathway      `json:"career_pathway"`
	MarketAnalysis MarketAnalysis     `json:"market_analysis"`
	Timestamp      string             `json:"timestamp"`
	Data           *struct {
		Analysis  CareerSummary `json:"analysis"`
		Timestamp string        `json:"timestamp"`
	} `json:"data"`
}

// AnalyzeCareer runs the career models against profile.
func (c *Client) AnalyzeCareer(ctx context.Context, profile CareerProfile) (CareerAnalysis, error) {
	var resp CareerAnalysis
	err := c.doJSON(ctx, call{
		op:     "career_analyze",
		method: http.MethodPost,
		route:  "/api/career-intelligence/analyze",
		body:   profile,
	}, &resp)
	return resp, err
}
