package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

// CrewInfo describes one server-side agent crew.
type CrewInfo struct {
	CrewType      string   `json:"crew_type"`
	Agents        []string `json:"agents"`
	ProcessType   string   `json:"process_type"`
	MemoryEnabled bool     `json:"memory_enabled"`
	CacheEnabled  bool     `json:"cache_enabled"`
	Status        string   `json:"status"`
}

// CrewStatus is the answer of the crews status endpoint.
type CrewStatus struct {
	Crews     []CrewInfo `json:"crews"`
	Framework string     `json:"framework"`
	Timestamp string     `json:"timestamp"`
}

// PerformanceMetrics holds the KPI block of the analytics service. Missing
// numbers decode as invalid NullDecimals.
type PerformanceMetrics struct {
	WorkflowVolume struct {
		Total        decimal.NullDecimal `json:"total"`
		DailyAverage decimal.NullDecimal `json:"daily_average"`
		PeakDay      decimal.NullDecimal `json:"peak_day"`
	} `json:"workflow_volume"`
	SuccessMetrics struct {
		AverageScore   decimal.NullDecimal `json:"average_score"`
		SuccessRate    decimal.NullDecimal `json:"success_rate"`
		CompletionRate decimal.NullDecimal `json:"completion_rate"`
	} `json:"success_metrics"`
	EfficiencyMetrics struct {
		AvgExecutionTime decimal.NullDecimal `json:"avg_execution_time"`
		AvgTokensUsed    decimal.NullDecimal `json:"avg_tokens_used"`
		CostPerWorkflow  decimal.NullDecimal `json:"cost_per_workflow"`
	} `json:"efficiency_metrics"`
	PriorityAnalysis map[string]int `json:"priority_analysis"`
}

// PerformanceReport is the answer of the performance metrics endpoint. The
// server reports "no data" with a 200 and a non-empty Error.
type PerformanceReport struct {
	Metrics     PerformanceMetrics `json:"metrics"`
	Error       string             `json:"error"`
	GeneratedAt string             `json:"generated_at"`
	DataPeriod  string             `json:"data_period"`
}

// CareerHealth is the answer of the career intelligence health check.
type CareerHealth struct {
	Status        string   `json:"status"`
	EngineTrained bool     `json:"engine_trained"`
	Timestamp     string   `json:"timestamp"`
	Version       string   `json:"version"`
	Features      []string `json:"features"`
}

// Text is a JSON scalar read as display text. Numbers keep their literal
// form and anything that is not a scalar decodes to "".
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	*t = ""
	return nil
}

// MLPredictions is the success-prediction model summary. The server reports
// an untrained model through Error.
type MLPredictions struct {
	Error             string                         `json:"error"`
	Accuracy          decimal.NullDecimal            `json:"accuracy"`
	ModelType         Text                           `json:"model_type"`
	TrainingSamples   decimal.NullDecimal            `json:"training_samples"`
	FeatureImportance map[string]decimal.NullDecimal `json:"feature_importance"`
}

// ClusterInfo is one workflow cluster.
type ClusterInfo struct {
	Size            decimal.NullDecimal `json:"size"`
	AvgSuccessScore decimal.NullDecimal `json:"avg_success_score"`
}

// MLClustering is the workflow clustering summary.
type MLClustering struct {
	Error           string                 `json:"error"`
	NClusters       decimal.NullDecimal    `json:"n_clusters"`
	ClusterAnalysis map[string]ClusterInfo `json:"cluster_analysis"`
}

// MLInsights is the answer of the ML insights endpoint.
type MLInsights struct {
	Predictions     MLPredictions `json:"predictions"`
	Clustering      MLClustering  `json:"clustering"`
	Recommendations []Text        `json:"recommendations"`
}

// CrewStatus fetches the state of the server's agent crews.
func (c *Client) CrewStatus(ctx context.Context) (CrewStatus, error) {
	var resp CrewStatus
	err := c.doJSON(ctx, call{op: "crew_status", method: http.MethodGet, route: "/api/workflows/crews/status"}, &resp)
	return resp, err
}

// PerformanceMetrics fetches the analytics KPIs.
func (c *Client) PerformanceMetrics(ctx context.Context) (PerformanceReport, error) {
	var resp PerformanceReport
	err := c.doJSON(ctx, call{op: "performance_metrics", method: http.MethodGet, route: "/api/analytics/performance-metrics"}, &resp)
	return resp, err
}

// AnalyticsDashboard fetches the server-rendered analytics dashboard HTML.
func (c *Client) AnalyticsDashboard(ctx context.Context) ([]byte, error) {
	return c.do(ctx, call{op: "analytics_dashboard", method: http.MethodGet, route: "/api/analytics/dashboard"})
}

// CareerHealth fetches the career intelligence health check.
func (c *Client) CareerHealth(ctx context.Context) (CareerHealth, error) {
	var resp CareerHealth
	err := c.doJSON(ctx, call{op: "career_health", method: http.MethodGet, route: "/api/career-intelligence/health"}, &resp)
	return resp, err
}

// MLInsights fetches the ML predictions, clustering and recommendations.
func (c *Client) MLInsights(ctx context.Context) (MLInsights, error) {
	var resp MLInsights
	err := c.doJSON(ctx, call{op: "ml_insights", method: http.MethodGet, route: "/api/analytics/ml-insights"}, &resp)
	return resp, err
}
