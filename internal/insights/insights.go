// Package insights gathers the read-only auxiliary dashboards: crew status,
// performance KPIs, the ML insights, the server-rendered analytics dashboard
// and the career intelligence health check.
//
// Every source is fetched independently. A failing source produces an error
// line in its own section and never hides the others.
package insights

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/zjrosen/skillforge/internal/agents"
	"github.com/zjrosen/skillforge/internal/api"
	"github.com/zjrosen/skillforge/internal/log"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// NotAvailable stands in for any missing number.
const NotAvailable = "N/A"

// Source is the part of the API insights reads from. api.Client implements it.
type Source interface {
	CrewStatus(ctx context.Context) (api.CrewStatus, error)
	PerformanceMetrics(ctx context.Context) (api.PerformanceReport, error)
	MLInsights(ctx context.Context) (api.MLInsights, error)
	AnalyticsDashboard(ctx context.Context) ([]byte, error)
	CareerHealth(ctx context.Context) (api.CareerHealth, error)
}

// Section is one titled block of the insights panel.
type Section struct {
	Title string
	Lines []string
	// Err is set when the section's source failed; Lines then holds the message.
	Err error
}

// Report is the full insights panel.
type Report struct {
	Stats           Section
	Crew            Section
	Performance     Section
	Predictions     Section
	Clusters        Section
	Recommendations Section
	Dashboard       Section
	Career          Section
}

// Sections returns the report's sections in display order.
func (r Report) Sections() []Section {
	return []Section{
		r.Stats, r.Crew, r.Performance,
		r.Predictions, r.Clusters, r.Recommendations,
		r.Dashboard, r.Career,
	}
}

// Service loads insights reports.
type Service struct {
	src Source
}

// NewService creates a service reading from src.
func NewService(src Source) *Service {
	return &Service{src: src}
}

// Load fetches every source concurrently. totalWorkflows comes from the
// caller's current workflow view.
func (s *Service) Load(ctx context.Context, totalWorkflows int) Report {
	report := Report{Stats: CrewStats(totalWorkflows)}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		status, err := s.src.CrewStatus(ctx)
		report.Crew = crewSection(status, err)
	}()
	go func() {
		defer wg.Done()
		metrics, err := s.src.PerformanceMetrics(ctx)
		report.Performance = performanceSection(metrics, err)
	}()
	go func() {
		defer wg.Done()
		ml, err := s.src.MLInsights(ctx)
		report.Predictions, report.Clusters, report.Recommendations = mlSections(ml, err)
	}()
	go func() {
		defer wg.Done()
		html, err := s.src.AnalyticsDashboard(ctx)
		report.Dashboard = dashboardSection(html, err)
	}()
	go func() {
		defer wg.Done()
		health, err := s.src.CareerHealth(ctx)
		report.Career = careerSection(health, err)
	}()
	wg.Wait()

	return report
}

// CrewStats summarizes the local view.
func CrewStats(totalWorkflows int) Section {
	return Section{
		Title: "Crew Stats",
		Lines: []string{
			fmt.Sprintf("Active Agents: %d", len(agents.Personas())),
			fmt.Sprintf("Total Workflows: %d", totalWorkflows),
		},
	}
}

func failed(title, what string, err error) Section {
	log.ErrorErr(log.CatInsights, "Insights source failed", err, "section", title)
	return Section{
		Title: title,
		Lines: []string{fmt.Sprintf("Error loading %s: %s", what, api.UserMessage(err, err.Error()))},
		Err:   err,
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

func enabled(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

func crewSection(status api.CrewStatus, err error) Section {
	const title = "Workflow Crew Status"
	if err != nil {
		return failed(title, "crew status", err)
	}

	var crew api.CrewInfo
	if len(status.Crews) > 0 {
		crew = status.Crews[0]
	}
	agentList := "No agents found"
	if len(crew.Agents) > 0 {
		agentList = strings.Join(crew.Agents, ", ")
	}

	return Section{
		Title: title,
		Lines: []string{
			"🚀 Crew Type: " + orUnknown(crew.CrewType),
			"🤖 Agents: " + agentList,
			"⚙️ Process: " + orUnknown(crew.ProcessType),
			"🧠 Memory: " + enabled(crew.MemoryEnabled),
			"💾 Cache: " + enabled(crew.CacheEnabled),
			"📊 Status: " + orUnknown(crew.Status),
			"⏰ Last Updated: " + wfdomain.ParseTimestamp(status.Timestamp).Display(),
		},
	}
}

// FormatDecimal renders d with the given number of decimal places, or N/A
// when the server did not send it.
func FormatDecimal(d decimal.NullDecimal, places int32) string {
	if !d.Valid {
		return NotAvailable
	}
	return d.Decimal.StringFixed(places)
}

func withUnit(s, unit string) string {
	if s == NotAvailable {
		return s
	}
	return s + unit
}

func performanceSection(report api.PerformanceReport, err error) Section {
	const title = "Performance Metrics"
	if err != nil {
		return failed(title, "performance metrics", err)
	}
	if report.Error != "" {
		return Section{Title: title, Lines: []string{report.Error}}
	}

	m := report.Metrics
	lines := []string{
		"Total Workflows: " + FormatDecimal(m.WorkflowVolume.Total, 0),
		"Daily Average: " + FormatDecimal(m.WorkflowVolume.DailyAverage, 1),
		"Success Rate: " + withUnit(FormatDecimal(m.SuccessMetrics.SuccessRate, 1), "%"),
		"Completion Rate: " + withUnit(FormatDecimal(m.SuccessMetrics.CompletionRate, 1), "%"),
		"Avg Execution Time: " + withUnit(FormatDecimal(m.EfficiencyMetrics.AvgExecutionTime, 2), "s"),
		"Avg Tokens Used: " + FormatDecimal(m.EfficiencyMetrics.AvgTokensUsed, 0),
		"Cost per Workflow: " + withUnit(FormatDecimal(m.EfficiencyMetrics.CostPerWorkflow, 4), " USD"),
	}
	if report.DataPeriod != "" {
		lines = append(lines, "Period: "+report.DataPeriod)
	}
	return Section{Title: title, Lines: lines}
}

// topFeatures is how many feature importances the predictions section lists.
const topFeatures = 3

// Percent renders a 0-1 ratio as a percentage with one decimal place.
func Percent(d decimal.NullDecimal) string {
	if !d.Valid {
		return NotAvailable
	}
	return d.Decimal.Shift(2).StringFixed(1) + "%"
}

func mlSections(ml api.MLInsights, err error) (predictions, clusters, recommendations Section) {
	const (
		predTitle    = "ML Predictions"
		clusterTitle = "Workflow Clusters"
		recTitle     = "ML Recommendations"
	)
	if err != nil {
		return failed(predTitle, "ML insights", err),
			failed(clusterTitle, "ML insights", err),
			failed(recTitle, "ML insights", err)
	}
	return predictionSection(predTitle, ml.Predictions),
		clusterSection(clusterTitle, ml.Clustering),
		recommendationSection(recTitle, ml.Recommendations)
}

func predictionSection(title string, p api.MLPredictions) Section {
	if p.Error != "" {
		return Section{Title: title, Lines: []string{p.Error}, Err: errors.New(p.Error)}
	}

	samples := "0"
	if p.TrainingSamples.Valid {
		samples = p.TrainingSamples.Decimal.StringFixed(0)
	}
	lines := []string{
		"Model Accuracy: " + Percent(p.Accuracy),
		"Model Type: " + orNA(string(p.ModelType)),
		"Training Samples: " + samples,
	}

	type feature struct {
		name       string
		importance decimal.Decimal
	}
	var features []feature
	for name, imp := range p.FeatureImportance {
		if imp.Valid {
			features = append(features, feature{name, imp.Decimal})
		}
	}
	sort.Slice(features, func(i, j int) bool {
		if c := features[i].importance.Cmp(features[j].importance); c != 0 {
			return c > 0
		}
		return features[i].name < features[j].name
	})
	if len(features) > topFeatures {
		features = features[:topFeatures]
	}
	if len(features) > 0 {
		lines = append(lines, "Top Features:")
		for _, f := range features {
			lines = append(lines, "• "+f.name+": "+f.importance.Shift(2).StringFixed(1)+"%")
		}
	}
	return Section{Title: title, Lines: lines}
}

func clusterSection(title string, c api.MLClustering) Section {
	if c.Error != "" {
		return Section{Title: title, Lines: []string{c.Error}, Err: errors.New(c.Error)}
	}

	count := "0"
	if c.NClusters.Valid {
		count = c.NClusters.Decimal.StringFixed(0)
	}
	lines := []string{"Number of Clusters: " + count}

	names := make([]string, 0, len(c.ClusterAnalysis))
	for name := range c.ClusterAnalysis {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		lines = append(lines, "Cluster Summary:")
	}
	for _, name := range names {
		info := c.ClusterAnalysis[name]
		lines = append(lines, fmt.Sprintf("• %s: %s workflows (%s avg success)",
			name, FormatDecimal(info.Size, 0), withUnit(FormatDecimal(info.AvgSuccessScore, 1), "%")))
	}
	return Section{Title: title, Lines: lines}
}

func recommendationSection(title string, recs []api.Text) Section {
	lines := bullets(recs)
	if len(lines) == 0 {
		lines = []string{"No recommendations available yet. Create more workflows to get AI insights!"}
	}
	return Section{Title: title, Lines: lines}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// DashboardLines extracts readable lines from the analytics dashboard HTML:
// the headline, then one "title: value" line per summary card. Pages without
// cards (the server's "no data" and error pages) yield their headings and
// paragraphs instead.
func DashboardLines(html []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var lines []string
	if h1 := collapse(doc.Find("h1").First().Text()); h1 != "" {
		lines = append(lines, h1)
	}

	cards := doc.Find(".summary-card, .stat-card")
	if cards.Length() > 0 {
		cards.Each(func(_ int, s *goquery.Selection) {
			label := collapse(s.Find("h3, h4").First().Text())
			value := collapse(s.Find(".metric, p").First().Text())
			if label != "" {
				lines = append(lines, label+": "+value)
			}
		})
		return lines, nil
	}

	doc.Find("body h2, body h3, body p").Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return lines, nil
}

// collapse trims text and folds internal whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func dashboardSection(html []byte, err error) Section {
	const title = "Analytics Dashboard"
	if err != nil {
		return failed(title, "analytics", err)
	}
	lines, err := DashboardLines(html)
	if err != nil {
		return failed(title, "analytics", err)
	}
	if len(lines) == 0 {
		lines = []string{"No analytics data available"}
	}
	return Section{Title: title, Lines: lines}
}

func careerSection(health api.CareerHealth, err error) Section {
	const title = "Career Intelligence"
	if err != nil {
		log.ErrorErr(log.CatInsights, "Career health check failed", err)
		return Section{Title: title, Lines: []string{"❌ Connection Failed"}, Err: err}
	}
	if health.Status != "healthy" {
		return Section{Title: title, Lines: []string{"❌ System Error"}}
	}

	lines := []string{fmt.Sprintf("✅ %s - Models Trained: %t", health.Status, health.EngineTrained)}
	if health.Version != "" {
		lines = append(lines, "Version: "+health.Version)
	}
	for _, f := range health.Features {
		lines = append(lines, "• "+f)
	}
	return Section{Title: title, Lines: lines}
}
