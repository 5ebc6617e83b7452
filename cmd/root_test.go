package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfapp "github.com/zjrosen/skillforge/internal/workflows/application"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

// execute runs the root command with args and returns everything it printed.
// Flag variables are package state, so they are reset first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfgFile, apiURL, debug = "", "", false
	createName, createDescription, createPriority, createRequirements = "", "", string(wfdomain.PriorityMedium), nil
	deleteYes, initForce = false, false
	careerProfile = defaultCareerProfile()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func newServer(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv.URL
}

func withConfirmer(t *testing.T, c wfapp.Confirmer) {
	t.Helper()
	prev := confirmer
	confirmer = c
	t.Cleanup(func() { confirmer = prev })
}

func TestWorkflowsList_DedupsAndSorts(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/workflows/list", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"workflows": []map[string]any{
				{"workflow_id": "a", "name": "Alpha", "created_at": "2024-01-01T00:00:00"},
				{"workflow_id": "a", "name": "Alpha again", "created_at": "2024-01-02T00:00:00"},
				{"workflow_id": "b", "name": "Beta", "created_at": "2024-01-03T00:00:00"},
			},
		})
	})

	out, err := execute(t, "workflows", "--api-url", url)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "b "), "newest first: %q", lines[0])
	require.Contains(t, lines[1], "Alpha")
	require.NotContains(t, out, "Alpha again")
}

func TestWorkflowsList_Empty(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"workflows": []any{}, "total": 0})
	})

	out, err := execute(t, "workflows", "list", "--api-url", url)
	require.NoError(t, err)
	require.Equal(t, wfdomain.EmptyPlaceholder+"\n", out)
}

func TestWorkflowsList_ServerError(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{"detail": "database unavailable"})
	})

	_, err := execute(t, "workflows", "--api-url", url)
	require.EqualError(t, err, "database unavailable")
}

func TestWorkflowsShow(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/workflows/detail/wf_1":
			writeJSON(t, w, http.StatusOK, map[string]any{"workflow": map[string]any{
				"workflow_id": "wf_1",
				"name":        "Launch plan",
				"description": "Plan the launch",
				"priority":    "high",
				"status":      "completed",
			}})
		case "/api/workflows/detail/wf_2":
			writeJSON(t, w, http.StatusOK, map[string]any{"workflow": map[string]any{
				"workflow_id": "wf_2",
				"name":        "Hiring plan",
				"result":      map[string]any{"output": "Hire two engineers"},
			}})
		default:
			writeJSON(t, w, http.StatusNotFound, map[string]any{"detail": "Workflow not found"})
		}
	})

	out, err := execute(t, "workflows", "show", "wf_1", "--api-url", url)
	require.NoError(t, err)
	require.Contains(t, out, "Launch plan")
	require.Contains(t, out, "HIGH")
	require.Contains(t, out, "Tokens Used: N/A")
	require.NotContains(t, out, "AI Output", "records without a result have no output block")

	out, err = execute(t, "workflows", "show", "wf_2", "--api-url", url)
	require.NoError(t, err)
	require.Contains(t, out, "AI Output")
	require.Contains(t, ansi.Strip(out), "Hire two engineers")

	_, err = execute(t, "workflows", "show", "wf_404", "--api-url", url)
	require.Error(t, err)
}

func TestWorkflowsCreate(t *testing.T) {
	var analytics atomic.Int32
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/workflows/create":
			var req wfdomain.CreateRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Launch", req.Name)
			assert.Equal(t, wfdomain.PriorityHigh, req.Priority)
			writeJSON(t, w, http.StatusOK, map[string]any{"workflow_id": "wf_9", "status": "completed"})
		case "/api/analytics/store-workflow-data":
			analytics.Add(1)
			writeJSON(t, w, http.StatusInternalServerError, map[string]any{"detail": "analytics down"})
		case "/api/workflows/list":
			writeJSON(t, w, http.StatusOK, map[string]any{"workflows": []any{}})
		}
	})

	out, err := execute(t, "workflows", "create", "--api-url", url,
		"--name", "Launch", "--description", "Plan the launch", "--priority", "HIGH")
	require.NoError(t, err, "an analytics failure never fails the create")
	require.Contains(t, out, "Workflow Created Successfully (ID: wf_9)")
	require.Equal(t, int32(1), analytics.Load())
}

func TestWorkflowsCreate_Invalid(t *testing.T) {
	var calls atomic.Int32
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := execute(t, "workflows", "create", "--api-url", url, "--description", "no name")
	require.Error(t, err)
	require.Zero(t, calls.Load())
}

func TestWorkflowsDelete(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		confirm     bool
		wantDeleted bool
		wantOut     string
	}{
		{name: "declined", confirm: false, wantOut: "Cancelled."},
		{name: "confirmed", confirm: true, wantDeleted: true, wantOut: "Workflow deleted successfully (ID: wf_1)"},
		{name: "yes flag", args: []string{"--yes"}, confirm: false, wantDeleted: true, wantOut: "Workflow deleted successfully"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var deletes atomic.Int32
			url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/api/workflows/delete/wf_1":
					deletes.Add(1)
					writeJSON(t, w, http.StatusOK, map[string]any{"workflow_id": "wf_1", "status": "deleted"})
				case "/api/workflows/list":
					writeJSON(t, w, http.StatusOK, map[string]any{"workflows": []any{}})
				}
			})
			withConfirmer(t, wfapp.ConfirmFunc(func(string) (bool, error) { return tt.confirm, nil }))

			args := append([]string{"workflows", "delete", "wf_1", "--api-url", url}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)
			require.Contains(t, out, tt.wantOut)
			if tt.wantDeleted {
				require.Equal(t, int32(1), deletes.Load())
			} else {
				require.Zero(t, deletes.Load())
			}
		})
	}
}

func TestAgents_ListsPersonas(t *testing.T) {
	out, err := execute(t, "agents")
	require.NoError(t, err)
	require.Contains(t, out, "analysis_agent")
	require.Contains(t, out, "workflow_agent")
	require.Contains(t, out, "execution_agent")
}

func TestAgentAsk(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/agents/interact", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "analysis_agent", body["agent_type"])
		assert.Equal(t, "how are sales", body["message"])
		writeJSON(t, w, http.StatusOK, map[string]any{"response": "Sales are up", "status": "success"})
	})

	out, err := execute(t, "agent", "ask", "analysis_agent", "how", "are", "sales", "--api-url", url)
	require.NoError(t, err)
	require.Contains(t, ansi.Strip(out), "Sales are up")
}

func TestAgentAsk_Errors(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusServiceUnavailable, map[string]any{"detail": "agent offline"})
	})

	_, err := execute(t, "agent", "ask", "nope_agent", "hi", "--api-url", url)
	require.ErrorContains(t, err, "unknown agent type")

	_, err = execute(t, "agent", "ask", "analysis_agent", "hi", "--api-url", url)
	require.EqualError(t, err, "agent offline")
}

func TestCareerAnalyze(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/career-intelligence/analyze", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Vancouver", body["city"])
		assert.Equal(t, "Technology", body["industry"])
		assert.EqualValues(t, 8, body["python_skill"])
		assert.EqualValues(t, 100, body["github_commits"])
		writeJSON(t, w, http.StatusOK, map[string]any{
			"predictions":    map[string]any{"salary_cad": 92000},
			"career_pathway": map[string]any{"next_level": "Senior Developer"},
		})
	})

	out, err := execute(t, "career", "analyze", "--city", "Vancouver", "--python", "8", "--api-url", url)
	require.NoError(t, err)
	require.Contains(t, out, "Career Predictions\n")
	require.Contains(t, out, "  Predicted Salary: $92,000 CAD\n")
	require.Contains(t, out, "  Next Level: Senior Developer\n")
}

func TestCareerAnalyze_Errors(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{"detail": "Career engine not trained"})
	})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "skill out of range", args: []string{"--sql", "11"}, want: "--sql must be between 0 and 10"},
		{name: "negative count", args: []string{"--projects", "-1"}, want: "cannot be negative"},
		{name: "blank city", args: []string{"--city", " "}, want: "--city and --industry are required"},
		{name: "server error", want: "Career engine not trained"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"career", "analyze", "--api-url", url}, tt.args...)
			_, err := execute(t, args...)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestCareerAsk(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/agents/interact", r.URL.Path)
		var body struct {
			AgentType string         `json:"agent_type"`
			Message   string         `json:"message"`
			Context   map[string]any `json:"context"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "analysis_agent", body.AgentType)
		assert.Contains(t, body.Message, "I'm a senior Technology professional in Toronto with 5/10 Python skills")
		profile, _ := body.Context["profile"].(map[string]any)
		assert.Equal(t, "senior", profile["experience_level"])
		writeJSON(t, w, http.StatusOK, map[string]any{"response": "Build a data pipeline", "status": "success"})
	})

	out, err := execute(t, "career", "ask", "--experience", "senior", "--api-url", url)
	require.NoError(t, err)
	require.Contains(t, ansi.Strip(out), "Build a data pipeline")
}

func TestCareerAsk_EmptyReply(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"response": "", "status": "success"})
	})

	_, err := execute(t, "career", "ask", "--api-url", url)
	require.EqualError(t, err, "the career agent returned an empty reply")
}

func TestInit_WritesConfigOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "base_url")

	_, err = execute(t, "init", "--config", path)
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestConfigShow_AppliesFlagOverride(t *testing.T) {
	out, err := execute(t, "config", "show", "--api-url", "http://api.example.com:9000/")
	require.NoError(t, err)
	require.Contains(t, out, "base_url: http://api.example.com:9000\n")
}

func TestConfigShow_RejectsInvalidURL(t *testing.T) {
	_, err := execute(t, "config", "show", "--api-url", "not-a-url")
	require.ErrorContains(t, err, "api.base_url")
}

func TestConfigPath_PrefersLocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfgFile = ""

	require.Empty(t, configPath())

	require.NoError(t, os.WriteFile(filepath.Join(dir, localConfigFile), []byte("api:\n  timeout: 5s\n"), 0600))
	require.Equal(t, localConfigFile, configPath())

	cfgFile = "/explicit.yaml"
	t.Cleanup(func() { cfgFile = "" })
	require.Equal(t, "/explicit.yaml", configPath())
}
