package agents

import (
	"fmt"
	"strings"
)

// Persona is one of the server's agent roles as presented to the user.
type Persona struct {
	Type         string
	Name         string
	Intro        string
	Capabilities string // markdown
}

var personas = []Persona{
	{
		Type:  "analysis_agent",
		Name:  "🎯 Analysis Agent",
		Intro: "👋 Hello! I'm your **🎯 Strategic Analysis Agent**",
		Capabilities: `🧠 **What I'm Great At:**
• 📊 **Data Analysis & Pattern Recognition** - I can analyze complex business data and identify hidden trends
• 📈 **Market Research & Insights** - I provide data-driven insights about your industry and competitors
• 🎯 **Strategic Planning** - I help you make informed decisions based on thorough analysis
• 📋 **Report Generation** - I create comprehensive analytical reports with actionable recommendations

**💡 Ask me when you need:**
• Market analysis or competitive research
• Data interpretation and trend analysis
• Strategic recommendations based on data
• Business intelligence insights
• Performance metric analysis`,
	},
	{
		Type:  "workflow_agent",
		Name:  "⚙️ Workflow Agent",
		Intro: "👋 Hello! I'm your **⚙️ Workflow Orchestration Agent**",
		Capabilities: `🔧 **What I'm Great At:**
• 📋 **Process Design & Optimization** - I create efficient step-by-step workflows for any business process
• 🎼 **Multi-Agent Coordination** - I can coordinate multiple agents and teams to work together seamlessly
• ⚙️ **Workflow Automation** - I design automated processes to save time and reduce errors
• 📊 **Progress Monitoring** - I track workflow execution and identify bottlenecks

**💡 Ask me when you need:**
• To design new business processes
• To optimize existing workflows
• To coordinate complex multi-step projects
• To automate repetitive tasks
• To improve team collaboration and efficiency`,
	},
	{
		Type:  "execution_agent",
		Name:  "🛠️ Execution Agent",
		Intro: "👋 Hello! I'm your **🛠️ Execution & Implementation Agent**",
		Capabilities: `⚡ **What I'm Great At:**
• 🚀 **Task Implementation** - I turn plans into concrete, actionable steps
• 🔧 **Process Automation** - I implement automated solutions and tools
• ⚠️ **Error Handling & Troubleshooting** - I identify and resolve implementation issues
• ✅ **Quality Validation** - I ensure results meet requirements and standards

**💡 Ask me when you need:**
• Specific implementation steps for your plans
• Tool recommendations and setup guidance
• Troubleshooting execution problems
• Quality control and result validation
• Hands-on technical assistance`,
	},
}

// Personas returns the known personas in display order.
func Personas() []Persona {
	out := make([]Persona, len(personas))
	copy(out, personas)
	return out
}

// Lookup returns the persona with the given agent type.
func Lookup(agentType string) (Persona, error) {
	for _, p := range personas {
		if p.Type == agentType {
			return p, nil
		}
	}
	return Persona{}, &UnknownPersonaError{Type: agentType}
}

// UnknownPersonaError indicates an agent type the client does not know.
type UnknownPersonaError struct {
	Type string
}

// Error implements the error interface.
func (e *UnknownPersonaError) Error() string {
	known := make([]string, len(personas))
	for i, p := range personas {
		known[i] = p.Type
	}
	return fmt.Sprintf("unknown agent type %q (known: %s)", e.Type, strings.Join(known, ", "))
}
