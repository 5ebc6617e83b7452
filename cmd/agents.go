package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/skillforge/internal/agents"
	"github.com/zjrosen/skillforge/internal/ui/styles"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the agent personas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		personas := agents.Personas()
		typeLen := 0
		for _, p := range personas {
			typeLen = max(typeLen, len(p.Type))
		}
		for _, p := range personas {
			fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", typeLen, p.Type, p.Name)
		}
		return nil
	},
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Talk to an agent persona",
}

var agentAskCmd = &cobra.Command{
	Use:     "ask <agent-type> <message>...",
	Short:   "Send one message to an agent and print the reply",
	Example: `  skillforge agent ask analysis_agent "Summarize last quarter's workflows"`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runAgentAsk,
}

func init() {
	agentCmd.AddCommand(agentAskCmd)
	rootCmd.AddCommand(agentsCmd, agentCmd)
}

func runAgentAsk(cmd *cobra.Command, args []string) error {
	persona, err := agents.Lookup(args[0])
	if err != nil {
		return err
	}

	session := agents.NewSession(persona, newClient())
	ctx, cancel := commandContext(cmd)
	defer cancel()

	reply, err := session.Send(ctx, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	if reply.Role == agents.RoleError {
		return errors.New(reply.Content)
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.Markdown(reply.Content, markdownWidth))
	return nil
}
