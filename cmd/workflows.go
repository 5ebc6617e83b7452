package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/zjrosen/skillforge/internal/api"
	"github.com/zjrosen/skillforge/internal/ui/styles"
	"github.com/zjrosen/skillforge/internal/workflows"
	wfapp "github.com/zjrosen/skillforge/internal/workflows/application"
	wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
)

const markdownWidth = 80

var workflowsCmd = &cobra.Command{
	Use:     "workflows",
	Aliases: []string{"wf"},
	Short:   "List and manage workflows",
	Long:    `List the workflows on the server, newest first. Subcommands show, create and delete single workflows.`,
	Args:    cobra.NoArgs,
	RunE:    runWorkflowsList,
}

var workflowsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workflows, newest first",
	Args:  cobra.NoArgs,
	RunE:  runWorkflowsList,
}

var workflowsShowCmd = &cobra.Command{
	Use:   "show <workflow-id>",
	Short: "Show one workflow with its AI output",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkflowsShow,
}

var (
	createName         string
	createDescription  string
	createPriority     string
	createRequirements []string
)

var workflowsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a workflow",
	Example: `  skillforge workflows create --name "Q3 plan" --description "Draft the Q3 roadmap" --priority high`,
	Args: cobra.NoArgs,
	RunE: runWorkflowsCreate,
}

var deleteYes bool

var workflowsDeleteCmd = &cobra.Command{
	Use:   "delete <workflow-id>",
	Short: "Delete a workflow after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkflowsDelete,
}

// confirmer is swapped in tests.
var confirmer wfapp.Confirmer = wfapp.ConfirmFunc(surveyConfirm)

func init() {
	workflowsCreateCmd.Flags().StringVarP(&createName, "name", "n", "", "workflow name (required)")
	workflowsCreateCmd.Flags().StringVarP(&createDescription, "description", "m", "", "what the workflow should do (required)")
	workflowsCreateCmd.Flags().StringVarP(&createPriority, "priority", "p", string(wfdomain.PriorityMedium), "low, medium or high")
	workflowsCreateCmd.Flags().StringSliceVarP(&createRequirements, "requirement", "r", nil, "requirement (repeatable)")

	workflowsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	workflowsCmd.AddCommand(workflowsListCmd, workflowsShowCmd, workflowsCreateCmd, workflowsDeleteCmd)
	rootCmd.AddCommand(workflowsCmd)
}

func surveyConfirm(prompt string) (bool, error) {
	ok := false
	if err := survey.AskOne(&survey.Confirm{Message: prompt, Default: false}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// userError keeps the server's explanation and drops the wrapping chain.
func userError(err error, fallback string) error {
	return errors.New(api.UserMessage(err, fallback))
}

func runWorkflowsList(cmd *cobra.Command, _ []string) error {
	store := newStore(newClient())
	defer store.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	if err := store.Refresh(ctx); err != nil {
		return userError(err, "Failed to load workflows")
	}

	printWorkflowList(cmd.OutOrStdout(), store.View())
	return nil
}

func printWorkflowList(w io.Writer, view workflows.ListView) {
	if view.Empty {
		fmt.Fprintln(w, view.Placeholder)
		return
	}

	idLen, nameLen := 0, 0
	for _, wf := range view.Workflows {
		idLen = max(idLen, len(wf.ID))
		nameLen = max(nameLen, len(wf.DisplayName()))
	}
	for _, wf := range view.Workflows {
		fmt.Fprintf(w, "%-*s  %-*s  %-6s  %-9s  %s\n",
			idLen, wf.ID,
			nameLen, wf.DisplayName(),
			wf.Priority.Label(),
			wf.Status.Label(),
			wf.CreatedAt.Display(),
		)
	}
}

func runWorkflowsShow(cmd *cobra.Command, args []string) error {
	store := newStore(newClient())
	defer store.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	wf, err := store.Detail(ctx, args[0])
	if err != nil {
		var notFound *wfdomain.NotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("workflow %s not found", args[0])
		}
		return userError(err, "Failed to load workflow details")
	}

	printWorkflow(cmd.OutOrStdout(), wf)
	return nil
}

func printWorkflow(w io.Writer, wf wfdomain.Workflow) {
	fmt.Fprintf(w, "%s\n\n", wf.DisplayName())
	fmt.Fprintf(w, "ID:        %s\n", wf.ID)
	fmt.Fprintf(w, "Priority:  %s\n", wf.Priority.Label())
	fmt.Fprintf(w, "Status:    %s\n", wf.Status.Label())
	fmt.Fprintf(w, "Created:   %s\n", wf.CreatedAt.Display())
	if wf.Deadline != "" {
		fmt.Fprintf(w, "Deadline:  %s\n", wf.Deadline)
	}
	if len(wf.Stakeholders) > 0 {
		fmt.Fprintf(w, "Stakeholders: %s\n", strings.Join(wf.Stakeholders, ", "))
	}
	if integrations := wf.Integrations(); len(integrations) > 0 {
		fmt.Fprintf(w, "Integrations: %s\n", strings.Join(integrations, ", "))
	}
	fmt.Fprintf(w, "Tokens Used: %s\n", wf.TokensUsed())
	fmt.Fprintf(w, "\n%s\n", wf.DisplayDescription())
	if wf.Result != nil {
		fmt.Fprintf(w, "\nAI Output:\n%s\n", styles.Markdown(wf.Output(), markdownWidth))
	}
}

func runWorkflowsCreate(cmd *cobra.Command, _ []string) error {
	req := wfdomain.CreateRequest{
		Name:         createName,
		Description:  createDescription,
		Priority:     wfdomain.Priority(strings.ToLower(createPriority)),
		Requirements: createRequirements,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	// Close waits for the analytics write before the process exits.
	store := newStore(newClient())
	defer store.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	result, err := store.Create(ctx, req)
	if err != nil {
		return userError(err, "Failed to create workflow")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Workflow Created Successfully (ID: %s)\n", result.WorkflowID)
	fmt.Fprintf(out, "Status: %s\n", result.Status.Normalize().Label())
	if result.Result != nil && result.Result.Output != "" {
		fmt.Fprintf(out, "\n%s\n", styles.Markdown(result.Result.Output, markdownWidth))
	}
	return nil
}

func runWorkflowsDelete(cmd *cobra.Command, args []string) error {
	confirm := confirmer
	if deleteYes {
		confirm = wfapp.AlwaysConfirm
	}

	store := newStore(newClient())
	defer store.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	err := store.Remove(ctx, args[0], confirm)
	switch {
	case errors.Is(err, workflows.ErrRemoveCancelled):
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	case err != nil:
		return userError(err, "Failed to delete workflow")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Workflow deleted successfully (ID: %s)\n", args[0])
	return nil
}
