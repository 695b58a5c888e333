package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/reqmanhq/reqman/internal/app"
	"github.com/reqmanhq/reqman/internal/config"
	"github.com/reqmanhq/reqman/internal/executor"
	"github.com/reqmanhq/reqman/internal/filter"
	"github.com/reqmanhq/reqman/internal/history"
	"github.com/reqmanhq/reqman/internal/store"
	"github.com/reqmanhq/reqman/internal/views"
)

var version = "0.1.0"

var (
	application *app.App
	historyMgr  *history.Manager
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup wires config, logging, the store, the history log and the app
// session. It runs before every subcommand.
func setup() error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.LoadSettings(config.SettingsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	setupLogger(settings.LogLevel)

	if settings.TimeoutSeconds > 0 {
		executor.HTTPClient.Timeout = time.Duration(settings.TimeoutSeconds) * time.Second
	}

	if settings.HistoryEnabled == nil || *settings.HistoryEnabled {
		historyMgr, err = history.NewManager(config.DatabasePath)
		if err != nil {
			// History is an enhancement, never a blocker.
			fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
			historyMgr = nil
		}
	}

	application = app.New(store.New(config.RequestsFile), historyMgr, config.SessionFile)
	return nil
}

func teardown() {
	if historyMgr != nil {
		historyMgr.Close()
	}
}

// requestIndex converts a 1-based display position argument to a list index.
func requestIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid request number %q", arg)
	}
	if n < 1 || n > len(application.Requests()) {
		return 0, fmt.Errorf("no request at position %d", n)
	}
	return n - 1, nil
}

func printLines(lines []string) {
	for _, line := range lines {
		fmt.Println(line)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reqman",
	Short: "reqman - personal HTTP request manager",
	Long: `reqman stores named HTTP request definitions, executes them against
live servers and shows the raw response.

Requests live in ~/.reqman/requests.json and are numbered by display
position. Run without arguments to list them.

Examples:
  reqman                      # List stored requests
  reqman list --filter users  # Fuzzy-filter the list by name
  reqman show 2               # Show request 2
  reqman run 2                # Execute request 2
  reqman run 2 --query name   # Execute and apply a JMESPath query
  reqman new                  # Create a request and open it in $EDITOR
  reqman edit 2               # Edit request 2 in $EDITOR
  reqman delete 2             # Delete request 2
  reqman history              # Show recent executions`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		printLines(application.ListView())
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("filter")
		requests := views.FilterRequests(application.Requests(), query)
		printLines(views.RenderList(requests))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <number>",
	Short: "Show one request in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := requestIndex(args[0])
		if err != nil {
			return err
		}

		application.OnSelect(index)
		printLines(application.DetailView())

		if withResponse, _ := cmd.Flags().GetBool("response"); withResponse {
			fmt.Println()
			printLines(views.RenderResponse(application.Requests()[index].Response))
		}
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new request",
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := application.OnNew()
		if err != nil {
			return err
		}

		def := application.Requests()[index]
		fmt.Printf("Created %q at position %d\n", def.Name, index+1)

		if noEdit, _ := cmd.Flags().GetBool("no-edit"); noEdit {
			return nil
		}
		return editRequest(index)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Delete a request",
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := requestIndex(args[0])
		if err != nil {
			return err
		}

		name := application.Requests()[index].Name
		if err := application.OnDelete(index); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", name)
		return nil
	},
	Args: cobra.ExactArgs(1),
}

var runCmd = &cobra.Command{
	Use:   "run <number>",
	Short: "Execute a request and print the raw response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := requestIndex(args[0])
		if err != nil {
			return err
		}

		result, execErr := application.OnExecute(index)
		if execErr != nil {
			if result == nil {
				return execErr
			}
			fmt.Fprintf(os.Stderr, "warning: %v\n", execErr)
		}

		query, _ := cmd.Flags().GetString("query")
		if query != "" && result != nil && result.Error == "" {
			out, err := filter.Apply(result.Body, query)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		printLines(views.RenderResponse(result))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent executions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyMgr == nil {
			return fmt.Errorf("history is disabled")
		}

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := historyMgr.Recent(limit)
		if err != nil {
			return err
		}
		printLines(views.RenderHistory(entries))
		return nil
	},
}

func init() {
	listCmd.Flags().String("filter", "", "fuzzy-filter requests by name")
	showCmd.Flags().Bool("response", false, "also print the last response")
	newCmd.Flags().Bool("no-edit", false, "create without opening the editor")
	editCmd.Flags().String("file", "", "read the edited text from a file instead of $EDITOR")
	runCmd.Flags().String("query", "", "JMESPath query applied to a JSON response body")
	historyCmd.Flags().Int("limit", 20, "maximum entries to show")

	rootCmd.AddCommand(listCmd, showCmd, newCmd, deleteCmd, editCmd, runCmd, historyCmd)
}
