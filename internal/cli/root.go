// Package cli implements the planner command-line front end. It reads trips
// through the API, renders the month calendar in the terminal and reschedules
// activities through the same drag session the interactive calendar uses.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/globetrotter/planner/internal/client"
)

// ErrReported means the command already told the user what went wrong; the
// caller should exit non-zero without printing it again.
var ErrReported = errors.New("error already reported")

// App holds the persistent flags shared by every command.
type App struct {
	APIURL  string
	Token   string
	Verbose bool
}

// NewRootCmd builds the planner command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "planner",
		Short:         "Trip planner calendar on the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Show the month a trip starts in
  planner calendar show --trip 5b1c...

  # Move an activity to another day
  planner calendar move --trip 5b1c... --activity 9f2e... --to 2024-06-05

  # Budget summary
  planner budget --trip 5b1c...
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", envOr("PLANNER_API_URL", "http://localhost:8080"), "Planner API base URL")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("PLANNER_TOKEN", ""), "Bearer token for the API")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log diagnostics to stderr")

	cmd.AddCommand(newCalendarCmd(app))
	cmd.AddCommand(newBudgetCmd(app))

	return cmd
}

func (app *App) client() (*client.Client, error) {
	var opts []client.Option
	if app.Token != "" {
		opts = append(opts, client.WithToken(app.Token))
	}
	return client.New(app.APIURL, opts...)
}

func (app *App) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if app.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func parseID(flag, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("--%s must be a UUID: %q", flag, raw)
	}
	return id, nil
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("error:"), client.Message(err))
	return ErrReported
}
