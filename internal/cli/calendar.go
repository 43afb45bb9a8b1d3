package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/client"
	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/reschedule"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show and rearrange a trip's month calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newCalendarShowCmd(app))
	cmd.AddCommand(newCalendarMoveCmd(app))
	return cmd
}

func newCalendarShowCmd(app *App) *cobra.Command {
	var tripFlag, monthFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render one month of a trip",
		Long: "Render one month of a trip. Trip days are highlighted, days with\n" +
			"activities carry " + markActivity + " and days with overlapping activities carry " + markConflict + ".",
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := parseID("trip", tripFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			trip, err := c.GetTrip(cmd.Context(), tripID)
			if err != nil {
				return writeErr(cmd, err)
			}

			month := calendar.MonthOf(trip.StartDate)
			if monthFlag != "" {
				if month, err = calendar.ParseMonth(monthFlag); err != nil {
					return writeErr(cmd, fmt.Errorf("--month must be YYYY-MM: %q", monthFlag))
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderMonth(trip, month, calendar.Layout(month, trip)))
			return nil
		},
	}
	cmd.Flags().StringVar(&tripFlag, "trip", "", "Trip ID")
	cmd.Flags().StringVar(&monthFlag, "month", "", "Month to show as YYYY-MM (default: the trip's first month)")
	_ = cmd.MarkFlagRequired("trip")
	return cmd
}

func newCalendarMoveCmd(app *App) *cobra.Command {
	var tripFlag, activityFlag, toFlag string
	var outside bool

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move an activity to another day",
		Long: "Move an activity to another day of the trip. The activity stays\n" +
			"with its stop unless the new day is before that stop's arrival; it\n" +
			"then moves to the latest stop that has arrived by that day.\n" +
			"--outside simulates dropping it outside the calendar.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := parseID("trip", tripFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			activityID, err := parseID("activity", activityFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			var target *time.Time
			if !outside {
				if toFlag == "" {
					return writeErr(cmd, fmt.Errorf("either --to or --outside is required"))
				}
				d, err := calendar.ParseISO(toFlag)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("--to must be YYYY-MM-DD: %q", toFlag))
				}
				target = &d
			}

			c, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			log := app.logger(cmd.ErrOrStderr())
			store, err := client.NewTripStore(cmd.Context(), c, tripID, log)
			if err != nil {
				return writeErr(cmd, err)
			}

			var rec reschedule.Recorder
			sess := reschedule.NewSession(store,
				reschedule.Multi(newTermNotifier(cmd.OutOrStdout()), &rec),
				reschedule.WithLogger(log))
			defer sess.Close()

			if err := sess.Begin(activityID); err != nil {
				return writeErr(cmd, fmt.Errorf("activity %s is not on this trip", activityID))
			}
			dec, err := sess.Drop(cmd.Context(), target)
			if err != nil {
				return ErrReported
			}
			sess.Wait()

			switch dec.Outcome {
			case domain.MoveRejected:
				return ErrReported
			case domain.MoveUnchanged:
				fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("· already scheduled on "+calendar.FormatISO(dec.Move.Target)))
			case domain.MovePending:
				if last, ok := rec.Last(); ok && last.Level == domain.LevelError {
					return ErrReported
				}
				_, moved, _ := store.Current().FindActivity(activityID)
				log.Debug("move settled", "activity_id", activityID, "day_offset", moved.DayOffset)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tripFlag, "trip", "", "Trip ID")
	cmd.Flags().StringVar(&activityFlag, "activity", "", "Activity ID")
	cmd.Flags().StringVar(&toFlag, "to", "", "Target date as YYYY-MM-DD")
	cmd.Flags().BoolVar(&outside, "outside", false, "Drop outside every day (the activity stays put)")
	_ = cmd.MarkFlagRequired("trip")
	_ = cmd.MarkFlagRequired("activity")
	cmd.MarkFlagsMutuallyExclusive("to", "outside")
	return cmd
}
