package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kqtrainer/internal/bootstrap"
	plandto "kqtrainer/internal/modules/plan/dto"
	"kqtrainer/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "kqtrainer",
		Short:         "KarmaQuest trainer console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "config file path")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "log debug output")

	root.AddCommand(newTUICmd(&cfgPath, &verbose))
	root.AddCommand(newLoginCmd(&cfgPath, &verbose))
	root.AddCommand(newLogoutCmd(&cfgPath, &verbose))
	root.AddCommand(newStatusCmd(&cfgPath, &verbose))
	root.AddCommand(newClientsCmd(&cfgPath, &verbose))
	root.AddCommand(newPlanCmd(&cfgPath, &verbose))
	root.AddCommand(newFeedbackCmd(&cfgPath, &verbose))
	root.AddCommand(newUserCmd(&cfgPath, &verbose))
	return root
}

func loadApp(cfgPath string, verbose bool) (*bootstrap.App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, verbose)
}

func newTUICmd(cfgPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the kqtrainer terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newLoginCmd(cfgPath *string, verbose *bool) *cobra.Command {
	var email, password string
	login := &cobra.Command{
		Use:   "login --email <email>",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(email) == "" {
				return fmt.Errorf("--email is required")
			}
			if password == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return fmt.Errorf("password is required")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			out, err := app.AuthCLI.Login(context.Background(), email, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s %s (%s) role=%s expires=%s\n",
				out.FirstName, out.LastName, out.Email, out.Role, out.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}
	login.Flags().StringVar(&email, "email", "", "account email")
	login.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return login
}

func newLogoutCmd(cfgPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			if err := app.AuthCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newStatusCmd(cfgPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			out, err := app.AuthCLI.Status(context.Background())
			if err != nil {
				return err
			}
			if !out.LoggedIn {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			if out.Expired {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session expired at %s — run kqtrainer login\n",
					out.ExpiresAt.Format(time.RFC3339))
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s role=%s expires=%s\n",
				out.Email, out.Role, out.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}
}

func newClientsCmd(cfgPath *string, verbose *bool) *cobra.Command {
	clients := &cobra.Command{Use: "clients", Short: "Assigned client queries"}

	var query string
	var offline bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List assigned clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			out, err := app.RosterCLI.ListClients(context.Background(), query, offline)
			if err != nil {
				return err
			}
			if out.Stale {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "offline snapshot from %s\n", out.FetchedAt.Format(time.RFC3339))
			}
			if len(out.Clients) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no clients")
				return nil
			}
			for _, c := range out.Clients {
				state := "active"
				if !c.IsActive {
					state = "inactive"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\tworkouts=%d\n",
					c.UserID, c.Name, c.Email, state, c.TotalWorkouts)
			}
			return nil
		},
	}
	list.Flags().StringVar(&query, "query", "", "filter by name or email substring")
	list.Flags().BoolVar(&offline, "offline", false, "use the local snapshot instead of the gateway")
	clients.AddCommand(list)

	clients.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show trainer dashboard stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			out, err := app.RosterCLI.DashboardStats(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "clients=%d active=%d workouts_this_week=%d avg_score=%.1f\n",
				out.TotalClients, out.ActiveClients, out.WorkoutsThisWeek, out.AvgPerformanceScore)
			return nil
		},
	})

	var perfID string
	var days int
	perf := &cobra.Command{
		Use:   "performance --id <client-id>",
		Short: "Show a client's performance window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(perfID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			out, err := app.RosterCLI.Performance(context.Background(), perfID, days)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) last %d days: workouts=%d avg_duration=%.1fmin calories=%.0f avg_form=%.1f\n",
				out.Name, out.Email, out.WindowDays, out.TotalWorkouts, out.AvgDurationMinutes, out.TotalCalories, out.AvgFormScore)
			for _, h := range out.History {
				score := "-"
				if h.FormScore != nil {
					score = fmt.Sprintf("%.1f", *h.FormScore)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\texercises=%d\t%dmin\t%dkcal\tform=%s\n",
					h.SessionID, h.Date.Format("2006-01-02"), h.ExerciseCount, h.DurationMinutes, h.CaloriesBurned, score)
			}
			return nil
		},
	}
	perf.Flags().StringVar(&perfID, "id", "", "client id")
	perf.Flags().IntVar(&days, "days", 0, "window in days (0 uses the configured default)")
	clients.AddCommand(perf)

	var sessClientID, sessionID string
	session := &cobra.Command{
		Use:   "session --id <client-id> --session-id <id>",
		Short: "Show one workout session in detail",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(sessClientID) == "" || strings.TrimSpace(sessionID) == "" {
				return fmt.Errorf("--id and --session-id are required")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			out, err := app.RosterCLI.SessionDetail(context.Background(), sessClientID, sessionID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s on %s: %dmin %dkcal\n",
				out.SessionID, out.Date.Format("2006-01-02"), out.DurationMinutes, out.CaloriesBurned)
			if out.AvgFormScore != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "avg form score: %.1f\n", *out.AvgFormScore)
			}
			if out.VideoURL != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "video: %s\n", out.VideoURL)
			}
			for _, log := range out.ExerciseLogs {
				score := "-"
				if log.FormScore != nil {
					score = fmt.Sprintf("%.1f", *log.FormScore)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tsets=%d reps=%d form=%s\n",
					log.ExerciseName, log.SetsCompleted, log.RepsCompleted, score)
				if log.Feedback != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t%s\n", log.Feedback)
				}
			}
			return nil
		},
	}
	session.Flags().StringVar(&sessClientID, "id", "", "client id")
	session.Flags().StringVar(&sessionID, "session-id", "", "workout session id")
	clients.AddCommand(session)

	return clients
}

func newPlanCmd(cfgPath *string, verbose *bool) *cobra.Command {
	plan := &cobra.Command{Use: "plan", Short: "Workout plan operations"}

	var showID string
	show := &cobra.Command{
		Use:   "show --id <client-id>",
		Short: "Show a client's workout plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(showID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			out, err := app.PlanCLI.Show(context.Background(), showID)
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), out)
			return nil
		},
	}
	show.Flags().StringVar(&showID, "id", "", "client id")
	plan.AddCommand(show)

	var toggleID string
	var toggleDay int
	toggle := &cobra.Command{
		Use:   "toggle-rest --id <client-id> --day <index>",
		Short: "Flip a day between rest and workout, then save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(toggleID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			if _, err := app.PlanCLI.BeginEdit(context.Background(), toggleID); err != nil {
				return err
			}
			if _, err := app.PlanCLI.ToggleRest(toggleDay); err != nil {
				return err
			}
			out, err := app.PlanCLI.Save(context.Background())
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), out)
			return nil
		},
	}
	toggle.Flags().StringVar(&toggleID, "id", "", "client id")
	toggle.Flags().IntVar(&toggleDay, "day", 0, "day index")
	plan.AddCommand(toggle)

	var dayID, focus, notes string
	var dayIdx int
	setDay := &cobra.Command{
		Use:   "set-day --id <client-id> --day <index>",
		Short: "Update a day's focus or notes, then save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(dayID) == "" {
				return fmt.Errorf("--id is required")
			}
			if !cmd.Flags().Changed("focus") && !cmd.Flags().Changed("notes") {
				return fmt.Errorf("nothing to change: pass --focus or --notes")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			if _, err := app.PlanCLI.BeginEdit(context.Background(), dayID); err != nil {
				return err
			}
			if cmd.Flags().Changed("focus") {
				if _, err := app.PlanCLI.SetDayFocus(dayIdx, focus); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("notes") {
				if _, err := app.PlanCLI.SetDayNotes(dayIdx, notes); err != nil {
					return err
				}
			}
			out, err := app.PlanCLI.Save(context.Background())
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), out)
			return nil
		},
	}
	setDay.Flags().StringVar(&dayID, "id", "", "client id")
	setDay.Flags().IntVar(&dayIdx, "day", 0, "day index")
	setDay.Flags().StringVar(&focus, "focus", "", "day focus")
	setDay.Flags().StringVar(&notes, "notes", "", "day notes")
	plan.AddCommand(setDay)

	var exID, exName, clear string
	var exDay, exIdx, sets, reps, duration, rest int
	setEx := &cobra.Command{
		Use:   "set-exercise --id <client-id> --day <index> --exercise <index>",
		Short: "Update one exercise's fields, then save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			if _, err := app.PlanCLI.BeginEdit(context.Background(), exID); err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				if _, err := app.PlanCLI.SetExerciseName(exDay, exIdx, exName); err != nil {
					return err
				}
			}
			for field, value := range map[string]int{"sets": sets, "reps": reps, "duration": duration, "rest": rest} {
				if !cmd.Flags().Changed(field) {
					continue
				}
				if _, err := app.PlanCLI.SetExerciseField(exDay, exIdx, field, value); err != nil {
					return err
				}
			}
			for _, field := range strings.Split(clear, ",") {
				field = strings.TrimSpace(field)
				if field == "" {
					continue
				}
				if _, err := app.PlanCLI.ClearExerciseField(exDay, exIdx, field); err != nil {
					return err
				}
			}
			out, err := app.PlanCLI.Save(context.Background())
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), out)
			return nil
		},
	}
	setEx.Flags().StringVar(&exID, "id", "", "client id")
	setEx.Flags().IntVar(&exDay, "day", 0, "day index")
	setEx.Flags().IntVar(&exIdx, "exercise", 0, "exercise index")
	setEx.Flags().StringVar(&exName, "name", "", "exercise name")
	setEx.Flags().IntVar(&sets, "sets", 0, "sets")
	setEx.Flags().IntVar(&reps, "reps", 0, "reps")
	setEx.Flags().IntVar(&duration, "duration", 0, "duration in seconds")
	setEx.Flags().IntVar(&rest, "rest", 0, "rest in seconds")
	setEx.Flags().StringVar(&clear, "clear", "", "comma-separated fields to drop: sets,reps,duration,rest")
	plan.AddCommand(setEx)

	var rmID string
	var rmDay, rmIdx int
	var rmYes bool
	remove := &cobra.Command{
		Use:   "remove-exercise --id <client-id> --day <index> --exercise <index> --yes",
		Short: "Remove one exercise from a day, then save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(rmID) == "" {
				return fmt.Errorf("--id is required")
			}
			if !rmYes {
				return fmt.Errorf("removal is destructive: pass --yes to confirm")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			if _, err := app.PlanCLI.BeginEdit(context.Background(), rmID); err != nil {
				return err
			}
			if _, err := app.PlanCLI.RemoveExercise(rmDay, rmIdx); err != nil {
				return err
			}
			out, err := app.PlanCLI.Save(context.Background())
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), out)
			return nil
		},
	}
	remove.Flags().StringVar(&rmID, "id", "", "client id")
	remove.Flags().IntVar(&rmDay, "day", 0, "day index")
	remove.Flags().IntVar(&rmIdx, "exercise", 0, "exercise index")
	remove.Flags().BoolVar(&rmYes, "yes", false, "confirm the removal")
	plan.AddCommand(remove)

	return plan
}

func newFeedbackCmd(cfgPath *string, verbose *bool) *cobra.Command {
	feedback := &cobra.Command{Use: "feedback", Short: "Session feedback"}

	var clientID, sessionID, text string
	var template int
	send := &cobra.Command{
		Use:   "send --id <client-id> --session-id <id> --text <feedback>",
		Short: "Send feedback on one workout session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(clientID) == "" || strings.TrimSpace(sessionID) == "" {
				return fmt.Errorf("--id and --session-id are required")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			body := text
			if body == "" && cmd.Flags().Changed("template") {
				templates := app.FeedbackCLI.Templates()
				if template < 1 || template > len(templates) {
					return fmt.Errorf("--template must be between 1 and %d", len(templates))
				}
				body = templates[template-1]
			}
			if err := app.FeedbackCLI.Send(context.Background(), clientID, sessionID, body); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "feedback sent")
			return nil
		},
	}
	send.Flags().StringVar(&clientID, "id", "", "client id")
	send.Flags().StringVar(&sessionID, "session-id", "", "workout session id")
	send.Flags().StringVar(&text, "text", "", "feedback text")
	send.Flags().IntVar(&template, "template", 0, "use template N instead of --text")
	feedback.AddCommand(send)

	feedback.AddCommand(&cobra.Command{
		Use:   "templates",
		Short: "List feedback templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			for i, t := range app.FeedbackCLI.Templates() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", i+1, t)
			}
			return nil
		},
	})

	return feedback
}

func newUserCmd(cfgPath *string, verbose *bool) *cobra.Command {
	user := &cobra.Command{Use: "user", Short: "Admin user operations"}

	var showID string
	show := &cobra.Command{
		Use:   "show --id <user-id>",
		Short: "Show one user's account and stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(showID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			out, err := app.AccountCLI.Show(context.Background(), showID)
			if err != nil {
				return err
			}
			state := "active"
			if !out.IsActive {
				state = "inactive"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nemail: %s\nrole: %s\nstatus: %s\ncreated: %s\nworkouts: %d\n",
				out.UserID, out.Name, out.Email, out.Role, state, out.CreatedAt, out.TotalWorkouts)
			return nil
		},
	}
	show.Flags().StringVar(&showID, "id", "", "user id")
	user.AddCommand(show)

	var updateID, firstName, lastName, email string
	var active bool
	update := &cobra.Command{
		Use:   "update --id <user-id>",
		Short: "Update a user's account fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(updateID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			var activePtr *bool
			if cmd.Flags().Changed("active") {
				activePtr = &active
			}
			fields := map[string]string{
				"first_name": firstName,
				"last_name":  lastName,
				"email":      email,
			}
			out, err := app.AccountCLI.Update(context.Background(), updateID, fields, activePtr)
			if err != nil {
				for field, msg := range out.FieldErrors {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
				}
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%s)\n", out.Email, out.UserID)
			return nil
		},
	}
	update.Flags().StringVar(&updateID, "id", "", "user id")
	update.Flags().StringVar(&firstName, "first-name", "", "first name")
	update.Flags().StringVar(&lastName, "last-name", "", "last name")
	update.Flags().StringVar(&email, "email", "", "email")
	update.Flags().BoolVar(&active, "active", true, "account active state")
	user.AddCommand(update)

	return user
}

func printPlan(w io.Writer, out plandto.PlanOutput) {
	_, _ = fmt.Fprintf(w, "plan %s for %s (%s to %s)\n", out.PlanID, out.UserID, out.StartDate, out.EndDate)
	if !out.HasData {
		_, _ = fmt.Fprintln(w, "no active workout plan data")
		return
	}
	_, _ = fmt.Fprintf(w, "level=%s based_on=%d workouts personalized=%t\n",
		out.Data.FitnessLevel, out.Data.BasedOnWorkouts, out.Data.Personalized)
	for i, d := range out.Data.Days {
		if d.IsRest {
			_, _ = fmt.Fprintf(w, "[%d] %s — %s (rest)\n", i, d.DayName, d.Focus)
		} else {
			_, _ = fmt.Fprintf(w, "[%d] %s — %s %dmin\n", i, d.DayName, d.Focus, d.EstimatedDurationMinutes)
		}
		if d.Notes != "" {
			_, _ = fmt.Fprintf(w, "    %s\n", d.Notes)
		}
		for j, e := range d.Exercises {
			_, _ = fmt.Fprintf(w, "    [%d] %s%s\n", j, e.Name, exerciseSuffix(e))
		}
	}
}

func exerciseSuffix(e plandto.ExerciseOutput) string {
	var parts []string
	if e.Sets != nil {
		parts = append(parts, fmt.Sprintf("%d sets", *e.Sets))
	}
	if e.Reps != nil {
		parts = append(parts, fmt.Sprintf("%d reps", *e.Reps))
	}
	if e.Duration != nil {
		parts = append(parts, fmt.Sprintf("%ds", *e.Duration))
	}
	if e.Rest != nil {
		parts = append(parts, fmt.Sprintf("%ds rest", *e.Rest))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " ")
}
