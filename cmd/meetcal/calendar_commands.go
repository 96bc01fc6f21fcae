package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hrygo/meetcal/internal/timefmt"
	"github.com/hrygo/meetcal/server/service/calendar"
)

// errOpFailed marks a nonzero envelope already reported on stderr; main exits
// nonzero without printing it again.
var errOpFailed = errors.New("operation failed")

// runCalendarOp opens the store, runs one calendar operation against it, and
// renders the envelope. Each invocation is its own scoped unit of work; the
// store is closed before the process exits.
func runCalendarOp(cmd *cobra.Command, op func(ctx context.Context, svc *calendar.Service) (calendar.Envelope, error)) error {
	ctx := cmd.Context()

	p, err := loadProfile()
	if err != nil {
		return err
	}

	st, err := openStore(ctx, p)
	if err != nil {
		return err
	}
	defer st.Close()

	env, err := op(ctx, calendar.NewService(st))
	if err != nil {
		return err
	}
	return renderEnvelope(env)
}

// renderEnvelope writes payload lines to stdout, or the failure description to
// stderr with errOpFailed as the result.
func renderEnvelope(env calendar.Envelope) error {
	if !env.IsOK() {
		fmt.Fprintf(os.Stderr, "Error: %s\n", env.Desc)
		return errOpFailed
	}

	switch data := env.Data.(type) {
	case nil:
	case string:
		if data != "" {
			fmt.Println(data)
		}
	case []string:
		if len(data) == 0 {
			fmt.Println("No slots found")
		}
		for _, stamp := range data {
			fmt.Println(stamp)
		}
	default:
		fmt.Println(data)
	}
	return nil
}

var addUserCmd = &cobra.Command{
	Use:   "add-user USER_ID NAME",
	Short: "Register a user in the calendar",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalendarOp(cmd, func(ctx context.Context, svc *calendar.Service) (calendar.Envelope, error) {
			return svc.AddUser(ctx, args[0], args[1])
		})
	},
}

var getUserCmd = &cobra.Command{
	Use:   "get-user USER_ID",
	Short: "Show the display name of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalendarOp(cmd, func(ctx context.Context, svc *calendar.Service) (calendar.Envelope, error) {
			env, err := svc.GetUser(ctx, args[0])
			if err != nil {
				return env, err
			}
			if name, _ := env.Data.(string); env.IsOK() && name == "" {
				fmt.Fprintln(os.Stderr, "User not found")
			}
			return env, nil
		})
	},
}

var addSlotCmd = &cobra.Command{
	Use:   "add-slot USER_ID FROM TO",
	Short: "Add a range of availability slots for a user",
	Long: `Add the half-open availability range [FROM, TO) for a user.
Instants are expected in ISO 8601 format (YYYY-MM-DDTHH:MM:SS) and are
truncated to the hour.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := timefmt.Parse(args[1])
		if err != nil {
			return err
		}
		to, err := timefmt.Parse(args[2])
		if err != nil {
			return err
		}
		return runCalendarOp(cmd, func(ctx context.Context, svc *calendar.Service) (calendar.Envelope, error) {
			return svc.AddSlots(ctx, args[0], from, to)
		})
	},
}

var seeSlotsCmd = &cobra.Command{
	Use:   "see-slots USER_ID",
	Short: "See the available hourly slots for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalendarOp(cmd, func(ctx context.Context, svc *calendar.Service) (calendar.Envelope, error) {
			return svc.GetSlots(ctx, args[0])
		})
	},
}

var meetingCmd = &cobra.Command{
	Use:   "meeting INTERVIEWEE INTERVIEWER...",
	Short: "Show the hours at which all participants are free",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalendarOp(cmd, func(ctx context.Context, svc *calendar.Service) (calendar.Envelope, error) {
			return svc.OrganizeMeeting(ctx, args[0], args[1:])
		})
	},
}
