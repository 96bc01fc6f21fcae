package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/meetcal/internal/profile"
	"github.com/hrygo/meetcal/server"
	"github.com/hrygo/meetcal/store"
	"github.com/hrygo/meetcal/store/db"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "meetcal",
	Short:         "A scheduling service that finds common free hours for interview meetings",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogger()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p, err := loadProfile()
		if err != nil {
			return err
		}

		st, err := openStore(ctx, p)
		if err != nil {
			return err
		}

		s, err := server.NewServer(ctx, p, st)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			s.Shutdown(context.Background())
			return nil
		case err := <-errCh:
			return err
		}
	},
}

func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: version,
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return p, nil
}

// openStore builds a migrated store from the profile. The caller owns the
// returned store and must Close it.
func openStore(ctx context.Context, p *profile.Profile) (*store.Store, error) {
	driver, err := db.NewDBDriver(p)
	if err != nil {
		return nil, fmt.Errorf("failed to create db driver: %w", err)
	}

	st := store.New(driver, p)
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return st, nil
}

func setupLogger() {
	level := slog.LevelInfo
	if viper.GetString("mode") != "prod" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of the server: "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of the server")
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver: "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database connection string")

	for _, key := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("meetcal")
	viper.AutomaticEnv()

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addUserCmd)
	rootCmd.AddCommand(getUserCmd)
	rootCmd.AddCommand(addSlotCmd)
	rootCmd.AddCommand(seeSlotsCmd)
	rootCmd.AddCommand(meetingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// An errOpFailed envelope was already reported on stderr.
		if !errors.Is(err, errOpFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
