package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/quote-genie/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pricing API",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "", "listen address (default from config)")
	f.String("models", "", "directory holding the model artifacts")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := *cfg
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		c.Server.Addr = v
	}
	modelDir := c.Training.ModelDir
	if c.Server.ModelDir != "" {
		modelDir = c.Server.ModelDir
	}
	if v, _ := cmd.Flags().GetString("models"); v != "" {
		modelDir = v
	}

	svc, err := app.New(&c, modelDir)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

