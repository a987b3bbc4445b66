package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dafeb/budget-bubbles/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "bubbles",
	Short: "Budget Bubbles command-line client",
	Long: `bubbles talks to a running Budget Bubbles API server to manage
spending categories and transactions and to show aggregate dashboards.`,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().String("api-url", client.DefaultBaseURL, "base URL of the Budget Bubbles API")
	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))

	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(dashboardCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	viper.SetEnvPrefix("BUBBLES")
	viper.AutomaticEnv()
	return nil
}

// newStore builds a finance store against the configured API base URL
func newStore() *client.Store {
	return client.NewStore(client.New(viper.GetString("api_url")))
}
