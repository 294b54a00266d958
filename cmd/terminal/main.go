// Terminal client: the full assistant wired in-process, no server needed.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/room4-2/OpenReserve/assistant"
	"github.com/room4-2/OpenReserve/booking"
	"github.com/room4-2/OpenReserve/config"
	"github.com/room4-2/OpenReserve/logging"
	"github.com/room4-2/OpenReserve/session"
)

func main() {
	var sessionID string
	var logLevel string
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "terminal",
		Short: "Chat with the reservation assistant from the command line",
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return err
				}
			}
			return run(sessionID, logLevel)
		},
	}
	rootCmd.Flags().StringVar(&sessionID, "session", "", "session id to resume (default: a fresh one)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "silent", "log level (debug, info, warn, error, silent)")
	rootCmd.Flags().StringVar(&envFile, "env", "", "path to an env file to load before startup")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(sessionID, logLevel string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.LogLevel = logLevel

	log := logging.New(nil, cfg.LogLevel)
	store := session.NewStore(cfg, log)
	defer store.Shutdown()

	api := booking.NewClient(cfg, log)
	asst := assistant.New(store, api, cfg, log)

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx := context.Background()

	fmt.Printf("🍽️  Welcome to %s!\n", cfg.Restaurant)
	fmt.Println("I can check availability, book a table, or manage your reservation.")
	fmt.Println("Type 'status' to check the booking service, 'quit' to leave.")
	fmt.Println(strings.Repeat("─", 60))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		switch strings.ToLower(text) {
		case "quit", "exit", "bye":
			fmt.Println("Assistant: Goodbye! 👋")
			return nil
		case "status":
			if err := api.Ping(ctx); err != nil {
				fmt.Println("Assistant: ⚠️  The booking service is unreachable.")
			} else {
				fmt.Println("Assistant: ✅ The booking service is up.")
			}
			continue
		}

		reply := asst.HandleMessage(ctx, sessionID, text)
		fmt.Printf("Assistant: %s\n", reply.Reply)
	}
	return scanner.Err()
}
