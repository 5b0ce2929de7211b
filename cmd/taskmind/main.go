// Package main is the entry point for the taskmind CLI. Taskmind is a
// conversational task assistant: it classifies each message, plans tool
// calls against a local sqlite task list, and keeps per-user conversation
// history.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/normanking/taskmind/internal/config"
	"github.com/normanking/taskmind/internal/logging"
	"github.com/normanking/taskmind/internal/memory"
	"github.com/normanking/taskmind/internal/orchestrator"
	"github.com/normanking/taskmind/internal/planner"
	"github.com/normanking/taskmind/internal/server"
	"github.com/normanking/taskmind/internal/store"
	"github.com/normanking/taskmind/internal/tools"
)

var (
	version = "0.1.0"
	cfgPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskmind",
		Short: "Taskmind - conversational task management assistant",
		Long: `Taskmind turns plain chat into task management. It understands
requests like "add buy milk and then list my tasks", executes them against
a local sqlite task list, and remembers the conversation per user.

Start the HTTP API:     taskmind serve
Chat from the terminal: taskmind chat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default ~/.taskmind/config.yaml)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Taskmind v%s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		return config.LoadFromPath(cfgPath)
	}
	return config.Load()
}

// bootstrap wires config, logging, storage, and the orchestrator. The
// returned cleanup closes the database.
func bootstrap() (*config.Config, zerolog.Logger, *orchestrator.Orchestrator, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, zerolog.Nop(), nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, zerolog.Nop(), nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0755); err != nil {
		return nil, zerolog.Nop(), nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Storage.DBPath)
	if err != nil {
		return nil, zerolog.Nop(), nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	tasks, err := store.NewSQLStore(db)
	if err != nil {
		db.Close()
		return nil, zerolog.Nop(), nil, nil, fmt.Errorf("failed to initialize task store: %w", err)
	}

	conversations, err := memory.NewSQLStore(db)
	if err != nil {
		db.Close()
		return nil, zerolog.Nop(), nil, nil, fmt.Errorf("failed to initialize conversation store: %w", err)
	}

	orch := orchestrator.New(
		planner.New(),
		tools.NewExecutor(tasks, logger),
		conversations,
		logger,
	)

	cleanup := func() { db.Close() }
	return cfg, logger, orch, cleanup, nil
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP chat API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, orch, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			if addr == "" {
				addr = cfg.Server.Addr
			}

			srv := server.New(addr, orch, logger)

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server error: %w", err)
			case sig := <-sigCh:
				logger.Info().Str("signal", sig.String()).Msg("shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

func chatCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant from the terminal",
		Long: `Interactive chat session on stdin. The conversation persists
across sessions, so the assistant picks up where you left off.

Examples:
  taskmind chat
  taskmind chat --user alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, orch, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			if userID == "" {
				userID = cfg.Chat.UserID
			}

			fmt.Println("Taskmind ready. Type a request, or 'exit' to quit.")

			var conversationID string
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					fmt.Println()
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}

				resp := orch.HandleRequest(cmd.Context(), orchestrator.Request{
					UserID:         userID,
					Message:        line,
					ConversationID: conversationID,
				})
				conversationID = resp.ConversationID

				fmt.Println(resp.Text)
			}
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user identity (default from config)")

	return cmd
}
