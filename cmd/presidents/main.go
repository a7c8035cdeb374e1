package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/presidents-game/client-go/internal/app"
	"github.com/presidents-game/client-go/internal/config"
	"github.com/presidents-game/client-go/internal/log"
	"github.com/presidents-game/client-go/internal/proto"
	"github.com/presidents-game/client-go/internal/transport"
)

func main() {
	var (
		configPath string
		username   string
	)

	root := &cobra.Command{
		Use:           "presidents",
		Short:         "Terminal client for the Presidents card game",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&username, "username", "", "display name to join with")

	joinCmd := &cobra.Command{
		Use:   "join <session-id>",
		Short: "Join an existing session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, func(ctx context.Context, lobby *transport.Lobby) (proto.JoinInfo, error) {
				return lobby.JoinSession(ctx, args[0], username)
			})
		},
	}

	var gameName string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a session and join it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, func(ctx context.Context, lobby *transport.Lobby) (proto.JoinInfo, error) {
				return lobby.CreateSession(ctx, gameName, username)
			})
		},
	}
	createCmd.Flags().StringVar(&gameName, "name", "presidents", "session name")

	root.AddCommand(joinCmd, createCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, join func(context.Context, *transport.Lobby) (proto.JoinInfo, error)) error {
	bootLog := log.New("info")
	cfg, path, err := config.Load(bootLog, configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	logger := log.New(cfg.LogLevel)

	lobby := transport.NewLobby(cfg.LobbyURL, logger)
	info, err := join(ctx, lobby)
	if err != nil {
		return err
	}

	client, err := app.Join(cfg, logger, info)
	if err != nil {
		return err
	}

	// Surface messages and alerts on the log until a real UI exists.
	sess := client.Session()
	var mu sync.Mutex
	var seenMessages int
	var lastAlert string
	sess.SetOnChange(func() {
		mu.Lock()
		defer mu.Unlock()
		st := sess.State()
		for ; seenMessages < len(st.Messages); seenMessages++ {
			logger.Info().Str("message", st.Messages[seenMessages]).Msg("game message")
		}
		if st.Alert != "" && st.Alert != lastAlert {
			lastAlert = st.Alert
			logger.Info().Str("alert", st.Alert).Msg("alert")
		}
	})

	logger.Info().Str("session_id", info.SessionID).Msg("client running")
	return client.Run(ctx)
}
