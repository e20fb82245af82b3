// Package main provides connectivity diagnostics for the portfolio chat
// backend: database, environment and voice-synthesis probes.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jardelmessias/portfolio-chat/internal/config"
	"github.com/jardelmessias/portfolio-chat/internal/db"
	"github.com/jardelmessias/portfolio-chat/internal/voice"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-diag",
	Short: "Connectivity diagnostics for the portfolio chat backend",
	Long: `portfolio-diag probes the external collaborators the chat service
depends on: the SurrealDB store, required environment variables and the
ElevenLabs synthesis provider.`,
	SilenceUsage: true,
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Check database connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		fmt.Printf("connecting to %s ...\n", cfg.SurrealDBURL)
		client, err := db.NewClient(ctx, db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}, nil)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer client.Close(context.Background())

		if err := client.Ping(ctx); err != nil {
			return err
		}

		fmt.Println("database connection OK")
		return nil
	},
}

// requiredEnv lists the variables the server cannot run without.
var requiredEnv = []string{"OPENAI_API_KEY", "SURREALDB_URL"}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Check required environment variables",
	RunE: func(cmd *cobra.Command, args []string) error {
		missing := 0
		for _, key := range requiredEnv {
			if os.Getenv(key) == "" {
				fmt.Printf("%-20s MISSING\n", key)
				missing++
			} else {
				fmt.Printf("%-20s set\n", key)
			}
		}
		for _, key := range []string{"ELEVEN_API_KEY", "VOICE_ID"} {
			if os.Getenv(key) == "" {
				fmt.Printf("%-20s unset (voice synthesis disabled)\n", key)
			} else {
				fmt.Printf("%-20s set\n", key)
			}
		}
		if missing > 0 {
			return fmt.Errorf("%d required variable(s) missing", missing)
		}
		return nil
	},
}

var ttsCmd = &cobra.Command{
	Use:   "tts [text]",
	Short: "Probe the voice-synthesis provider",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		text := "Olá! Teste de síntese de voz."
		if len(args) == 1 {
			text = args[0]
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client := voice.NewClient(cfg.ElevenAPIKey, cfg.VoiceID)
		audio, err := client.Synthesize(ctx, text)
		if err != nil {
			return fmt.Errorf("synthesis failed: %w", err)
		}

		fmt.Printf("synthesis OK: %d bytes of audio\n", len(audio))
		return nil
	},
}

func main() {
	rootCmd.AddCommand(dbCmd, envCmd, ttsCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
