package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"otpbot/bot"
	"otpbot/config"
	"otpbot/logger"

	"github.com/spf13/cobra"
)

var configPath string

// RootCmd starts the bot.
var RootCmd = &cobra.Command{
	Use:          "otpbot",
	Short:        "Discord bot that generates one-time passwords and passwords",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			// 設定エラーはコマンドを処理する前に一度だけ記録して終了する
			logger.Fatal("設定の読み込みに失敗しました", "config", configPath, "error", err)
		}

		log := logger.Init(logger.Options{
			File:       cfg.Log.File,
			Level:      cfg.Log.Level,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
		defer log.Close()
		logger.Info("設定を読み込みました", "config", configPath, "level", cfg.Log.Level, "web", cfg.Web.Enabled)

		b, err := bot.New(cfg, log)
		if err != nil {
			log.Fatal("Botの初期化に失敗しました", "error", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := b.Run(ctx); err != nil {
			log.Fatal("Botの起動に失敗しました", "error", err)
		}
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the config file")
	RootCmd.AddCommand(commandsCmd)
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
