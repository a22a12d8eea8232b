// Package main: точка входа бота.
// Загружает конфигурацию, инициализирует приложение и запускает.
// Поддерживает graceful shutdown по SIGINT/SIGTERM.
//
// Команды:
//
//	repost-bot         : то же, что run
//	repost-bot run     : миграции + long polling
//	repost-bot migrate : только миграции
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"serotonyl.ru/repost-bot/internal/app"
	"serotonyl.ru/repost-bot/internal/config"
)

// Version перезаписывается при сборке через -ldflags.
var Version = "dev"

func main() {
	// Настраиваем логирование
	setupLogging()

	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Fatal("Бот завершился с ошибкой")
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "repost-bot",
		Short:         "Telegram-бот учёта репостов",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	cmd.AddCommand(newRunCmd(), newMigrateCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Применить миграции и запустить long polling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции схемы и выйти",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applied, err := app.Migrate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			log.WithField("applied", applied).Info("Миграции применены")
			return nil
		},
	}
}

func run(parent context.Context) error {
	log.WithField("version", Version).Info("=== Бот запускается ===")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Контекст отменяется по Ctrl+C / docker stop: все горутины начнут завершаться
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем приложение (БД, бот, сервисы, обработчики)
	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("не удалось инициализировать приложение: %w", err)
	}
	defer application.DB.Close()

	log.Info("=== Бот готов к работе ===")

	// Блокируется до сигнала остановки
	if err := application.Bot.Start(ctx); err != nil {
		return err
	}

	log.Info("=== Бот остановлен ===")
	return nil
}

// loadConfig загружает конфигурацию и выставляет уровень логирования.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	// Устанавливаем уровень логирования из конфига
	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}
	return cfg, nil
}

// setupLogging настраивает формат логов.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
