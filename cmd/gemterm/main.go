// Package main provides the gemterm CLI entry point: a chat front-end
// (default) and an image-edit front-end over the Gemini API.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gemterm/cmd/gemterm/chat"
	"gemterm/cmd/gemterm/editor"
	"gemterm/cmd/gemterm/ui"
	"gemterm/internal/canvas"
	"gemterm/internal/config"
	"gemterm/internal/conversation"
	"gemterm/internal/gemini"
	"gemterm/internal/logging"
	"gemterm/internal/orchestrator"
)

// version is set via -ldflags at release time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "gemterm",
	Short: "gemterm - Gemini chat and image editing in the terminal",
	Long: `gemterm brings two small Gemini front-ends to the terminal:

  gemterm              interactive chat
  gemterm edit [file]  prompt-driven image editing

An API key is read from GEMINI_API_KEY or the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat (same as running gemterm bare)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [image]",
	Short: "Start the image editor, optionally loading an image",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return runEdit(path)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gemterm %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd, editCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config (prompting for a key on first run), and builds the
// logger and styles shared by both front-ends.
func setup() (config.Config, ui.Styles, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
	}

	if cfg.APIKey == "" && isTerminal() {
		fmt.Println("First run: gemterm needs a Gemini API key (https://aistudio.google.com/apikey).")
		fmt.Print("API key (or leave empty and set GEMINI_API_KEY later): ")
		var key string
		fmt.Scanln(&key)
		if key != "" {
			cfg.APIKey = key
			if err := config.Save(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save config: %v\n", err)
			}
		}
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return cfg, ui.Styles{}, nil, fmt.Errorf("init logging: %w", err)
	}
	return cfg, ui.NewStyles(ui.ThemeByName(cfg.Theme)), logger, nil
}

func runChat() error {
	cfg, styles, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	log := conversation.New(cfg.Greeting)

	// Session creation failure is not fatal: the UI runs and shows the
	// failure once as a bot message.
	var responder orchestrator.Responder
	var initErr error
	ctx := context.Background()
	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:     cfg.APIKey,
		ChatModel:  cfg.ChatModel,
		ImageModel: cfg.ImageModel,
	})
	if err != nil {
		initErr = err
	} else {
		session, err := client.NewChatSession(ctx, log.Messages())
		if err != nil {
			initErr = err
		} else {
			responder = session
		}
	}

	m := chat.NewModel(chat.Config{
		Orchestrator: orchestrator.New(log, responder, logger),
		Styles:       styles,
		Logger:       logger,
		InitError:    initErr,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run chat: %w", err)
	}
	return nil
}

func runEdit(path string) error {
	cfg, styles, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	slot, err := canvas.NewSlot("")
	if err != nil {
		return err
	}
	// Scratch previews are session-scoped.
	defer os.RemoveAll(slot.ScratchDir())

	var ed orchestrator.Editor
	var initErr error
	client, err := gemini.NewClient(context.Background(), gemini.Config{
		APIKey:     cfg.APIKey,
		ChatModel:  cfg.ChatModel,
		ImageModel: cfg.ImageModel,
	})
	if err != nil {
		initErr = err
	} else {
		ed = client
	}

	m := editor.NewModel(editor.Config{
		Orchestrator: orchestrator.NewEdit(slot, ed, logger),
		Styles:       styles,
		Logger:       logger,
		InitialPath:  path,
		InitError:    initErr,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

func isTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
