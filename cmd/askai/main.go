// Package main provides the askai command: pipe text into an AI provider
// and emit the reply to stdout, a file, or speech.
package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvessel/askai/pkg/app"
	"github.com/mvessel/askai/pkg/logger"
	"github.com/mvessel/askai/pkg/prompt"
	"github.com/mvessel/askai/pkg/provider"
	"github.com/mvessel/askai/pkg/provider/gemini"
	"github.com/mvessel/askai/pkg/provider/ollama"
	"github.com/mvessel/askai/pkg/provider/openai"
	"github.com/mvessel/askai/pkg/resolve"
	"github.com/mvessel/askai/pkg/speech"
	"github.com/mvessel/askai/pkg/terminal"
)

var (
	flagMessage   string
	flagPrePrompt string
	flagOutput    string
	flagConfig    string
	flagEditor    bool
	flagSpeak     bool
	flagNoHistory bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "askai [file]",
	Short: "Send text and a prompt to a configured AI provider",
	Long: `askai reads input text from a file argument or standard input, composes a
prompt from a literal message, a pre-prompt file, an editor session, or an
interactive terminal read, and sends both to the provider named in the
configuration. The reply goes to stdout, a file (-o), or speech (-s).`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagMessage, "message", "m", "", "Literal prompt message")
	rootCmd.Flags().StringVarP(&flagPrePrompt, "pre-prompt", "p", "", "Pre-prompt name or file path")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the reply to this file instead of stdout")
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Config name or file path (default \"config\")")
	rootCmd.Flags().BoolVarP(&flagEditor, "editor", "e", false, "Compose the prompt in $VISUAL/$EDITOR")
	rootCmd.Flags().BoolVarP(&flagSpeak, "speak", "s", false, "Speak the reply after printing it")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record this interaction")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose diagnostics on stderr")
}

func run(cmd *cobra.Command, args []string) error {
	log, err := logger.New(flagVerbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	lifecycle := app.NewLifecycle(log)
	lifecycle.Watch()

	resolver, err := resolve.New()
	if err != nil {
		return err
	}

	registry := provider.NewRegistry()
	registry.Register("openai", openai.New())
	registry.Register("ollama", ollama.New())
	registry.Register("gemini", gemini.New())

	term := terminal.Controlling()

	a := &app.App{
		Resolver:    resolver,
		Registry:    registry,
		Composer:    prompt.NewComposer(term, lifecycle, log),
		Speaker:     speech.New(),
		Logger:      log,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		HistoryPath: filepath.Join(resolver.UserRoot, "history.db"),
	}

	var inputPath string
	if len(args) == 1 {
		inputPath = args[0]
	}
	runErr := a.Run(cmd.Context(), app.Options{
		InputPath:  inputPath,
		Message:    flagMessage,
		PrePrompt:  flagPrePrompt,
		ConfigID:   flagConfig,
		OutputPath: flagOutput,
		UseEditor:  flagEditor,
		Speak:      flagSpeak,
		NoHistory:  flagNoHistory,
	})
	if runErr != nil && flagVerbose {
		// The stack of the failure site; the plain message goes to stderr
		// in main.
		log.Error("invocation failed", zap.Error(runErr))
	}
	return runErr
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
