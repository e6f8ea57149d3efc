// cmd/proposal-cli/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/export/clipboard"
	"proposal-workers/internal/export/mailcompose"
	"proposal-workers/internal/export/storage"
	"proposal-workers/internal/proposal/session"
	"proposal-workers/internal/workers/proposal/shared"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: configs/config.yaml)")
	outDir := flag.String("out", "", "Directory for exported files, overrides export.output_dir")
	noClipboard := flag.Bool("no-clipboard", false, "Always write copied text to the fallback file")
	logLevel := flag.String("log-level", "warn", "Log level for diagnostics on stderr")
	flag.Parse()

	log := logger.NewStructured(*logLevel, "console", "stderr")
	defer log.Sync()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Export.OutputDir = *outDir
	}

	deps, err := shared.NewDependencies(cfg.Proposal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "proposal setup failed: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	sink, err := storage.NewSink(ctx, cfg.Export)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export sink setup failed: %v\n", err)
		os.Exit(1)
	}

	var primary clipboard.Writer = clipboard.System{}
	if *noClipboard {
		primary = clipboard.File{Path: cfg.Export.ClipboardFallbackFile}
	}

	c := cfg.Proposal.Contingency
	sess := session.New(deps.Catalog, deps.Formatter,
		session.WithLimits(session.Limits{Min: c.Min, Max: c.Max, Step: c.Step}),
		session.WithStart(deps.DefaultApproach, c.Default),
	)

	a := &app{
		sess:   sess,
		sender: mailcompose.Sender{Name: cfg.Mail.SenderName, Address: cfg.Mail.SenderAddress},
		sink:   sink,
		copier: clipboard.NewCopier(primary, cfg.Export.ClipboardFallbackFile, log),
		open:   openURL,
		out:    os.Stdout,
		logger: log,
	}
	if err := a.run(ctx, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "input error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// openURL hands url to the desktop's default handler.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
