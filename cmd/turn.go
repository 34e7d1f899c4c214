// File: cmd/turn.go
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wgabrys88/franz/api/schemas"
	"github.com/wgabrys88/franz/internal/engine"
	"github.com/wgabrys88/franz/internal/input"
	"github.com/wgabrys88/franz/internal/observability"
	"github.com/wgabrys88/franz/internal/sandbox"
)

// Both subcommands speak the same process contract: one JSON record on
// stdin, one JSON record on stdout. Logs go to stderr and the log file
// only, so stdout stays machine-parseable.

var turnCmd = &cobra.Command{
	Use:   "turn",
	Short: "Execute one model turn: raw text on stdin, turn result on stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		req, err := schemas.DecodeTurnRequest(data)
		if err != nil {
			// A malformed request is fatal: there is no safe default turn.
			return err
		}

		res, err := buildEngine().ExecuteTurn(cmd.Context(), req)
		if err != nil {
			return err
		}
		return writeResult(res)
	},
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Produce one screenshot: capture request on stdin, response on stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		req, err := schemas.DecodeCaptureRequest(data)
		if err != nil {
			return err
		}

		res, err := buildEngine().Capture(req)
		if err != nil {
			return err
		}
		return writeResult(res)
	},
}

func init() {
	rootCmd.AddCommand(turnCmd)
	rootCmd.AddCommand(captureCmd)
}

// buildEngine assembles the engine from config. Platform backends that
// are unavailable leave their mode degraded rather than failing startup.
func buildEngine() *engine.Engine {
	log := observability.GetLogger()
	store := sandbox.NewStore(cfg.Sandbox, log)

	var injector *input.Injector
	if drv, err := input.NewDriver(); err != nil {
		log.Debug("no input driver, physical dispatch disabled", zap.Error(err))
	} else {
		injector = input.NewInjector(drv, cfg.Input, log)
	}

	var capturer engine.Capturer
	if c, err := engine.NewCapturer(); err != nil {
		log.Debug("no screen capturer, real-surface capture disabled", zap.Error(err))
	} else {
		capturer = c
	}

	return engine.New(cfg, log, store, injector, capturer)
}

// writeResult emits one JSON record followed by a newline on stdout.
func writeResult(v interface{}) error {
	out, err := schemas.Encode(v)
	if err != nil {
		return err
	}
	out = append(out, '\n')
	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("writing stdout: %w", err)
	}
	return nil
}
