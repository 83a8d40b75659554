// validator-tool loads and validates a promptuna configuration file and
// prints a one-line summary: version, prompt count, provider count, schema
// count, elapsed milliseconds. See spec §6.
//
// Usage:
//
//	validator-tool config.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkotzy/promptuna/pkg/cli"
	"github.com/rkotzy/promptuna/pkg/config"
)

// Summary is the JSON/text payload printed on a successful validation.
type Summary struct {
	Version       string `json:"version"`
	PromptCount   int    `json:"promptCount"`
	ProviderCount int    `json:"providerCount"`
	SchemaCount   int    `json:"schemaCount"`
	ElapsedMs     int64  `json:"elapsedMs"`
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"valid: version=%s prompts=%d providers=%d schemas=%d elapsed=%dms",
		s.Version, s.PromptCount, s.ProviderCount, s.SchemaCount, s.ElapsedMs,
	)
}

var rootCmd = &cobra.Command{
	Use:   "validator-tool <config-path>",
	Short: "Validate a promptuna configuration file",
	Args:  cobra.ExactArgs(1),
	// SilenceUsage/SilenceErrors: this is a single-purpose validator, not a
	// multi-command CLI — a validation failure is reported on stderr in the
	// spec's error shape, not cobra's own usage-dump-on-error behavior.
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	summary := Summary{
		Version:       cfg.Version,
		PromptCount:   len(cfg.Prompts),
		ProviderCount: len(cfg.Providers),
		SchemaCount:   len(cfg.ResponseSchemas),
		ElapsedMs:     time.Since(start).Milliseconds(),
	}

	formatter := cli.NewFormatter(cli.FormatText)
	return formatter.FormatTo(cmd.OutOrStdout(), summary)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		writeError(os.Stderr, err)
		os.Exit(1)
	}
}

// writeError prints the error message and, for a *config.ConfigurationError
// carrying field violations, the structured details bag for each one, per
// spec §6 ("details bag written when present").
func writeError(w *os.File, err error) {
	fmt.Fprintln(w, err.Error())

	configErr, ok := err.(*config.ConfigurationError)
	if !ok || len(configErr.Errors) == 0 {
		return
	}

	type offender struct {
		Field   string          `json:"field"`
		Details config.Details `json:"details"`
	}
	offenders := make([]offender, 0, len(configErr.Errors))
	for _, fe := range configErr.Errors {
		d := fe.Details
		if d.Path == "" && d.Suggestion == "" && len(d.Offenders) == 0 {
			continue
		}
		offenders = append(offenders, offender{Field: fe.Field, Details: d})
	}
	if len(offenders) == 0 {
		return
	}

	encoded, err2 := json.MarshalIndent(offenders, "", "  ")
	if err2 != nil {
		return
	}
	fmt.Fprintln(w, string(encoded))
}
