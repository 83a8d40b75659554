/*
Package cli provides the output formatting used by cmd/validator-tool.

validator-tool is a single-shot command with no long-running operations and
no signal handling to speak of, so this package carries only what that
surface needs: a Formatter that renders the validation summary as either
plain text or indented JSON.

	formatter := cli.NewFormatter(cli.FormatText)
	if err := formatter.FormatTo(os.Stdout, summary); err != nil {
		return err
	}
*/
package cli
