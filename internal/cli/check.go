package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/takimoto3/apnscodec/payload"
)

// result is the outcome of checking one file.
type result struct {
	File       string             `json:"file"`
	Valid      bool               `json:"valid"`
	Error      string             `json:"error,omitempty"`
	Violations payload.Violations `json:"violations,omitempty"`
}

func checkCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate payload files",
		Long: `Validate APNs payload files against the aps schema and report every
violation found. Files ending in .yaml or .yml are read as YAML, all others as
JSON. Use - to read standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]result, 0, len(args))
			for _, name := range args {
				results = append(results, a.check(cmd, name))
			}
			if err := a.report(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			for _, r := range results {
				if !r.Valid {
					return ErrInvalid
				}
			}
			return nil
		},
	}
	return cmd
}

func (a *app) check(cmd *cobra.Command, name string) result {
	r := result{File: name}
	data, err := readInput(name, cmd.InOrStdin())
	if err != nil {
		r.Error = err.Error()
		return r
	}
	_, vs, err := decode(name, data, a.cfg.Options())
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Violations = vs
	r.Valid = !vs.HasErrors()
	a.logger.Info("checked payload",
		"file", name,
		"errors", len(vs.Errors()),
		"warnings", len(vs.Warnings()))
	return r
}

func (a *app) report(w io.Writer, results []result) error {
	if a.cfg.Format == FormatJSON {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", out)
		return err
	}
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "%s: %s\n", r.File, r.Error)
			continue
		}
		for _, v := range r.Violations {
			fmt.Fprintf(w, "%s: %s: %s\n", r.File, v.Severity, v.Error())
		}
		if len(r.Violations) == 0 {
			fmt.Fprintf(w, "%s: ok\n", r.File)
		}
	}
	return nil
}
