package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/takimoto3/apnscodec"
)

func fmtCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print the canonical encoding of a payload",
		Long: `Decode a payload file, validate it and print its canonical JSON
encoding: aps keys in table order, custom keys sorted, no insignificant
whitespace. Reads standard input when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := stdinName
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(name, cmd.InOrStdin())
			if err != nil {
				return err
			}
			p, vs, err := decode(name, data, a.cfg.Options())
			if err != nil {
				return err
			}
			for _, v := range vs.Warnings() {
				a.logger.Warn("payload warning", "file", name, "path", v.Path, "code", v.Code)
			}
			if err := vs.Err(); err != nil {
				return errors.Join(ErrInvalid, err)
			}

			out, err := apnscodec.Encode(p)
			if err != nil {
				return err
			}
			pushType := p.PushType()
			if err := apnscodec.CheckSize(out, pushType); err != nil {
				a.logger.Warn("payload exceeds APNs size limit", "file", name, "push_type", pushType, "bytes", len(out))
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
			return err
		},
	}
	return cmd
}
