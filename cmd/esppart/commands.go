package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/esppart/report"
)

func (c *cli) newConvertCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a partition table between CSV and binary",
		Long: `Convert a partition table between its CSV and binary forms.

The input form is detected from its content. The output form is taken from
--to, then from the output file extension (.csv, .bin, .ptz), and otherwise
is the opposite of the input. Use "-" for stdin or stdout.

Example:
  esppart convert partitions.csv partitions.bin
  esppart convert --to csv partitions.bin -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, inForm, err := c.loadTable(cmd, args[0])
			if err != nil {
				return err
			}

			outForm := formFromPath(args[1], formCSV)
			if inForm == formCSV {
				outForm = formFromPath(args[1], formBinary)
			}
			if to != "" {
				if outForm, err = parseForm(to); err != nil {
					return err
				}
			}
			log.Debugf("Converting %s to %s", inForm, outForm)

			data, err := c.encodeTable(t, outForm)
			if err != nil {
				return err
			}

			return writeOutput(cmd, args[1], data)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "output format: csv, bin or archive")

	return cmd
}

func (c *cli) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input>...",
		Short: "Check partition tables against the bootloader rules",
		Long: `Validate one or more partition tables in any form.

Every file is checked and reported; the command fails if any of them is
invalid.

Example:
  esppart validate partitions.csv factory.bin`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// validation is the point of this command
			c.noVerify = false

			failed := 0
			for _, path := range args {
				t, form, err := c.loadTable(cmd, path)
				if err != nil {
					failed++
					var te *tableError
					if errors.As(err, &te) {
						fmt.Fprintln(cmd.OutOrStdout(), report.Describe(te.table, te.err))
					} else {
						fmt.Fprintln(cmd.OutOrStdout(), report.Describe(nil, err))
					}
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%s, %d partitions)\n", path, form, t.Len())
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d tables are invalid", failed, len(args))
			}

			return nil
		},
	}
}

func (c *cli) newShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <input>",
		Short: "Print a partition table",
		Long: `Print the entries of a partition table in any form.

Example:
  esppart show partitions.bin
  esppart show --output json partitions.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := c.loadTable(cmd, args[0])
			if err != nil {
				return err
			}

			if output == "" {
				output = c.cfg.Output
			}
			switch output {
			case "json":
				return report.WriteJSON(cmd.OutOrStdout(), t)
			case "table":
				return report.WriteTable(cmd.OutOrStdout(), t)
			default:
				return fmt.Errorf("invalid output %q: must be table or json", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json")

	return cmd
}

func (c *cli) newPackCmd() *cobra.Command {
	var compression string

	cmd := &cobra.Command{
		Use:   "pack <input> <output>",
		Short: "Pack a partition table into a compressed archive",
		Long: `Pack a partition table into a compressed archive sealed with an
xxHash64 of the binary table.

Example:
  esppart pack partitions.csv partitions.ptz
  esppart pack --compression lz4 partitions.bin partitions.ptz`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if compression != "" {
				c.cfg.Compression = compression
			}

			t, _, err := c.loadTable(cmd, args[0])
			if err != nil {
				return err
			}

			data, err := c.encodeTable(t, formArchive)
			if err != nil {
				return err
			}
			log.Infof("Packed %d partitions with %s into %s", t.Len(), c.cfg.Compression, humanize.IBytes(uint64(len(data))))

			return writeOutput(cmd, args[1], data)
		},
	}

	cmd.Flags().StringVar(&compression, "compression", "", "archive compression: none, zstd, s2, lz4 or snappy")

	return cmd
}

func (c *cli) newUnpackCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "unpack <archive> <output>",
		Short: "Extract a partition table from an archive",
		Long: `Extract the partition table from an archive created by pack.

The output is binary unless --to or the output extension selects CSV.

Example:
  esppart unpack partitions.ptz partitions.bin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, inForm, err := c.loadTable(cmd, args[0])
			if err != nil {
				return err
			}
			if inForm != formArchive {
				return fmt.Errorf("%s is a %s table, not an archive", args[0], inForm)
			}

			outForm := formFromPath(args[1], formBinary)
			if to != "" {
				if outForm, err = parseForm(to); err != nil {
					return err
				}
			}

			data, err := c.encodeTable(t, outForm)
			if err != nil {
				return err
			}

			return writeOutput(cmd, args[1], data)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "output format: csv or bin")

	return cmd
}
