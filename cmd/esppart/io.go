package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/esppart/section"
	"github.com/arloliu/esppart/table"
)

// tableForm is one of the on-disk representations of a partition table.
type tableForm int

const (
	formCSV tableForm = iota
	formBinary
	formArchive
)

func (f tableForm) String() string {
	switch f {
	case formCSV:
		return "csv"
	case formBinary:
		return "binary"
	case formArchive:
		return "archive"
	default:
		return "unknown"
	}
}

func parseForm(s string) (tableForm, error) {
	switch strings.ToLower(s) {
	case "csv":
		return formCSV, nil
	case "bin", "binary":
		return formBinary, nil
	case "archive", "ptz":
		return formArchive, nil
	default:
		return 0, fmt.Errorf("unknown table format %q: must be csv, bin or archive", s)
	}
}

// detectForm identifies the representation from the leading bytes.
func detectForm(data []byte) tableForm {
	if _, err := section.ParseArchiveHeader(data); err == nil {
		return formArchive
	}
	if len(data) >= section.RecordSize &&
		(section.IsEntryRecord(data) || section.IsChecksumRecord(data) || section.IsEndMarker(data)) {
		return formBinary
	}

	return formCSV
}

// formFromPath guesses the representation from a file extension.
func formFromPath(path string, fallback tableForm) tableForm {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return formCSV
	case ".bin":
		return formBinary
	case ".ptz":
		return formArchive
	default:
		return fallback
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint: gosec
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Infof("Wrote %s (%s)", path, humanize.IBytes(uint64(len(data))))

	return nil
}

// loadTable reads and decodes a table in any representation. The table is
// validated unless --no-verify is set.
func (c *cli) loadTable(cmd *cobra.Command, path string) (*table.Table, tableForm, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, 0, err
	}

	form := detectForm(data)
	log.Debugf("Reading %s as %s (%s)", path, form, humanize.IBytes(uint64(len(data))))

	var t *table.Table
	switch form {
	case formArchive:
		t, err = table.Unpack(data, c.cfg.DecoderOptions()...)
	case formBinary:
		t, err = table.DecodeBinary(data, c.cfg.DecoderOptions()...)
	default:
		t, err = table.DecodeCSV(string(data), c.cfg.CSVOptions()...)
	}
	if err != nil {
		return nil, form, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Decoded %d partitions from %s", t.Len(), path)

	if !c.noVerify {
		if err := t.Validate(); err != nil {
			return nil, form, &tableError{table: t, err: fmt.Errorf("%s: %w", path, err)}
		}
	}

	return t, form, nil
}

// encodeTable renders t in the requested representation.
func (c *cli) encodeTable(t *table.Table, form tableForm) ([]byte, error) {
	switch form {
	case formCSV:
		return []byte(t.EncodeCSV()), nil
	case formBinary:
		return t.EncodeBinary(c.cfg.EncoderOptions()...), nil
	case formArchive:
		compression, err := c.cfg.CompressionType()
		if err != nil {
			return nil, err
		}
		return t.Pack(compression, c.cfg.EncoderOptions()...)
	default:
		return nil, fmt.Errorf("unsupported output form %s", form)
	}
}
