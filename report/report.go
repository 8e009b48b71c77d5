// Package report renders partition tables and esppart errors for humans.
//
// The core packages return plain values and typed errors and never format
// output themselves; report is the display layer used by the command line
// tool.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/arloliu/esppart/errs"
	"github.com/arloliu/esppart/section"
	"github.com/arloliu/esppart/table"
)

// WriteTable writes an aligned listing of t followed by a usage summary.
func WriteTable(w io.Writer, t *table.Table) error {
	if t.Len() == 0 {
		_, err := fmt.Fprintln(w, "No partitions")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tTYPE\tSUBTYPE\tOFFSET\tEND\tSIZE\tFLAGS")

	var used, end uint64
	for _, e := range t.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t0x%x\t0x%x\t%s\t%s\n",
			e.Name, e.Type, e.SubType.Name(e.Type), e.Offset, e.End(), humanize.IBytes(uint64(e.Size)), e.Flags)
		used += uint64(e.Size)
		end = max(end, e.End())
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d partitions, %s allocated, flash end 0x%x (%s)\n",
		t.Len(), humanize.IBytes(used), end, humanize.IBytes(end))

	return err
}

type jsonEntry struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	SubType string `json:"subtype"`
	Offset  uint32 `json:"offset"`
	Size    uint32 `json:"size"`
	Flags   string `json:"flags,omitempty"`
}

// WriteJSON writes t as an indented JSON array of entries.
func WriteJSON(w io.Writer, t *table.Table) error {
	entries := t.Entries()
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonEntry{
			Name:    e.Name,
			Type:    e.Type.String(),
			SubType: e.SubType.Name(e.Type),
			Offset:  e.Offset,
			Size:    e.Size,
			Flags:   e.Flags.String(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

// Describe renders err as a diagnostic, adding whatever context its type
// carries. t is the table the error refers to and may be nil; when present
// it is used to show the flash ranges involved.
func Describe(t *table.Table, err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(err.Error())

	var (
		checksum  *errs.InvalidChecksumError
		overlap   *errs.OverlappingPartitionsError
		unaligned *errs.UnalignedPartitionError
		tooLarge  *errs.PartitionTooLargeError
		record    *errs.RecordError
		field     *errs.FieldError
	)

	switch {
	case errors.As(err, &checksum):
		fmt.Fprintf(&sb, "\n  stored MD5:   %x\n  computed MD5: %x", checksum.Expected, checksum.Computed)

	case errors.As(err, &overlap):
		writeRange(&sb, t, overlap.First)
		writeRange(&sb, t, overlap.Second)

	case errors.As(err, &unaligned):
		next := (uint64(unaligned.Offset) + uint64(unaligned.Alignment) - 1) / uint64(unaligned.Alignment) * uint64(unaligned.Alignment)
		fmt.Fprintf(&sb, "\n  hint: the next aligned offset is 0x%x", next)

	case errors.As(err, &tooLarge):
		writeRange(&sb, t, tooLarge.Name)

	case errors.As(err, &record):
		start := record.Index * section.RecordSize
		fmt.Fprintf(&sb, "\n  at bytes 0x%x-0x%x", start, start+section.RecordSize-1)

	case errors.As(err, &field):
		fmt.Fprintf(&sb, "\n  at line %d, column %q", field.Line, field.Field)

	case errors.Is(err, errs.ErrInvalidOtadataPartitionSize):
		if t != nil {
			for _, e := range t.Entries() {
				if e.IsOtadata() {
					fmt.Fprintf(&sb, "\n  %s is %s (0x%x bytes)", e.Name, humanize.IBytes(uint64(e.Size)), e.Size)
				}
			}
		}
	}

	return sb.String()
}

func writeRange(sb *strings.Builder, t *table.Table, name string) {
	if t == nil {
		return
	}
	if e, ok := t.Find(name); ok {
		fmt.Fprintf(sb, "\n  %-16s 0x%08x-0x%08x (%s)", e.Name, e.Offset, e.End(), humanize.IBytes(uint64(e.Size)))
	}
}
