package table

import (
	"github.com/arloliu/esppart/errs"
	"github.com/arloliu/esppart/format"
	"github.com/arloliu/esppart/internal/names"
)

// Validate checks the table against the rules a bootloader relies on and
// returns the first violation found. Checks run in a fixed order:
//
//  1. names are unique (*errs.DuplicatePartitionsError)
//  2. no two partitions overlap (*errs.OverlappingPartitionsError)
//  3. offsets are aligned, 64 KiB for app and 4 KiB otherwise (*errs.UnalignedPartitionError)
//  4. at most one app/factory (errs.ErrMultipleFactoryPartitions)
//  5. at most one data/ota, of exactly 0x2000 bytes (errs.ErrMultipleOtadataPartitions,
//     errs.ErrInvalidOtadataPartitionSize)
//  6. at least one app partition (errs.ErrNoAppPartition)
//  7. no partition above 16 MiB or past the 32-bit address space
//     (*errs.PartitionTooLargeError)
//
// Validate does not modify the table.
func (t *Table) Validate() error {
	checks := []func() error{
		t.checkNames,
		t.checkOverlaps,
		t.checkAlignment,
		t.checkFactory,
		t.checkOtadata,
		t.checkAppPresent,
		t.checkSizes,
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}

	return nil
}

func (t *Table) checkNames() error {
	tracker := names.NewTracker(len(t.entries))
	for _, e := range t.entries {
		if err := tracker.Track(e.Name); err != nil {
			return err
		}
	}

	return nil
}

func (t *Table) checkOverlaps() error {
	for i, a := range t.entries {
		for _, b := range t.entries[i+1:] {
			if a.Overlaps(b) {
				return &errs.OverlappingPartitionsError{First: a.Name, Second: b.Name}
			}
		}
	}

	return nil
}

func (t *Table) checkAlignment() error {
	for _, e := range t.entries {
		align := e.Type.Alignment()
		if e.Offset%align != 0 {
			return &errs.UnalignedPartitionError{Name: e.Name, Offset: e.Offset, Alignment: align}
		}
	}

	return nil
}

func (t *Table) checkFactory() error {
	if t.count(Entry.IsFactory) > 1 {
		return errs.ErrMultipleFactoryPartitions
	}

	return nil
}

func (t *Table) checkOtadata() error {
	if t.count(Entry.IsOtadata) > 1 {
		return errs.ErrMultipleOtadataPartitions
	}

	for _, e := range t.entries {
		if e.IsOtadata() && e.Size != format.OtadataSize {
			return errs.ErrInvalidOtadataPartitionSize
		}
	}

	return nil
}

func (t *Table) checkAppPresent() error {
	if t.count(Entry.IsApp) == 0 {
		return errs.ErrNoAppPartition
	}

	return nil
}

const addressSpace = 1 << 32

func (t *Table) checkSizes() error {
	for _, e := range t.entries {
		if e.Size > format.MaxPartitionSize || e.End() > addressSpace {
			return &errs.PartitionTooLargeError{Name: e.Name}
		}
	}

	return nil
}

func (t *Table) count(match func(Entry) bool) int {
	n := 0
	for _, e := range t.entries {
		if match(e) {
			n++
		}
	}

	return n
}
