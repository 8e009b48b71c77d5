package table

import (
	"fmt"

	"github.com/arloliu/esppart/internal/options"
	"github.com/arloliu/esppart/section"
)

// CSVConfig holds the CSV decoder settings.
type CSVConfig struct {
	tableOffset uint32
}

func newCSVConfig() *CSVConfig {
	return &CSVConfig{tableOffset: section.DefaultOffset}
}

// firstOffset is where automatic placement starts: the sector after the table.
func (c *CSVConfig) firstOffset() uint64 {
	return uint64(c.tableOffset) + section.TableSectorSize
}

// CSVOption configures DecodeCSV.
type CSVOption = options.Option[*CSVConfig]

// WithTableOffset sets the flash offset of the partition table. Entries with
// a blank offset are placed from the sector following it. The default is 0x8000.
func WithTableOffset(offset uint32) CSVOption {
	return options.New(func(c *CSVConfig) error {
		if offset%section.TableSectorSize != 0 {
			return fmt.Errorf("partition table offset 0x%x is not aligned to 0x%x", offset, section.TableSectorSize)
		}
		c.tableOffset = offset

		return nil
	})
}
