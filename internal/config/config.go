// Package config loads the esppart command line configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/esppart/format"
	"github.com/arloliu/esppart/section"
	"github.com/arloliu/esppart/table"
)

// Config holds the settings shared by all esppart commands.
type Config struct {
	TableOffset string  `yaml:"table_offset"` // flash offset of the table, e.g. "0x8000"
	TableLength int     `yaml:"table_length"` // binary output is padded to this length
	MD5         bool    `yaml:"md5"`          // write and verify the MD5 record
	Compression string  `yaml:"compression"`  // archive codec: none, zstd, s2, lz4
	Output      string  `yaml:"output"`       // show format: table or json
	Logging     Logging `yaml:"logging"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the ESP-IDF defaults.
func DefaultConfig() *Config {
	return &Config{
		TableOffset: fmt.Sprintf("0x%x", section.DefaultOffset),
		TableLength: section.MaxTableLength,
		MD5:         true,
		Compression: "zstd",
		Output:      "table",
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults. Keys missing
// from the file keep their default values. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that every value can be turned into codec options.
func (c *Config) Validate() error {
	if _, err := c.tableOffset(); err != nil {
		return err
	}
	if c.TableLength < 0 {
		return fmt.Errorf("invalid table_length %d", c.TableLength)
	}
	if _, err := c.CompressionType(); err != nil {
		return err
	}
	switch c.Output {
	case "table", "json":
	default:
		return fmt.Errorf("invalid output %q: must be table or json", c.Output)
	}

	return nil
}

func (c *Config) tableOffset() (uint32, error) {
	v, err := strconv.ParseUint(c.TableOffset, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid table_offset %q: %w", c.TableOffset, err)
	}
	if v%section.TableSectorSize != 0 {
		return 0, fmt.Errorf("invalid table_offset %q: not aligned to 0x%x", c.TableOffset, section.TableSectorSize)
	}

	return uint32(v), nil
}

// CompressionType returns the archive codec.
func (c *Config) CompressionType() (format.CompressionType, error) {
	return format.ParseCompression(c.Compression)
}

// CSVOptions returns the options for table.DecodeCSV.
func (c *Config) CSVOptions() []table.CSVOption {
	offset, err := c.tableOffset()
	if err != nil {
		return nil
	}

	return []table.CSVOption{table.WithTableOffset(offset)}
}

// EncoderOptions returns the options for Table.EncodeBinary.
func (c *Config) EncoderOptions() []table.EncoderOption {
	return []table.EncoderOption{
		table.WithChecksum(c.MD5),
		table.WithTableLength(c.TableLength),
	}
}

// DecoderOptions returns the options for table.DecodeBinary.
func (c *Config) DecoderOptions() []table.DecoderOption {
	return []table.DecoderOption{table.WithChecksumVerification(c.MD5)}
}
