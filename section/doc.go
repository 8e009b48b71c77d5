// Package section defines the low-level binary records of an ESP-IDF
// partition table.
//
// A partition table occupies a 0xC00-byte region of flash (by default at
// offset 0x8000) and is a flat sequence of fixed 32-byte records:
//
//	┌──────────────────────────────────────────────┐
//	│ Entry record 0            (AA 50 ...)        │
//	│ Entry record 1                               │
//	│ ...                                          │
//	├──────────────────────────────────────────────┤
//	│ Checksum record, optional (EB EB FF.. + MD5) │
//	├──────────────────────────────────────────────┤
//	│ End marker                (FF x 32)          │
//	│ FF padding up to 0xC00                       │
//	└──────────────────────────────────────────────┘
//
// The checksum digest covers every byte before the checksum record, which
// is exactly the entry records.
//
// This package only knows about record layout. Table level concerns such as
// end marker search, checksum placement and validation live in the table
// package.
package section
