// Package dump prints instance-count logs.
//
// A dump starts with the size of the input in bytes followed by one line per
// record in file order. The text format renders each record as
//
//	Fri Feb 13 23:31:30 2009 0xdeadbeef 42
//
// that is, a ctime style timestamp, the address in lowercase hexadecimal and
// the maximum instance count in decimal. A JSON lines format is available
// for machine consumption.
package dump
