// Command icdump prints the binary logs written by the instance counter.
//
// The log is a sequence of 12 byte big-endian records (timestamp, class
// address, maximum instance count). icdump prints the file size followed by
// one line per record:
//
//	Fri Feb 13 23:31:30 2009 0xdeadbeef 42
//
// Usage:
//
//	icdump [flags] file
//	icdump -tz UTC -format json counts.bin
//	icdump -compression auto counts.bin.zst
package main
