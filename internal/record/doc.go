// Package record decodes the fixed-size binary records written by the
// instance counter.
//
// A log file is a plain sequence of 12 byte records with no header. Each
// record holds three big-endian uint32 values: the wall-clock time in epoch
// seconds, the address identifying the counted class and the new maximum
// number of live instances. The Reader splits a byte source into record
// sized chunks and Decode turns a chunk into a Record.
package record
