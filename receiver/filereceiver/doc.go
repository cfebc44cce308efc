// Package filereceiver provides the built-in "File" receiver, which appends
// formatted log lines to a file.
//
// Lines go through a bufio.Writer; call Flush to push them to the file or
// set FlushEach for line-by-line durability. Close flushes, syncs and closes
// the file. Rotation is deliberately not provided.
package filereceiver
