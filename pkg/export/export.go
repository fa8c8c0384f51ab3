// Package export scans a site export folder: metadata descriptors under
// meta/ build the preference catalog, and per-tier value directories
// merge concrete values into it. The export is treated as an immutable
// snapshot; scanning is synchronous and deterministic (directory entries
// are visited in name order, file contents in document order).
package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/ianaindex"
)

// MalformedFileError marks a metadata or value file that could not be
// parsed. Scanners log it and continue; one bad file never aborts the
// analysis.
type MalformedFileError struct {
	Path string
	Err  error
}

func (e *MalformedFileError) Error() string {
	return fmt.Sprintf("malformed definition file %s: %v", e.Path, e.Err)
}

func (e *MalformedFileError) Unwrap() error { return e.Err }

// decodeFile parses one XML file into v. Exports written by older
// platform versions declare ISO-8859-1 and friends, so the decoder
// resolves any IANA charset name rather than insisting on UTF-8.
func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	dec.CharsetReader = charsetReader
	if err := dec.Decode(v); err != nil {
		return &MalformedFileError{Path: path, Err: err}
	}
	return nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}
