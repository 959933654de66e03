// Package archive unpacks uploaded invoice ZIP archives into the set
// of PDF entries eligible for analysis.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Domain errors for archive operations.
var (
	ErrUnreadable = errors.New("archive could not be read")
	ErrNoInvoices = errors.New("no PDF files found in the zip archive")
)

// Entry is a single invoice extracted from an archive. Name is the
// entry's path inside the archive and serves as the invoice identifier.
type Entry struct {
	Name string
	Data []byte
}

// Unpack reads a ZIP archive and returns its eligible invoice entries
// in archive order. Eligible entries end in .pdf (case-insensitive) and
// are not macOS resource-fork artifacts. Returns ErrNoInvoices when the
// archive is readable but carries no eligible entries.
func Unpack(data []byte) ([]Entry, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	var entries []Entry
	for _, f := range r.File {
		if !Eligible(f.Name) || f.FileInfo().IsDir() {
			continue
		}

		content, err := readEntry(f)
		if err != nil {
			// A corrupt member does not abort the batch; the entry is
			// carried with no data and declined downstream.
			entries = append(entries, Entry{Name: f.Name})
			continue
		}

		entries = append(entries, Entry{Name: f.Name, Data: content})
	}

	if len(entries) == 0 {
		return nil, ErrNoInvoices
	}

	return entries, nil
}

// Eligible reports whether an archive entry name identifies an invoice
// PDF. Entries under the __MACOSX prefix are resource forks, not
// documents.
func Eligible(name string) bool {
	if strings.HasPrefix(name, "__MACOSX") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
