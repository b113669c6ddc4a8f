package sofadb

import (
	"encoding/csv"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Kind tags a report row.
type Kind string

const (
	KindError   Kind = "ERROR"
	KindWarning Kind = "WARNING"
	KindRetry   Kind = "RETRY"
)

const reportBanner = "SOFA database file check"

// Report appends tab-separated rows, one per warning or error, to a single
// file. The file starts with a banner and a column-header line and ends with
// a completion timestamp. The file is opened and closed around every write;
// no handle is held between operations.
type Report struct {
	Path string

	counts map[Kind]int
}

// CreateReport truncates or creates the report file and writes the banner
// and column-header lines.
func CreateReport(path string) (*Report, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create report")
	}
	w := csv.NewWriter(f)
	w.Comma = '\t'
	w.Write([]string{reportBanner, time.Now().Format(time.RFC3339)})
	w.Write([]string{"Type", "Operation", "Message", "File/Link"})
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "write report header")
	}
	return &Report{Path: path, counts: make(map[Kind]int)}, nil
}

// Add appends one row.
func (r *Report) Add(kind Kind, op, msg, link string) error {
	if err := r.append([]string{string(kind), op, msg, link}); err != nil {
		return err
	}
	r.counts[kind]++
	return nil
}

// Finish appends the completion timestamp line.
func (r *Report) Finish() error {
	return r.append([]string{"Completed", time.Now().Format(time.RFC3339)})
}

// Counts returns the number of rows added per kind.
func (r *Report) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(r.counts))
	for kind, n := range r.counts {
		counts[kind] = n
	}
	return counts
}

func (r *Report) append(row []string) error {
	f, err := os.OpenFile(r.Path, os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrap(err, "open report")
	}
	w := csv.NewWriter(f)
	w.Comma = '\t'
	w.Write(row)
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return errors.Wrap(err, "write report row")
	}
	return f.Close()
}
