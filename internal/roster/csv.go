package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV serializes the roster with a Nickname,Points header row,
// one entry per line, in the order Reconcile produced.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Nickname", "Points"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Nickname, strconv.Itoa(e.Points)}); err != nil {
			return fmt.Errorf("failed to write CSV row for %q: %w", e.Nickname, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
