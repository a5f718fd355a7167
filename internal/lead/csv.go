package lead

import (
	"encoding/csv"
	"io"

	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

// WriteCSV writes a header row of columns followed by one row per lead.
func WriteCSV(w io.Writer, columns []string, leads []model.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, l := range leads {
		for i, c := range columns {
			row[i] = Value(l, c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
