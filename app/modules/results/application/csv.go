package resultsservice

import (
	"fmt"
	"time"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

// EncodeCSV renders state as a results CSV file.
func EncodeCSV(state *tournamenttypes.State, exportedAt time.Time) ([]byte, error) {
	data, err := tabular.WriteCSV(Columns, Rows(Encode(state, exportedAt)))
	if err != nil {
		return nil, fmt.Errorf("failed to encode results CSV: %w", err)
	}
	return data, nil
}

// DecodeCSV parses a results CSV file.
func DecodeCSV(data []byte) (*tournamenttypes.State, error) {
	table, err := tabular.NewCSVParser().Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results CSV: %w", err)
	}
	return DecodeTable(table)
}
