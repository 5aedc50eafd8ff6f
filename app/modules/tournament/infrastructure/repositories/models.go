package tournamentdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Snapshot is one serialized tournament state.
type Snapshot struct {
	bun.BaseModel `bun:"table:tournament_snapshots,alias:ts"`
	Key           string    `bun:"storage_key,pk,notnull,type:varchar(128)"`
	FormatVersion int       `bun:"format_version,notnull,default:0"`
	Payload       string    `bun:"payload,notnull,type:text"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
