package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type clientStateRecord struct {
	bun.BaseModel `bun:"table:vaultra_client_state,alias:vcs"`

	ID        string    `bun:"id,pk"`
	Key       string    `bun:"key,notnull"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
