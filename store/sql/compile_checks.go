package sqlstore

import "github.com/goliatone/go-vaultra/core"

var _ core.CredentialStore = (*ClientStateStore)(nil)
