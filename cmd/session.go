package cmd

import (
	"os"

	"github.com/acorntide/shelfd/internal/actions"
	"github.com/acorntide/shelfd/internal/catalog"
	"github.com/acorntide/shelfd/internal/store"
)

// newSession wires a fresh store against the configured catalog service.
// Every command invocation is one session, so user-triggered mutations
// are serialized by construction.
func newSession() (*store.Store, *actions.Actions) {
	st := store.New()
	client := catalog.NewClient(os.Getenv("SHELFD_API_BASE"))
	return st, actions.New(st, client)
}
