package api

import (
	"github.com/JaimeStill/signet/internal/documents"
	"github.com/JaimeStill/signet/internal/folders"
	"github.com/JaimeStill/signet/internal/permissions"
	"github.com/JaimeStill/signet/internal/providers"
	"github.com/JaimeStill/signet/internal/signatures"
	"github.com/JaimeStill/signet/internal/verifications"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents     documents.System
	Folders       folders.System
	Permissions   permissions.System
	Providers     providers.System
	Signatures    signatures.System
	Verifications verifications.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	docsSystem := documents.New(
		documents.NewStore(db),
		runtime.Capabilities,
		runtime.Tenants,
		runtime.Logger,
	)

	foldersSystem := folders.New(
		folders.NewStore(db),
		runtime.Logger,
	)

	providersSystem := providers.New(
		providers.NewStore(db),
		runtime.Logger,
	)

	permsSystem := permissions.New(
		permissions.NewStore(db),
		runtime.Capabilities,
		runtime.Logger,
	)

	sigsSystem := signatures.New(
		signatures.NewStore(db),
		runtime.Capabilities,
		runtime.Tenants,
		providersSystem,
		runtime.Logger,
	)

	verificationsSystem := verifications.New(
		verifications.NewStore(db),
		sigsSystem,
		runtime.Logger,
	)

	return &Domain{
		Documents:     docsSystem,
		Folders:       foldersSystem,
		Permissions:   permsSystem,
		Providers:     providersSystem,
		Signatures:    sigsSystem,
		Verifications: verificationsSystem,
	}
}
