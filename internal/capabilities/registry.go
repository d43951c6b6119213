package capabilities

import "slices"

// Handle is a present capability implementation of the given Kind.
type Handle struct {
	Kind Kind
	Port any
}

// Ports holds the capability implementations configured for a deployment.
// Nil fields are unavailable.
type Ports struct {
	Content    ContentPort
	Version    VersionPort
	Search     SearchPort
	Signature  SignaturePort
	Permission PermissionPort
}

// Registry answers, per capability kind, whether an implementation is present.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	ports Ports
}

// NewRegistry creates a Registry over the given ports.
func NewRegistry(ports Ports) *Registry {
	return &Registry{ports: ports}
}

// Content returns the content port if configured.
func (r *Registry) Content() (ContentPort, bool) {
	return r.ports.Content, r.ports.Content != nil
}

// Version returns the version port if configured.
func (r *Registry) Version() (VersionPort, bool) {
	return r.ports.Version, r.ports.Version != nil
}

// Search returns the search port if configured.
func (r *Registry) Search() (SearchPort, bool) {
	return r.ports.Search, r.ports.Search != nil
}

// Signature returns the signature port if configured.
func (r *Registry) Signature() (SignaturePort, bool) {
	return r.ports.Signature, r.ports.Signature != nil
}

// Permission returns the permission port if configured.
func (r *Registry) Permission() (PermissionPort, bool) {
	return r.ports.Permission, r.ports.Permission != nil
}

// Lookup returns the handle for kind, or false if it is not configured.
func (r *Registry) Lookup(kind Kind) (Handle, bool) {
	var port any
	switch kind {
	case KindContent:
		if p, ok := r.Content(); ok {
			port = p
		}
	case KindVersion:
		if p, ok := r.Version(); ok {
			port = p
		}
	case KindSearch:
		if p, ok := r.Search(); ok {
			port = p
		}
	case KindSignature:
		if p, ok := r.Signature(); ok {
			port = p
		}
	case KindPermission:
		if p, ok := r.Permission(); ok {
			port = p
		}
	}

	if port == nil {
		return Handle{}, false
	}
	return Handle{Kind: kind, Port: port}, true
}

// Available lists the configured kinds in Kinds order.
func (r *Registry) Available() []Kind {
	return slices.DeleteFunc(slices.Clone(Kinds), func(k Kind) bool {
		_, ok := r.Lookup(k)
		return !ok
	})
}
