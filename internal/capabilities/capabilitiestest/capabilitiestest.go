// Package capabilitiestest provides in-memory capability ports for tests.
package capabilitiestest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/capabilities"
)

// ErrRemote is the default error returned by ports configured to fail.
var ErrRemote = errors.New("remote capability failure")

// Content is an in-memory ContentPort.
type Content struct {
	mu      sync.Mutex
	objects map[uuid.UUID][]byte
	Calls   map[string]int
	// StoreErr, ReadErr and DeleteErr are returned by the matching call when set.
	StoreErr  error
	ReadErr   error
	DeleteErr error
}

func NewContent() *Content {
	return &Content{objects: map[uuid.UUID][]byte{}, Calls: map[string]int{}}
}

// Locator is the storage path Content reports for id.
func (c *Content) Locator(id uuid.UUID) string {
	return "memory://content/" + id.String()
}

func (c *Content) StoreContent(ctx context.Context, id uuid.UUID, data []byte, mimeType string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["store"]++
	if c.StoreErr != nil {
		return "", c.StoreErr
	}
	c.objects[id] = bytes.Clone(data)
	return c.Locator(id), nil
}

func (c *Content) GetContentStream(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["read"]++
	if c.ReadErr != nil {
		return nil, c.ReadErr
	}
	data, ok := c.objects[id]
	if !ok {
		return nil, fmt.Errorf("content %s not found", id)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (c *Content) DeleteContent(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["delete"]++
	if c.DeleteErr != nil {
		return c.DeleteErr
	}
	delete(c.objects, id)
	return nil
}

// Count returns the number of calls made to op.
func (c *Content) Count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Calls[op]
}

// Version is an in-memory VersionPort. When Content is set, current versions
// replace the content held there, as a single adapter serving both ports does.
type Version struct {
	mu        sync.Mutex
	Content   *Content
	Created   []capabilities.VersionDescriptor
	Deleted   []uuid.UUID
	CreateErr error
	DeleteErr error
}

func (v *Version) CreateVersion(ctx context.Context, d capabilities.VersionDescriptor, data []byte) (capabilities.VersionDescriptor, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.CreateErr != nil {
		return capabilities.VersionDescriptor{}, v.CreateErr
	}
	d.StoragePath = fmt.Sprintf("memory://versions/%s/%d", d.DocumentID, d.VersionNumber)
	d.FileSize = int64(len(data))
	if v.Content != nil && d.Current {
		v.Content.mu.Lock()
		v.Content.objects[d.DocumentID] = bytes.Clone(data)
		v.Content.mu.Unlock()
	}
	v.Created = append(v.Created, d)
	return d, nil
}

func (v *Version) DeleteVersion(ctx context.Context, id uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.DeleteErr != nil {
		return v.DeleteErr
	}
	v.Deleted = append(v.Deleted, id)
	return nil
}

// Search is an in-memory SearchPort.
type Search struct {
	mu        sync.Mutex
	Indexed   map[uuid.UUID]capabilities.IndexedDocument
	Removed   []uuid.UUID
	IndexErr  error
	RemoveErr error
}

func NewSearch() *Search {
	return &Search{Indexed: map[uuid.UUID]capabilities.IndexedDocument{}}
}

func (s *Search) IndexDocument(ctx context.Context, doc capabilities.IndexedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.IndexErr != nil {
		return s.IndexErr
	}
	s.Indexed[doc.ID] = doc
	return nil
}

func (s *Search) RemoveFromIndex(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Removed = append(s.Removed, id)
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	delete(s.Indexed, id)
	return nil
}

// Lookup returns the indexed projection for id.
func (s *Search) Lookup(id uuid.UUID) (capabilities.IndexedDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.Indexed[id]
	return d, ok
}

// Signature is an in-memory SignaturePort.
type Signature struct {
	mu        sync.Mutex
	Requests  []capabilities.SignatureRequestDescriptor
	Resent    []uuid.UUID
	Deleted   []uuid.UUID
	CreateErr error
	ResendErr error
	DeleteErr error
	// SigningURL is returned with every created request when set.
	SigningURL string
}

func (s *Signature) CreateSignatureRequest(ctx context.Context, req capabilities.SignatureRequestDescriptor) (capabilities.ExternalSignature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return capabilities.ExternalSignature{}, s.CreateErr
	}
	s.Requests = append(s.Requests, req)
	return capabilities.ExternalSignature{
		ExternalID: "ext-" + req.ID.String(),
		SigningURL: s.SigningURL,
	}, nil
}

func (s *Signature) ResendNotification(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resent = append(s.Resent, id)
	return s.ResendErr
}

func (s *Signature) DeleteSignatureRequest(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, id)
	return s.DeleteErr
}

// ResendCount returns the number of resend attempts.
func (s *Signature) ResendCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Resent)
}

// Permission is an in-memory PermissionPort.
type Permission struct {
	mu        sync.Mutex
	Grants    map[uuid.UUID]capabilities.PermissionDescriptor
	Revoked   []uuid.UUID
	Updated   []capabilities.PermissionDescriptor
	GrantErr  error
	UpdateErr error
	RevokeErr error
	CheckErr  error
}

func NewPermission() *Permission {
	return &Permission{Grants: map[uuid.UUID]capabilities.PermissionDescriptor{}}
}

func (p *Permission) GrantPermission(ctx context.Context, d capabilities.PermissionDescriptor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.GrantErr != nil {
		return p.GrantErr
	}
	p.Grants[d.ID] = d
	return nil
}

func (p *Permission) UpdatePermission(ctx context.Context, d capabilities.PermissionDescriptor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Updated = append(p.Updated, d)
	if p.UpdateErr != nil {
		return p.UpdateErr
	}
	p.Grants[d.ID] = d
	return nil
}

func (p *Permission) RevokePermission(ctx context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Revoked = append(p.Revoked, id)
	if p.RevokeErr != nil {
		return p.RevokeErr
	}
	delete(p.Grants, id)
	return nil
}

func (p *Permission) HasPermission(
	ctx context.Context,
	resourceID uuid.UUID,
	resourceType string,
	principalID uuid.UUID,
	principalType string,
	permissionType string,
) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.CheckErr != nil {
		return false, p.CheckErr
	}
	for _, g := range p.Grants {
		if g.ResourceID == resourceID &&
			g.PrincipalID == principalID &&
			g.PermissionType == permissionType &&
			g.Granted {
			return true, nil
		}
	}
	return false, nil
}
