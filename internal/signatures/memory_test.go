package signatures_test

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/internal/signatures"
	"github.com/JaimeStill/signet/internal/tenants"
)

// memoryStore is an in-memory signatures.Store with row version checks.
type memoryStore struct {
	mu       sync.Mutex
	sigs     map[uuid.UUID]signatures.Signature
	requests map[uuid.UUID]signatures.Request
	writes   int
	// attachErr fails AttachRequest when set.
	attachErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sigs:     map[uuid.UUID]signatures.Signature{},
		requests: map[uuid.UUID]signatures.Request{},
	}
}

func (s *memoryStore) Find(ctx context.Context, id uuid.UUID) (signatures.Signature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, ok := s.sigs[id]
	if !ok {
		return signatures.Signature{}, signatures.ErrNotFound
	}
	return sig, nil
}

func (s *memoryStore) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]signatures.Signature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []signatures.Signature{}
	for _, sig := range s.sigs {
		if sig.DocumentID == documentID {
			out = append(out, sig)
		}
	}
	return out, nil
}

func (s *memoryStore) CountByStatus(ctx context.Context, documentID uuid.UUID, status signatures.Status) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sig := range s.sigs {
		if sig.DocumentID == documentID && sig.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) Insert(ctx context.Context, sig signatures.Signature) (signatures.Signature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sigs[sig.ID]; ok {
		return signatures.Signature{}, signatures.ErrConflict
	}
	s.writes++
	sig.RowVersion = 1
	sig.CreatedAt = time.Now()
	sig.UpdatedAt = sig.CreatedAt
	s.sigs[sig.ID] = sig
	return sig, nil
}

func (s *memoryStore) Update(ctx context.Context, sig signatures.Signature) (signatures.Signature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateSignature(sig)
}

func (s *memoryStore) updateSignature(sig signatures.Signature) (signatures.Signature, error) {
	existing, ok := s.sigs[sig.ID]
	if !ok {
		return signatures.Signature{}, signatures.ErrNotFound
	}
	if existing.RowVersion != sig.RowVersion {
		return signatures.Signature{}, signatures.ErrConflict
	}
	s.writes++
	sig.RowVersion++
	sig.UpdatedAt = time.Now()
	s.sigs[sig.ID] = sig
	return sig, nil
}

func (s *memoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sigs[id]; !ok {
		return signatures.ErrNotFound
	}
	s.writes++
	delete(s.sigs, id)
	for rid, r := range s.requests {
		if r.SignatureID == id {
			delete(s.requests, rid)
		}
	}
	return nil
}

func (s *memoryStore) AttachRequest(ctx context.Context, sig signatures.Signature, req signatures.Request) (signatures.Signature, signatures.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attachErr != nil {
		return signatures.Signature{}, signatures.Request{}, s.attachErr
	}
	updated, err := s.updateSignature(sig)
	if err != nil {
		return signatures.Signature{}, signatures.Request{}, err
	}
	req.RowVersion = 1
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	s.requests[req.ID] = req
	return updated, req, nil
}

func (s *memoryStore) ApplyStatus(ctx context.Context, sig *signatures.Signature, req signatures.Request) (signatures.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sig != nil {
		if _, err := s.updateSignature(*sig); err != nil {
			return signatures.Request{}, err
		}
	}
	return s.updateRequest(req)
}

func (s *memoryStore) FindRequest(ctx context.Context, id uuid.UUID) (signatures.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return signatures.Request{}, signatures.ErrRequestNotFound
	}
	return r, nil
}

func (s *memoryStore) FindRequestByReference(ctx context.Context, reference string) (signatures.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.Reference == reference {
			return r, nil
		}
	}
	return signatures.Request{}, signatures.ErrRequestNotFound
}

func (s *memoryStore) ListRequests(ctx context.Context, signatureID uuid.UUID) ([]signatures.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []signatures.Request{}
	for _, r := range s.requests {
		if r.SignatureID == signatureID {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b signatures.Request) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (s *memoryStore) UpdateRequest(ctx context.Context, req signatures.Request) (signatures.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateRequest(req)
}

func (s *memoryStore) updateRequest(req signatures.Request) (signatures.Request, error) {
	existing, ok := s.requests[req.ID]
	if !ok {
		return signatures.Request{}, signatures.ErrRequestNotFound
	}
	if existing.RowVersion != req.RowVersion {
		return signatures.Request{}, signatures.ErrConflict
	}
	req.NotificationSent = existing.NotificationSent || req.NotificationSent
	req.NotificationSentAt = cmp.Or(existing.NotificationSentAt, req.NotificationSentAt)
	req.ReminderSent = existing.ReminderSent || req.ReminderSent
	req.ReminderSentAt = cmp.Or(existing.ReminderSentAt, req.ReminderSentAt)
	req.RowVersion++
	req.UpdatedAt = time.Now()
	s.requests[req.ID] = req
	return req, nil
}

func (s *memoryStore) ListExpired(ctx context.Context, now time.Time) ([]signatures.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []signatures.Request{}
	for _, r := range s.requests {
		if r.Status == signatures.StatusPending && r.ExpirationDate != nil && r.ExpirationDate.Before(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryStore) MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) (signatures.Request, error) {
	return s.mark(id, func(r *signatures.Request) bool {
		if r.NotificationSent {
			return false
		}
		r.NotificationSent = true
		r.NotificationSentAt = &at
		return true
	})
}

func (s *memoryStore) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) (signatures.Request, error) {
	return s.mark(id, func(r *signatures.Request) bool {
		if r.ReminderSent {
			return false
		}
		r.ReminderSent = true
		r.ReminderSentAt = &at
		return true
	})
}

func (s *memoryStore) mark(id uuid.UUID, set func(r *signatures.Request) bool) (signatures.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return signatures.Request{}, signatures.ErrRequestNotFound
	}
	if set(&r) {
		r.RowVersion++
		s.requests[id] = r
	}
	return r, nil
}

// putRequest stores r directly, bypassing the workflow.
func (s *memoryStore) putRequest(r signatures.Request) signatures.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.RowVersion = 1
	s.requests[r.ID] = r
	return r
}

// putSignature stores sig directly, bypassing the workflow.
func (s *memoryStore) putSignature(sig signatures.Signature) signatures.Signature {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sig.ID == uuid.Nil {
		sig.ID = uuid.New()
	}
	sig.RowVersion = 1
	s.sigs[sig.ID] = sig
	return sig
}

func (s *memoryStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

var testDefaults = tenants.Defaults{
	Signature: tenants.Signature{
		CustomMessage:        "Please sign",
		Language:             "en",
		TimeZone:             "UTC",
		SignerRole:           "Signer",
		SigningOrder:         1,
		Required:             true,
		AuthenticationMethod: "EMAIL",
		ExpirationDays:       30,
		SendReminders:        true,
		ReminderIntervalDays: 3,
	},
}

func newSystem(store signatures.Store, port capabilities.SignaturePort) signatures.System {
	ports := capabilities.Ports{}
	if port != nil {
		ports.Signature = port
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return signatures.New(store, capabilities.NewRegistry(ports), tenants.Static(testDefaults), nil, logger)
}

func ptr[T any](v T) *T {
	return &v
}
