package remote

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/capabilities"
)

// Signature is a signature provider client. Requests are keyed by the local
// signature id.
type Signature struct {
	client *Client
}

var _ capabilities.SignaturePort = (*Signature)(nil)

func NewSignature(client *Client) *Signature {
	return &Signature{client: client}
}

func (s *Signature) CreateSignatureRequest(ctx context.Context, req capabilities.SignatureRequestDescriptor) (capabilities.ExternalSignature, error) {
	var out capabilities.ExternalSignature
	if err := s.client.do(ctx, http.MethodPost, "/signature-requests", req, &out); err != nil {
		return capabilities.ExternalSignature{}, err
	}
	if out.ExternalID == "" {
		return capabilities.ExternalSignature{}, errors.New("provider response missing external_id")
	}
	return out, nil
}

func (s *Signature) ResendNotification(ctx context.Context, id uuid.UUID) error {
	return s.client.do(ctx, http.MethodPost, "/signature-requests/"+id.String()+"/resend", nil, nil)
}

func (s *Signature) DeleteSignatureRequest(ctx context.Context, id uuid.UUID) error {
	return s.client.do(ctx, http.MethodDelete, "/signature-requests/"+id.String(), nil, nil)
}
