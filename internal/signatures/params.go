package signatures

import (
	"time"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/internal/tenants"
)

// Parameters are the provider-facing signature values after applying tenant defaults.
type Parameters struct {
	CustomMessage        string
	Language             string
	TimeZone             string
	SignerRole           string
	SigningOrder         int
	Required             bool
	AuthenticationMethod string
	ExpirationDate       time.Time
	SendReminders        bool
	ReminderIntervalDays int
}

// Resolve picks, for every overridable field, the value on sig when present
// and the tenant default otherwise. Expiration is sig's explicit date or now
// plus the tenant's expiration days.
func Resolve(sig Signature, defaults tenants.Signature, now time.Time) Parameters {
	p := Parameters{
		CustomMessage:        pick(sig.CustomMessage, defaults.CustomMessage),
		Language:             pick(sig.Language, defaults.Language),
		TimeZone:             pick(sig.TimeZone, defaults.TimeZone),
		SignerRole:           pick(sig.SignerRole, defaults.SignerRole),
		SigningOrder:         pick(sig.SigningOrder, defaults.SigningOrder),
		Required:             pick(sig.Required, defaults.Required),
		AuthenticationMethod: pick(sig.AuthenticationMethod, defaults.AuthenticationMethod),
		SendReminders:        defaults.SendReminders,
		ReminderIntervalDays: defaults.ReminderIntervalDays,
	}

	if sig.ExpirationDate != nil {
		p.ExpirationDate = *sig.ExpirationDate
	} else {
		p.ExpirationDate = now.AddDate(0, 0, defaults.ExpirationDays)
	}

	return p
}

func pick[T any](override *T, fallback T) T {
	if override != nil {
		return *override
	}
	return fallback
}

// Descriptor builds the provider request for sig with the resolved parameters.
func Descriptor(sig Signature, p Parameters) capabilities.SignatureRequestDescriptor {
	return capabilities.SignatureRequestDescriptor{
		ID:                   sig.ID,
		DocumentID:           sig.DocumentID,
		DocumentVersionID:    sig.DocumentVersionID,
		SignerPartyID:        sig.SignerPartyID,
		SignerName:           sig.SignerName,
		SignerEmail:          sig.SignerEmail,
		SignatureType:        sig.SignatureType,
		SignatureFormat:      sig.SignatureFormat,
		Page:                 sig.Page,
		PositionX:            sig.PositionX,
		PositionY:            sig.PositionY,
		Width:                sig.Width,
		Height:               sig.Height,
		Reason:               sig.Reason,
		Location:             sig.Location,
		CustomMessage:        p.CustomMessage,
		Language:             p.Language,
		TimeZone:             p.TimeZone,
		SignerRole:           p.SignerRole,
		SigningOrder:         p.SigningOrder,
		Required:             p.Required,
		AuthenticationMethod: p.AuthenticationMethod,
		ExpirationDate:       p.ExpirationDate,
		SendReminders:        p.SendReminders,
		ReminderIntervalDays: p.ReminderIntervalDays,
		TenantID:             sig.TenantID,
	}
}
