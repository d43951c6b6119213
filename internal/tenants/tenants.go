// Package tenants provides read-only access to per-tenant signature and
// document defaults.
package tenants

// Signature holds the resolved signature defaults for a tenant.
type Signature struct {
	CustomMessage        string `json:"custom_message"`
	Language             string `json:"language"`
	TimeZone             string `json:"time_zone"`
	SignerRole           string `json:"signer_role"`
	SigningOrder         int    `json:"signing_order"`
	Required             bool   `json:"required"`
	AuthenticationMethod string `json:"authentication_method"`
	ExpirationDays       int    `json:"expiration_days"`
	SendReminders        bool   `json:"send_reminders"`
	ReminderIntervalDays int    `json:"reminder_interval_days"`
}

// Document holds the resolved document defaults for a tenant.
type Document struct {
	SecurityLevel string `json:"security_level"`
	DocumentType  string `json:"document_type"`
	RetentionDays int    `json:"retention_days"`
}

// Defaults is the complete set of defaults for a tenant.
type Defaults struct {
	Signature Signature `json:"signature"`
	Document  Document  `json:"document"`
}

// Provider returns tenant defaults. Implementations must be safe for concurrent use.
type Provider interface {
	// Defaults returns the defaults for tenantID, falling back to the
	// deployment-wide defaults for unknown or empty tenant ids.
	Defaults(tenantID string) Defaults
}

type provider struct {
	base      Defaults
	overrides map[string]Defaults
}

// NewProvider resolves every tenant override against the deployment defaults.
// cfg must already be finalized.
func NewProvider(cfg *Config) Provider {
	p := &provider{
		base:      resolve(cfg.Default),
		overrides: make(map[string]Defaults, len(cfg.Overrides)),
	}

	for tenant, o := range cfg.Overrides {
		s := cfg.Default
		s.merge(&o)
		p.overrides[tenant] = resolve(s)
	}

	return p
}

// Static returns a Provider that yields d for every tenant.
func Static(d Defaults) Provider {
	return &provider{base: d}
}

func (p *provider) Defaults(tenantID string) Defaults {
	if d, ok := p.overrides[tenantID]; ok {
		return d
	}
	return p.base
}

func resolve(s Settings) Defaults {
	return Defaults{
		Signature: Signature{
			CustomMessage:        s.Signature.CustomMessage,
			Language:             s.Signature.Language,
			TimeZone:             s.Signature.TimeZone,
			SignerRole:           s.Signature.SignerRole,
			SigningOrder:         s.Signature.SigningOrder,
			Required:             deref(s.Signature.Required),
			AuthenticationMethod: s.Signature.AuthenticationMethod,
			ExpirationDays:       s.Signature.ExpirationDays,
			SendReminders:        deref(s.Signature.SendReminders),
			ReminderIntervalDays: s.Signature.ReminderIntervalDays,
		},
		Document: Document{
			SecurityLevel: s.Document.SecurityLevel,
			DocumentType:  s.Document.DocumentType,
			RetentionDays: s.Document.RetentionDays,
		},
	}
}

func deref(b *bool) bool {
	return b != nil && *b
}
