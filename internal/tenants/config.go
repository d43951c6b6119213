package tenants

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// SignatureConfig holds signature default settings as read from TOML.
// Pointer booleans distinguish "unset" from an explicit false.
type SignatureConfig struct {
	CustomMessage        string `toml:"custom_message"`
	Language             string `toml:"language"`
	TimeZone             string `toml:"time_zone"`
	SignerRole           string `toml:"signer_role"`
	SigningOrder         int    `toml:"signing_order"`
	Required             *bool  `toml:"required"`
	AuthenticationMethod string `toml:"authentication_method"`
	ExpirationDays       int    `toml:"expiration_days"`
	SendReminders        *bool  `toml:"send_reminders"`
	ReminderIntervalDays int    `toml:"reminder_interval_days"`
}

// DocumentConfig holds document default settings as read from TOML.
type DocumentConfig struct {
	SecurityLevel string `toml:"security_level"`
	DocumentType  string `toml:"document_type"`
	RetentionDays int    `toml:"retention_days"`
}

// Settings groups the signature and document defaults for one tenant.
type Settings struct {
	Signature SignatureConfig `toml:"signature"`
	Document  DocumentConfig  `toml:"document"`
}

// Config holds the deployment-wide defaults and per-tenant overrides.
// Overrides are sparse: unset fields fall back to Default.
type Config struct {
	Default   Settings            `toml:"default"`
	Overrides map[string]Settings `toml:"overrides"`
}

// Env maps default fields to environment variable names for override injection.
type Env struct {
	CustomMessage        string
	Language             string
	TimeZone             string
	SignerRole           string
	AuthenticationMethod string
	ExpirationDays       string
	SecurityLevel        string
	RetentionDays        string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero default fields from overlay and adds or replaces
// per-tenant overrides.
func (c *Config) Merge(overlay *Config) {
	c.Default.merge(&overlay.Default)

	if len(overlay.Overrides) > 0 && c.Overrides == nil {
		c.Overrides = make(map[string]Settings, len(overlay.Overrides))
	}
	for tenant, s := range overlay.Overrides {
		base := c.Overrides[tenant]
		base.merge(&s)
		c.Overrides[tenant] = base
	}
}

// Warnings reports settings that are valid but unusual.
func (c *Config) Warnings() []string {
	var warnings []string
	check := func(scope string, s Settings) {
		if s.Signature.ExpirationDays > 365 {
			warnings = append(warnings, fmt.Sprintf(
				"%s: signature expiration_days is very long (%d days)",
				scope, s.Signature.ExpirationDays,
			))
		}
	}

	check("default", c.Default)
	for _, tenant := range c.tenantIDs() {
		s := c.Default
		o := c.Overrides[tenant]
		s.merge(&o)
		check("tenant "+tenant, s)
	}
	return warnings
}

func (s *Settings) merge(overlay *Settings) {
	sig, o := &s.Signature, &overlay.Signature
	if o.CustomMessage != "" {
		sig.CustomMessage = o.CustomMessage
	}
	if o.Language != "" {
		sig.Language = o.Language
	}
	if o.TimeZone != "" {
		sig.TimeZone = o.TimeZone
	}
	if o.SignerRole != "" {
		sig.SignerRole = o.SignerRole
	}
	if o.SigningOrder != 0 {
		sig.SigningOrder = o.SigningOrder
	}
	if o.Required != nil {
		sig.Required = o.Required
	}
	if o.AuthenticationMethod != "" {
		sig.AuthenticationMethod = o.AuthenticationMethod
	}
	if o.ExpirationDays != 0 {
		sig.ExpirationDays = o.ExpirationDays
	}
	if o.SendReminders != nil {
		sig.SendReminders = o.SendReminders
	}
	if o.ReminderIntervalDays != 0 {
		sig.ReminderIntervalDays = o.ReminderIntervalDays
	}

	doc, od := &s.Document, &overlay.Document
	if od.SecurityLevel != "" {
		doc.SecurityLevel = od.SecurityLevel
	}
	if od.DocumentType != "" {
		doc.DocumentType = od.DocumentType
	}
	if od.RetentionDays != 0 {
		doc.RetentionDays = od.RetentionDays
	}
}

func (c *Config) loadDefaults() {
	sig := &c.Default.Signature
	if sig.CustomMessage == "" {
		sig.CustomMessage = "Please review and sign this document"
	}
	if sig.Language == "" {
		sig.Language = "en"
	}
	if sig.TimeZone == "" {
		sig.TimeZone = "UTC"
	}
	if sig.SignerRole == "" {
		sig.SignerRole = "Signer"
	}
	if sig.SigningOrder == 0 {
		sig.SigningOrder = 1
	}
	if sig.Required == nil {
		sig.Required = boolPtr(true)
	}
	if sig.AuthenticationMethod == "" {
		sig.AuthenticationMethod = "EMAIL"
	}
	if sig.ExpirationDays == 0 {
		sig.ExpirationDays = 30
	}
	if sig.SendReminders == nil {
		sig.SendReminders = boolPtr(true)
	}
	if sig.ReminderIntervalDays == 0 {
		sig.ReminderIntervalDays = 7
	}

	doc := &c.Default.Document
	if doc.SecurityLevel == "" {
		doc.SecurityLevel = "INTERNAL"
	}
	if doc.DocumentType == "" {
		doc.DocumentType = "DOCUMENT"
	}
	if doc.RetentionDays == 0 {
		doc.RetentionDays = 2555
	}
}

func (c *Config) loadEnv(env *Env) {
	sig := &c.Default.Signature
	doc := &c.Default.Document

	if env.CustomMessage != "" {
		if v := os.Getenv(env.CustomMessage); v != "" {
			sig.CustomMessage = v
		}
	}
	if env.Language != "" {
		if v := os.Getenv(env.Language); v != "" {
			sig.Language = v
		}
	}
	if env.TimeZone != "" {
		if v := os.Getenv(env.TimeZone); v != "" {
			sig.TimeZone = v
		}
	}
	if env.SignerRole != "" {
		if v := os.Getenv(env.SignerRole); v != "" {
			sig.SignerRole = v
		}
	}
	if env.AuthenticationMethod != "" {
		if v := os.Getenv(env.AuthenticationMethod); v != "" {
			sig.AuthenticationMethod = v
		}
	}
	if env.ExpirationDays != "" {
		if v := os.Getenv(env.ExpirationDays); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				sig.ExpirationDays = n
			}
		}
	}
	if env.SecurityLevel != "" {
		if v := os.Getenv(env.SecurityLevel); v != "" {
			doc.SecurityLevel = v
		}
	}
	if env.RetentionDays != "" {
		if v := os.Getenv(env.RetentionDays); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				doc.RetentionDays = n
			}
		}
	}
}

func (c *Config) validate() error {
	var errs []error
	errs = append(errs, validateSettings("default", c.Default)...)

	for _, tenant := range c.tenantIDs() {
		if tenant == "" {
			errs = append(errs, fmt.Errorf("tenant override with empty id"))
			continue
		}
		s := c.Default
		o := c.Overrides[tenant]
		s.merge(&o)
		errs = append(errs, validateSettings("tenant "+tenant, s)...)
	}

	return errors.Join(errs...)
}

func validateSettings(scope string, s Settings) []error {
	var errs []error
	if s.Signature.ExpirationDays <= 0 {
		errs = append(errs, fmt.Errorf("%s: signature expiration_days must be positive, got %d", scope, s.Signature.ExpirationDays))
	}
	if s.Signature.SigningOrder <= 0 {
		errs = append(errs, fmt.Errorf("%s: signature signing_order must be positive, got %d", scope, s.Signature.SigningOrder))
	}
	if s.Signature.ReminderIntervalDays <= 0 {
		errs = append(errs, fmt.Errorf("%s: signature reminder_interval_days must be positive, got %d", scope, s.Signature.ReminderIntervalDays))
	}
	if s.Document.RetentionDays <= 0 {
		errs = append(errs, fmt.Errorf("%s: document retention_days must be positive, got %d", scope, s.Document.RetentionDays))
	}
	return errs
}

func (c *Config) tenantIDs() []string {
	ids := make([]string, 0, len(c.Overrides))
	for id := range c.Overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func boolPtr(b bool) *bool {
	return &b
}
