package services

import (
	"sync/atomic"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// Fingerprint identifies the connection-relevant part of the options:
// username, password, domain, subsite and URL concatenated in that order.
// The access token is compared separately by the lookup service.
func Fingerprint(opts domain.ConnectionOptions) string {
	return opts.Username.Value +
		opts.Password.Value +
		opts.Domain.Value +
		opts.Subsite.Value +
		opts.URL.Value
}

// ChangeDetector reports when connection options differ from the last
// options it saw. It is safe for concurrent use: for a given change
// exactly one caller observes true.
type ChangeDetector struct {
	last atomic.Pointer[string]
}

// NewChangeDetector creates a detector that has seen no options yet.
func NewChangeDetector() *ChangeDetector {
	return &ChangeDetector{}
}

// HasChanged stores the fingerprint of opts and reports whether it differs
// from the previously stored one. The first call always returns true.
func (d *ChangeDetector) HasChanged(opts domain.ConnectionOptions) bool {
	fp := Fingerprint(opts)
	for {
		current := d.last.Load()
		if current != nil && *current == fp {
			return false
		}
		if d.last.CompareAndSwap(current, &fp) {
			return true
		}
	}
}

// Forget clears the stored fingerprint so the next call reports a change.
func (d *ChangeDetector) Forget() {
	d.last.Store(nil)
}
