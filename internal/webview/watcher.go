// Package webview implements completion detection for bank authentication
// pages (3-D Secure) rendered in an embedded browser. The host forwards
// every navigation request to a RedirectWatcher; a request matching the
// configured redirect URLs means the challenge finished and must not be
// loaded by the browser.
package webview

import (
	"strings"
	"sync/atomic"
)

// State of a RedirectWatcher.
type State int32

const (
	// StateAwaitingRedirect means no matching navigation has been seen yet.
	StateAwaitingRedirect State = iota
	// StateCompleted means the redirect URL was reached and the completion
	// signal has fired.
	StateCompleted
)

// Policy decides whether a navigated-to URL terminates the authentication
// challenge. A URL is final iff it is prefix-equal to one of the configured
// redirect URLs. Prefix matching is the single supported policy: the
// backend appends query parameters to the return URL, so exact matching
// would miss real completions.
type Policy struct {
	redirectURLs []string
}

// NewPolicy creates a redirect policy for one or more known redirect URLs.
func NewPolicy(redirectURLs ...string) Policy {
	return Policy{redirectURLs: redirectURLs}
}

// Matches reports whether url is one of the configured redirect targets.
func (p Policy) Matches(url string) bool {
	for _, redirect := range p.redirectURLs {
		if redirect != "" && strings.HasPrefix(url, redirect) {
			return true
		}
	}
	return false
}

// Watcher observes navigation requests of an embedded web view and fires a
// completion signal at most once when the redirect policy matches. Safe for
// use from concurrent navigation callbacks.
type Watcher struct {
	policy    Policy
	completed atomic.Bool
	onPassed  func()
}

// NewWatcher creates a watcher in StateAwaitingRedirect. onPassed may be nil;
// when set, it is invoked exactly once, from the first matching
// ShouldProcessRequest call.
func NewWatcher(policy Policy, onPassed func()) *Watcher {
	return &Watcher{policy: policy, onPassed: onPassed}
}

// ShouldProcessRequest is asked for every navigation request. It returns
// true only for the first request matching the redirect policy; the host
// must then cancel the navigation. The completion signal fires on that
// first match and never again.
func (w *Watcher) ShouldProcessRequest(url string) bool {
	if !w.policy.Matches(url) {
		return false
	}
	if !w.completed.CompareAndSwap(false, true) {
		return false
	}

	if w.onPassed != nil {
		w.onPassed()
	}
	return true
}

// State returns the watcher's current state.
func (w *Watcher) State() State {
	if w.completed.Load() {
		return StateCompleted
	}
	return StateAwaitingRedirect
}
