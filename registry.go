/*
 * Copyright the fmtstream authors. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package fmtstream

import "go.uber.org/zap"

type openerKey struct {
	handler Handler
	format  Format
}

// A Registry catalogs the handlers available for each format, the favorites
// used to break ties between them, and the openers dispatched to once a
// handler is chosen.
//
// All mutating operations are meant to run during program initialization,
// before any resolution; the Registry holds no lock. The package maintains a
// process-wide default instance reachable through the top-level functions,
// but an isolated instance from NewRegistry behaves identically and is the
// right tool for tests.
type Registry struct {
	log             *zap.Logger
	handlers        map[Format][]Handler
	favorites       map[Format]Handler
	globalFavorites map[Handler]bool
	openers         map[openerKey]Opener
	classifier      Classifier
	codings         CodingTable
}

// NewRegistry creates an empty Registry that logs nowhere.
func NewRegistry() *Registry {
	return NewRegistryLogger(zap.NewNop())
}

// NewRegistryLogger creates an empty Registry logging its informational
// notices and warnings to log.
func NewRegistryLogger(log *zap.Logger) *Registry {
	return &Registry{
		log:             log,
		handlers:        make(map[Format][]Handler),
		favorites:       make(map[Format]Handler),
		globalFavorites: make(map[Handler]bool),
		openers:         make(map[openerKey]Opener),
	}
}

// SetLogger replaces the registry's logger.
func (r *Registry) SetLogger(log *zap.Logger) {
	r.log = log
}

// SetClassifier installs the collaborator that classifies untyped resources.
func (r *Registry) SetClassifier(c Classifier) {
	r.classifier = c
}

// SetCodingTable installs the collaborator that supplies coding transforms.
func (r *Registry) SetCodingTable(t CodingTable) {
	r.codings = t
}

// Register registers h as a handler for format f. Registering a second
// handler for an already-populated format is legal and common; it only logs
// an informational notice. Registering the same handler twice under one
// format fails with a DuplicateRegistrationError and leaves the registry
// unchanged.
func (r *Registry) Register(f Format, h Handler) error {
	if h == nil {
		return &UsageError{API: "Register", Msg: "nil handler"}
	}
	for _, reg := range r.handlers[f] {
		if reg == h {
			return &DuplicateRegistrationError{Handler: h, Format: f}
		}
	}
	r.handlers[f] = append(r.handlers[f], h)
	if n := len(r.handlers[f]); n > 1 {
		r.log.Info("multiple handlers registered for format",
			zap.String("format", string(f)),
			zap.String("handler", h.Name()),
			zap.Int("count", n))
	}
	return nil
}

// RegisterOpener registers the opener dispatched to when h is resolved for
// format f. Registering a second opener for the same pair fails with a
// DuplicateRegistrationError.
func (r *Registry) RegisterOpener(f Format, h Handler, open Opener) error {
	if h == nil || open == nil {
		return &UsageError{API: "RegisterOpener", Msg: "nil handler or opener"}
	}
	key := openerKey{handler: h, format: f}
	if _, dup := r.openers[key]; dup {
		return &DuplicateRegistrationError{Handler: h, Format: f}
	}
	r.openers[key] = open
	return nil
}

// SetGlobalFavorite marks h as favored across all formats. A global favorite
// wins resolution for any format where it is the only registered handler
// also marked global. Marking the same handler twice fails with an
// AlreadyGlobalFavoriteError.
func (r *Registry) SetGlobalFavorite(h Handler) error {
	if h == nil {
		return &UsageError{API: "SetGlobalFavorite", Msg: "nil handler"}
	}
	if r.globalFavorites[h] {
		return &AlreadyGlobalFavoriteError{Handler: h}
	}
	r.globalFavorites[h] = true
	return nil
}

// SetFormatFavorite marks h as the favorite for format f, overriding global
// favorites during resolution for that format. The handler must already be
// registered under f, or the call fails with an UnregisteredHandlerError and
// the registry is unchanged. Overwriting an existing favorite is legal and
// logs a warning.
func (r *Registry) SetFormatFavorite(f Format, h Handler) error {
	if h == nil {
		return &UsageError{API: "SetFormatFavorite", Msg: "nil handler"}
	}
	registered := false
	for _, reg := range r.handlers[f] {
		if reg == h {
			registered = true
			break
		}
	}
	if !registered {
		return &UnregisteredHandlerError{Handler: h, Format: f}
	}
	if prev, ok := r.favorites[f]; ok {
		r.log.Warn("overwriting format favorite",
			zap.String("format", string(f)),
			zap.String("previous", prev.Name()),
			zap.String("handler", h.Name()))
	}
	r.favorites[f] = h
	return nil
}

// Resolve picks the handler to use for format f:
//
//  1. The per-format favorite, if one is set.
//  2. The sole registered handler, if exactly one is registered.
//  3. With several registered, the one of them that is a global favorite,
//     if exactly one of them is.
//
// Anything else fails: NoHandlerError when nothing is registered, and
// AmbiguousHandlerError, naming all candidates, when several handlers are
// registered and favorites do not single one out.
func (r *Registry) Resolve(f Format) (Handler, error) {
	if fav, ok := r.favorites[f]; ok {
		return fav, nil
	}
	regs := r.handlers[f]
	switch len(regs) {
	case 0:
		return nil, &NoHandlerError{Format: f}
	case 1:
		return regs[0], nil
	}
	var globals []Handler
	for _, h := range regs {
		if r.globalFavorites[h] {
			globals = append(globals, h)
		}
	}
	if len(globals) == 1 {
		return globals[0], nil
	}
	return nil, &AmbiguousHandlerError{Format: f, Candidates: append([]Handler(nil), regs...)}
}

// Candidates returns the handlers registered for format f, in registration
// order. The slice is a copy.
func (r *Registry) Candidates(f Format) []Handler {
	return append([]Handler(nil), r.handlers[f]...)
}

// Formats returns every format h is registered under.
func (r *Registry) Formats(h Handler) []Format {
	var fs []Format
	for f, regs := range r.handlers {
		for _, reg := range regs {
			if reg == h {
				fs = append(fs, f)
				break
			}
		}
	}
	return fs
}

// WithOverrides runs fn against a temporarily emptied registry. The current
// handlers, favorites and openers are snapshotted and cleared before fn, so
// fn can register a scratch handler set and resolve against it without
// interference; on every exit path, including a panic in fn, the snapshot is
// merged back: original handlers and openers are restored (skipping any the
// scratch set re-registered) and original favorites win over scratch ones.
// Registrations made by fn for formats the snapshot did not cover persist.
//
// The classifier, coding table and logger are left in place. Like every
// other mutating operation, WithOverrides is not safe for concurrent use.
func (r *Registry) WithOverrides(fn func() error) error {
	snap := struct {
		handlers        map[Format][]Handler
		favorites       map[Format]Handler
		globalFavorites map[Handler]bool
		openers         map[openerKey]Opener
	}{
		handlers:        r.handlers,
		favorites:       r.favorites,
		globalFavorites: r.globalFavorites,
		openers:         r.openers,
	}
	r.handlers = make(map[Format][]Handler)
	r.favorites = make(map[Format]Handler)
	r.globalFavorites = make(map[Handler]bool)
	r.openers = make(map[openerKey]Opener)

	defer func() {
		for f, regs := range snap.handlers {
			for _, h := range regs {
				dup := false
				for _, cur := range r.handlers[f] {
					if cur == h {
						dup = true
						break
					}
				}
				if !dup {
					r.handlers[f] = append(r.handlers[f], h)
				}
			}
		}
		for f, h := range snap.favorites {
			r.favorites[f] = h
		}
		for h := range snap.globalFavorites {
			r.globalFavorites[h] = true
		}
		for key, open := range snap.openers {
			r.openers[key] = open
		}
	}()

	return fn()
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// functions.
func Default() *Registry {
	return defaultRegistry
}

// Register registers a handler in the default registry.
func Register(f Format, h Handler) error {
	return defaultRegistry.Register(f, h)
}

// RegisterOpener registers an opener in the default registry.
func RegisterOpener(f Format, h Handler, open Opener) error {
	return defaultRegistry.RegisterOpener(f, h, open)
}

// SetGlobalFavorite marks a global favorite in the default registry.
func SetGlobalFavorite(h Handler) error {
	return defaultRegistry.SetGlobalFavorite(h)
}

// SetFormatFavorite marks a per-format favorite in the default registry.
func SetFormatFavorite(f Format, h Handler) error {
	return defaultRegistry.SetFormatFavorite(f, h)
}

// Resolve picks a handler for f from the default registry.
func Resolve(f Format) (Handler, error) {
	return defaultRegistry.Resolve(f)
}
