package storage

import (
	"github.com/aluo96078/hookwire/condition"
	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/flag"
	"github.com/aluo96078/hookwire/view"
)

type viewHooks struct {
	actions    []HookAction
	procedures []*Procedure[event.ButtonEvent]
}

// ViewHookStorage holds lifecycle hooks keyed by view identity: user
// procedures and actions that run when a view's activation status
// changes, driven by a condition.Detector built from the same views.
type ViewHookStorage struct {
	onEnabled  map[*view.View]*viewHooks
	onDisabled map[*view.View]*viewHooks
	detector   condition.Detector
}

func (s *ViewHookStorage) registerView(v *view.View) {
	if s.onEnabled == nil {
		s.onEnabled = make(map[*view.View]*viewHooks)
	}
	if s.onDisabled == nil {
		s.onDisabled = make(map[*view.View]*viewHooks)
	}
	_, inEnabled := s.onEnabled[v]
	_, inDisabled := s.onDisabled[v]
	if !inEnabled && !inDisabled {
		s.detector.Observe(v)
	}
}

func (s *ViewHookStorage) AddActionOnEnabled(v *view.View, action HookAction) {
	s.registerView(v)
	h := s.onEnabled[v]
	if h == nil {
		h = &viewHooks{}
		s.onEnabled[v] = h
	}
	h.actions = append(h.actions, action)
}

func (s *ViewHookStorage) AddProcedureOnEnabled(v *view.View, proc *Procedure[event.ButtonEvent]) {
	s.registerView(v)
	h := s.onEnabled[v]
	if h == nil {
		h = &viewHooks{}
		s.onEnabled[v] = h
	}
	h.procedures = append(h.procedures, proc)
}

func (s *ViewHookStorage) AddActionOnDisabled(v *view.View, action HookAction) {
	s.registerView(v)
	h := s.onDisabled[v]
	if h == nil {
		h = &viewHooks{}
		s.onDisabled[v] = h
	}
	h.actions = append(h.actions, action)
}

func (s *ViewHookStorage) AddProcedureOnDisabled(v *view.View, proc *Procedure[event.ButtonEvent]) {
	s.registerView(v)
	h := s.onDisabled[v]
	if h == nil {
		h = &viewHooks{}
		s.onDisabled[v] = h
	}
	h.procedures = append(h.procedures, proc)
}

// Fetch drives the detector for one flag transition and accumulates every
// action and procedure registered against a view that changed as a
// result.
func (s *ViewHookStorage) Fetch(snapshot *flag.State, idx flag.Index, change condition.FlagChange) (actions []HookAction, procedures []*Procedure[event.ButtonEvent]) {
	for _, detected := range s.detector.Detect(snapshot, idx, change) {
		table := s.onEnabled
		if detected.Change == condition.ViewDisabled {
			table = s.onDisabled
		}
		if h, ok := table[detected.View]; ok {
			actions = append(actions, h.actions...)
			procedures = append(procedures, h.procedures...)
		}
	}
	return
}
