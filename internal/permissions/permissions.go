package permissions

import (
	"fmt"
	"sync"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/config"
)

type Decision string

const (
	DecisionAllow     Decision = "allow"
	DecisionDeny      Decision = "deny"
	DecisionAllowOnce Decision = "allow_once"
	DecisionDenyOnce  Decision = "deny_once"
)

// Manager applies the configured permission of each action kind. "ask"
// permissions are resolved through the prompt function; allow/deny answers
// are remembered for the lifetime of the manager.
type Manager struct {
	mu       sync.RWMutex
	config   *config.PermissionConfig
	cache    map[catalog.Kind]Decision
	promptFn PromptFunc
}

type PromptFunc func(kind catalog.Kind, tool, details string) (Decision, error)

func NewManager(cfg *config.PermissionConfig, promptFn PromptFunc) *Manager {
	return &Manager{
		config:   cfg,
		cache:    make(map[catalog.Kind]Decision),
		promptFn: promptFn,
	}
}

type CheckResult struct {
	Allowed bool
	Reason  string
}

func (m *Manager) Check(kind catalog.Kind, tool string, details string) (*CheckResult, error) {
	switch m.Permission(kind) {
	case config.PermissionAllow:
		return &CheckResult{Allowed: true, Reason: "allowed by configuration"}, nil
	case config.PermissionDeny:
		return &CheckResult{Allowed: false, Reason: "denied by configuration"}, nil
	default:
		return m.handleAskPermission(kind, tool, details)
	}
}

func (m *Manager) handleAskPermission(kind catalog.Kind, tool, details string) (*CheckResult, error) {
	m.mu.RLock()
	decision, cached := m.cache[kind]
	promptFn := m.promptFn
	m.mu.RUnlock()

	if cached {
		switch decision {
		case DecisionAllow:
			return &CheckResult{Allowed: true, Reason: "previously allowed"}, nil
		case DecisionDeny:
			return &CheckResult{Allowed: false, Reason: "previously denied"}, nil
		}
	}

	if promptFn == nil {
		return &CheckResult{Allowed: false, Reason: "no prompt handler available"}, nil
	}

	decision, err := promptFn(kind, tool, details)
	if err != nil {
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	if decision == DecisionAllow || decision == DecisionDeny {
		m.mu.Lock()
		m.cache[kind] = decision
		m.mu.Unlock()
	}

	switch decision {
	case DecisionAllow, DecisionAllowOnce:
		return &CheckResult{Allowed: true, Reason: "user approved"}, nil
	default:
		return &CheckResult{Allowed: false, Reason: "user denied"}, nil
	}
}

// Permission returns the configured permission for a kind. Unconfigured
// kinds ask.
func (m *Manager) Permission(kind catalog.Kind) config.Permission {
	if m.config == nil {
		return config.PermissionAsk
	}

	var p config.Permission
	switch kind {
	case catalog.KindAI:
		p = m.config.AI
	case catalog.KindImage:
		p = m.config.Image
	case catalog.KindPDF:
		p = m.config.PDF
	case catalog.KindCalculation:
		p = m.config.Calculation
	}
	if p == "" {
		return config.PermissionAsk
	}
	return p
}

func (m *Manager) ClearCache() {
	m.mu.Lock()
	m.cache = make(map[catalog.Kind]Decision)
	m.mu.Unlock()
}

func (m *Manager) AllowAll() {
	m.SetPromptFunc(func(catalog.Kind, string, string) (Decision, error) {
		return DecisionAllow, nil
	})
}

func (m *Manager) SetPromptFunc(fn PromptFunc) {
	m.mu.Lock()
	m.promptFn = fn
	m.mu.Unlock()
}
