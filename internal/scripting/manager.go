package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charsheet/internal/game/dice"
	"github.com/cory-johannsen/charsheet/internal/game/roll"
	"github.com/cory-johannsen/charsheet/internal/game/ruleset"
	"github.com/cory-johannsen/charsheet/internal/game/validation"
)

// vm is a loaded LState. An LState is single-threaded, so mu serializes
// every call into it.
type vm struct {
	mu     sync.Mutex
	L      *lua.LState
	cancel func()
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cancel()
	v.L.Close()
}

// Manager owns named script VMs and the services their modules call into.
//
// Manager is safe for concurrent use. Calls into the same VM are serialized;
// different VMs run concurrently.
type Manager struct {
	mu        sync.RWMutex
	vms       map[string]*vm
	registry  *ruleset.Registry
	validator *validation.Validator
	resolver  *roll.Resolver
	roller    *dice.Roller
	logger    *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: every argument must be non-nil; NewManager panics otherwise.
// Postcondition: Returns a Manager with no VMs loaded.
func NewManager(
	registry *ruleset.Registry,
	validator *validation.Validator,
	resolver *roll.Resolver,
	roller *dice.Roller,
	logger *zap.Logger,
) *Manager {
	switch {
	case registry == nil:
		panic("scripting.NewManager: registry must not be nil")
	case validator == nil:
		panic("scripting.NewManager: validator must not be nil")
	case resolver == nil:
		panic("scripting.NewManager: resolver must not be nil")
	case roller == nil:
		panic("scripting.NewManager: roller must not be nil")
	case logger == nil:
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		vms:       make(map[string]*vm),
		registry:  registry,
		validator: validator,
		resolver:  resolver,
		roller:    roller,
		logger:    logger,
	}
}

// Load creates a sandboxed VM named key, registers the sheet and engine
// modules, then executes every *.lua file in scriptDir in lexicographic
// order. A VM already loaded under key is replaced.
//
// Precondition: key must be non-empty; scriptDir must be a readable directory.
// Postcondition: The VM is registered, or an error is returned and nothing changes.
func (m *Manager) Load(key, scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(files)

	v, err := m.newVM(instLimit, files...)
	if err != nil {
		return fmt.Errorf("scripting: loading %q: %w", key, err)
	}

	m.mu.Lock()
	old := m.vms[key]
	m.vms[key] = v
	m.mu.Unlock()
	if old != nil {
		old.close()
	}
	return nil
}

// Run executes the script at path in a fresh VM and closes it.
//
// Postcondition: Returns nil if the script ran to completion, or the load or runtime error.
func (m *Manager) Run(path string, instLimit int) error {
	v, err := m.newVM(instLimit, path)
	if err != nil {
		m.logger.Warn("scripting: script failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	v.close()
	return nil
}

func (m *Manager) newVM(instLimit int, files ...string) (*vm, error) {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)
	for _, path := range files {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return nil, fmt.Errorf("running %q: %w", path, err)
		}
	}
	return &vm{L: L, cancel: cancel}, nil
}

// CallHook calls the named Lua global function in key's VM. It returns
// (LNil, nil) if the VM or hook does not exist. Lua runtime errors are
// logged at warn and not propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(key, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v := m.vms[key]
	m.mu.RUnlock()

	if v == nil {
		m.logger.Info("scripting: no VM loaded",
			zap.String("key", key),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}
	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("key", key),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}

// Close closes every loaded VM.
func (m *Manager) Close() {
	m.mu.Lock()
	vms := m.vms
	m.vms = make(map[string]*vm)
	m.mu.Unlock()
	for _, v := range vms {
		v.close()
	}
}
