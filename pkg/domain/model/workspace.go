package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// Workspace represents a tenant's identity
type Workspace struct {
	ID   string
	Name string
}

// ErrWorkspaceNotFound is returned when a workspace is not found in the registry
var ErrWorkspaceNotFound = goerr.New("workspace not found")

// WorkspaceRegistry holds workspace configurations (settings only, no
// repository or usecase instances).
type WorkspaceRegistry struct {
	entries map[string]*Workspace
	order   []string // preserves registration order
}

// NewWorkspaceRegistry creates a new empty WorkspaceRegistry
func NewWorkspaceRegistry() *WorkspaceRegistry {
	return &WorkspaceRegistry{
		entries: make(map[string]*Workspace),
	}
}

// Register adds a workspace to the registry
func (r *WorkspaceRegistry) Register(ws *Workspace) {
	if _, exists := r.entries[ws.ID]; !exists {
		r.order = append(r.order, ws.ID)
	}
	r.entries[ws.ID] = ws
}

// Get retrieves a workspace by ID
func (r *WorkspaceRegistry) Get(workspaceID string) (*Workspace, error) {
	ws, ok := r.entries[workspaceID]
	if !ok {
		return nil, goerr.Wrap(ErrWorkspaceNotFound, "workspace not found",
			goerr.V("workspace_id", workspaceID))
	}
	return ws, nil
}

// Workspaces returns all registered workspaces in registration order
func (r *WorkspaceRegistry) Workspaces() []Workspace {
	result := make([]Workspace, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *r.entries[id])
	}
	return result
}
