package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Notes         int    `json:"notes"`
	KnownTags     int    `json:"known_tags"`
	Images        int    `json:"images"`
	StorageType   string `json:"storage_type"`
	ReadOnly      bool   `json:"read_only"`
	WriteFailures int    `json:"write_failures"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	storageType := "unknown"
	if s.storage != nil {
		storageType = "storage"
		if comp, ok := s.storage.(introspection.Component); ok {
			storageType = comp.ComponentType()
		}
	}

	return ServiceState{
		Notes:         len(s.notes),
		KnownTags:     len(s.knownTags),
		Images:        len(s.images),
		StorageType:   storageType,
		ReadOnly:      s.readOnly,
		WriteFailures: s.writeFailures,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
