// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/staranto/leadq/internal/log"
)

// Entity is a related record, such as an employee, that reference fields
// point at. Records carry the Name; clauses are built from the ID.
type Entity struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Directory resolves entity identifiers to entities.
type Directory interface {
	Lookup(id string) (Entity, bool)
}

// Static is an in-memory Directory.
type Static struct {
	entities []Entity
	byID     map[string]int
}

// NewStatic indexes entities by ID. A later duplicate ID replaces an earlier
// one.
func NewStatic(entities ...Entity) *Static {
	s := &Static{
		entities: make([]Entity, 0, len(entities)),
		byID:     make(map[string]int, len(entities)),
	}
	for _, e := range entities {
		if i, ok := s.byID[e.ID]; ok {
			log.Debugf("directory: duplicate id %q replaces %q", e.ID, s.entities[i].Name)
			s.entities[i] = e
			continue
		}
		s.byID[e.ID] = len(s.entities)
		s.entities = append(s.entities, e)
	}
	return s
}

// Lookup returns the entity with the given id.
func (s *Static) Lookup(id string) (Entity, bool) {
	if s == nil {
		return Entity{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return Entity{}, false
	}
	return s.entities[i], true
}

// FindByName returns the first entity whose name equals name, ignoring case
// and surrounding space.
func (s *Static) FindByName(name string) (Entity, bool) {
	if s == nil {
		return Entity{}, false
	}
	want := strings.TrimSpace(name)
	for _, e := range s.entities {
		if strings.EqualFold(strings.TrimSpace(e.Name), want) {
			return e, true
		}
	}
	return Entity{}, false
}

// Len returns the number of entities.
func (s *Static) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entities)
}

// Entities returns a copy of the entities in load order.
func (s *Static) Entities() []Entity {
	if s == nil {
		return nil
	}
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Parse reads a JSON document holding a list of entities. parent is an
// optional gjson path to the list within the document. Entries without an id
// are skipped; name falls back to displayName or fullName.
func Parse(doc []byte, parent string) (*Static, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("directory: invalid JSON")
	}

	list := gjson.ParseBytes(doc)
	if parent != "" {
		list = list.Get(parent)
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("directory: expected a list of entities at %q", parent)
	}

	var entities []Entity
	for i, item := range list.Array() {
		id := item.Get("id").String()
		if id == "" {
			log.Warnf("directory: entry %d has no id, skipping", i)
			continue
		}
		name := item.Get("name").String()
		for _, alt := range []string{"displayName", "fullName"} {
			if name != "" {
				break
			}
			name = item.Get(alt).String()
		}
		entities = append(entities, Entity{ID: id, Name: name})
	}

	log.Debugf("directory: parsed %d entities", len(entities))
	return NewStatic(entities...), nil
}

// LoadFile reads a directory from a JSON file.
func LoadFile(path, parent string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory file: %w", err)
	}
	return Parse(data, parent)
}
