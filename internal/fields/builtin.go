// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"fmt"
	"sort"
)

var builtins = map[string]func() *Registry{
	"leads":     Leads,
	"quotes":    Quotes,
	"customers": Customers,
}

// Builtin returns the named built-in registry.
func Builtin(name string) (*Registry, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q, must be one of %v", name, BuiltinNames())
	}
	return ctor(), nil
}

// BuiltinNames lists the built-in registry names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Leads is the registry for sales leads.
func Leads() *Registry {
	return MustNew("leads",
		Descriptor{Key: "name", Label: "Lead", Type: String, Searchable: true},
		Descriptor{Key: "company", Label: "Company", Type: String, Searchable: true},
		Descriptor{Key: "email", Label: "Email", Type: String, Searchable: true},
		Descriptor{Key: "phone", Label: "Phone", Type: String},
		Descriptor{Key: "budget", Label: "Budget", Type: Number},
		Descriptor{Key: "status", Label: "Status", Type: Enum,
			Options: []string{"New", "Contacted", "Qualified", "Proposal", "Won", "Lost"}},
		Descriptor{Key: "source", Label: "Source", Type: Enum,
			Options: []string{"Website", "Referral", "Event", "Cold Call", "Partner"}},
		Descriptor{Key: "createdAt", Label: "Created", Type: Date},
		Descriptor{Key: "assignedTo", Label: "Assigned To", Type: Reference, Searchable: true},
	)
}

// Quotes mirrors Leads for quotes. The owner relation is stored as a nested
// object rather than a bare name.
func Quotes() *Registry {
	return MustNew("quotes",
		Descriptor{Key: "number", Label: "Quote", Type: String, Searchable: true},
		Descriptor{Key: "title", Label: "Title", Type: String, Searchable: true},
		Descriptor{Key: "client", Label: "Client", Type: Reference, Searchable: true},
		Descriptor{Key: "amount", Label: "Amount", Type: Number},
		Descriptor{Key: "status", Label: "Status", Type: Enum,
			Options: []string{"Draft", "Sent", "Accepted", "Rejected", "Expired"}},
		Descriptor{Key: "issuedAt", Label: "Issued", Type: Date},
		Descriptor{Key: "validUntil", Label: "Valid Until", Type: Date},
		Descriptor{Key: "owner", Label: "Owner", Type: Reference, Path: "owner.name"},
	)
}

// Customers mirrors Leads for converted clients.
func Customers() *Registry {
	return MustNew("customers",
		Descriptor{Key: "name", Label: "Customer", Type: String, Searchable: true},
		Descriptor{Key: "email", Label: "Email", Type: String, Searchable: true},
		Descriptor{Key: "phone", Label: "Phone", Type: String, Searchable: true},
		Descriptor{Key: "industry", Label: "Industry", Type: Enum,
			Options: []string{"Retail", "Finance", "Healthcare", "Manufacturing", "Technology", "Other"}},
		Descriptor{Key: "revenue", Label: "Revenue", Type: Number},
		Descriptor{Key: "since", Label: "Customer Since", Type: Date},
		Descriptor{Key: "accountManager", Label: "Account Manager", Type: Reference},
	)
}
