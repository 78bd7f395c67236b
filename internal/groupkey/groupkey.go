// Package groupkey builds the composite key trucks never span (spec §4.3).
package groupkey

import (
	"strings"

	"loadplanner/internal/domain"
)

// Build derives the GroupKey for an OrderLine: (zone, route, customer,
// state, city). Customers in noMultiStop are never merged with other
// customers — this falls out structurally because Customer is always
// part of the key, not through any separate procedure.
func Build(line domain.OrderLine) domain.GroupKey {
	return domain.GroupKey{
		Zone:     line.Zone,
		Route:    line.Route,
		Customer: line.Customer,
		State:    line.State,
		City:     line.City,
	}
}

// Set reports whether a customer belongs to the configured
// no-multi-stop set, case-insensitively.
type Set map[string]struct{}

// NewSet builds a Set from a slice of customer names.
func NewSet(customers []string) Set {
	s := make(Set, len(customers))
	for _, c := range customers {
		s[strings.ToUpper(c)] = struct{}{}
	}
	return s
}

func (s Set) Contains(customer string) bool {
	_, ok := s[strings.ToUpper(customer)]
	return ok
}
