package booking

import (
	"fmt"
	"slices"
	"strings"
)

type Service string

const (
	ServiceDJ          Service = "dj"
	ServiceKaraoke     Service = "karaoke"
	ServicePhotography Service = "photography"
)

func ParseService(s string) (Service, error) {
	svc := Service(strings.ToLower(strings.TrimSpace(s)))
	switch svc {
	case ServiceDJ, ServiceKaraoke, ServicePhotography:
		return svc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownService, s)
	}
}

func (s Service) String() string {
	return string(s)
}

// ServiceSet is a sorted, duplicate-free set of services. The zero value is
// the empty set.
type ServiceSet struct {
	items []Service
}

func NewServiceSet(names []string) (ServiceSet, error) {
	items := make([]Service, 0, len(names))
	for _, n := range names {
		svc, err := ParseService(n)
		if err != nil {
			return ServiceSet{}, err
		}
		items = append(items, svc)
	}
	slices.Sort(items)
	return ServiceSet{items: slices.Compact(items)}, nil
}

// NewRequiredServiceSet is NewServiceSet that also rejects an empty set.
func NewRequiredServiceSet(names []string) (ServiceSet, error) {
	set, err := NewServiceSet(names)
	if err != nil {
		return ServiceSet{}, err
	}
	if set.IsEmpty() {
		return ServiceSet{}, ErrEmptyServices
	}
	return set, nil
}

func (s ServiceSet) Items() []Service {
	return slices.Clone(s.items)
}

func (s ServiceSet) Strings() []string {
	out := make([]string, len(s.items))
	for i, svc := range s.items {
		out[i] = string(svc)
	}
	return out
}

func (s ServiceSet) Len() int {
	return len(s.items)
}

func (s ServiceSet) IsEmpty() bool {
	return len(s.items) == 0
}

func (s ServiceSet) Contains(svc Service) bool {
	_, found := slices.BinarySearch(s.items, svc)
	return found
}

// Key is the canonical textual form used in cache keys.
func (s ServiceSet) Key() string {
	return strings.Join(s.Strings(), ",")
}
