package keepalive

import (
	"fmt"
	"strings"
)

// Profile names a set of per-namespace capacities.
type Profile string

const (
	ProfileDefault Profile = "default"
	ProfileSmaller Profile = "smaller"
	ProfileBigger  Profile = "bigger"
	ProfileMax     Profile = "max"
	ProfileDisable Profile = "disable"
)

// Namespace is a category of pages sharing one capacity and one LRU order.
type Namespace string

const (
	SearchPage Namespace = "searchPage"
	AssetPage  Namespace = "assetPage"
)

// Unbounded disables eviction. Any capacity <= 0 behaves the same way.
const Unbounded = -1

var capacities = map[Profile]map[Namespace]int{
	ProfileDefault: {SearchPage: 4, AssetPage: 20},
	ProfileSmaller: {SearchPage: 1, AssetPage: 5},
	ProfileBigger:  {SearchPage: 10, AssetPage: 40},
	ProfileMax:     {SearchPage: 10, AssetPage: 100},
	ProfileDisable: {SearchPage: Unbounded, AssetPage: Unbounded},
}

// Capacity returns the number of resident pages allowed for namespace under
// profile. It panics on an unknown profile or namespace.
func Capacity(profile Profile, namespace Namespace) int {
	table, ok := capacities[profile]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownProfile, profile))
	}
	n, ok := table[namespace]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownNamespace, namespace))
	}
	return n
}

// ParseProfile validates a profile name read from user settings.
func ParseProfile(name string) (Profile, error) {
	profile := Profile(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := capacities[profile]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return profile, nil
}

// Profiles lists the known profiles, smallest first.
func Profiles() []Profile {
	return []Profile{ProfileSmaller, ProfileDefault, ProfileBigger, ProfileMax, ProfileDisable}
}

// Namespaces lists the known page namespaces.
func Namespaces() []Namespace {
	return []Namespace{SearchPage, AssetPage}
}

// PageID derives the cache identifier of a page from its namespace and a
// route-specific key.
func PageID(namespace Namespace, key string) string {
	return string(namespace) + "/" + key
}

// NamespaceOf returns the namespace part of a page identifier.
func NamespaceOf(cacheID string) Namespace {
	ns, _, _ := strings.Cut(cacheID, "/")
	return Namespace(ns)
}
