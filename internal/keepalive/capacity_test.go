package keepalive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		profile Profile
		ns      Namespace
		want    int
	}{
		{ProfileDefault, SearchPage, 4},
		{ProfileDefault, AssetPage, 20},
		{ProfileSmaller, SearchPage, 1},
		{ProfileSmaller, AssetPage, 5},
		{ProfileBigger, AssetPage, 40},
		{ProfileMax, AssetPage, 100},
		{ProfileDisable, SearchPage, Unbounded},
	}
	for _, tt := range tests {
		t.Run(string(tt.profile)+"/"+string(tt.ns), func(t *testing.T) {
			assert.Equal(t, tt.want, Capacity(tt.profile, tt.ns))
		})
	}
}

func TestCapacityUnknownPanics(t *testing.T) {
	require.PanicsWithError(t, `unknown cache profile: "huge"`, func() {
		Capacity("huge", SearchPage)
	})
	require.PanicsWithError(t, `unknown page namespace: "settingsPage"`, func() {
		Capacity(ProfileDefault, "settingsPage")
	})
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile(" Bigger ")
	require.NoError(t, err)
	assert.Equal(t, ProfileBigger, p)

	_, err = ParseProfile("enormous")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestEveryProfileCoversEveryNamespace(t *testing.T) {
	for _, p := range Profiles() {
		for _, ns := range Namespaces() {
			assert.NotPanics(t, func() { Capacity(p, ns) })
		}
	}
}

func TestPageID(t *testing.T) {
	id := PageID(SearchPage, "cats")
	assert.Equal(t, "searchPage/cats", id)
	assert.Equal(t, SearchPage, NamespaceOf(id))
	assert.Equal(t, AssetPage, NamespaceOf(PageID(AssetPage, "?id=a/b")))
}
