package route

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"musicroom-web/internal/media"
)

func TestForEntity(t *testing.T) {
	assert.Equal(t, "/artist/artist1", ForEntity("artist1", media.KindArtist))
	assert.Equal(t, "/collection/album/album1", ForEntity("album1", media.KindAlbum))
	assert.Equal(t, "/collection/playlist/pl1", ForEntity("pl1", media.KindPlaylist))
}

func TestSearch(t *testing.T) {
	assert.Equal(t, "/search?q=neon+dreams", Search("  neon dreams "))
	assert.Equal(t, "/search?q=a%26b", Search("a&b"))
	assert.Equal(t, "", Search("   "))
}

func TestStaticPaths(t *testing.T) {
	assert.Equal(t, "/", Home())
	assert.Equal(t, "/library", Library())
	assert.Equal(t, "/artist/a%2Fb", Artist("a/b"))
}

func TestRedirectNavigator(t *testing.T) {
	var n RedirectNavigator
	assert.Equal(t, "", n.Target())

	n.GoTo(Artist("artist1"))
	assert.Equal(t, "/artist/artist1", n.Target())
	assert.Equal(t, 1, n.Requests())
}
