// Package assets holds the content map of indexed game assets and the cache
// of decoded asset bytes loaded from the backend.
package assets

import "fmt"

// Kind identifies a variant of Asset.
type Kind int

const (
	KindTexture Kind = iota
	KindAtlas
	KindAnimation
	KindImage
	KindShader
	KindSoundEvent
	KindSoundProject
)

var kindNames = [...]string{
	KindTexture:      "tex",
	KindAtlas:        "xml",
	KindAnimation:    "animzip",
	KindImage:        "tex_no_ref",
	KindShader:       "shader",
	KindSoundEvent:   "fmodevent",
	KindSoundProject: "fmodproject",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Asset is one indexed asset. The set of implementations is closed.
type Asset interface {
	AssetID() string
	Kind() Kind
	// Name is the text search matches against.
	Name() string
	sealed()
}

// Texture is one element cut from an atlas.
type Texture struct {
	ID  string
	XML string // atlas definition file
	Tex string // element name inside the atlas
}

// Atlas is an xml atlas definition with its texture.
type Atlas struct {
	ID       string
	File     string
	TexName  string
	TexPath  string
	NumTexes int
}

// Animation is an animation bundle; Dynamic marks runtime-skinned builds.
type Animation struct {
	ID      string
	File    string
	Dynamic bool
}

// Image is a standalone texture not referenced by any atlas.
type Image struct {
	ID   string
	File string
	// Canvas images render through a live canvas and are never cached.
	Canvas bool
}

// Shader is a compiled shader program.
type Shader struct {
	ID   string
	File string
}

// SoundEvent is one event inside a sound project.
type SoundEvent struct {
	ID      string
	Path    string
	Project string
}

// SoundProject is a bank of sound events.
type SoundProject struct {
	ID   string
	File string
}

func (a Texture) AssetID() string      { return a.ID }
func (a Atlas) AssetID() string        { return a.ID }
func (a Animation) AssetID() string    { return a.ID }
func (a Image) AssetID() string        { return a.ID }
func (a Shader) AssetID() string       { return a.ID }
func (a SoundEvent) AssetID() string   { return a.ID }
func (a SoundProject) AssetID() string { return a.ID }

func (Texture) Kind() Kind      { return KindTexture }
func (Atlas) Kind() Kind        { return KindAtlas }
func (Animation) Kind() Kind    { return KindAnimation }
func (Image) Kind() Kind        { return KindImage }
func (Shader) Kind() Kind       { return KindShader }
func (SoundEvent) Kind() Kind   { return KindSoundEvent }
func (SoundProject) Kind() Kind { return KindSoundProject }

func (a Texture) Name() string      { return a.Tex }
func (a Atlas) Name() string        { return a.File }
func (a Animation) Name() string    { return a.File }
func (a Image) Name() string        { return a.File }
func (a Shader) Name() string       { return a.File }
func (a SoundEvent) Name() string   { return a.Path }
func (a SoundProject) Name() string { return a.File }

func (Texture) sealed()      {}
func (Atlas) sealed()        {}
func (Animation) sealed()    {}
func (Image) sealed()        {}
func (Shader) sealed()       {}
func (SoundEvent) sealed()   {}
func (SoundProject) sealed() {}

// Cacheable reports whether the detail page of a may be kept alive.
// Shaders and sound events hold live playback state, and canvas images hold
// a GPU context, so their pages are rebuilt on every visit.
func Cacheable(a Asset) bool {
	switch a := a.(type) {
	case Texture, Atlas, Animation, SoundProject:
		return true
	case Image:
		return !a.Canvas
	case Shader, SoundEvent:
		return false
	default:
		panic(fmt.Sprintf("assets: unknown asset type %T", a))
	}
}
