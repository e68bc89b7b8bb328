package assets

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned when a record names no known asset kind.
var ErrUnknownType = errors.New("unknown asset type")

// Record is the wire form of an asset as produced by the backend indexer.
type Record struct {
	ID      string `yaml:"id" json:"id"`
	Type    string `yaml:"type" json:"type"`
	File    string `yaml:"file,omitempty" json:"file,omitempty"`
	XML     string `yaml:"xml,omitempty" json:"xml,omitempty"`
	Tex     string `yaml:"tex,omitempty" json:"tex,omitempty"`
	TexName string `yaml:"texname,omitempty" json:"texname,omitempty"`
	TexPath string `yaml:"texpath,omitempty" json:"texpath,omitempty"`
	NumTex  int    `yaml:"numtex,omitempty" json:"_numtex,omitempty"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
	Project string `yaml:"project,omitempty" json:"project,omitempty"`
	Canvas  bool   `yaml:"canvas,omitempty" json:"_is_cc,omitempty"`
}

// Decode converts a record into its Asset variant.
func Decode(r Record) (Asset, error) {
	if r.ID == "" {
		return nil, errors.New("asset record without id")
	}
	switch r.Type {
	case "tex":
		return Texture{ID: r.ID, XML: r.XML, Tex: r.Tex}, nil
	case "xml":
		return Atlas{ID: r.ID, File: r.File, TexName: r.TexName, TexPath: r.TexPath, NumTexes: r.NumTex}, nil
	case "animzip":
		return Animation{ID: r.ID, File: r.File}, nil
	case "animdyn":
		return Animation{ID: r.ID, File: r.File, Dynamic: true}, nil
	case "tex_no_ref":
		return Image{ID: r.ID, File: r.File, Canvas: r.Canvas}, nil
	case "shader":
		return Shader{ID: r.ID, File: r.File}, nil
	case "fmodevent":
		return SoundEvent{ID: r.ID, Path: r.Path, Project: r.Project}, nil
	case "fmodproject":
		return SoundProject{ID: r.ID, File: r.File}, nil
	default:
		return nil, fmt.Errorf("%w %q for %s", ErrUnknownType, r.Type, r.ID)
	}
}
