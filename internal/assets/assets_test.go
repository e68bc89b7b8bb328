package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeCaller struct {
	calls int
	fail  bool
}

func (f *fakeCaller) Call(ctx context.Context, method string, params, result any) error {
	f.calls++
	if f.fail {
		return errors.New("backend down")
	}
	if method != MethodLoad {
		return errors.New("unexpected method " + method)
	}
	p := params.(LoadParams)
	result.(*LoadResult).Data = []byte("png:" + p.ID)
	return nil
}

func TestDecode(t *testing.T) {
	tests := []struct {
		record Record
		kind   Kind
	}{
		{Record{ID: "t1", Type: "tex", XML: "images/ui.xml", Tex: "button.tex"}, KindTexture},
		{Record{ID: "x1", Type: "xml", File: "images/ui.xml", NumTex: 3}, KindAtlas},
		{Record{ID: "z1", Type: "animzip", File: "anim/wilson.zip"}, KindAnimation},
		{Record{ID: "d1", Type: "animdyn", File: "anim/dynamic/hat.dyn"}, KindAnimation},
		{Record{ID: "n1", Type: "tex_no_ref", File: "bg.tex"}, KindImage},
		{Record{ID: "r1", Type: "shader", File: "shaders/ui.ksh"}, KindShader},
		{Record{ID: "f1", Type: "fmodevent", Path: "dontstarve/common/click"}, KindSoundEvent},
		{Record{ID: "fev1", Type: "fmodproject", File: "sound/common.fev"}, KindSoundProject},
	}
	for _, tt := range tests {
		t.Run(tt.record.Type, func(t *testing.T) {
			a, err := Decode(tt.record)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if a.Kind() != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, a.Kind())
			}
			if a.AssetID() != tt.record.ID {
				t.Errorf("expected id %s, got %s", tt.record.ID, a.AssetID())
			}
		})
	}

	if _, err := Decode(Record{ID: "q", Type: "video"}); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
	if _, err := Decode(Record{Type: "tex"}); err == nil {
		t.Error("expected error for record without id")
	}
}

func TestCacheable(t *testing.T) {
	if !Cacheable(Texture{ID: "t"}) {
		t.Error("textures should be cacheable")
	}
	if Cacheable(Image{ID: "n", Canvas: true}) {
		t.Error("canvas images should not be cacheable")
	}
	if !Cacheable(Image{ID: "n"}) {
		t.Error("plain images should be cacheable")
	}
	if Cacheable(SoundEvent{ID: "f"}) || Cacheable(Shader{ID: "r"}) {
		t.Error("sound events and shaders should not be cacheable")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.yaml")
	content := `
- id: t1
  type: tex
  xml: images/ui.xml
  tex: button.tex
- id: z1
  type: animzip
  file: anim/wilson.zip
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write content file: %v", err)
	}
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 assets, got %d", m.Len())
	}
	a, ok := m.Get("t1")
	if !ok || a.Name() != "button.tex" {
		t.Errorf("unexpected asset %+v", a)
	}
	if ids := m.IDs(); ids[0] != "t1" || ids[1] != "z1" {
		t.Errorf("unexpected ids %v", ids)
	}
}

func TestNewMapDuplicate(t *testing.T) {
	_, err := NewMap([]Record{{ID: "a", Type: "tex"}, {ID: "a", Type: "xml"}})
	if err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestManagerReleasePage(t *testing.T) {
	caller := &fakeCaller{}
	m, err := NewManager(caller, 16)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	data, err := m.Load(ctx, "assetPage/a", "t1")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png:t1" {
		t.Errorf("unexpected data %q", data)
	}
	m.Load(ctx, "assetPage/a", "t2")
	m.Load(ctx, "searchPage/q", "t1")

	if caller.calls != 2 {
		t.Errorf("expected 2 backend calls, got %d", caller.calls)
	}
	hits, misses, resident := m.Stats()
	if hits != 1 || misses != 2 || resident != 2 {
		t.Errorf("unexpected stats hits=%d misses=%d resident=%d", hits, misses, resident)
	}

	// t1 is still shown by the search page.
	if removed := m.ReleasePage("assetPage/a"); removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if removed := m.ReleasePage("searchPage/q"); removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if len(m.Held("assetPage/a")) != 0 {
		t.Error("expected nothing held after release")
	}
}

func TestManagerLoadError(t *testing.T) {
	m, _ := NewManager(&fakeCaller{fail: true}, 4)
	if _, err := m.Load(context.Background(), "p", "t1"); err == nil {
		t.Error("expected error from failing backend")
	}
	if len(m.Held("p")) != 0 {
		t.Error("failed loads must not be held")
	}
}
