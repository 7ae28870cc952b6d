package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/templehub/locomotion"
	"github.com/milk9111/templehub/prefabs"
)

func TestBlockers(t *testing.T) {
	b := NewBlockers()
	b.AddDisc("dais", mgl64.Vec3{0, 0, 0}, 1.8)
	b.AddBox("table", mgl64.Vec3{0, 0, -4}, 2.4, 0.8)
	b.AddDisc("ignored", mgl64.Vec3{9, 0, 9}, 0)

	if b.Len() != 2 {
		t.Fatalf("expected 2 blockers, got %d", b.Len())
	}

	cases := []struct {
		name string
		p    mgl64.Vec3
		want string
	}{
		{"dais_centre", mgl64.Vec3{0, 0, 0}, "dais"},
		{"dais_edge_inside", mgl64.Vec3{1.7, 0, 0}, "dais"},
		{"height_ignored", mgl64.Vec3{0.5, 3, 0.5}, "dais"},
		{"outside_dais", mgl64.Vec3{2.0, 0, 0}, ""},
		{"table", mgl64.Vec3{1.1, 0, -4.3}, "table"},
		{"past_table", mgl64.Vec3{1.3, 0, -4}, ""},
		{"open_floor", mgl64.Vec3{5, 0, 5}, ""},
		{"zero_radius_disc", mgl64.Vec3{9, 0, 9}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := b.Hit(c.p)
			if ok != (c.want != "") || got != c.want {
				t.Fatalf("Hit(%v) = %q %v, want %q", c.p, got, ok, c.want)
			}
			if b.Blocked(c.p) != ok {
				t.Fatalf("Blocked disagrees with Hit")
			}
		})
	}
}

func TestBlockersAsTargetFilter(t *testing.T) {
	var filter locomotion.TargetFilter = NewBlockers()
	if filter.Blocked(mgl64.Vec3{}) {
		t.Fatalf("empty blockers should not block")
	}

	var nilBlockers *Blockers
	if nilBlockers.Blocked(mgl64.Vec3{}) {
		t.Fatalf("nil blockers should not block")
	}

	b := NewBlockers()
	b.AddDisc("dais", mgl64.Vec3{}, 1)
	f := locomotion.Floor{MaxRadius: 100, Epsilon: 1e-6}

	l, ok := f.Intersect([]mgl64.Vec3{{0.2, 1, 0}, {0.2, -1, 0}}, b)
	if !ok || l.Valid {
		t.Fatalf("landing on the dais should be invalid, got %+v ok=%v", l, ok)
	}
	l, ok = f.Intersect([]mgl64.Vec3{{3, 1, 0}, {3, -1, 0}}, b)
	if !ok || !l.Valid {
		t.Fatalf("landing beside the dais should be valid, got %+v ok=%v", l, ok)
	}
}

func TestFColorToRGBA(t *testing.T) {
	got := fcolorToRGBA(cp.FColor{R: 2, G: -1, B: 0.5, A: 1})
	if got.R != 255 || got.G != 0 || got.B != 127 || got.A != 255 {
		t.Fatalf("unexpected color %+v", got)
	}
}

func TestBlockersFromSpec(t *testing.T) {
	var spec prefabs.SceneSpec
	spec.Dais.Radius = 1.5
	spec.Dais.Blocking = true
	spec.Blockers = []prefabs.BlockerSpec{
		{Name: "lamp", Shape: "disc", Position: mgl64.Vec3{4, 0, 0}, Radius: 0.5},
		{Name: "bench", Shape: "box", Position: mgl64.Vec3{0, 0, 5}, Width: 2, Depth: 0.6},
	}

	b := BlockersFromSpec(spec)
	if b.Len() != 3 {
		t.Fatalf("expected 3 blockers, got %d", b.Len())
	}
	for _, c := range []struct {
		p    mgl64.Vec3
		want string
	}{
		{mgl64.Vec3{0, 0, 0}, "dais"},
		{mgl64.Vec3{4.2, 0, 0}, "lamp"},
		{mgl64.Vec3{0.9, 0, 5.2}, "bench"},
		{mgl64.Vec3{3, 0, 3}, ""},
	} {
		if got, _ := b.Hit(c.p); got != c.want {
			t.Fatalf("at %v: expected %q, got %q", c.p, c.want, got)
		}
	}

	spec.Dais.Blocking = false
	if b := BlockersFromSpec(spec); b.Blocked(mgl64.Vec3{}) {
		t.Fatalf("a non-blocking dais must not block")
	}
}
