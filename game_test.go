package main

import (
	"testing"
	"time"

	"github.com/milk9111/templehub/prefabs"
)

func TestResolveModelURL(t *testing.T) {
	env := func(v string) func(string) string {
		return func(key string) string {
			if key == modelEnv {
				return v
			}
			return ""
		}
	}

	tests := []struct {
		name   string
		flag   string
		env    string
		scene  string
		expect string
	}{
		{name: "flag wins", flag: "https://cdn.example/idol.glb", env: "/env.glb", scene: "/scene.glb", expect: "https://cdn.example/idol.glb"},
		{name: "env over scene", env: "/env.glb", scene: "/scene.glb", expect: "/env.glb"},
		{name: "scene", scene: "/scene.glb", expect: "/scene.glb"},
		{name: "blank values skipped", flag: "  ", env: "\t", expect: DefaultModelURL},
		{name: "default", expect: DefaultModelURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveModelURL(tt.flag, env(tt.env), tt.scene); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestHandsOf(t *testing.T) {
	var spec prefabs.SceneSpec
	spec.Hands.AimRate = 2
	spec.Head.WalkSpeed = 1.5
	spec.Head.PlayArea = 3

	h := handsOf(spec)
	if h.AimRate != 2 || h.WalkSpeed != 1.5 || h.PlayArea != 3 {
		t.Fatalf("unexpected hand config %+v", h)
	}
}

func TestFormatPosition(t *testing.T) {
	tests := map[string]struct {
		secs   int
		expect string
	}{
		"zero":     {0, "0:00"},
		"seconds":  {9, "0:09"},
		"minutes":  {125, "2:05"},
		"long mix": {3600 + 61, "61:01"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := formatPosition(time.Duration(tt.secs) * time.Second); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
