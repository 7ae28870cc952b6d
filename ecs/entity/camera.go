package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
	"github.com/milk9111/templehub/prefabs"
)

// NewCamera adds the preview camera, centred on center.
func NewCamera(w *ecs.World, spec prefabs.CameraSpec, center mgl64.Vec3) (ecs.Entity, error) {
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 24
	}
	smooth := spec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraComponent, component.Camera{
		Center:     center,
		Zoom:       zoom,
		MinZoom:    spec.MinZoom,
		MaxZoom:    spec.MaxZoom,
		Smoothness: smooth,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}
