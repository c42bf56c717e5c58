package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// DefaultSceneID names the scene used when none is requested
const DefaultSceneID = "default"

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Scenes []SceneInfo `json:"scenes"`
}

type builtinScene struct {
	description string
	create      func(cameraOverrides ...renderer.CameraConfig) *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {
		description: "Diffuse, hollow glass and rough gold spheres on a ground sphere",
		create:      NewDefaultScene,
	},
	"single-sphere": {
		description: "One diffuse sphere under the sky gradient",
		create:      NewSingleSphereScene,
	},
	"spheregrid": {
		description: "10x10 grid of OKLCH-colored spheres with mixed materials",
		create: func(cameraOverrides ...renderer.CameraConfig) *Scene {
			return NewSphereGridScene(10, cameraOverrides...)
		},
	},
}

// Names returns the IDs of every built-in scene in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for id := range builtinScenes {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// Create builds the named scene, applying any camera overrides
func Create(id string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if id == "" {
		id = DefaultSceneID
	}
	builtin, ok := builtinScenes[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(Names(), ", "))
	}
	return builtin.create(cameraOverrides...), nil
}

// ListScenes returns metadata for every built-in scene, sorted by ID
func ListScenes() ScenesResponse {
	var response ScenesResponse
	for _, id := range Names() {
		response.Scenes = append(response.Scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: builtinScenes[id].description,
		})
	}
	return response
}

// titleCase converts an ID to title case
// e.g., "single-sphere" -> "Single Sphere"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
