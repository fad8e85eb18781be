package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/aurora/engine/core"
	amath "github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.gltf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadScene(t *testing.T, content string) *metadata.SceneResourceData {
	t.Helper()
	loader := &SceneLoader{}
	resource, err := loader.Load(writeScene(t, content), metadata.ResourceTypeScene, nil)
	require.NoError(t, err)
	data, ok := resource.Data.(*metadata.SceneResourceData)
	require.True(t, ok)
	return data
}

func TestSceneLoaderHierarchyAndCamera(t *testing.T) {
	scene := loadScene(t, `{
		"scenes": [{"nodes": [0]}],
		"nodes": [
			{"name": "root", "translation": [1, 2, 3], "children": [1]},
			{"name": "rig", "camera": 0}
		],
		"cameras": [
			{"name": "main", "type": "perspective",
			 "perspective": {"yfov": 0.7, "znear": 0.1, "zfar": 100}}
		]
	}`)

	require.Len(t, scene.RootNodes, 1)
	root := scene.RootNodes[0]
	assert.Equal(t, "root", root.Name)
	assert.Nil(t, root.Camera)

	origin := root.Transform.TransformPoint(amath.NewVec3Zero())
	assert.True(t, origin.Compare(amath.NewVec3(1, 2, 3), 1e-5))

	require.Len(t, root.Children, 1)
	rig := root.Children[0]
	require.NotNil(t, rig.Camera)
	assert.Equal(t, "main", rig.Camera.Name)
	assert.Equal(t, metadata.SceneProjectionPerspective, rig.Camera.Projection)
	assert.InDelta(t, 0.7, float64(rig.Camera.YFovRadians), 1e-6)
	assert.InDelta(t, 0.1, float64(rig.Camera.ZNear), 1e-6)
	assert.InDelta(t, 100.0, float64(rig.Camera.ZFar), 1e-6)
}

func TestSceneLoaderUnboundedFarPlane(t *testing.T) {
	scene := loadScene(t, `{
		"scenes": [{"nodes": [0]}],
		"nodes": [{"camera": 0}],
		"cameras": [
			{"type": "perspective", "perspective": {"yfov": 1.0, "znear": 0.01}}
		]
	}`)

	camera := scene.RootNodes[0].Camera
	require.NotNil(t, camera)
	assert.Equal(t, float32(0), camera.ZFar)
}

func TestSceneLoaderOrthographicCamera(t *testing.T) {
	scene := loadScene(t, `{
		"scenes": [{"nodes": [0]}],
		"nodes": [{"camera": 0}],
		"cameras": [
			{"type": "orthographic",
			 "orthographic": {"xmag": 2.0, "ymag": 1.5, "znear": 0.1, "zfar": 50}}
		]
	}`)

	camera := scene.RootNodes[0].Camera
	require.NotNil(t, camera)
	assert.Equal(t, metadata.SceneProjectionOrthographic, camera.Projection)
	assert.Equal(t, float32(2.0), camera.XMag)
	assert.Equal(t, float32(1.5), camera.YMag)
	assert.Equal(t, float32(50), camera.ZFar)
}

func TestSceneLoaderExplicitMatrix(t *testing.T) {
	scene := loadScene(t, `{
		"scenes": [{"nodes": [0]}],
		"nodes": [{"matrix": [1,0,0,0, 0,1,0,0, 0,0,1,0, 5,6,7,1]}]
	}`)

	origin := scene.RootNodes[0].Transform.TransformPoint(amath.NewVec3Zero())
	assert.True(t, origin.Compare(amath.NewVec3(5, 6, 7), 1e-5))
}

func TestSceneLoaderTRSComposition(t *testing.T) {
	// Translation applies after rotation: a node rotated 90 degrees
	// about Y then translated keeps the translation unrotated.
	scene := loadScene(t, `{
		"scenes": [{"nodes": [0]}],
		"nodes": [{
			"translation": [10, 0, 0],
			"rotation": [0, 0.70710678, 0, 0.70710678]
		}]
	}`)

	transform := scene.RootNodes[0].Transform
	origin := transform.TransformPoint(amath.NewVec3Zero())
	assert.True(t, origin.Compare(amath.NewVec3(10, 0, 0), 1e-4))

	// +X rotates to -Z before the translation applies.
	tip := transform.TransformPoint(amath.NewVec3(1, 0, 0))
	assert.True(t, tip.Compare(amath.NewVec3(10, 0, -1), 1e-4), "got %+v", tip)
}

func TestSceneLoaderRejectsMalformedJSON(t *testing.T) {
	loader := &SceneLoader{}
	_, err := loader.Load(writeScene(t, `{"scenes": [`), metadata.ResourceTypeScene, nil)
	require.Error(t, err)

	var decodeErr *core.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestSceneLoaderMissingFile(t *testing.T) {
	loader := &SceneLoader{}
	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.gltf"), metadata.ResourceTypeScene, nil)
	require.Error(t, err)

	var ioErr *core.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestSceneLoaderRejectsNodeCycle(t *testing.T) {
	loader := &SceneLoader{}
	_, err := loader.Load(writeScene(t, `{
		"scenes": [{"nodes": [0]}],
		"nodes": [
			{"children": [1]},
			{"children": [0]}
		]
	}`), metadata.ResourceTypeScene, nil)
	assert.Error(t, err)
}
