package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

type SceneLoader struct{}

// The subset of the glTF 2.0 JSON document the engine reads: the node
// hierarchy and any cameras hanging off it. Mesh and buffer data are
// left untouched.
type gltfDocument struct {
	Scenes  []gltfScene  `json:"scenes"`
	Nodes   []gltfNode   `json:"nodes"`
	Cameras []gltfCamera `json:"cameras"`
}

type gltfScene struct {
	Name  string `json:"name"`
	Nodes []int  `json:"nodes"`
}

type gltfNode struct {
	Name        string      `json:"name"`
	Children    []int       `json:"children"`
	Camera      *int        `json:"camera"`
	Matrix      []float32   `json:"matrix"`
	Translation *[3]float32 `json:"translation"`
	Rotation    *[4]float32 `json:"rotation"`
	Scale       *[3]float32 `json:"scale"`
}

type gltfCamera struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Perspective  *gltfPerspective  `json:"perspective"`
	Orthographic *gltfOrthographic `json:"orthographic"`
}

type gltfPerspective struct {
	YFov  float32  `json:"yfov"`
	ZNear float32  `json:"znear"`
	ZFar  *float32 `json:"zfar"`
}

type gltfOrthographic struct {
	XMag  float32 `json:"xmag"`
	YMag  float32 `json:"ymag"`
	ZNear float32 `json:"znear"`
	ZFar  float32 `json:"zfar"`
}

// Load reads a .gltf document and converts its node hierarchies into a
// scene resource.
func (sl *SceneLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}

	doc := &gltfDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &core.DecodeError{Path: path, Err: err}
	}

	scene := &metadata.SceneResourceData{}
	for _, s := range doc.Scenes {
		for _, rootIndex := range s.Nodes {
			root, err := buildSceneNode(doc, rootIndex, make(map[int]bool))
			if err != nil {
				return nil, &core.DecodeError{Path: path, Err: err}
			}
			scene.RootNodes = append(scene.RootNodes, root)
		}
	}
	core.LogDebug("loaded scene %s with %d root nodes", path, len(scene.RootNodes))

	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     scene,
	}, nil
}

func (sl *SceneLoader) Unload(*metadata.Resource) error {
	return nil
}

func buildSceneNode(doc *gltfDocument, index int, visited map[int]bool) (*metadata.SceneNode, error) {
	if index < 0 || index >= len(doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", index)
	}
	if visited[index] {
		return nil, fmt.Errorf("node cycle detected at index %d", index)
	}
	visited[index] = true

	src := doc.Nodes[index]
	node := &metadata.SceneNode{
		Name:      src.Name,
		Transform: nodeLocalTransform(src),
	}

	if src.Camera != nil {
		camera, err := convertCamera(doc, *src.Camera)
		if err != nil {
			return nil, err
		}
		node.Camera = camera
	}

	for _, childIndex := range src.Children {
		child, err := buildSceneNode(doc, childIndex, visited)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// nodeLocalTransform prefers an explicit column-major matrix; otherwise
// it composes translation, rotation and scale in that order.
func nodeLocalTransform(node gltfNode) math.Mat4 {
	if len(node.Matrix) == 16 {
		out := math.Mat4{}
		copy(out.Data[:], node.Matrix)
		return out
	}

	local := math.NewMat4Identity()
	if node.Translation != nil {
		t := node.Translation
		local = math.NewMat4Translation(math.NewVec3(t[0], t[1], t[2]))
	}
	if node.Rotation != nil {
		r := node.Rotation
		local = local.Mul(math.NewMat4FromQuaternion(math.NewVec4(r[0], r[1], r[2], r[3])))
	}
	if node.Scale != nil {
		s := node.Scale
		local = local.Mul(math.NewMat4Scale(math.NewVec3(s[0], s[1], s[2])))
	}
	return local
}

func convertCamera(doc *gltfDocument, index int) (*metadata.SceneCameraDef, error) {
	if index < 0 || index >= len(doc.Cameras) {
		return nil, fmt.Errorf("camera index %d out of range", index)
	}
	src := doc.Cameras[index]

	switch src.Type {
	case "perspective":
		if src.Perspective == nil {
			return nil, fmt.Errorf("camera %d declares perspective without parameters", index)
		}
		camera := &metadata.SceneCameraDef{
			Name:        src.Name,
			Projection:  metadata.SceneProjectionPerspective,
			YFovRadians: src.Perspective.YFov,
			ZNear:       src.Perspective.ZNear,
		}
		if src.Perspective.ZFar != nil {
			camera.ZFar = *src.Perspective.ZFar
		}
		return camera, nil
	case "orthographic":
		if src.Orthographic == nil {
			return nil, fmt.Errorf("camera %d declares orthographic without parameters", index)
		}
		return &metadata.SceneCameraDef{
			Name:       src.Name,
			Projection: metadata.SceneProjectionOrthographic,
			ZNear:      src.Orthographic.ZNear,
			ZFar:       src.Orthographic.ZFar,
			XMag:       src.Orthographic.XMag,
			YMag:       src.Orthographic.YMag,
		}, nil
	default:
		return nil, fmt.Errorf("camera %d has unknown type %q", index, src.Type)
	}
}
