package forward

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/forward/forwardrt/rt/core"
)

var (
	ErrUnknownMesh     = errors.New("unknown mesh")
	ErrUnknownMaterial = errors.New("unknown material")
	ErrUnknownPrefab   = errors.New("unknown prefab")
	ErrUnknownEntity   = errors.New("unknown entity type")
)

// SceneDef is the JSON form of a scene. Texture and skybox paths are
// relative to BaseFolder.
type SceneDef struct {
	BaseFolder      string        `json:"base_folder,omitempty"`
	Skybox          string        `json:"skybox,omitempty"`
	BackgroundColor mgl32.Vec3    `json:"background_color"`
	AmbientLight    mgl32.Vec3    `json:"ambient_light"`
	Camera          CameraDef     `json:"camera"`
	Meshes          []MeshDef     `json:"meshes,omitempty"`
	Materials       []MaterialDef `json:"materials,omitempty"`
	Prefabs         []PrefabDef   `json:"prefabs,omitempty"`
	Entities        []EntityDef   `json:"entities"`
}

type CameraDef struct {
	Eye    mgl32.Vec3 `json:"eye"`
	Center mgl32.Vec3 `json:"center"`
	Up     mgl32.Vec3 `json:"up,omitempty"`
	Fov    float32    `json:"fov,omitempty"`
	Near   float32    `json:"near,omitempty"`
	Far    float32    `json:"far,omitempty"`
}

// MeshDef names a procedural primitive: sphere, cube, quad or plane.
type MeshDef struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Params []float32 `json:"params,omitempty"`
}

type MaterialDef struct {
	Name           string            `json:"name"`
	Color          mgl32.Vec4        `json:"color"`
	AlphaMode      string            `json:"alpha_mode,omitempty"`
	AlphaCutoff    *float32          `json:"alpha_cutoff,omitempty"`
	TwoSided       bool              `json:"two_sided,omitempty"`
	EmissiveFactor mgl32.Vec3        `json:"emissive_factor,omitempty"`
	Textures       map[string]string `json:"textures,omitempty"`
}

// TransformDef uses Euler angles in degrees, applied X then Y then Z.
type TransformDef struct {
	Position mgl32.Vec3  `json:"position"`
	Rotation mgl32.Vec3  `json:"rotation,omitempty"`
	Scale    *mgl32.Vec3 `json:"scale,omitempty"`
}

type NodeDef struct {
	Name      string       `json:"name"`
	Mesh      string       `json:"mesh,omitempty"`
	Material  string       `json:"material,omitempty"`
	Transform TransformDef `json:"transform"`
	Hidden    bool         `json:"hidden,omitempty"`
	Children  []NodeDef    `json:"children,omitempty"`
}

type PrefabDef struct {
	Name string  `json:"name"`
	Root NodeDef `json:"root"`
}

type LightDef struct {
	Type        string     `json:"type"`
	Color       mgl32.Vec3 `json:"color"`
	Intensity   float32    `json:"intensity"`
	ConeInner   float32    `json:"cone_inner,omitempty"`
	ConeOuter   float32    `json:"cone_outer,omitempty"`
	MaxDistance float32    `json:"max_distance,omitempty"`
}

// EntityDef is one top-level entity. Type is "prefab", "light" or "marker".
type EntityDef struct {
	Name      string       `json:"name"`
	Type      string       `json:"type"`
	Prefab    string       `json:"prefab,omitempty"`
	Light     *LightDef    `json:"light,omitempty"`
	Transform TransformDef `json:"transform"`
	Hidden    bool         `json:"hidden,omitempty"`
}

func (t TransformDef) toTransform() core.Transform {
	tr := core.NewTransform()
	tr.Position = t.Position
	tr.Rotation = mgl32.AnglesToQuat(
		mgl32.DegToRad(t.Rotation.X()),
		mgl32.DegToRad(t.Rotation.Y()),
		mgl32.DegToRad(t.Rotation.Z()),
		mgl32.XYZ,
	)
	if t.Scale != nil {
		tr.Scale = *t.Scale
	}
	return tr
}

// LoadSceneDef reads a JSON scene. A relative base folder is resolved
// against the directory of the file.
func LoadSceneDef(filename string) (*SceneDef, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var def SceneDef
	if err := json.Unmarshal(bytes, &def); err != nil {
		return nil, fmt.Errorf("scene %s: %w", filename, err)
	}
	if !filepath.IsAbs(def.BaseFolder) {
		def.BaseFolder = filepath.Join(filepath.Dir(filename), def.BaseFolder)
	}
	return &def, nil
}

func SaveSceneDef(filename string, def *SceneDef) error {
	bytes, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, bytes, 0644)
}

type sceneBuilder struct {
	def       *SceneDef
	assets    *AssetServer
	materials map[string]*core.Material
	prefabs   map[string]*core.Prefab
}

// BuildScene turns def into a scene and its camera, uploading meshes and
// textures through assets. Textures that fail to load are logged by the
// asset server and left unbound.
func BuildScene(def *SceneDef, assets *AssetServer) (*core.Scene, *core.Camera, error) {
	b := &sceneBuilder{
		def:       def,
		assets:    assets,
		materials: make(map[string]*core.Material),
		prefabs:   make(map[string]*core.Prefab),
	}

	for _, m := range def.Meshes {
		mesh, ok := core.NewProceduralMesh(m.Type, m.Params)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s has type %q", ErrUnknownMesh, m.Name, m.Type)
		}
		if _, err := assets.LoadMesh(m.Name, mesh); err != nil {
			return nil, nil, err
		}
	}

	for _, m := range def.Materials {
		mat, err := b.material(m)
		if err != nil {
			return nil, nil, err
		}
		b.materials[m.Name] = mat
	}

	for _, p := range def.Prefabs {
		root, err := b.node(p.Root)
		if err != nil {
			return nil, nil, fmt.Errorf("prefab %s: %w", p.Name, err)
		}
		b.prefabs[p.Name] = core.NewPrefab(p.Name, root)
	}

	scene := core.NewScene()
	scene.BackgroundColor = def.BackgroundColor
	scene.AmbientLight = def.AmbientLight
	scene.BaseFolder = def.BaseFolder
	scene.SkyboxFilename = def.Skybox

	for _, e := range def.Entities {
		entity, err := b.entity(e)
		if err != nil {
			return nil, nil, fmt.Errorf("entity %s: %w", e.Name, err)
		}
		scene.AddEntity(entity)
	}

	return scene, def.Camera.toCamera(), nil
}

func (b *sceneBuilder) material(def MaterialDef) (*core.Material, error) {
	mat := core.NewMaterial(def.Name, def.Color)
	mode, err := core.ParseAlphaMode(def.AlphaMode)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", def.Name, err)
	}
	mat.AlphaMode = mode
	if def.AlphaCutoff != nil {
		mat.AlphaCutoff = *def.AlphaCutoff
	}
	mat.TwoSided = def.TwoSided
	mat.EmissiveFactor = def.EmissiveFactor

	for channel, path := range def.Textures {
		ch, err := core.ParseTextureChannel(channel)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", def.Name, err)
		}
		if tex := b.assets.Texture(filepath.Join(b.def.BaseFolder, path)); tex != nil {
			mat.SetTexture(ch, tex)
		}
	}
	return mat, nil
}

func (b *sceneBuilder) node(def NodeDef) (*core.Node, error) {
	node := core.NewNode(def.Name)
	node.Transform = def.Transform.toTransform()
	node.Visible = !def.Hidden

	if def.Mesh != "" {
		mesh, ok := b.assets.Mesh(def.Mesh)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMesh, def.Mesh)
		}
		node.Mesh = mesh
	}
	if def.Material != "" {
		mat, ok := b.materials[def.Material]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMaterial, def.Material)
		}
		node.Material = mat
	}

	for _, c := range def.Children {
		child, err := b.node(c)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}

func (b *sceneBuilder) entity(def EntityDef) (core.Entity, error) {
	switch def.Type {
	case "prefab":
		prefab, ok := b.prefabs[def.Prefab]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPrefab, def.Prefab)
		}
		e := prefab.Instantiate(def.Name, def.Transform.toTransform())
		e.Visible = !def.Hidden
		return e, nil
	case "light":
		if def.Light == nil {
			return nil, errors.New("light entity without light block")
		}
		typ, err := core.ParseLightType(def.Light.Type)
		if err != nil {
			return nil, err
		}
		l := core.NewLightEntity(def.Name, typ)
		l.Root.Transform = def.Transform.toTransform()
		l.Color = def.Light.Color
		l.Intensity = def.Light.Intensity
		if def.Light.ConeInner > 0 {
			l.ConeInner = def.Light.ConeInner
		}
		if def.Light.ConeOuter > 0 {
			l.ConeOuter = def.Light.ConeOuter
		}
		if def.Light.MaxDistance > 0 {
			l.MaxDistance = def.Light.MaxDistance
		}
		l.Visible = !def.Hidden
		return l, nil
	case "marker":
		return &core.MarkerEntity{
			Name:      def.Name,
			Transform: def.Transform.toTransform(),
			Visible:   !def.Hidden,
		}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEntity, def.Type)
}

func (c CameraDef) toCamera() *core.Camera {
	cam := core.NewCamera()
	up := c.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	eye, center := c.Eye, c.Center
	if eye == center {
		eye, center = cam.Eye, cam.Center
	}
	cam.LookAt(eye, center, up)

	fov, near, far := c.Fov, c.Near, c.Far
	if fov <= 0 {
		fov = cam.Fov
	}
	if near <= 0 {
		near = cam.Near
	}
	if far <= near {
		far = cam.Far
	}
	cam.SetPerspective(fov, cam.Aspect, near, far)
	return cam
}

// DefaultSceneDef is the scene shown when no file is given: a floor, a few
// opaque boxes, two transparent spheres and one light of each kind.
func DefaultSceneDef() *SceneDef {
	scale := func(x, y, z float32) *mgl32.Vec3 { return &mgl32.Vec3{x, y, z} }
	return &SceneDef{
		BackgroundColor: mgl32.Vec3{0.1, 0.1, 0.12},
		AmbientLight:    mgl32.Vec3{0.15, 0.15, 0.15},
		Camera: CameraDef{
			Eye:    mgl32.Vec3{0, 4, 12},
			Center: mgl32.Vec3{0, 1, 0},
			Fov:    45,
		},
		Meshes: []MeshDef{
			{Name: "floor", Type: "plane", Params: []float32{20}},
			{Name: "box", Type: "cube", Params: []float32{1, 1, 1}},
			{Name: "ball", Type: "sphere", Params: []float32{0.75}},
		},
		Materials: []MaterialDef{
			{Name: "ground", Color: mgl32.Vec4{0.6, 0.6, 0.6, 1}},
			{Name: "red", Color: mgl32.Vec4{0.8, 0.2, 0.2, 1}},
			{Name: "glass", Color: mgl32.Vec4{0.3, 0.6, 0.9, 0.4}, AlphaMode: "BLEND", TwoSided: true},
			{Name: "glow", Color: mgl32.Vec4{1, 0.9, 0.5, 1}, EmissiveFactor: mgl32.Vec3{0.6, 0.5, 0.2}},
		},
		Prefabs: []PrefabDef{
			{Name: "floor", Root: NodeDef{Name: "floor", Mesh: "floor", Material: "ground"}},
			{Name: "crate", Root: NodeDef{
				Name: "crate", Mesh: "box", Material: "red",
				Children: []NodeDef{{
					Name: "lamp", Mesh: "ball", Material: "glow",
					Transform: TransformDef{Position: mgl32.Vec3{0, 1, 0}, Scale: scale(0.3, 0.3, 0.3)},
				}},
			}},
			{Name: "bubble", Root: NodeDef{Name: "bubble", Mesh: "ball", Material: "glass"}},
		},
		Entities: []EntityDef{
			{Name: "floor", Type: "prefab", Prefab: "floor"},
			{Name: "crate.left", Type: "prefab", Prefab: "crate", Transform: TransformDef{Position: mgl32.Vec3{-3, 0.5, 0}, Rotation: mgl32.Vec3{0, 30, 0}}},
			{Name: "crate.right", Type: "prefab", Prefab: "crate", Transform: TransformDef{Position: mgl32.Vec3{3, 0.5, -2}}},
			{Name: "bubble.near", Type: "prefab", Prefab: "bubble", Transform: TransformDef{Position: mgl32.Vec3{0, 1, 3}}},
			{Name: "bubble.far", Type: "prefab", Prefab: "bubble", Transform: TransformDef{Position: mgl32.Vec3{0.5, 1, -1}}},
			{Name: "sun", Type: "light", Light: &LightDef{Type: "DIRECTIONAL", Color: mgl32.Vec3{1, 0.95, 0.9}, Intensity: 0.6},
				Transform: TransformDef{Rotation: mgl32.Vec3{-50, 20, 0}}},
			{Name: "bulb", Type: "light", Light: &LightDef{Type: "POINT", Color: mgl32.Vec3{1, 0.6, 0.3}, Intensity: 2, MaxDistance: 10},
				Transform: TransformDef{Position: mgl32.Vec3{0, 3, 1}}},
			{Name: "torch", Type: "light", Light: &LightDef{Type: "SPOT", Color: mgl32.Vec3{0.4, 0.6, 1}, Intensity: 3, ConeInner: 15, ConeOuter: 25, MaxDistance: 20},
				Transform: TransformDef{Position: mgl32.Vec3{0, 6, 6}, Rotation: mgl32.Vec3{135, 0, 0}}},
			{Name: "spawn", Type: "marker", Transform: TransformDef{Position: mgl32.Vec3{0, 1, 8}}},
		},
	}
}

// SceneResource is the scene and camera being rendered.
type SceneResource struct {
	Scene  *core.Scene
	Camera *core.Camera
}

// SceneModule loads Path, or the default scene when Path is empty. Requires
// AssetServerModule.
type SceneModule struct {
	Path string
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	assets := MustResource[AssetServer](app)

	def := DefaultSceneDef()
	if m.Path != "" {
		loaded, err := LoadSceneDef(m.Path)
		if err != nil {
			panic(err)
		}
		def = loaded
	}

	scene, camera, err := BuildScene(def, assets)
	if err != nil {
		panic(err)
	}
	cmd.Logger().Infof("scene loaded: %d entities", len(scene.Entities))
	cmd.AddResources(&SceneResource{Scene: scene, Camera: camera})
}
