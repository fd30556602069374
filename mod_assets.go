package forward

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gekko3d/forward/forwardrt/rt/core"
	"github.com/gekko3d/forward/forwardrt/rt/gpu"
)

type AssetId string

var (
	ErrAssetDecode = errors.New("asset decode failed")
	ErrNoDevice    = errors.New("asset server has no device")
)

// CubemapFaces are the file names looked up when a skybox path is a
// directory, in +X -X +Y -Y +Z -Z order.
var CubemapFaces = [6]string{"px.png", "nx.png", "py.png", "ny.png", "pz.png", "nz.png"}

// AssetServer owns every texture and mesh handed to scenes. Handles stay
// valid until the app shuts down. Textures are cached by path.
type AssetServer struct {
	device gpu.Device
	log    Logger

	textures  map[AssetId]core.Texture
	meshes    map[AssetId]*core.Mesh
	pathIds   map[string]AssetId
	meshNames map[string]AssetId
	failed    map[string]error
	white     core.Texture
}

// AssetServerModule needs a DeviceResource, so it installs after the window
// or headless module.
type AssetServerModule struct{}

func NewAssetServer(device gpu.Device, log Logger) *AssetServer {
	if log == nil {
		log = NewNopLogger()
	}
	return &AssetServer{
		device:    device,
		log:       log,
		textures:  make(map[AssetId]core.Texture),
		meshes:    make(map[AssetId]*core.Mesh),
		pathIds:   make(map[string]AssetId),
		meshNames: make(map[string]AssetId),
		failed:    make(map[string]error),
	}
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	dev := MustResource[DeviceResource](app)
	cmd.AddResources(NewAssetServer(dev.Device, app.Logger()))
}

// LoadTexture decodes the image at path and uploads it once; later calls
// with the same path return the cached id.
func (server *AssetServer) LoadTexture(path string) (AssetId, error) {
	key := "texture:" + filepath.Clean(path)
	if id, ok := server.pathIds[key]; ok {
		return id, nil
	}
	if server.device == nil {
		return "", ErrNoDevice
	}

	img, err := decodeImageFile(path)
	if err != nil {
		return "", err
	}
	tex, err := server.device.CreateTexture(filepath.Clean(path), img)
	if err != nil {
		return "", fmt.Errorf("texture %s: %w", path, err)
	}
	return server.store(key, tex), nil
}

// LoadCubemap builds a cubemap from a directory of CubemapFaces, or from a
// single image repeated on every face.
func (server *AssetServer) LoadCubemap(path string) (AssetId, error) {
	key := "cubemap:" + filepath.Clean(path)
	if id, ok := server.pathIds[key]; ok {
		return id, nil
	}
	if server.device == nil {
		return "", ErrNoDevice
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	var faces [6]*image.RGBA
	if info.IsDir() {
		for i, name := range CubemapFaces {
			if faces[i], err = decodeImageFile(filepath.Join(path, name)); err != nil {
				return "", err
			}
		}
	} else {
		img, err := decodeImageFile(path)
		if err != nil {
			return "", err
		}
		for i := range faces {
			faces[i] = img
		}
	}

	tex, err := server.device.CreateCubemap(filepath.Clean(path), faces)
	if err != nil {
		return "", fmt.Errorf("cubemap %s: %w", path, err)
	}
	return server.store(key, tex), nil
}

func (server *AssetServer) store(key string, tex core.Texture) AssetId {
	id := makeAssetId()
	server.textures[id] = tex
	server.pathIds[key] = id
	return id
}

func (server *AssetServer) GetTexture(id AssetId) (core.Texture, bool) {
	tex, ok := server.textures[id]
	return tex, ok
}

// Texture returns the texture at path, or nil. A failed path is logged
// once and not retried.
func (server *AssetServer) Texture(path string) core.Texture {
	return server.lookup("texture:"+filepath.Clean(path), path, server.LoadTexture)
}

func (server *AssetServer) Cubemap(path string) core.Texture {
	return server.lookup("cubemap:"+filepath.Clean(path), path, server.LoadCubemap)
}

func (server *AssetServer) lookup(key, path string, load func(string) (AssetId, error)) core.Texture {
	if _, failed := server.failed[key]; failed {
		return nil
	}
	id, err := load(path)
	if err != nil {
		server.failed[key] = err
		server.log.Warnf("%s: %v", key, err)
		return nil
	}
	return server.textures[id]
}

// WhiteTexture is a 1x1 opaque white texture, created on first use.
func (server *AssetServer) WhiteTexture() core.Texture {
	if server.white != nil || server.device == nil {
		return server.white
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []uint8{255, 255, 255, 255})
	tex, err := server.device.CreateTexture("white", img)
	if err != nil {
		server.log.Errorf("white texture: %v", err)
		return nil
	}
	server.white = tex
	return tex
}

// LoadMesh uploads mesh and registers it under name. Registering a name
// twice replaces the earlier mesh for later lookups.
func (server *AssetServer) LoadMesh(name string, mesh *core.Mesh) (AssetId, error) {
	if server.device == nil {
		return "", ErrNoDevice
	}
	if err := server.device.UploadMesh(mesh); err != nil {
		return "", fmt.Errorf("mesh %s: %w", name, err)
	}
	id := makeAssetId()
	server.meshes[id] = mesh
	server.meshNames[name] = id
	return id, nil
}

func (server *AssetServer) Mesh(name string) (*core.Mesh, bool) {
	id, ok := server.meshNames[name]
	if !ok {
		return nil, false
	}
	return server.meshes[id], true
}

func (server *AssetServer) GetMesh(id AssetId) (*core.Mesh, bool) {
	mesh, ok := server.meshes[id]
	return mesh, ok
}

func decodeImageFile(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetDecode, path, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
