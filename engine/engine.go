package engine

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/platform"
	"github.com/spaghettifunk/aurora/engine/renderer"
	"github.com/spaghettifunk/aurora/engine/renderer/components"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/renderer/webgpu"
	"github.com/spaghettifunk/aurora/engine/systems"
)

// Systems bundles the subsystems the engine hands to the game.
type Systems struct {
	AssetManager  *assets.AssetManager
	TextureSystem *systems.TextureSystem
	CameraSystem  *systems.CameraSystem
}

type Engine struct {
	gameInstance *Game
	isRunning    bool
	isSuspended  bool

	platform     *platform.Platform
	assetManager *assets.AssetManager

	renderer      *renderer.Renderer
	textureSystem *systems.TextureSystem
	cameraSystem  *systems.CameraSystem

	width  uint32
	height uint32

	clock    *core.Clock
	lastTime float64
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game has no application configuration")
	}
	core.SetLogLevel(g.ApplicationConfig.LogLevel)

	p, err := platform.New()
	if err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     p,
		assetManager: am,
		isRunning:    true,
		isSuspended:  false,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}, nil
}

// Initialize brings up every subsystem in dependency order: events,
// window, assets, GPU backend and renderer, then the game itself. All
// GPU pipelines exist before the first frame is drawn.
func (e *Engine) Initialize() error {
	config := e.gameInstance.ApplicationConfig

	if err := core.EventSystemInitialize(); err != nil {
		return err
	}
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)
	core.EventRegister(core.EVENT_CODE_REDRAW_REQUESTED, e, e.onRedrawRequested)

	if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY,
		config.StartWidth, config.StartHeight); err != nil {
		return err
	}

	if err := e.assetManager.Initialize(config.AssetsDir); err != nil {
		return err
	}

	manifest, err := assets.LoadTextureManifest(config.ManifestPath)
	if err != nil {
		return err
	}

	backend := webgpu.New(e.platform)
	e.textureSystem = systems.NewTextureSystem(manifest, e.assetManager, backend)
	e.renderer = renderer.New(backend, e.textureSystem)

	if err := e.renderer.Initialize(config.Name, e.width, e.height); err != nil {
		return err
	}

	if err := e.setupCamera(config); err != nil {
		return err
	}

	e.gameInstance.Systems = &Systems{
		AssetManager:  e.assetManager,
		TextureSystem: e.textureSystem,
		CameraSystem:  e.cameraSystem,
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}
	return e.gameInstance.FnOnResize(e.width, e.height)
}

// setupCamera installs a sensible default look-at camera, replaced by
// the scene description's camera when one is configured.
func (e *Engine) setupCamera(config *ApplicationConfig) error {
	aspect := float32(e.width) / float32(e.height)
	e.cameraSystem = systems.NewCameraSystem(&components.LookAtCamera{
		Eye:         math.NewVec3(0, 0, 5),
		Target:      math.NewVec3Zero(),
		Up:          math.NewVec3Up(),
		Aspect:      aspect,
		FovYDegrees: 45.0,
		Near:        0.1,
		Far:         100.0,
	})

	if config.ScenePath == "" {
		return nil
	}

	resource, err := e.assetManager.LoadAsset(config.ScenePath, metadata.ResourceTypeScene, nil)
	if err != nil {
		return err
	}
	sceneData, ok := resource.Data.(*metadata.SceneResourceData)
	if !ok {
		return fmt.Errorf("scene asset %s did not produce scene data", config.ScenePath)
	}

	viewProjection, err := systems.DeriveSceneViewProjection(sceneData, aspect)
	if err != nil {
		if errors.Is(err, systems.ErrNoSceneCamera) {
			core.LogWarn("scene %s has no camera, keeping default", config.ScenePath)
			return nil
		}
		return err
	}
	e.cameraSystem.SetCamera(&components.SceneCamera{Matrix: viewProjection})
	core.LogInfo("camera derived from scene %s", config.ScenePath)
	return nil
}

func (e *Engine) Run() error {
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		e.platform.PumpMessages()
		if e.platform.ShouldClose() {
			e.isRunning = false
			break
		}
		if e.isSuspended {
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		e.lastTime = currentTime

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("game update failed, shutting down: %s", err)
			e.isRunning = false
			break
		}

		if err := e.renderFrame(delta); err != nil {
			switch {
			case errors.Is(err, core.ErrSurfaceOutdated):
				// Frame skipped, next trigger retries.
			case errors.Is(err, core.ErrSurfaceLost):
				core.LogError("surface lost, shutting down")
				return err
			default:
				// Asset failures already skipped the affected view.
				core.LogWarn("frame completed with error: %s", err)
			}
		}
	}
	return nil
}

// renderFrame asks the game to fill a render packet and draws it.
func (e *Engine) renderFrame(delta float64) error {
	packet := &metadata.RenderPacket{DeltaTime: delta}
	if err := e.gameInstance.FnRender(packet, delta); err != nil {
		return fmt.Errorf("game render failed: %w", err)
	}
	return e.renderer.DrawFrame(packet)
}

func (e *Engine) Shutdown() error {
	core.LogInfo("shutting down")
	e.isRunning = false

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown failed: %s", err)
		}
	}
	if e.textureSystem != nil {
		e.textureSystem.Shutdown()
	}
	if e.renderer != nil {
		e.renderer.Shutdown()
	}
	if e.assetManager != nil {
		e.assetManager.Shutdown()
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	return core.EventSystemShutdown()
}

func (e *Engine) onEvent(context core.EventContext) bool {
	if context.Type == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("quit event received, shutting down")
		e.isRunning = false
		return true
	}
	return false
}

// onRedrawRequested draws a frame outside the main loop. During a live
// resize some platforms keep the loop blocked in event polling; the
// window refresh event is the only redraw trigger until the drag ends.
func (e *Engine) onRedrawRequested(context core.EventContext) bool {
	if !e.isRunning || e.isSuspended || e.renderer == nil {
		return false
	}
	if err := e.renderFrame(0); err != nil && !errors.Is(err, core.ErrSurfaceOutdated) {
		core.LogWarn("redraw failed: %s", err)
	}
	return true
}

func (e *Engine) onResized(context core.EventContext) bool {
	width := context.Data.U32[0]
	height := context.Data.U32[1]

	if width == 0 || height == 0 {
		// Minimized. Keep the last valid configuration and suspend.
		core.LogInfo("window minimized, suspending")
		e.isSuspended = true
		return true
	}
	e.isSuspended = false

	if width != e.width || height != e.height {
		e.width = width
		e.height = height
		e.renderer.OnResize(width, height)
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError("game resize handler failed: %s", err)
		}
	}
	return false
}
