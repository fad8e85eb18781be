package testbed

import (
	"errors"
	"fmt"
	"os"

	"github.com/spaghettifunk/aurora/engine"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

const configPath = "app.toml"

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32

	cubes []*math.Transform
}

func NewTestGame() (*TestGame, error) {
	config, err := engine.LoadApplicationConfig(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		core.LogInfo("no %s found, using defaults", configPath)
		config = engine.DefaultApplicationConfig()
	}

	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				width:  config.StartWidth,
				height: config.StartHeight,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	if g.Systems == nil {
		return fmt.Errorf("the engine has not initialized the game systems yet")
	}
	state := g.State.(*gameState)

	state.cubes = []*math.Transform{
		math.NewTransformFromPosition(math.NewVec3(0, 0, 0)),
		math.NewTransformFromPosition(math.NewVec3(1.5, 0, -1)),
	}
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	spin := float32(30.0 * deltaTime)
	for _, cube := range state.cubes {
		cube.Rotate(math.NewVec3(0, spin, 0))
	}
	return nil
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)

	viewProjection, generation := g.Systems.CameraSystem.ViewProjection()

	packet.BackgroundTextureName = g.ApplicationConfig.BackgroundTexture
	packet.CameraViewProjection = viewProjection
	packet.CameraGeneration = generation

	packet.ModelInstances = make([]metadata.ModelInstance, 0, len(state.cubes))
	for _, cube := range state.cubes {
		packet.ModelInstances = append(packet.ModelInstances, metadata.ModelInstance{
			Transform: cube.GetLocal(),
		})
	}
	return nil
}

func (g *TestGame) OnResize(width, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	return nil
}
