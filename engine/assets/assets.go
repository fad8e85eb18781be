package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/aurora/engine/assets/loaders"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}

/**
 * @brief Owns asset loading and watches asset directories for changes.
 * GPU resources are rebuilt from source each run, so a change on disk
 * only means the next load (or process restart) picks it up; the
 * watcher exists to make that visible in the logs.
 */
type AssetManager struct {
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &AssetManager{
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.ResourceTypeScene, &loaders.SceneLoader{})

	if assetsDir != "" {
		if err := am.addRecursive(assetsDir); err != nil {
			return err
		}
		go am.watch()
	}
	return nil
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return am.fsnotify.Close()
}

func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads the file at path using the loader registered for the
// given resource type.
func (am *AssetManager) LoadAsset(path string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	am.mutex.RLock()
	loader, exists := am.loaders[resourceType]
	am.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("no loader registered for asset type: %d", resourceType)
	}
	return loader.Load(path, resourceType, params)
}

func (am *AssetManager) UnloadAsset(resource *metadata.Resource) error {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	for _, loader := range am.loaders {
		if err := loader.Unload(resource); err != nil {
			return err
		}
	}
	return nil
}

// addRecursive starts watching the named directory and all of its
// sub-directories. The lock is held for the whole walk so a concurrent
// Shutdown cannot close the watcher between the check and the adds.
func (am *AssetManager) addRecursive(name string) error {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return filepath.Walk(name, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		return nil
	})
}

func (am *AssetManager) watch() {
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&fsnotify.Create != 0 {
				if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
					if err := am.addRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch new directory %s: %s", e.Name, err)
					}
					continue
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				core.LogInfo("asset changed on disk, restart to pick it up: %s", e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			return
		}
	}
}
