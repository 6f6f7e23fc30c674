package assets

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/assets/loaders"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/resources"
)

type AssetInfo struct {
	Name       string
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

type AssetOp uint8

const (
	AssetCreated AssetOp = iota
	AssetModified
	AssetRemoved
)

func (op AssetOp) String() string {
	switch op {
	case AssetCreated:
		return "created"
	case AssetModified:
		return "modified"
	default:
		return "removed"
	}
}

// AssetEvent reports a change to an indexed asset file.
type AssetEvent struct {
	Name string
	Path string
	Op   AssetOp
}

// AssetManager indexes every known asset file under a root directory by its
// slash-separated path relative to the root, e.g. "shaders/default.vert".
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader

	mutex sync.RWMutex

	watchMu  sync.Mutex
	fsnotify *fsnotify.Watcher
	done     chan struct{}
	isClosed bool
}

// NewAssetManager indexes root recursively and registers the built-in loaders.
func NewAssetManager(root string) (*AssetManager, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid asset root %s", root)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, errors.Wrapf(core.ErrAssetNotFound, "asset root %s is not a directory", root)
	}

	am := &AssetManager{
		root:    abs,
		assets:  make(map[string]AssetInfo),
		loaders: make(map[resources.ResourceType]Loader),
	}
	if err := am.walk(abs, nil); err != nil {
		return nil, err
	}

	// Register loaders
	am.RegisterLoader(resources.ResourceTypeShader, &loaders.ShaderLoader{})
	am.RegisterLoader(resources.ResourceTypeImage, &loaders.ImageLoader{})

	core.LogDebug("indexed %d assets under %s", len(am.assets), abs)
	return am, nil
}

func (am *AssetManager) Root() string {
	return am.root
}

// RegisterLoader sets the loader used for assets of type t, replacing any previous one.
func (am *AssetManager) RegisterLoader(t resources.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[t] = loader
}

// Names returns every indexed asset name, sorted.
func (am *AssetManager) Names() []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	names := make([]string, 0, len(am.assets))
	for name := range am.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the file path of the named asset.
func (am *AssetManager) Resolve(name string) (string, error) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	asset, ok := am.assets[filepath.ToSlash(filepath.Clean(name))]
	if !ok {
		return "", errors.Wrapf(core.ErrAssetNotFound, "asset %s", name)
	}
	return asset.Path, nil
}

// Load reads the named asset through the loader registered for its type.
func (am *AssetManager) Load(name string) (*resources.Resource, error) {
	key := filepath.ToSlash(filepath.Clean(name))

	am.mutex.Lock()
	asset, exists := am.assets[key]
	if !exists {
		am.mutex.Unlock()
		return nil, errors.Wrapf(core.ErrAssetNotFound, "asset %s", name)
	}
	loader, loaderExists := am.loaders[asset.Type]
	asset.LastLoaded = time.Now()
	am.assets[key] = asset
	am.mutex.Unlock()

	if !loaderExists {
		return nil, errors.Errorf("no loader registered for %s asset %s", asset.Type, name)
	}
	return loader.Load(key, asset.Path)
}

// Unload hands resource back to the loader of its type.
func (am *AssetManager) Unload(resource *resources.Resource) error {
	am.mutex.RLock()
	loader, ok := am.loaders[resource.Type]
	am.mutex.RUnlock()
	if !ok {
		return errors.Errorf("no loader registered for %s asset %s", resource.Type, resource.Name)
	}
	return loader.Unload(resource)
}

// Watch starts watching the asset root. Changes to known asset files are
// applied to the index and delivered on the returned channel, which is closed
// once ctx is done or Close is called. Only one watch may be active.
func (am *AssetManager) Watch(ctx context.Context) (<-chan AssetEvent, error) {
	am.watchMu.Lock()
	defer am.watchMu.Unlock()

	if am.isClosed {
		return nil, errors.New("asset manager already closed")
	}
	if am.fsnotify != nil {
		return nil, errors.New("asset manager is already watching")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}
	am.fsnotify = watcher
	if err := am.walk(am.root, watcher); err != nil {
		watcher.Close()
		am.fsnotify = nil
		return nil, err
	}

	am.done = make(chan struct{})
	events := make(chan AssetEvent, 16)
	go am.start(ctx, watcher, am.done, events)
	return events, nil
}

// Close stops the watcher, if any. The manager can still resolve and load.
func (am *AssetManager) Close() error {
	am.watchMu.Lock()
	defer am.watchMu.Unlock()
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	if am.done != nil {
		close(am.done)
	}
	return nil
}

func (am *AssetManager) start(ctx context.Context, watcher *fsnotify.Watcher, done <-chan struct{}, events chan<- AssetEvent) {
	defer close(events)
	defer watcher.Close()

	for {
		select {
		case e, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev, ok := am.handleFileEvent(watcher, e); ok {
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-ctx.Done():
			return
		case <-done:
			return
		}
	}
}

func (am *AssetManager) handleFileEvent(watcher *fsnotify.Watcher, e fsnotify.Event) (AssetEvent, bool) {
	// Can't stat a removed path, so removals are resolved against the index.
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		name, ok := am.removeAsset(e.Name)
		if !ok {
			return AssetEvent{}, false
		}
		return AssetEvent{Name: name, Path: e.Name, Op: AssetRemoved}, true
	}

	if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return AssetEvent{}, false
	}
	s, err := os.Stat(e.Name)
	if err != nil {
		return AssetEvent{}, false
	}
	if s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.walk(e.Name, watcher); err != nil {
				core.LogWarn("asset watcher: %s", err)
			}
		}
		return AssetEvent{}, false
	}

	name, created, ok := am.indexFile(e.Name)
	if !ok {
		return AssetEvent{}, false
	}
	op := AssetModified
	if created {
		op = AssetCreated
	}
	return AssetEvent{Name: name, Path: e.Name, Op: op}, true
}

// walk indexes every asset file under path. With a watcher, every directory
// is added to it as well.
func (am *AssetManager) walk(path string, watcher *fsnotify.Watcher) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if watcher != nil {
				return errors.Wrapf(watcher.Add(walkPath), "failed to watch %s", walkPath)
			}
			return nil
		}
		am.indexFile(walkPath)
		return nil
	})
}

// indexFile records path if it is a known asset type and reports its name and
// whether it was new.
func (am *AssetManager) indexFile(path string) (string, bool, bool) {
	assetType := resources.ResourceTypeFromPath(path)
	if assetType == resources.ResourceTypeNone {
		return "", false, false
	}
	name, ok := am.nameOf(path)
	if !ok {
		return "", false, false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	_, exists := am.assets[name]
	am.assets[name] = AssetInfo{
		Name: name,
		Path: path,
		Type: assetType,
	}
	return name, !exists, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) (string, bool) {
	name, ok := am.nameOf(path)
	if !ok {
		return "", false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	if _, exists := am.assets[name]; !exists {
		return "", false
	}
	delete(am.assets, name)
	return name, true
}

func (am *AssetManager) nameOf(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(am.root, abs)
	if err != nil || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
