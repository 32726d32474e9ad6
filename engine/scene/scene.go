package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/rxhxm/rc-car-3d-experience/common"
	"github.com/rxhxm/rc-car-3d-experience/engine/camera"
	"github.com/rxhxm/rc-car-3d-experience/engine/game_object"
	"github.com/rxhxm/rc-car-3d-experience/engine/renderer"
)

type scene struct {
	mu     *sync.RWMutex
	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer

	registry map[uint64]game_object.GameObject
	// matrices holds each object's world matrix, rebuilt by PrepareDraw.
	// Slots are per-object so prep workers never write the same memory.
	matrices map[uint64]*[16]float32
	nextID   uint64

	// prepPool manages a bounded set of reusable goroutines for the parallel
	// CPU prep phase of PrepareDraw. Workers persist across frames, avoiding
	// per-frame goroutine spawn/teardown overhead.
	prepPool    worker.DynamicWorkerPool
	prepWorkers int
}

// Scene manages a registry of GameObjects with a Camera and Renderer for
// rendering. Each frame the caller runs PrepareDraw to refresh the camera and
// world matrices, then DrawCalls inside the renderer's frame bracket.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Count returns the number of GameObjects in the scene's registry.
	//
	// Returns:
	//   - int: count of registered GameObjects
	Count() int

	// Add adds a GameObject to the scene and registers its model with the
	// renderer. Objects with a zero ID are assigned the next free ID.
	//
	// Parameters:
	//   - obj: the GameObject to add (must carry a Model)
	//
	// Returns:
	//   - uint64: the object's ID
	//   - error: an error if the object has no model or GPU registration fails
	Add(obj game_object.GameObject) (uint64, error)

	// Get retrieves a GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject from the registry by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes all objects from the scene.
	// Does not release GPU resources.
	Clear()

	// PrepareDraw refreshes the camera matrices and rebuilds every enabled
	// object's world matrix. Matrix builds run in parallel on the scene's
	// worker pool with a per-frame barrier.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	PrepareDraw(deltaTime float32)

	// DrawCalls issues a draw for each enabled object using the matrices
	// built by the last PrepareDraw. Must be called within a
	// BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: error if a draw call fails
	DrawCalls() error
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera and renderer. Both are
// required and NewScene panics if either is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:          &sync.RWMutex{},
		name:        name,
		cam:         cam,
		r:           r,
		registry:    make(map[uint64]game_object.GameObject),
		matrices:    make(map[uint64]*[16]float32),
		nextID:      1,
		prepWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the prep pool after options so WithPrepareWorkers can
	// override the default. Queue size of 256 accommodates typical object
	// counts with headroom.
	s.prepPool = worker.NewDynamicWorkerPool(s.prepWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) (uint64, error) {
	if obj == nil {
		return 0, fmt.Errorf("scene: cannot add nil object")
	}
	mdl := obj.Model()
	if mdl == nil {
		return 0, fmt.Errorf("scene: object has no model")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.r.RegisterModel(mdl); err != nil {
		return 0, fmt.Errorf("scene: register model %q: %w", mdl.Name(), err)
	}

	id := obj.ID()
	if id == 0 {
		id = s.nextID
		obj.SetID(id)
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}

	s.registry[id] = obj
	s.matrices[id] = &[16]float32{}
	return id, nil
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
	delete(s.matrices, id)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
	s.matrices = make(map[uint64]*[16]float32)
	s.nextID = 1
}

func (s *scene) PrepareDraw(deltaTime float32) {
	s.mu.RLock()
	cam := s.cam
	r := s.r
	jobs := make([]struct {
		obj  game_object.GameObject
		slot *[16]float32
	}, 0, len(s.registry))
	for id, obj := range s.registry {
		if !obj.Enabled() {
			continue
		}
		jobs = append(jobs, struct {
			obj  game_object.GameObject
			slot *[16]float32
		}{obj, s.matrices[id]})
	}
	s.mu.RUnlock()

	cam.Update()
	r.UpdateCamera(cam.ViewProjectionMatrix())

	// Submit each object's matrix build to the prep pool. A WaitGroup
	// provides per-frame barrier sync since pool.Wait() blocks until
	// workers idle-exit, which is unsuitable for frame-rate workloads.
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		jobCap := job
		s.prepPool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				pos, scale, rot := jobCap.obj.TransformData()
				common.BuildModelMatrix(jobCap.slot[:],
					pos[0], pos[1], pos[2],
					rot[0], rot[1], rot[2],
					scale[0], scale[1], scale[2],
				)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, obj := range s.registry {
		if !obj.Enabled() || obj.Model() == nil {
			continue
		}
		slot := s.matrices[id]
		if slot == nil {
			continue
		}
		if err := s.r.Draw(obj.Model().Name(), *slot); err != nil {
			return err
		}
	}
	return nil
}
