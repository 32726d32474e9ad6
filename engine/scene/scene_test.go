package scene

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxhxm/rc-car-3d-experience/engine/camera"
	"github.com/rxhxm/rc-car-3d-experience/engine/game_object"
	"github.com/rxhxm/rc-car-3d-experience/engine/model"
	"github.com/rxhxm/rc-car-3d-experience/engine/renderer"
)

// fakeRenderer records registrations and draws without touching the GPU.
type fakeRenderer struct {
	mu         sync.Mutex
	registered []string
	draws      map[string][16]float32
	viewProj   [16]float32
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{draws: make(map[string][16]float32)}
}

func (f *fakeRenderer) RegisterModel(m model.Model) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, m.Name())
	return nil
}

func (f *fakeRenderer) UpdateCamera(viewProjection [16]float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.viewProj = viewProjection
}

func (f *fakeRenderer) BeginFrame() error { return nil }

func (f *fakeRenderer) Draw(name string, modelMatrix [16]float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draws[name] = modelMatrix
	return nil
}

func (f *fakeRenderer) EndFrame()              {}
func (f *fakeRenderer) Present()               {}
func (f *fakeRenderer) Resize(width, height int) {}
func (f *fakeRenderer) Release()               {}

type fixedController struct{}

func (fixedController) Position() (x, y, z float32) { return 0, 10, 20 }
func (fixedController) Target() (x, y, z float32)   { return 0, 0, 0 }

func newTestScene(t *testing.T) (Scene, *fakeRenderer) {
	t.Helper()
	r := newFakeRenderer()
	cam := camera.NewCamera(camera.WithController(fixedController{}))
	return NewScene("test", cam, r, WithPrepareWorkers(2)), r
}

func carObject(name string, x, y, z float32) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithEnabled(true),
		game_object.WithModel(model.NewModel(
			model.WithName(name),
			model.WithMesh(model.BuildCarMesh()),
		)),
		game_object.WithPosition(x, y, z),
	)
}

func TestAddAssignsIDsAndRegistersModels(t *testing.T) {
	s, r := newTestScene(t)

	id1, err := s.Add(carObject("car-a", 0, 0, 0))
	require.NoError(t, err)
	id2, err := s.Add(carObject("car-b", 1, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), id2)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []string{"car-a", "car-b"}, r.registered)
}

func TestAddRejectsModellessObjects(t *testing.T) {
	s, _ := newTestScene(t)

	_, err := s.Add(game_object.NewGameObject(game_object.WithEnabled(true)))
	assert.Error(t, err)

	_, err = s.Add(nil)
	assert.Error(t, err)
}

func TestPrepareDrawBuildsTranslationIntoWorldMatrix(t *testing.T) {
	s, r := newTestScene(t)

	id, err := s.Add(carObject("car", 3, 1, -7))
	require.NoError(t, err)

	s.PrepareDraw(0.016)
	require.NoError(t, s.DrawCalls())

	m, ok := r.draws["car"]
	require.True(t, ok)
	// Column-major: translation lives in elements 12..14.
	assert.InDelta(t, 3, m[12], 1e-6)
	assert.InDelta(t, 1, m[13], 1e-6)
	assert.InDelta(t, -7, m[14], 1e-6)

	// Moving the object and re-preparing refreshes the matrix.
	s.Get(id).SetPosition(5, 0, 0)
	s.PrepareDraw(0.016)
	require.NoError(t, s.DrawCalls())
	assert.InDelta(t, 5, r.draws["car"][12], 1e-6)
}

func TestDisabledObjectsAreNotDrawn(t *testing.T) {
	s, r := newTestScene(t)

	obj := carObject("car", 0, 0, 0)
	_, err := s.Add(obj)
	require.NoError(t, err)
	obj.SetEnabled(false)

	s.PrepareDraw(0.016)
	require.NoError(t, s.DrawCalls())
	assert.Empty(t, r.draws)
}

func TestRemoveDropsObjectFromRegistryAndDraws(t *testing.T) {
	s, r := newTestScene(t)

	id, err := s.Add(carObject("car", 0, 0, 0))
	require.NoError(t, err)

	s.Remove(id)
	assert.Zero(t, s.Count())
	assert.Nil(t, s.Get(id))

	s.PrepareDraw(0.016)
	require.NoError(t, s.DrawCalls())
	assert.Empty(t, r.draws)
}

func TestPrepareDrawForwardsCameraMatrix(t *testing.T) {
	s, r := newTestScene(t)

	s.PrepareDraw(0.016)

	// The fake starts zeroed; after PrepareDraw the camera's view-projection
	// has been pushed through.
	assert.NotEqual(t, [16]float32{}, r.viewProj)
}
