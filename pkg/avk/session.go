package avk

// SceneWriter is implemented by the runtime. WriteScene returns the scene for
// the cartridge to mutate; it must not be called while the runtime is drawing.
type SceneWriter interface {
	WriteScene() *Scene
}

// Session is the handle returned by INIT. Cartridges treat it as a capability:
// they pass it back on every host call and reach the shared scene through it.
type Session struct {
	w SceneWriter
}

// NewSession wraps the runtime's scene. Only the runtime calls this.
func NewSession(w SceneWriter) *Session { return &Session{w: w} }

// Foreground returns the sprite list for this frame.
func (s *Session) Foreground() *[MaxSprites]Sprite { return &s.w.WriteScene().Foreground }

// Background returns the tile grid for this frame.
func (s *Session) Background() *[BackgroundSize]Tile { return &s.w.WriteScene().Background }

// SetPan sets the background scroll offset in pixels.
func (s *Session) SetPan(x, y int16) {
	sc := s.w.WriteScene()
	sc.PanX, sc.PanY = x, y
}

// Pan returns the background scroll offset in pixels.
func (s *Session) Pan() (x, y int16) {
	sc := s.w.WriteScene()
	return sc.PanX, sc.PanY
}
