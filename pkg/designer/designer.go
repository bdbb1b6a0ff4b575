package designer

import (
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type State int

const (
	StateIdle State = iota
	StateSelected
	StateDragging
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Handle is a resize handle, named by compass direction.
type Handle string

const (
	HandleN  Handle = "n"
	HandleS  Handle = "s"
	HandleE  Handle = "e"
	HandleW  Handle = "w"
	HandleNE Handle = "ne"
	HandleNW Handle = "nw"
	HandleSE Handle = "se"
	HandleSW Handle = "sw"
)

type point struct{ x, y float64 }

// Designer is the editing session of one document. Every completed mutation pushes a
// snapshot onto the undo history. It is safe for concurrent use so an auto-saver can
// snapshot it from another goroutine.
type Designer struct {
	mu sync.Mutex

	doc      Document
	history  *History
	state    State
	selected string
	dirty    bool

	// drag and resize bookkeeping
	origin   point
	start    Element
	handle   Handle
	newID    func(ElementType) string
	onChange func(Document)
}

type Option func(*Designer)

// WithHistoryCap overrides the undo history length.
func WithHistoryCap(n int) Option {
	return func(d *Designer) { d.history = NewHistory(n) }
}

// WithIDGenerator replaces the element id generator.
func WithIDGenerator(fn func(ElementType) string) Option {
	return func(d *Designer) { d.newID = fn }
}

// WithChangeHook registers fn to run after every recorded mutation, outside the lock.
func WithChangeHook(fn func(Document)) Option {
	return func(d *Designer) { d.onChange = fn }
}

func defaultID(t ElementType) string {
	return fmt.Sprintf("%s_%s", t, gonanoid.Must(10))
}

// New starts a session on doc. The initial document is the first history entry, so
// undoing the first mutation restores it.
func New(doc Document, opts ...Option) *Designer {
	d := &Designer{
		history: NewHistory(DefaultHistoryCap),
		newID:   defaultID,
	}
	for _, opt := range opts {
		opt(d)
	}
	if doc.Elements == nil {
		doc.Elements = []Element{}
	}
	d.doc = doc.Clone()
	d.history.Reset(d.doc)
	return d
}

// Load replaces the document and starts a fresh history.
func (d *Designer) Load(doc Document) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if doc.Elements == nil {
		doc.Elements = []Element{}
	}
	d.doc = doc.Clone()
	d.history.Reset(d.doc)
	d.clearSelection()
	d.dirty = false
}

func (d *Designer) Document() Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Clone()
}

func (d *Designer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Selected returns the selected element.
func (d *Designer) Selected() (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexOf(d.selected)
	if i < 0 {
		return Element{}, false
	}
	return d.doc.Elements[i], true
}

// Dirty reports whether there are mutations since the last load or save.
func (d *Designer) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

func (d *Designer) CanUndo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.history.CanUndo()
}

func (d *Designer) CanRedo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.history.CanRedo()
}

func (d *Designer) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range d.doc.Elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (d *Designer) clearSelection() {
	d.selected = ""
	d.state = StateIdle
}

func noop() {}

// commitInteraction ends a drag or resize in progress, recording it when the
// geometry changed. Callers hold the lock and call the returned func after unlocking.
func (d *Designer) commitInteraction() func() {
	if d.state != StateDragging && d.state != StateResizing {
		return noop
	}
	d.state = StateSelected
	i := d.indexOf(d.selected)
	if i < 0 {
		return noop
	}
	e, s := d.doc.Elements[i], d.start
	if e.X == s.X && e.Y == s.Y && e.Width == s.Width && e.Height == s.Height {
		return noop
	}
	return d.record()
}

// record pushes the current document on the history. Callers hold the lock and must
// call the returned func after unlocking.
func (d *Designer) record() func() {
	d.history.Push(d.doc)
	d.dirty = true
	if d.onChange == nil {
		return noop
	}
	snapshot := d.doc.Clone()
	return func() { d.onChange(snapshot) }
}

func (d *Designer) add(e Element) Element {
	var notify func()
	func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		if e.ID == "" {
			e.ID = d.newID(e.Type)
		}
		pending := d.commitInteraction()
		e.ZIndex = len(d.doc.Elements)
		d.doc.Elements = append(d.doc.Elements, e)
		d.selected = e.ID
		d.state = StateSelected
		recorded := d.record()
		notify = func() { pending(); recorded() }
	}()
	notify()
	return e
}

// AddText drops a "Sample Text" element at (x, y) and selects it.
func (d *Designer) AddText(x, y float64) Element {
	return d.add(newTextElement("", x, y))
}

// AddField drops a data bound field showing {fieldType} and selects it.
func (d *Designer) AddField(x, y float64, fieldType string) (Element, error) {
	if fieldType == "" {
		return Element{}, fmt.Errorf("%w: field type is required", ErrInvalidValue)
	}
	return d.add(newFieldElement("", x, y, fieldType)), nil
}

func (d *Designer) AddImage(x, y float64, imageURL string) (Element, error) {
	if imageURL == "" {
		return Element{}, fmt.Errorf("%w: image url is required", ErrInvalidValue)
	}
	return d.add(newImageElement("", x, y, imageURL)), nil
}

func (d *Designer) AddShape(x, y float64) Element {
	return d.add(newShapeElement("", x, y))
}

// AddTool drops a toolbox preset at the canvas centre.
func (d *Designer) AddTool(tool Tool) Element {
	d.mu.Lock()
	canvas := d.doc.Canvas
	d.mu.Unlock()
	return d.add(newToolElement("", tool, canvas, 0))
}

// Select selects the element with id, replacing any prior selection.
func (d *Designer) Select(id string) error {
	d.mu.Lock()
	if d.indexOf(id) < 0 {
		d.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}
	notify := d.commitInteraction()
	d.selected = id
	d.state = StateSelected
	d.mu.Unlock()

	notify()
	return nil
}

// ElementAt returns the topmost element containing the point.
func (d *Designer) ElementAt(x, y float64) (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.elementAt(x, y)
	if i < 0 {
		return Element{}, false
	}
	return d.doc.Elements[i], true
}

func (d *Designer) elementAt(x, y float64) int {
	for i := len(d.doc.Elements) - 1; i >= 0; i-- {
		if d.doc.Elements[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// SelectAt selects the topmost element under the point, or clears the selection
// when the point hits the empty canvas.
func (d *Designer) SelectAt(x, y float64) (Element, bool) {
	d.mu.Lock()
	notify := d.commitInteraction()
	e, ok := d.selectAt(x, y)
	d.mu.Unlock()

	notify()
	return e, ok
}

func (d *Designer) selectAt(x, y float64) (Element, bool) {
	i := d.elementAt(x, y)
	if i < 0 {
		d.clearSelection()
		return Element{}, false
	}
	d.selected = d.doc.Elements[i].ID
	d.state = StateSelected
	return d.doc.Elements[i], true
}

func (d *Designer) ClearSelection() {
	d.mu.Lock()
	notify := d.commitInteraction()
	d.clearSelection()
	d.mu.Unlock()

	notify()
}

// BeginDrag selects the topmost element under the pointer and starts moving it.
// It reports false and clears the selection when nothing is hit.
// Pointer coordinates that are not finite are ignored.
func (d *Designer) BeginDrag(x, y float64) bool {
	if !finite(x, y) {
		return false
	}

	d.mu.Lock()
	notify := d.commitInteraction()
	e, ok := d.selectAt(x, y)
	if ok {
		d.state = StateDragging
		d.origin = point{x, y}
		d.start = e
	}
	d.mu.Unlock()

	notify()
	return ok
}

// DragTo moves the dragged element so the grab point follows the pointer.
func (d *Designer) DragTo(x, y float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateDragging {
		return fmt.Errorf("%w: not dragging", ErrInvalidTransition)
	}
	if !finite(x, y) {
		return fmt.Errorf("%w: pointer position must be finite", ErrInvalidValue)
	}
	i := d.indexOf(d.selected)
	d.doc.Elements[i].X = d.start.X + x - d.origin.x
	d.doc.Elements[i].Y = d.start.Y + y - d.origin.y
	return nil
}

// EndDrag finishes the drag. A drag that moved the element is recorded in history.
func (d *Designer) EndDrag() error {
	var notify func()
	err := func() error {
		d.mu.Lock()
		defer d.mu.Unlock()

		if d.state != StateDragging {
			return fmt.Errorf("%w: not dragging", ErrInvalidTransition)
		}
		notify = d.commitInteraction()
		return nil
	}()
	if notify != nil {
		notify()
	}
	return err
}

// BeginResize starts resizing the selected element from handle.
func (d *Designer) BeginResize(handle Handle, x, y float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateSelected {
		return fmt.Errorf("%w: select an element before resizing", ErrNoSelection)
	}
	if !finite(x, y) {
		return fmt.Errorf("%w: pointer position must be finite", ErrInvalidValue)
	}
	switch handle {
	case HandleN, HandleS, HandleE, HandleW, HandleNE, HandleNW, HandleSE, HandleSW:
	default:
		return fmt.Errorf("%w: unknown resize handle %q", ErrInvalidValue, handle)
	}

	d.state = StateResizing
	d.handle = handle
	d.origin = point{x, y}
	d.start = d.doc.Elements[d.indexOf(d.selected)]
	return nil
}

// ResizeTo applies the pointer delta to the edges the handle controls. Width and
// height never drop below MinSize; the opposite edge stays fixed.
func (d *Designer) ResizeTo(x, y float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateResizing {
		return fmt.Errorf("%w: not resizing", ErrInvalidTransition)
	}
	if !finite(x, y) {
		return fmt.Errorf("%w: pointer position must be finite", ErrInvalidValue)
	}

	dx, dy := x-d.origin.x, y-d.origin.y
	s := d.start
	e := &d.doc.Elements[d.indexOf(d.selected)]
	e.X, e.Y, e.Width, e.Height = s.X, s.Y, s.Width, s.Height

	h := string(d.handle)
	for _, c := range h {
		switch c {
		case 'e':
			e.Width = max(s.Width+dx, MinSize)
		case 'w':
			e.Width = max(s.Width-dx, MinSize)
			e.X = s.X + s.Width - e.Width
		case 's':
			e.Height = max(s.Height+dy, MinSize)
		case 'n':
			e.Height = max(s.Height-dy, MinSize)
			e.Y = s.Y + s.Height - e.Height
		}
	}
	return nil
}

func (d *Designer) EndResize() error {
	var notify func()
	err := func() error {
		d.mu.Lock()
		defer d.mu.Unlock()

		if d.state != StateResizing {
			return fmt.Errorf("%w: not resizing", ErrInvalidTransition)
		}
		notify = d.commitInteraction()
		return nil
	}()
	if notify != nil {
		notify()
	}
	return err
}

// SetProperty edits one property of the selected element and records the change.
func (d *Designer) SetProperty(name string, value any) error {
	var notify func()
	err := func() error {
		d.mu.Lock()
		defer d.mu.Unlock()

		i := d.indexOf(d.selected)
		if i < 0 {
			return ErrNoSelection
		}
		e := d.doc.Elements[i]
		if err := setProperty(&e, name, value); err != nil {
			return err
		}
		pending := d.commitInteraction()
		d.doc.Elements[i] = e
		recorded := d.record()
		notify = func() { pending(); recorded() }
		return nil
	}()
	if notify != nil {
		notify()
	}
	return err
}

// Delete removes the selected element and clears the selection.
func (d *Designer) Delete() error {
	var notify func()
	err := func() error {
		d.mu.Lock()
		defer d.mu.Unlock()

		i := d.indexOf(d.selected)
		if i < 0 {
			return ErrNoSelection
		}
		pending := d.commitInteraction()
		d.doc.Elements = append(d.doc.Elements[:i], d.doc.Elements[i+1:]...)
		d.clearSelection()
		recorded := d.record()
		notify = func() { pending(); recorded() }
		return nil
	}()
	if notify != nil {
		notify()
	}
	return err
}

// ApplyFrame sets the canvas background and border from a predefined frame.
func (d *Designer) ApplyFrame(name string) error {
	f, ok := LookupFrame(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFrame, name)
	}

	d.mu.Lock()
	pending := d.commitInteraction()
	d.doc.Frame = f.Name
	d.doc.Canvas.BackgroundColor = f.Background
	notify := d.record()
	d.mu.Unlock()

	pending()
	notify()
	return nil
}

// Undo restores the previous snapshot and clears the selection.
func (d *Designer) Undo() bool {
	return d.restore(d.history.Undo)
}

func (d *Designer) Redo() bool {
	return d.restore(d.history.Redo)
}

func (d *Designer) restore(step func() (Document, bool)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateDragging || d.state == StateResizing {
		return false
	}
	doc, ok := step()
	if !ok {
		return false
	}
	d.doc = doc
	d.clearSelection()
	d.dirty = true
	return true
}

// MarkSaved clears the dirty flag.
func (d *Designer) MarkSaved() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dirty = false
}

// Preview returns the document with field placeholders resolved against data.
func (d *Designer) Preview(data map[string]string) Document {
	return d.Document().Resolve(data)
}
