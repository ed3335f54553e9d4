package gosocial

// FieldState is the edit state of one editable field. It is either
// Viewing or Editing; no other implementations exist.
type FieldState interface {
	isFieldState()
}

// Viewing means the field shows the committed value.
type Viewing struct{}

// Editing holds an uncommitted draft.
type Editing struct {
	Draft string
}

func (Viewing) isFieldState() {}
func (Editing) isFieldState() {}

// DraftOf returns the draft and true when s is Editing.
func DraftOf(s FieldState) (string, bool) {
	e, ok := s.(Editing)
	return e.Draft, ok
}

// fieldEditor moves one field between Viewing and Editing.
type fieldEditor struct {
	state FieldState
}

func (f *fieldEditor) current() FieldState {
	if f.state == nil {
		return Viewing{}
	}
	return f.state
}

func (f *fieldEditor) begin(value string) {
	f.state = Editing{Draft: value}
}

func (f *fieldEditor) set(draft string) error {
	if _, ok := f.current().(Editing); !ok {
		return ErrNotEditing
	}
	f.state = Editing{Draft: draft}
	return nil
}

// commit returns the draft and switches back to Viewing.
func (f *fieldEditor) commit() (string, error) {
	draft, ok := DraftOf(f.current())
	if !ok {
		return "", ErrNotEditing
	}
	f.state = Viewing{}
	return draft, nil
}

func (f *fieldEditor) cancel() {
	f.state = Viewing{}
}
