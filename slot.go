package gosocial

// Fixed keys of the two persisted slots.
const (
	HistoryKey  = "socialCreatorHistory"
	FeedbackKey = "userFeedback"
)

// KeyValueStore persists opaque serialized values under fixed keys.
// Implementations live in the store package.
type KeyValueStore interface {
	// Get returns the value and true, or "" and false if the key is absent.
	Get(key string) (string, bool, error)

	// Set replaces the whole value stored under key.
	Set(key string, value string) error
}

// Slot is a single persisted blob. Writes replace the whole value.
type Slot interface {
	Read() (string, bool, error)
	Write(value string) error
}

type keySlot struct {
	kv  KeyValueStore
	key string
}

// KeySlot binds a key of kv as a Slot.
func KeySlot(kv KeyValueStore, key string) Slot {
	return &keySlot{kv: kv, key: key}
}

func (s *keySlot) Read() (string, bool, error) {
	v, ok, err := s.kv.Get(s.key)
	if err != nil {
		return "", false, &StorageError{Op: "read", Key: s.key, Cause: err}
	}
	return v, ok, nil
}

func (s *keySlot) Write(value string) error {
	if err := s.kv.Set(s.key, value); err != nil {
		return &StorageError{Op: "write", Key: s.key, Cause: err}
	}
	return nil
}
