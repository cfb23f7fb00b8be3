package strict

// Member is a single name/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its members in insertion order. Keys are
// unique: setting an existing key replaces its value in place.
type Object struct {
	Members []Member
	index   map[string]int
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

// Set adds or replaces the value for key.
func (o *Object) Set(key string, value any) {
	if o.index == nil {
		o.index = map[string]int{}
	}
	if idx, ok := o.index[key]; ok {
		o.Members[idx].Value = value
		return
	}
	o.index[key] = len(o.Members)
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

// Get returns the value for key.
func (o *Object) Get(key string) (any, bool) {
	idx, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.Members[idx].Value, true
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.Members)
}

// Keys returns the member keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}
