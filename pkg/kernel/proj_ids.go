package kernel

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

// FieldID identifies a profile field such as "full_name" or "photo_profile"
type FieldID string

func NewFieldID(id string) FieldID { return FieldID(id) }
func (f FieldID) String() string   { return string(f) }
func (f FieldID) IsEmpty() bool    { return string(f) == "" }
