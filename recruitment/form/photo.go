package form

// CapturedPhoto is the result of the capture flow. Token is opaque to the
// form engine: a storage key once uploaded, or the raw data URL before.
type CapturedPhoto struct {
	Token   string `json:"token"`
	Present bool   `json:"present"`
}

// NoPhoto is the zero value, named for readability at call sites
var NoPhoto = CapturedPhoto{}

// NewCapturedPhoto marks token as a captured photo
func NewCapturedPhoto(token string) CapturedPhoto {
	return CapturedPhoto{Token: token, Present: token != ""}
}
