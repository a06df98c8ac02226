package label

import (
	"fmt"
	"strconv"
)

// Request identifies one label of a batch: a location prefix and a 1-based index.
type Request struct {
	LocationPrefix string
	Index          int
}

// NewRequest creates a label request
func NewRequest(locationPrefix string, index int) Request {
	return Request{LocationPrefix: locationPrefix, Index: index}
}

// Code returns the prefix followed by the decimal index, with no separator
func (r Request) Code() string {
	return r.LocationPrefix + strconv.Itoa(r.Index)
}

// FailureKind classifies why a label could not be produced
type FailureKind int

const (
	// EncodingFailure means the symbol encoder rejected the code
	EncodingFailure FailureKind = iota + 1
	// ArtifactMissing means the encoder returned but the expected image file is absent
	ArtifactMissing
	// IOFailure covers crop, save, read and path errors
	IOFailure
	// ValidationFailure is a malformed request that cannot be defaulted
	ValidationFailure
)

func (k FailureKind) String() string {
	switch k {
	case EncodingFailure:
		return "encoding_failure"
	case ArtifactMissing:
		return "artifact_missing"
	case IOFailure:
		return "io_failure"
	case ValidationFailure:
		return "validation_failure"
	default:
		return "unknown"
	}
}

// Failure is the error half of an Artifact
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.String()
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Fail builds a Failure of the given kind
func Fail(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

// Image is a rendered label image persisted on disk
type Image struct {
	Path   string
	Width  int
	Height int
}

// Artifact is the outcome of rendering one code. Exactly one of Image and
// Failure is set.
type Artifact struct {
	Code    string
	Image   *Image
	Failure *Failure
}

// Succeeded builds a successful artifact
func Succeeded(code string, img Image) Artifact {
	return Artifact{Code: code, Image: &img}
}

// Failed builds a failed artifact
func Failed(code string, kind FailureKind, err error) Artifact {
	return Artifact{Code: code, Failure: Fail(kind, err)}
}

// OK reports whether the artifact carries an image
func (a Artifact) OK() bool {
	return a.Failure == nil && a.Image != nil
}
