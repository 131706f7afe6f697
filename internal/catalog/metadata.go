package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBlankField is returned when a required metadata field is empty or whitespace-only
var ErrBlankField = errors.New("required field is blank")

// ContentType classifies what kind of content a package provides
type ContentType int

const (
	ContentTypeUnknown ContentType = iota
	ContentTypeAircraft
	ContentTypeScenery
	ContentTypeSimObject
	ContentTypeLivery
	ContentTypeMission
)

var contentTypeNames = [...]string{
	"Unknown",
	"Aircraft",
	"Scenery",
	"SimObject",
	"Livery",
	"Mission",
}

func (t ContentType) String() string {
	if t < ContentTypeUnknown || int(t) >= len(contentTypeNames) {
		return contentTypeNames[ContentTypeUnknown]
	}
	return contentTypeNames[t]
}

// ParseContentType maps a symbolic name (as found in manifests and the
// persisted catalog) to a ContentType. Unrecognized names map to Unknown.
func ParseContentType(s string) ContentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aircraft":
		return ContentTypeAircraft
	case "scenery":
		return ContentTypeScenery
	case "simobject":
		return ContentTypeSimObject
	case "livery":
		return ContentTypeLivery
	case "mission":
		return ContentTypeMission
	default:
		return ContentTypeUnknown
	}
}

// AddonMetadata is the immutable descriptive record extracted from a package
// manifest. Two values are equal iff every field matches, including the full
// contents of the release-notes map.
type AddonMetadata struct {
	title              string
	creator            string
	version            string
	contentType        ContentType
	packageVersion     string
	minimumGameVersion string
	releaseNotes       map[string]string
}

// NewAddonMetadata validates and builds an AddonMetadata. Every string field
// must contain at least one non-whitespace character. The release-notes map
// may be nil or empty and is copied, never retained.
func NewAddonMetadata(title, creator, version string, contentType ContentType, packageVersion, minimumGameVersion string, releaseNotes map[string]string) (AddonMetadata, error) {
	fields := map[string]string{
		"title":                title,
		"creator":              creator,
		"version":              version,
		"package_version":      packageVersion,
		"minimum_game_version": minimumGameVersion,
	}
	// Deterministic check order so the first error is stable
	for _, name := range []string{"title", "creator", "version", "package_version", "minimum_game_version"} {
		if strings.TrimSpace(fields[name]) == "" {
			return AddonMetadata{}, fmt.Errorf("%w: %s", ErrBlankField, name)
		}
	}

	notes := make(map[string]string, len(releaseNotes))
	for label, text := range releaseNotes {
		notes[label] = text
	}

	return AddonMetadata{
		title:              title,
		creator:            creator,
		version:            version,
		contentType:        contentType,
		packageVersion:     packageVersion,
		minimumGameVersion: minimumGameVersion,
		releaseNotes:       notes,
	}, nil
}

func (m AddonMetadata) Title() string              { return m.title }
func (m AddonMetadata) Creator() string            { return m.creator }
func (m AddonMetadata) Version() string            { return m.version }
func (m AddonMetadata) ContentType() ContentType   { return m.contentType }
func (m AddonMetadata) PackageVersion() string     { return m.packageVersion }
func (m AddonMetadata) MinimumGameVersion() string { return m.minimumGameVersion }

// ReleaseNotes returns a copy of the release-notes map
func (m AddonMetadata) ReleaseNotes() map[string]string {
	notes := make(map[string]string, len(m.releaseNotes))
	for label, text := range m.releaseNotes {
		notes[label] = text
	}
	return notes
}

// Equal reports full structural equality, comparing release-note contents
// rather than map identity. Insertion order of the maps is irrelevant.
func (m AddonMetadata) Equal(other AddonMetadata) bool {
	if m.title != other.title ||
		m.creator != other.creator ||
		m.version != other.version ||
		m.contentType != other.contentType ||
		m.packageVersion != other.packageVersion ||
		m.minimumGameVersion != other.minimumGameVersion {
		return false
	}
	if len(m.releaseNotes) != len(other.releaseNotes) {
		return false
	}
	for label, text := range m.releaseNotes {
		if otherText, ok := other.releaseNotes[label]; !ok || otherText != text {
			return false
		}
	}
	return true
}
