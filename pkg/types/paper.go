// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Cycle names the submission round under which a paper was accepted.
type Cycle string

const (
	CycleSummer  Cycle = "Summer Cycle"
	CycleFall    Cycle = "Fall Cycle"
	CycleUnknown Cycle = "Unknown Cycle"
)

// CycleFromHeading maps a section heading to a Cycle. "Summer" is checked
// before "Fall"; anything else is CycleUnknown.
func CycleFromHeading(heading string) Cycle {
	switch {
	case strings.Contains(heading, "Summer"):
		return CycleSummer
	case strings.Contains(heading, "Fall"):
		return CycleFall
	default:
		return CycleUnknown
	}
}

// Paper holds the listing metadata for one accepted paper.
// Title starts as the listing-page title and is replaced by the detail
// page's canonical title once that page has been parsed.
type Paper struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors is the author line exactly as shown on the listing page.
	Authors string `json:"authors" yaml:"authors"`

	// DetailsURL links to the paper's detail page.
	DetailsURL string `json:"details_url" yaml:"details_url"`

	// Cycle is the submission round, derived from the enclosing section heading.
	Cycle Cycle `json:"cycle" yaml:"cycle"`
}

// ArtifactKind identifies a downloadable file attached to a paper.
type ArtifactKind string

const (
	ArtifactPaper  ArtifactKind = "paper"
	ArtifactSlides ArtifactKind = "slides"
)

// Dir returns the per-kind directory name artifacts of this kind are stored in.
func (k ArtifactKind) Dir() string {
	switch k {
	case ArtifactPaper:
		return "papers"
	case ArtifactSlides:
		return "slides"
	default:
		return string(k)
	}
}

// Label returns the capitalized name used in progress output.
func (k ArtifactKind) Label() string {
	switch k {
	case ArtifactPaper:
		return "Paper"
	case ArtifactSlides:
		return "Slides"
	default:
		return string(k)
	}
}

// Artifact is a download link found on a paper's detail page.
type Artifact struct {
	Kind ArtifactKind `json:"kind" yaml:"kind"`
	URL  string       `json:"url" yaml:"url"`
}
