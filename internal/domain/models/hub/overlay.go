package hub

// OverlayKind names the single modal surface currently open
type OverlayKind string

const (
	OverlayNone          OverlayKind = "none"
	OverlayUpload        OverlayKind = "upload"
	OverlayReadme        OverlayKind = "readme"   // TargetID = project id
	OverlayEditor        OverlayKind = "editor"   // TargetID = file id
	OverlayPreview       OverlayKind = "preview"  // TargetID = file id
	OverlayAnalyzer      OverlayKind = "analyzer" // TargetID = backend id
	OverlayEcosystem     OverlayKind = "ecosystem"
	OverlayGitHub        OverlayKind = "github"
	OverlaySync          OverlayKind = "sync"
	OverlaySettings      OverlayKind = "settings"
	OverlayNotifications OverlayKind = "notifications"
	OverlayAgents        OverlayKind = "agents"
)

// Overlay is the active-overlay tagged union. Busy is raised while an AI
// call issued from this overlay is outstanding.
type Overlay struct {
	Kind     OverlayKind `json:"kind"`
	TargetID string      `json:"target_id,omitempty"`
	Busy     bool        `json:"busy"`
}

// NeedsTarget reports whether the overlay kind carries a target id
func (k OverlayKind) NeedsTarget() bool {
	switch k {
	case OverlayReadme, OverlayEditor, OverlayPreview, OverlayAnalyzer:
		return true
	}
	return false
}

// Valid reports whether k is a known overlay kind
func (k OverlayKind) Valid() bool {
	switch k {
	case OverlayNone, OverlayUpload, OverlayReadme, OverlayEditor, OverlayPreview,
		OverlayAnalyzer, OverlayEcosystem, OverlayGitHub, OverlaySync, OverlaySettings,
		OverlayNotifications, OverlayAgents:
		return true
	}
	return false
}
