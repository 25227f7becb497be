package hub

// Icon is a symbolic key resolved to an asset by the presentation layer
type Icon string

const (
	IconGoogleDrive Icon = "google-drive"
	IconDropbox     Icon = "dropbox"
	IconOneDrive    Icon = "onedrive"
	IconTelegram    Icon = "telegram"
	IconProject     Icon = "project"
	IconDisk        Icon = "disk"
	IconGitHub      Icon = "github"
)

// BackendKind separates the fixed cloud services from runtime local drives
type BackendKind string

const (
	BackendService BackendKind = "service"
	BackendLocal   BackendKind = "local"
)

// Backend is an owner namespace for FileItems: a Service or a LocalDrive.
// Services are fixed at startup; local drives are appended at runtime and never removed.
type Backend struct {
	ID   string      `json:"id" yaml:"id"`
	Name string      `json:"name" yaml:"name"`
	Icon Icon        `json:"icon" yaml:"icon"`
	Kind BackendKind `json:"kind" yaml:"-"`
}

// Project is a static grouping of files across backends
type Project struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon Icon   `json:"icon" yaml:"icon"`
}
