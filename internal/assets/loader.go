package assets

// Default asset names.
const (
	PreviewTemplateName = "preview"
	DefaultStyleName    = "color"
)

// Loader loads stylesheets and page templates by name, without extension.
type Loader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}
