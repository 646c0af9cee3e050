// Package assets provides the HTML page template and profile stylesheets
// used by the preview renderer.
//
// # Loaders
//
//	Loader (interface)
//	    ├── EmbeddedLoader    - go:embed copies shipped with the binary
//	    ├── FilesystemLoader  - a user directory on disk
//	    └── Resolver          - FilesystemLoader first, EmbeddedLoader on miss
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {profile}.css      # color.css, grayscale.css
//	└── templates/
//	    └── {name}.html        # preview.html
//
// Asset names are plain identifiers; FilesystemLoader additionally resolves
// symlinks and rejects any path that leaves basePath.
package assets
