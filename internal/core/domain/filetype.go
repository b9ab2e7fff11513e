package domain

// PageExtension marks a result as a SharePoint page.
const PageExtension = "aspx"

// DefaultIcon is used for file types missing from the icon table.
const DefaultIcon = "file"

// fileIcons maps a file type to its display icon.
var fileIcons = map[string]string{
	"pdf":         "file-pdf",
	"html":        "file-code",
	"csv":         "file-csv",
	"zip":         "file-archive",
	"jpg":         "image",
	"png":         "image",
	"gif":         "image",
	"xlsx":        "file-excel",
	"docx":        "file-word",
	"doc":         "file-word",
	"ppt":         "file-powerpoint",
	"pptx":        "file-powerpoint",
	"json":        "file",
	"log":         "file",
	PageExtension: "microsoft",
}

// FileIcon returns the icon category for a file type.
func FileIcon(fileType string) string {
	if icon, ok := fileIcons[fileType]; ok {
		return icon
	}
	return DefaultIcon
}

// KnownFileTypes returns the file types with a dedicated icon entry.
func KnownFileTypes() []string {
	types := make([]string, 0, len(fileIcons))
	for t := range fileIcons {
		types = append(types, t)
	}
	return types
}
