package view

import (
	"strings"

	"github.com/soocke/pixel-crop-go/domain/imageio"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

var openTypes = []FileType{
	{TypeName: "Images", Extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}},
	{TypeName: "All files", Extensions: []string{"*"}},
}

// Dialogs implements presenter.Dialogs with the native Tk dialogs.
type Dialogs struct{}

func (Dialogs) OpenImage(initialDir string) (string, bool) {
	opts := []Opt{Title("Open image"), Filetypes(openTypes)}
	if initialDir != "" {
		opts = append(opts, Initialdir(initialDir))
	}
	files := GetOpenFile(opts...)
	if len(files) == 0 || strings.TrimSpace(files[0]) == "" {
		return "", false
	}
	return files[0], true
}

func (Dialogs) SaveImage(name, initialDir string, f imageio.Format) (string, bool) {
	ext := "." + f.Ext
	opts := []Opt{
		Title("Save image"),
		Initialfile(name),
		Defaultextension(ext),
		Filetypes([]FileType{{TypeName: strings.ToUpper(f.Ext) + " image", Extensions: []string{ext}}}),
	}
	if initialDir != "" {
		opts = append(opts, Initialdir(initialDir))
	}
	path := GetSaveFile(opts...)
	if strings.TrimSpace(path) == "" {
		return "", false
	}
	return path, true
}

func (Dialogs) Alert(title, message string) {
	MessageBox(Title(title), Msg(message), Icon("warning"))
}
