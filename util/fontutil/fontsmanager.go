package fontutil

import (
	"github.com/jmigpin/glyphren/util/iout"
	"github.com/jmigpin/glyphren/util/rastutil"
)

var FontsMan = NewFontsManager()

//----------

// Parsed font files by path. Fonts loaded from the same path (ex: copies at
// other sizes) share the parsed data, each with its own face and caches.
type FontsManager struct {
	files map[string]*rastutil.FontFile
}

func NewFontsManager() *FontsManager {
	fm := &FontsManager{}
	fm.files = map[string]*rastutil.FontFile{}
	return fm
}

func (fm *FontsManager) FontFile(path string) (*rastutil.FontFile, error) {
	ff, ok := fm.files[path]
	if ok {
		return ff, nil
	}
	ff, err := rastutil.OpenFontFile(path)
	if err != nil {
		return nil, err
	}
	fm.files[path] = ff
	return ff, nil
}

// Forget the parsed file (ex: the file changed on disk). Fonts already
// loaded keep working.
func (fm *FontsManager) Remove(path string) {
	delete(fm.files, path)
}

// Releases the parsed file. Fonts loaded from it must be closed already.
func (fm *FontsManager) Close(path string) error {
	ff, ok := fm.files[path]
	if !ok {
		return nil
	}
	delete(fm.files, path)
	return ff.Close()
}

func (fm *FontsManager) ClearFontsCache() error {
	me := &iout.MultiError{}
	for path, ff := range fm.files {
		me.Add(ff.Close())
		delete(fm.files, path)
	}
	return me.Result()
}
