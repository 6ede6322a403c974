package render

import (
	"os"

	"vtstage/internal/screen"
)

// DumpTXT writes scr's current contents verbatim to path.
func DumpTXT(scr *screen.Screen, path string) error {
	return os.WriteFile(path, []byte(scr.Contents()), 0o644)
}
