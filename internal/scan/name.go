package scan

import (
	"path/filepath"
	"strings"
)

// AppName derives an application name from an archive filename: strip the
// archive suffixes, then drop a trailing "-<version>" segment when the part
// after the last dash starts with a digit.
//
//	myapp-1.2.3.tar.gz -> myapp
//	myapp-final.tar.gz -> myapp-final
//	myapp.zip          -> myapp
func AppName(archivePath string) string {
	name := filepath.Base(archivePath)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	// Suffix detection ignores case, so the stem strip must too.
	if strings.HasSuffix(strings.ToLower(name), ".tar") {
		name = name[:len(name)-len(".tar")]
	}

	if i := strings.LastIndex(name, "-"); i >= 0 {
		version := name[i+1:]
		if version != "" && version[0] >= '0' && version[0] <= '9' {
			name = name[:i]
		}
	}

	return name
}
