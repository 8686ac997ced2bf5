// Package modarchive looks into mod archives without extracting them
package modarchive

import (
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/mholt/archiver/v3"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
)

// Entry is a single file in the archive
type Entry struct {
	Name string
	Size int64
}

// Info describes a mod archive
type Info struct {
	Files []Entry
	// TotalSize is the uncompressed size of all files
	TotalSize uint64
	// Kinds are the top level content folders, like "vehicles" or "levels"
	Kinds []string
	// ModInfo is the path of the info.json below mod_info/, if the mod ships one
	ModInfo string
}

// knownKinds are top level folders the game loads content from
var knownKinds = map[string]bool{
	"vehicles": true,
	"levels":   true,
	"art":      true,
	"lua":      true,
	"ui":       true,
	"scripts":  true,
	"settings": true,
	"gameplay": true,
}

// Inspect walks the archive at file
func Inspect(file string) (*Info, error) {
	info := &Info{}
	kinds := map[string]bool{}

	err := archiver.Walk(file, func(f archiver.File) error {
		if f.IsDir() {
			return nil
		}
		name := f.Name()
		if zh, ok := f.Header.(zip.FileHeader); ok {
			name = zh.Name
		}
		name = strings.TrimPrefix(path.Clean(strings.ReplaceAll(name, "\\", "/")), "/")

		info.Files = append(info.Files, Entry{Name: name, Size: f.Size()})
		if f.Size() > 0 {
			info.TotalSize += uint64(f.Size())
		}

		top := strings.SplitN(name, "/", 2)[0]
		if knownKinds[strings.ToLower(top)] {
			kinds[strings.ToLower(top)] = true
		}
		if strings.HasPrefix(name, "mod_info/") && path.Base(name) == "info.json" {
			info.ModInfo = name
		}
		return nil
	})
	if err != nil {
		return nil, merrors.Wrapf(merrors.KindIO, "inspect", err, "could not read %s: %s", file, err)
	}

	for kind := range kinds {
		info.Kinds = append(info.Kinds, kind)
	}
	sort.Strings(info.Kinds)
	return info, nil
}
