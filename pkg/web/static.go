package web

import (
	"bytes"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/JaimeStill/promptvault/pkg/routes"
)

// DistServer serves files from subdir of fsys under urlPrefix.
// Directory listings are not served.
func DistServer(fsys fs.FS, subdir, urlPrefix string) http.HandlerFunc {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		panic("failed to create sub-filesystem: " + err.Error())
	}
	return fileServer(http.FS(sub), urlPrefix)
}

// DirServer serves files from a directory on disk under urlPrefix.
// A missing directory yields 404 for every request.
func DirServer(dir, urlPrefix string) http.HandlerFunc {
	return fileServer(http.Dir(dir), urlPrefix)
}

func fileServer(root http.FileSystem, urlPrefix string) http.HandlerFunc {
	server := http.StripPrefix(urlPrefix, http.FileServer(root))
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		server.ServeHTTP(w, r)
	}
}

// PublicFile serves a single file from subdir of fsys.
func PublicFile(fsys fs.FS, subdir, filename string) http.HandlerFunc {
	path := subdir + "/" + filename
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, filename, time.Time{}, bytes.NewReader(data))
	}
}

// PublicFileRoutes exposes files from subdir at root-level URLs.
func PublicFileRoutes(fsys fs.FS, subdir string, files ...string) []routes.Route {
	list := make([]routes.Route, len(files))
	for i, file := range files {
		list[i] = routes.Route{
			Method:  "GET",
			Pattern: "/" + file,
			Handler: PublicFile(fsys, subdir, file),
		}
	}
	return list
}
