// Package ingest reads the markdown document corpus from local disk,
// derives a MetadataStore from it, and rebuilds the graph around any
// prior simulation state it finds.
//
// Grounded on the original's GitHubService/file_service: the "public::
// true" first-line admission filter, the [[wikilink]] reference
// syntax, and the hyperlink/size/hash-derived metadata fields are all
// carried over, but the fetch step here reads a local directory
// instead of calling the GitHub contents API — the original's
// RealGitHubService.fetch_files and fetch_file_content are replaced by
// a single os.ReadDir + os.ReadFile pass since the corpus is expected
// to already be checked out on disk.
package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/sbl8/forcegraph/errs"
	"github.com/sbl8/forcegraph/model"
)

// admissionLine is the required first line of a document for it to be
// included in the graph at all (spec: "public:: true" gate).
const admissionLine = "public:: true"

var (
	wikilinkPattern  = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	hyperlinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// Repository reads markdown documents from a directory and turns them
// into a MetadataStore. Every *.md file under Dir is a candidate node;
// files whose first line is not "public:: true" are skipped.
type Repository struct {
	Dir string
}

// NewRepository builds a Repository rooted at dir.
func NewRepository(dir string) *Repository {
	return &Repository{Dir: dir}
}

// Load walks Dir and returns a MetadataStore built from every public
// markdown file found. References are resolved against the file names
// collected in the same pass, so a [[wikilink]] naming a file outside
// Dir (or a non-public one) is silently dropped, matching
// model.Build's own dangling-edge policy.
func (r *Repository) Load() (model.MetadataStore, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, errs.NewConfigError("reading markdown dir %q: %v", r.Dir, err)
	}

	type doc struct {
		fileName string
		content  string
		modTime  time.Time
	}
	var docs []doc
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		path := filepath.Join(r.Dir, e.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			glog.Warningf("ingest: skipping %s: %v", e.Name(), err)
			continue
		}
		content := string(raw)
		if !isPublic(content) {
			glog.V(2).Infof("ingest: skipping non-public file %s", e.Name())
			continue
		}
		info, err := e.Info()
		modTime := time.Now()
		if err == nil {
			modTime = info.ModTime()
		}
		docs = append(docs, doc{fileName: e.Name(), content: content, modTime: modTime})
	}

	validNames := make(map[string]bool, len(docs))
	for _, d := range docs {
		validNames[d.fileName] = true
	}

	store := make(model.MetadataStore, len(docs))
	for _, d := range docs {
		store[d.fileName] = &model.MetadataEntry{
			FileName:       d.fileName,
			FileSize:       uint64(len(d.content)),
			HyperlinkCount: countHyperlinks(d.content),
			ContentHash:    sha1Hex(d.content),
			LastModified:   d.modTime.UnixMilli(),
			References:     extractReferences(d.content, validNames),
		}
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].fileName < docs[j].fileName })
	glog.Infof("ingest: loaded %d public documents from %s", len(store), r.Dir)
	return store, nil
}

func isPublic(content string) bool {
	firstLine, _, _ := strings.Cut(content, "\n")
	return strings.TrimSpace(firstLine) == admissionLine
}

// extractReferences finds every [[wikilink]] in content whose target
// (with ".md" appended) is a known document, and tallies occurrences
// per target file name.
func extractReferences(content string, validNames map[string]bool) map[string]int {
	refs := make(map[string]int)
	for _, m := range wikilinkPattern.FindAllStringSubmatch(content, -1) {
		target := m[1] + ".md"
		if validNames[target] {
			refs[target]++
		}
	}
	return refs
}

func countHyperlinks(content string) int {
	return len(hyperlinkPattern.FindAllStringIndex(content, -1))
}

func sha1Hex(content string) string {
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}
