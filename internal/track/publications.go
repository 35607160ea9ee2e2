// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package track

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// defaultPublications is the built-in tracked list, used when no
// publications file is configured.
var defaultPublications = []types.Publication{
	{DOI: "10.31224/5289", Title: "Masami Systems: A Structurally Constrained, Emotionally Persistent AI Companion for Simulating Human-like Connection", Platform: types.PlatformEngrxiv},
	{DOI: "10.31224/5381", Title: "A Japanese Persona Is All You Need: A Case Study on AI's Creative Agency Driving the Translation Asymmetry Trap", Platform: types.PlatformEngrxiv},
	{DOI: "10.5281/zenodo.17428600", Title: "Technical Letter (ZIP)", Platform: types.PlatformZenodo},
	{DOI: "10.31224/5745", Title: "Drift of Ungrounded Modality: On Sycophantic Failure in Constitutional AI", Platform: types.PlatformEngrxiv},
	{DOI: "10.5281/zenodo.17575634", Title: "In the Lover's Mirror", Platform: types.PlatformZenodo},
	{DOI: "10.5281/zenodo.17759331", Title: "Anatomy of Conceptual Collapse", Platform: types.PlatformZenodo},
}

// publicationsFile is the YAML shape of an external publications list.
type publicationsFile struct {
	Publications []types.Publication `yaml:"publications"`
}

// LoadPublications returns the publication list for a run. With an empty
// path the built-in list is returned. Entries that fail validation are
// warned about on w and skipped; the run proceeds with the rest.
func LoadPublications(path string, w io.Writer) ([]types.Publication, error) {
	pubs := defaultPublications

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading publications file: %w", err)
		}
		var f publicationsFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing publications file %s: %w", path, err)
		}
		if len(f.Publications) == 0 {
			return nil, fmt.Errorf("publications file %s lists no publications", path)
		}
		pubs = f.Publications
	}

	valid := make([]types.Publication, 0, len(pubs))
	for _, p := range pubs {
		if err := p.Validate(); err != nil {
			fmt.Fprintf(w, "warning: skipping publication: %v\n", err)
			continue
		}
		valid = append(valid, p)
	}
	return valid, nil
}

// DateLabel returns the human-readable timestamp and the date stem used
// in artifact filenames, in the configured zone. An unknown zone falls
// back to UTC.
func DateLabel(timezone string) (label, day string) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return now.Format("2006-01-02 15:04 MST"), now.Format("2006-01-02")
}
