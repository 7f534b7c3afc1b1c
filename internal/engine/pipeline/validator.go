package pipeline

import (
	"context"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/engine/specfile"
	"go.trai.ch/zerr"
)

// diffRegionLimit caps how much diverging text a failure detail carries.
const diffRegionLimit = 160

// validate proves the corrected text is a fixed point: re-running the
// full correction pass on it must be byte-identical. It returns the
// content digest on success.
func (p *Pipeline) validate(ctx context.Context, meta domain.PackageMeta, corrected string, firstPass []domain.ChangeRecord) (string, error) {
	d, err := specfile.Parse(corrected)
	if err != nil {
		// Corrected output that no longer parses is an engine defect.
		return "", zerr.Wrap(err, "corrected output does not parse")
	}

	secondPass, _, _, err := p.correct(ctx, meta, d, nil)
	if err != nil {
		return "", err
	}

	reserialized := specfile.Serialize(d)
	if reserialized == corrected {
		return domain.TextDigest(corrected), nil
	}

	verr := zerr.With(domain.ErrNonConvergentCorrection, "cause", "correction is not a fixed point")
	if culprits := ruleIDs(secondPass); len(culprits) > 0 {
		verr = zerr.With(verr, "rules", strings.Join(culprits, ", "))
	}
	return "", zerr.With(verr, "diff", diffRegion(corrected, reserialized))
}

// ruleIDs collects the distinct rules that still reported changes on the
// second pass, preserving application order.
func ruleIDs(records []domain.ChangeRecord) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range records {
		if _, ok := seen[r.Rule]; ok {
			continue
		}
		seen[r.Rule] = struct{}{}
		out = append(out, r.Rule)
	}
	return out
}

// diffRegion renders the minimal diverging region between the two texts.
func diffRegion(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString("+" + strings.TrimSpace(d.Text) + " ")
		case diffmatchpatch.DiffDelete:
			b.WriteString("-" + strings.TrimSpace(d.Text) + " ")
		}
		if b.Len() >= diffRegionLimit {
			break
		}
	}

	region := strings.TrimSpace(b.String())
	if len(region) > diffRegionLimit {
		region = region[:diffRegionLimit]
	}
	return region
}
