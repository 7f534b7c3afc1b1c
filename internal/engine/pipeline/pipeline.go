// Package pipeline drives one package through the sanitization state
// machine: parse, rule classes in fixed order, dependency resolution,
// idempotence validation.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/respec/internal/engine/rules"
	"go.trai.ch/respec/internal/engine/specfile"
	"go.trai.ch/zerr"
)

// OverrideRuleID attributes override-table changes in the audit trail.
const OverrideRuleID = "override-table"

// Pipeline corrects descriptors. It is stateless across packages and
// safe for concurrent use by batch workers.
type Pipeline struct {
	catalog  *rules.Catalog
	resolver ports.OverrideResolver
	logger   ports.Logger
}

// New creates a pipeline over the given catalog and override table.
func New(catalog *rules.Catalog, resolver ports.OverrideResolver, logger ports.Logger) *Pipeline {
	return &Pipeline{catalog: catalog, resolver: resolver, logger: logger}
}

// classStages maps each rule class to the state the package reaches once
// the class has been applied. Path and convention rules share a state;
// convention patches are the tail of path correction.
var classStages = []struct {
	class domain.RuleClass
	state domain.PackageState
}{
	{domain.ClassPrune, domain.StatePruned},
	{domain.ClassMacro, domain.StateRenormalized},
	{domain.ClassPath, domain.StatePathCorrected},
	{domain.ClassConvention, domain.StatePathCorrected},
}

// Run corrects one package. It never returns an error: every failure
// mode is folded into the outcome so one package cannot take down a
// batch.
func (p *Pipeline) Run(ctx context.Context, item domain.BatchItem) *domain.Outcome {
	o := &domain.Outcome{Package: item.Meta.Name}

	d, err := specfile.Parse(item.Raw)
	if err != nil {
		return p.fail(o, err)
	}
	o.State = domain.StateParsed

	meta := item.Meta
	if meta.Version == "" {
		if v, ok := d.Tag("Version"); ok {
			meta.Version = v
		}
	}
	o.Version = meta.Version

	changes, deps, low, err := p.correct(ctx, meta, d, o)
	if err != nil {
		return p.fail(o, err)
	}
	o.Changes = changes
	o.Dependencies = deps
	o.LowConfidence = low

	corrected := specfile.Serialize(d)
	digest, err := p.validate(ctx, meta, corrected, changes)
	if err != nil {
		return p.fail(o, err)
	}
	o.State = domain.StateValidated

	o.Corrected = corrected
	o.Digest = digest
	o.State = domain.StateCorrected

	if len(o.LowConfidence) > 0 {
		p.logger.Warn(item.Meta.Name + ": kept unrecognized dependencies: " + strings.Join(o.LowConfidence, ", "))
	}
	return o
}

// correct runs every rule class and the override table against the
// parsed descriptor. The outcome's state tracks the furthest stage
// reached so failures report where the package stopped. When o is nil
// the caller is re-running correction for validation.
func (p *Pipeline) correct(ctx context.Context, meta domain.PackageMeta, d *domain.Descriptor, o *domain.Outcome) ([]domain.ChangeRecord, []domain.DependencyEntry, []string, error) {
	var changes []domain.ChangeRecord

	for _, stage := range classStages {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		applied, err := p.catalog.ApplyClass(stage.class, meta, d)
		if err != nil {
			return nil, nil, nil, err
		}
		changes = append(changes, applied...)
		if o != nil {
			o.State = stage.state
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}
	depChanges, deps, low := p.resolveDependencies(meta, d)
	changes = append(changes, depChanges...)
	if o != nil {
		o.State = domain.StateDependencyResolved
	}

	return changes, deps, low, nil
}

// resolveDependencies applies the override table to every dependency
// directive in the preamble and the subpackage blocks.
func (p *Pipeline) resolveDependencies(meta domain.PackageMeta, d *domain.Descriptor) ([]domain.ChangeRecord, []domain.DependencyEntry, []string) {
	var (
		changes []domain.ChangeRecord
		entries []domain.DependencyEntry
		low     []string
		lowSeen = map[string]struct{}{}
	)

	resolve := func(s *domain.Section) {
		kept := s.Directives[:0]
		for _, dir := range s.Directives {
			if !dir.IsDependency() {
				kept = append(kept, dir)
				continue
			}
			ident := dir.DependencyIdentifier()
			dec := p.resolver.Resolve(ident, meta.OSRelease)

			switch dec.Kind {
			case domain.DecisionOmit:
				entries = append(entries, domain.DependencyEntry{Upstream: ident, Decision: domain.DecisionOmit})
				changes = append(changes, overrideRecord(s.Name, "removed "+strings.TrimSpace(dir.Raw)))
				continue

			case domain.DecisionRename:
				value := dec.Replacement + constraintOf(dir.Value)
				entries = append(entries, domain.DependencyEntry{Upstream: ident, Resolved: dec.Replacement, Decision: domain.DecisionRename})
				if dir.Value != value {
					dir = dir.WithValue(value)
					changes = append(changes, overrideRecord(s.Name, "renamed "+ident+" to "+dec.Replacement))
				}

			case domain.DecisionPin:
				value := ident + " = " + dec.Version
				entries = append(entries, domain.DependencyEntry{Upstream: ident, Resolved: value, Decision: domain.DecisionPin})
				if dir.Value != value {
					dir = dir.WithValue(value)
					changes = append(changes, overrideRecord(s.Name, "pinned "+ident+" to "+dec.Version))
				}

			default:
				decision := domain.DecisionKeep
				if dec.LowConfidence() {
					decision = domain.DecisionUnresolved
					if _, ok := lowSeen[ident]; !ok {
						lowSeen[ident] = struct{}{}
						low = append(low, ident)
					}
				}
				entries = append(entries, domain.DependencyEntry{Upstream: ident, Resolved: ident, Decision: decision})
			}
			kept = append(kept, dir)
		}
		s.Directives = kept
	}

	resolve(d.Preamble)
	for _, s := range d.Sections {
		if !s.Opaque && strings.HasPrefix(s.Name, "%package") {
			resolve(s)
		}
	}

	return changes, entries, low
}

// constraintOf returns the version-constraint suffix of a dependency
// value (" >= 3.16" for "cmake >= 3.16"), empty when unconstrained.
func constraintOf(value string) string {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return ""
	}
	return " " + strings.Join(fields[1:], " ")
}

func overrideRecord(section, detail string) domain.ChangeRecord {
	name := section
	if name == "" {
		name = "preamble"
	}
	return domain.ChangeRecord{
		Rule:    OverrideRuleID,
		Class:   domain.ClassOverride,
		Section: name,
		Detail:  detail,
	}
}

// fail finalizes the outcome with the failure taxonomy entry for err.
func (p *Pipeline) fail(o *domain.Outcome, err error) *domain.Outcome {
	o.State = domain.StateFailed
	o.Failure = failureFor(err)
	p.logger.Error(zerr.With(err, "package", o.Package))
	return o
}

// failureFor maps an error to its failure reason and originating rule.
func failureFor(err error) *domain.Failure {
	reason := domain.ReasonInternal
	switch {
	case errors.Is(err, domain.ErrMalformedDescriptor):
		reason = domain.ReasonMalformedDescriptor
	case errors.Is(err, domain.ErrAmbiguousCorrection):
		reason = domain.ReasonAmbiguousCorrection
	case errors.Is(err, domain.ErrNonConvergentCorrection):
		reason = domain.ReasonNonConvergentCorrection
	case errors.Is(err, context.DeadlineExceeded):
		reason = domain.ReasonTimeout
	}

	f := &domain.Failure{Reason: reason, Detail: err.Error()}
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		if rule, ok := zErr.Metadata()["rule"].(string); ok {
			f.Rule = rule
		}
	}
	return f
}
