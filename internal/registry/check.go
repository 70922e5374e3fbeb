package registry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Severity classifies a check issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding from Check.
type Issue struct {
	Item     string   `json:"item"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report collects the findings of Check in item order.
type Report struct {
	Issues []Issue `json:"issues"`
}

// HasErrors reports whether any issue is an error.
func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts returns the number of errors and warnings.
func (r *Report) Counts() (errs, warnings int) {
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		}
	}
	return errs, warnings
}

func (r *Report) add(item string, sev Severity, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{Item: item, Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// distTag matches npm dist-tags such as "latest" or "next".
var distTag = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Check validates the link integrity of reg: every registry dependency must
// name an item in reg (or be an absolute URL), the dependency graph must be
// acyclic, and versioned package dependencies must carry a valid semver
// constraint or dist-tag.
func Check(reg *Registry) *Report {
	report := &Report{}

	known := make(map[string]bool, len(reg.Items))
	for _, item := range reg.Items {
		known[item.Name] = true
	}

	for _, item := range reg.Items {
		for _, dep := range item.RegistryDependencies {
			if IsExternal(dep) {
				continue
			}
			if !known[dep] {
				report.add(item.Name, SeverityError, "unknown registry dependency %q", dep)
			}
		}

		for _, dep := range append(append([]string{}, item.Dependencies...), item.DevDependencies...) {
			if err := checkPackageSpec(dep); err != nil {
				report.add(item.Name, SeverityError, "invalid dependency %q: %v", dep, err)
			}
		}

		if item.Type == "registry:ui" && len(item.Files) == 0 {
			report.add(item.Name, SeverityWarning, "ui item has no files")
		}
	}

	for _, cycle := range FindCycles(reg) {
		report.add(cycle[0], SeverityError, "dependency cycle: %s", strings.Join(cycle, " -> "))
	}

	return report
}

// IsExternal reports whether a registry dependency points at another
// registry by URL.
func IsExternal(dep string) bool {
	return strings.HasPrefix(dep, "https://") || strings.HasPrefix(dep, "http://")
}

// SplitPackageSpec splits "name@version" into its parts. Scoped names keep
// their leading "@": "@radix-ui/react-slot@^1.1.0" -> ("@radix-ui/react-slot", "^1.1.0").
func SplitPackageSpec(spec string) (name, version string) {
	idx := strings.LastIndex(spec, "@")
	if idx <= 0 {
		return spec, ""
	}
	return spec[:idx], spec[idx+1:]
}

func checkPackageSpec(spec string) error {
	name, version := SplitPackageSpec(spec)
	if name == "" || strings.HasSuffix(name, "/") {
		return fmt.Errorf("missing package name")
	}
	if version == "" {
		if strings.HasSuffix(spec, "@") {
			return fmt.Errorf("empty version")
		}
		return nil
	}
	if distTag.MatchString(version) {
		return nil
	}
	if _, err := semver.NewConstraint(version); err != nil {
		return err
	}
	return nil
}

// FindCycles reports dependency cycles among local items: at least one cycle
// per strongly connected group, not every elementary cycle. Each is a closed
// path starting and ending at the same name, normalized to start at its
// smallest name; the result is sorted.
func FindCycles(reg *Registry) [][]string {
	const (
		white = iota
		grey
		black
	)

	deps := make(map[string][]string, len(reg.Items))
	for _, item := range reg.Items {
		deps[item.Name] = item.RegistryDependencies
	}

	color := make(map[string]int, len(reg.Items))
	seen := make(map[string]bool)
	var cycles [][]string
	var stack []string

	var visit func(name string)
	visit = func(name string) {
		color[name] = grey
		stack = append(stack, name)

		for _, dep := range deps[name] {
			if _, ok := deps[dep]; !ok {
				continue
			}
			switch color[dep] {
			case white:
				visit(dep)
			case grey:
				cycle := closeCycle(stack, dep)
				key := strings.Join(cycle, "\x00")
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[name] = black
	}

	for _, item := range reg.Items {
		if color[item.Name] == white {
			visit(item.Name)
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return strings.Join(cycles[i], ",") < strings.Join(cycles[j], ",")
	})
	return cycles
}

// closeCycle extracts the cycle ending at start from the DFS stack and
// rotates it so the lexically smallest name comes first.
func closeCycle(stack []string, start string) []string {
	idx := 0
	for i, name := range stack {
		if name == start {
			idx = i
			break
		}
	}
	ring := append([]string{}, stack[idx:]...)

	lo := 0
	for i, name := range ring {
		if name < ring[lo] {
			lo = i
		}
	}
	rotated := append(append([]string{}, ring[lo:]...), ring[:lo]...)
	return append(rotated, rotated[0])
}
