package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy: phrase lists trimmed and
// deduped, plus errors for broken tab layouts and warnings for suspicious
// pattern lists.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Purge.TooSenior = trimList(out.Purge.TooSenior)
	out.Purge.Delete = trimList(out.Purge.Delete)

	checkTab := func(name string, t TabConfig) {
		if strings.TrimSpace(t.Name) == "" {
			res.addErr("tabs.%s.name is required", name)
		}
		if t.TitleCol < 1 {
			res.addErr("tabs.%s.title_col must be >= 1", name)
		}
		if t.DecisionCol < 1 {
			res.addErr("tabs.%s.decision_col must be >= 1", name)
		}
		if t.DecisionAtCol < 0 {
			res.addErr("tabs.%s.decision_at_col must be >= 0 (0 = no timestamp column)", name)
		}
		if t.FirstDataRow < 2 {
			res.addErr("tabs.%s.first_data_row must be >= 2 (row 1 is the header)", name)
		}
		if t.DecisionAtCol != 0 && t.DecisionAtCol == t.DecisionCol {
			res.addErr("tabs.%s.decision_at_col collides with decision_col", name)
		}
	}
	checkTab("jobs", out.Tabs.Jobs)
	checkTab("today", out.Tabs.Today)

	if strings.TrimSpace(out.Workbook.Path) == "" {
		res.addErr("workbook.path is required")
	}
	if out.Purge.PreviewLimit <= 0 {
		res.addErr("purge.preview_limit must be > 0")
	}
	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.Serve.EditEventsPerSec <= 0 {
		res.addErr("serve.edit_events_per_sec must be > 0")
	}
	if out.Serve.EditBurst <= 0 {
		res.addErr("serve.edit_burst must be > 0")
	}

	if len(out.Purge.TooSenior) == 0 {
		res.addWarn("purge.too_senior is empty; no rows will be marked OVERSENIOR.")
	}
	if len(out.Purge.Delete) == 0 {
		res.addWarn("purge.delete is empty; no rows will be purged.")
	}

	// Overlap between the lists is legal (senior wins by precedence) but
	// usually means a phrase is in the wrong list.
	seniorSet := map[string]bool{}
	for _, p := range out.Purge.TooSenior {
		seniorSet[strings.ToLower(p)] = true
	}
	for _, p := range out.Purge.Delete {
		if seniorSet[strings.ToLower(p)] {
			res.addWarn("phrase appears in both too_senior and delete: %q (too_senior wins)", p)
		}
	}

	return out, res
}

// Validate is the hard-error gate used before persisting a config.
func Validate(cfg Config) error {
	_, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		return fmt.Errorf("config validation failed:\n- %s", strings.Join(res.Errors, "\n- "))
	}
	return nil
}
