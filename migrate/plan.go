package migrate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"recipestore/models"
)

var digitRun = regexp.MustCompile(`\d+`)

// FormatMinutes renders minutes the way current documents display them.
func FormatMinutes(n int64) string {
	return fmt.Sprintf("%d minutes", n)
}

// Plan computes the schema patch for one recipe. An empty patch means the
// recipe already has the current shape. now is stamped into updatedAt only
// when something else changed.
func Plan(r models.Recipe, now time.Time) (models.Patch, error) {
	var p models.Patch
	var err error

	if p.PrepTime, p.PrepTimeMinutes, err = planDuration("prepTime", r.PrepTime, r.PrepTimeMinutes); err != nil {
		return models.Patch{}, err
	}
	if p.CookTime, p.CookTimeMinutes, err = planDuration("cookTime", r.CookTime, r.CookTimeMinutes); err != nil {
		return models.Patch{}, err
	}
	if p.TotalTime, p.TotalTimeMinutes, err = planDuration("totalTime", r.TotalTime, r.TotalTimeMinutes); err != nil {
		return models.Patch{}, err
	}

	// Derive the total from its parts, but never over an explicit totalTime.
	prep := firstInt(p.PrepTimeMinutes, r.PrepTimeMinutes)
	cook := firstInt(p.CookTimeMinutes, r.CookTimeMinutes)
	total := firstInt(p.TotalTimeMinutes, r.TotalTimeMinutes)
	if prep != nil && cook != nil && total == nil && r.TotalTime == nil {
		sum := *prep + *cook
		text := FormatMinutes(sum)
		p.TotalTimeMinutes = &sum
		p.TotalTime = &text
	}

	p.Tips = planTips(r.Tips)

	if r.Title != nil && *r.Title != "" && (r.RecipeName == nil || *r.RecipeName == "") {
		name := *r.Title
		p.RecipeName = &name
	}

	if !p.IsEmpty() {
		p.UpdatedAt = &now
	}
	return p, nil
}

// planDuration returns the new display string and minutes for one duration
// field, nil where the field stays as stored.
func planDuration(field string, d *models.Duration, minutes *int64) (*string, *int64, error) {
	switch {
	case d.IsNumber():
		n := d.Minutes
		text := FormatMinutes(n)
		return &text, &n, nil
	case d.IsText() && minutes == nil:
		n, ok, err := leadingNumber(d.Text)
		if err != nil {
			return nil, nil, fmt.Errorf("%s %q: %w", field, d.Text, err)
		}
		if !ok {
			return nil, nil, nil
		}
		return nil, &n, nil
	}
	return nil, nil, nil
}

// leadingNumber parses the first run of decimal digits in s. "1 to 2 hours"
// yields 1: only the first run counts and units are not interpreted.
func leadingNumber(s string) (int64, bool, error) {
	run := digitRun.FindString(s)
	if run == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(run, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", models.ErrMalformed, err)
	}
	return n, true, nil
}

func planTips(t *models.Tips) *models.TipsPatch {
	if t == nil {
		return nil
	}
	var out models.TipsPatch
	converted := false
	for _, f := range []struct {
		in  *models.TipText
		out **string
	}{
		{t.MakeAhead, &out.MakeAhead},
		{t.Storage, &out.Storage},
		{t.Reheating, &out.Reheating},
	} {
		switch {
		case f.in.IsList():
			joined := strings.Join(f.in.List, " ")
			*f.out = &joined
			converted = true
		case f.in != nil && f.in.Value != "":
			v := f.in.Value
			*f.out = &v
		}
	}
	if !converted {
		return nil
	}
	out.Substitutions = t.Substitutions
	out.Variations = t.Variations
	return &out
}

func firstInt(vs ...*int64) *int64 {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}
