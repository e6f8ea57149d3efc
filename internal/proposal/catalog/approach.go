package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Approach selects which column of an item's price and day schedule is active.
type Approach string

const (
	NoCode Approach = "nocode"
	CMS    Approach = "cms"
	Custom Approach = "custom"
)

// Approaches returns the three approaches in display order.
func Approaches() []Approach {
	return []Approach{NoCode, CMS, Custom}
}

// ParseApproach accepts an approach key in any case, surrounding spaces ignored.
func ParseApproach(s string) (Approach, error) {
	a := Approach(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown approach %q (want nocode, cms or custom)", s)
	}
	return a, nil
}

func (a Approach) Valid() bool {
	switch a {
	case NoCode, CMS, Custom:
		return true
	}
	return false
}

// Label is the display name used in summaries and mail bodies.
func (a Approach) Label() string {
	switch a {
	case NoCode:
		return "No-Code Platform"
	case CMS:
		return "CMS Platform"
	case Custom:
		return "Custom Development"
	}
	return string(a)
}

func (a Approach) String() string {
	return string(a)
}

// ByApproach holds one value per approach.
type ByApproach[T int | float64] struct {
	NoCode T `json:"nocode"`
	CMS    T `json:"cms"`
	Custom T `json:"custom"`
}

// For returns the value for a; unknown approaches yield the zero value.
func (b ByApproach[T]) For(a Approach) T {
	switch a {
	case NoCode:
		return b.NoCode
	case CMS:
		return b.CMS
	case Custom:
		return b.Custom
	}
	var zero T
	return zero
}

// SampleSite is a reference website shown for an approach.
type SampleSite struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// ApproachInfo is the descriptive metadata shown next to the approach selector.
type ApproachInfo struct {
	Key         Approach     `json:"key"`
	Label       string       `json:"label"`
	Subtitle    string       `json:"subtitle"`
	Description string       `json:"description"`
	Pros        []string     `json:"pros"`
	Cons        []string     `json:"cons"`
	BestFor     string       `json:"bestFor"`
	Samples     []SampleSite `json:"samples"`
}

//go:embed approaches.json
var approachesJSON []byte

var (
	approachOnce sync.Once
	approachInfo map[Approach]ApproachInfo
)

// Info returns the metadata for a. The result is a copy.
func (a Approach) Info() ApproachInfo {
	approachOnce.Do(func() {
		var doc struct {
			Approaches []ApproachInfo `json:"approaches"`
		}
		if err := json.Unmarshal(approachesJSON, &doc); err != nil {
			panic(fmt.Sprintf("catalog: embedded approaches.json: %v", err))
		}
		approachInfo = make(map[Approach]ApproachInfo, len(doc.Approaches))
		for _, info := range doc.Approaches {
			approachInfo[info.Key] = info
		}
	})

	info, ok := approachInfo[a]
	if !ok {
		return ApproachInfo{Key: a, Label: a.Label()}
	}
	info.Pros = append([]string(nil), info.Pros...)
	info.Cons = append([]string(nil), info.Cons...)
	samples := make([]SampleSite, len(info.Samples))
	for i, s := range info.Samples {
		s.Features = append([]string(nil), s.Features...)
		samples[i] = s
	}
	info.Samples = samples
	return info
}
