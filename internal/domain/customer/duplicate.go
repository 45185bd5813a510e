package customer

import (
	"crm-admin/internal/pkg/textnorm"
	"sort"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

const (
	nameWeight  = 0.5
	phoneWeight = 0.2
	taxIDWeight = 0.3

	// An identical ΑΦΜ is treated as near-certain regardless of the other fields.
	taxIDMatchFloor = 0.95

	phoneSuffixScore  = 0.8
	phoneSuffixDigits = 8

	nameReasonThreshold = 0.8

	DefaultDuplicateThreshold  = 0.6
	DefaultMaxDuplicateResults = 5
)

const (
	ReasonName  = "name"
	ReasonPhone = "phone"
	ReasonTaxID = "tax_id"
)

type DuplicateProbe struct {
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone"`
	Mobile      string `json:"mobile"`
	TaxID       string `json:"taxId"`
}

func (p DuplicateProbe) IsEmpty() bool {
	return p.CompanyName == "" && p.Phone == "" && p.Mobile == "" && p.TaxID == ""
}

type DuplicateCandidate struct {
	ID int64
	DuplicateProbe
}

type DuplicateMatch struct {
	CustomerID  int64    `json:"customerId"`
	CompanyName string   `json:"companyName"`
	TaxID       string   `json:"taxId,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Score       float64  `json:"score"`
	NameScore   float64  `json:"nameScore"`
	PhoneScore  float64  `json:"phoneScore"`
	TaxIDScore  float64  `json:"taxIdScore"`
	Reasons     []string `json:"reasons"`
}

type normalizedProbe struct {
	name   string
	phones []string
	taxID  string
}

func normalizeProbe(p DuplicateProbe) normalizedProbe {
	n := normalizedProbe{
		name:  textnorm.Name(p.CompanyName),
		taxID: textnorm.TaxID(p.TaxID),
	}
	for _, raw := range []string{p.Phone, p.Mobile} {
		if ph := textnorm.Phone(raw); ph != "" {
			n.phones = append(n.phones, ph)
		}
	}
	return n
}

var nameMetric = &metrics.SorensenDice{CaseSensitive: true, NgramSize: 2}

func nameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return strutil.Similarity(a, b, nameMetric)
}

func phoneSimilarity(a, b []string) float64 {
	best := 0.0
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return 1
			}
			if len(x) >= phoneSuffixDigits && len(y) >= phoneSuffixDigits &&
				x[len(x)-phoneSuffixDigits:] == y[len(y)-phoneSuffixDigits:] {
				best = phoneSuffixScore
			}
		}
	}
	return best
}

// ScoreDuplicate compares a probe against one existing customer. Each field
// contributes only when both sides have a value, and the weights of the
// contributing fields are renormalized to sum to one.
func ScoreDuplicate(probe DuplicateProbe, candidate DuplicateCandidate) DuplicateMatch {
	return scoreNormalized(normalizeProbe(probe), candidate)
}

func scoreNormalized(p normalizedProbe, candidate DuplicateCandidate) DuplicateMatch {
	c := normalizeProbe(candidate.DuplicateProbe)
	match := DuplicateMatch{
		CustomerID:  candidate.ID,
		CompanyName: candidate.CompanyName,
		TaxID:       candidate.TaxID,
		Phone:       candidate.Phone,
		Reasons:     []string{},
	}

	var weighted, total float64

	if p.name != "" && c.name != "" {
		match.NameScore = nameSimilarity(p.name, c.name)
		weighted += nameWeight * match.NameScore
		total += nameWeight
		if match.NameScore >= nameReasonThreshold {
			match.Reasons = append(match.Reasons, ReasonName)
		}
	}

	if len(p.phones) > 0 && len(c.phones) > 0 {
		match.PhoneScore = phoneSimilarity(p.phones, c.phones)
		weighted += phoneWeight * match.PhoneScore
		total += phoneWeight
		if match.PhoneScore > 0 {
			match.Reasons = append(match.Reasons, ReasonPhone)
		}
	}

	if p.taxID != "" && c.taxID != "" {
		if p.taxID == c.taxID {
			match.TaxIDScore = 1
			match.Reasons = append(match.Reasons, ReasonTaxID)
		}
		weighted += taxIDWeight * match.TaxIDScore
		total += taxIDWeight
	}

	if total == 0 {
		return match
	}
	match.Score = weighted / total
	if match.TaxIDScore == 1 && match.Score < taxIDMatchFloor {
		match.Score = taxIDMatchFloor
	}
	return match
}

// DuplicateDetector ranks candidates by score and keeps those at or above the threshold.
type DuplicateDetector struct {
	Threshold  float64
	MaxResults int
}

func NewDuplicateDetector(threshold float64, maxResults int) DuplicateDetector {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultDuplicateThreshold
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxDuplicateResults
	}
	return DuplicateDetector{Threshold: threshold, MaxResults: maxResults}
}

func (d DuplicateDetector) Find(probe DuplicateProbe, candidates []DuplicateCandidate) []DuplicateMatch {
	matches := make([]DuplicateMatch, 0)
	if probe.IsEmpty() {
		return matches
	}

	p := normalizeProbe(probe)
	for _, c := range candidates {
		m := scoreNormalized(p, c)
		if m.Score >= d.Threshold {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].CustomerID < matches[j].CustomerID
	})

	if len(matches) > d.MaxResults {
		matches = matches[:d.MaxResults]
	}
	return matches
}
