package extract

import "sort"

// PartnerRecord is one extracted entity/description pair. At least one of
// the two fields is non-empty in every assembled record.
type PartnerRecord struct {
	Partner     string
	Description string
}

// Result is the final, immutable outcome for one document: deduplicated
// records in first-seen order plus the sorted set of pages that
// contributed rows.
type Result struct {
	Records []PartnerRecord
	Pages   []int
}

// Empty reports whether the document yielded no records.
func (r Result) Empty() bool {
	return len(r.Records) == 0
}

// Assembler merges extracted rows into a Result: normalizes both fields,
// drops rows with nothing in them, and removes exact duplicates while
// preserving first-seen order.
type Assembler struct{}

// NewAssembler creates an assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble builds the final result from raw records and contributing
// pages. The operation is idempotent: assembling an already-assembled
// record list yields the same records.
func (a *Assembler) Assemble(records []PartnerRecord, pages []int) Result {
	seen := make(map[PartnerRecord]struct{}, len(records))
	out := make([]PartnerRecord, 0, len(records))
	for _, rec := range records {
		rec.Partner = Normalize(rec.Partner)
		rec.Description = Normalize(rec.Description)
		if rec.Partner == "" && rec.Description == "" {
			continue
		}
		if _, ok := seen[rec]; ok {
			continue
		}
		seen[rec] = struct{}{}
		out = append(out, rec)
	}

	if len(out) == 0 {
		return Result{}
	}
	return Result{Records: out, Pages: uniqueSortedPages(pages)}
}

func uniqueSortedPages(pages []int) []int {
	set := make(map[int]struct{}, len(pages))
	for _, p := range pages {
		set[p] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
