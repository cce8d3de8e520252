package sourceproc

import (
	"slices"
	"strings"

	"m3u-helper/category"
	"m3u-helper/m3u"
)

// Buckets groups channel records by category. A Buckets value belongs to a
// single format or merge run.
type Buckets struct {
	table   category.Table
	buckets map[category.Category][]m3u.ChannelRecord
}

func NewBuckets() *Buckets {
	return newBucketsWithTable(category.DefaultTable)
}

func newBucketsWithTable(table category.Table) *Buckets {
	return &Buckets{
		table:   table,
		buckets: make(map[category.Category][]m3u.ChannelRecord, len(category.Order())),
	}
}

// Add appends rec to the bucket of its category.
func (b *Buckets) Add(rec m3u.ChannelRecord) {
	cat := b.table.Classify(rec.Name)
	b.buckets[cat] = append(b.buckets[cat], rec)
}

func (b *Buckets) AddAll(recs []m3u.ChannelRecord) {
	for _, rec := range recs {
		b.Add(rec)
	}
}

// Get returns the records of one category in bucket order.
func (b *Buckets) Get(cat category.Category) []m3u.ChannelRecord {
	return b.buckets[cat]
}

func (b *Buckets) Len() int {
	total := 0
	for _, recs := range b.buckets {
		total += len(recs)
	}
	return total
}

func (b *Buckets) Counts() map[category.Category]int {
	counts := make(map[category.Category]int, len(b.buckets))
	for _, cat := range category.Order() {
		if n := len(b.buckets[cat]); n > 0 {
			counts[cat] = n
		}
	}
	return counts
}

// Sort orders every bucket by name in byte order. Equal names keep their
// arrival order.
func (b *Buckets) Sort() {
	for _, recs := range b.buckets {
		slices.SortStableFunc(recs, func(x, y m3u.ChannelRecord) int {
			return strings.Compare(x.Name, y.Name)
		})
	}
}

// URIs returns the distinct stream URIs in output order.
func (b *Buckets) URIs() []string {
	seen := make(map[string]struct{})
	var uris []string
	b.each(func(_ category.Category, rec m3u.ChannelRecord) {
		if _, ok := seen[rec.URI]; ok {
			return
		}
		seen[rec.URI] = struct{}{}
		uris = append(uris, rec.URI)
	})
	return uris
}

// Filter returns new buckets holding only records whose URI is reachable.
// A URI missing from reachable counts as unreachable.
func (b *Buckets) Filter(reachable map[string]bool) *Buckets {
	filtered := newBucketsWithTable(b.table)
	b.each(func(cat category.Category, rec m3u.ChannelRecord) {
		if reachable[rec.URI] {
			filtered.buckets[cat] = append(filtered.buckets[cat], rec)
		}
	})
	return filtered
}

// Entries flattens the buckets into output order, labelled by category.
func (b *Buckets) Entries() []m3u.Entry {
	entries := make([]m3u.Entry, 0, b.Len())
	b.each(func(cat category.Category, rec m3u.ChannelRecord) {
		entries = append(entries, m3u.Entry{
			Label: cat.Label(),
			Name:  rec.Name,
			URI:   rec.URI,
		})
	})
	return entries
}

func (b *Buckets) each(fn func(category.Category, m3u.ChannelRecord)) {
	for _, cat := range category.Order() {
		for _, rec := range b.buckets[cat] {
			fn(cat, rec)
		}
	}
}
