package preprocess

import (
	"fmt"
	"math/rand"
	"sort"

	"temata/internal/model"
	"temata/internal/store"
)

// Options control balancing and splitting.
type Options struct {
	TestSize float64 // fraction held out for test
	ValSize  float64 // fraction held out for validation
	Seed     int64   // shuffle seed, fixed for reproducibility
}

// DefaultOptions mirrors the original experiment setup.
func DefaultOptions() Options {
	return Options{TestSize: 0.15, ValSize: 0.15, Seed: 42}
}

// Result summarizes one preprocess run.
type Result struct {
	RawCount       int                    `json:"rawCount"`
	CleanedCount   int                    `json:"cleanedCount"`
	BalancedCount  int                    `json:"balancedCount"`
	PerCategory    int                    `json:"perCategory"`
	TrainCount     int                    `json:"trainCount"`
	ValCount       int                    `json:"valCount"`
	TestCount      int                    `json:"testCount"`
	DroppedByClean int                    `json:"droppedByClean"`
	ByCategory     map[model.Category]int `json:"byCategory"`
}

// Runner reads raw_texts, cleans and balances the fragments and writes
// the processed and split collections.
type Runner struct {
	store *store.Store
	opts  Options
}

// NewRunner creates a preprocess runner.
func NewRunner(s *store.Store, opts Options) *Runner {
	if opts.TestSize <= 0 {
		opts.TestSize = 0.15
	}
	if opts.ValSize <= 0 {
		opts.ValSize = 0.15
	}
	return &Runner{store: s, opts: opts}
}

// Run executes the full preprocess stage: clean, balance by
// undersampling to the minority class, split into train/val/test, and
// persist the four derived collections. The outcome is deterministic for
// a fixed seed.
func (r *Runner) Run() (*Result, error) {
	raw, err := r.store.ListRecords(store.CollectionRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw texts: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("raw_texts is empty; run the ETL first")
	}

	res := &Result{RawCount: len(raw), ByCategory: make(map[model.Category]int)}

	// Clean citas; drop fragments that clean away to nothing.
	var cleaned []model.Record
	for _, rec := range raw {
		rec.Cita = CleanText(rec.Cita)
		if rec.Cita == "" {
			res.DroppedByClean++
			continue
		}
		cleaned = append(cleaned, rec)
	}
	res.CleanedCount = len(cleaned)

	balanced := balanceByUndersampling(cleaned, r.opts.Seed)
	res.BalancedCount = len(balanced)
	if len(balanced) > 0 {
		res.PerCategory = len(balanced) / len(model.Categories)
	}
	for _, rec := range balanced {
		res.ByCategory[rec.Categoria]++
	}

	train, val, test := split(balanced, r.opts)
	res.TrainCount = len(train)
	res.ValCount = len(val)
	res.TestCount = len(test)

	writes := []struct {
		collection string
		records    []model.Record
	}{
		{store.CollectionProcessed, balanced},
		{store.CollectionTrain, train},
		{store.CollectionVal, val},
		{store.CollectionTest, test},
	}
	for _, w := range writes {
		if _, err := r.store.ClearCollection(w.collection); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", w.collection, err)
		}
		if _, err := r.store.InsertRecords(w.collection, w.records); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", w.collection, err)
		}
	}

	return res, nil
}

// balanceByUndersampling trims every class to the minority class size
// after a seeded shuffle, so the kept sample is random but reproducible.
func balanceByUndersampling(records []model.Record, seed int64) []model.Record {
	byCategory := make(map[model.Category][]model.Record)
	for _, rec := range records {
		byCategory[rec.Categoria] = append(byCategory[rec.Categoria], rec)
	}

	minCount := -1
	for _, cat := range model.Categories {
		n := len(byCategory[cat])
		if n == 0 {
			continue
		}
		if minCount < 0 || n < minCount {
			minCount = n
		}
	}
	if minCount <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	var balanced []model.Record
	for _, cat := range model.Categories {
		group := byCategory[cat]
		if len(group) == 0 {
			continue
		}
		rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		balanced = append(balanced, group[:minCount]...)
	}
	return balanced
}

// split partitions records into train/val/test with a stratified seeded
// shuffle per category.
func split(records []model.Record, opts Options) (train, val, test []model.Record) {
	byCategory := make(map[model.Category][]model.Record)
	for _, rec := range records {
		byCategory[rec.Categoria] = append(byCategory[rec.Categoria], rec)
	}

	cats := make([]model.Category, 0, len(byCategory))
	for cat := range byCategory {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	rng := rand.New(rand.NewSource(opts.Seed + 1))
	for _, cat := range cats {
		group := byCategory[cat]
		rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })

		nTest := int(float64(len(group)) * opts.TestSize)
		nVal := int(float64(len(group)) * opts.ValSize)

		test = append(test, group[:nTest]...)
		val = append(val, group[nTest:nTest+nVal]...)
		train = append(train, group[nTest+nVal:]...)
	}
	return train, val, test
}
